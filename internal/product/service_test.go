package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	"github.com/MrJamesThe3rd/mda/internal/product"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    product.CreateParams
		setupMock func(m *product.MockRepository)
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: product.CreateParams{
				Nom:             " Réfrigérateur ",
				PrixClient:      150000,
				PrixFournisseur: 120000,
				StockActuel:     4,
			},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *product.Product) error {
						assert.Equal(t, "Réfrigérateur", p.Nom)
						assert.True(t, p.IsActive)

						p.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:     "MissingName",
			params:   product.CreateParams{PrixClient: 1000},
			wantKind: apperr.KindInvalid,
			wantErr:  true,
		},
		{
			name:     "NegativePrice",
			params:   product.CreateParams{Nom: "TV", PrixClient: -1},
			wantKind: apperr.KindInvalid,
			wantErr:  true,
		},
		{
			name:   "RepoError",
			params: product.CreateParams{Nom: "TV", PrixClient: 1000},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantKind: apperr.KindInternal,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := product.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := product.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Update_Partial(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	id := uuid.New()
	existing := &product.Product{ID: id, Nom: "TV", PrixClient: 90000, StockActuel: 3, IsActive: true}

	repo.EXPECT().GetProduct(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().UpdateProduct(gomock.Any(), existing).Return(nil)

	got, err := svc.Update(context.Background(), id, product.UpdateParams{
		PrixClient: new(int64(95000)),
		IsActive:   new(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "TV", got.Nom)
	assert.Equal(t, int64(95000), got.PrixClient)
	assert.Equal(t, 3, got.StockActuel)
	assert.False(t, got.IsActive)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)
	id := uuid.New()

	repo.EXPECT().GetProduct(gomock.Any(), id).Return(nil, product.ErrNotFound)

	_, err := svc.Update(context.Background(), id, product.UpdateParams{})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestService_ImportBatch(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := product.NewMockRepository(ctrl)
	itx := product.NewMockImportTx(ctrl)
	svc := product.NewService(repo)

	params := []product.CreateParams{
		{Nom: "Moto", PrixClient: 650000, PrixFournisseur: 500000, StockActuel: 2},
		{Nom: "Téléphone", PrixClient: 85000, PrixFournisseur: 60000, StockActuel: 10},
	}

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().CreateProducts(gomock.Any(), gomock.Len(2)).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	got, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Moto", got[0].Nom)
}

func TestService_ImportBatch_InvalidRowAbortsBeforeWrite(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	_, err := svc.ImportBatch(context.Background(), []product.CreateParams{
		{Nom: "Moto", PrixClient: 650000},
		{Nom: "", PrixClient: 1000},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product 2")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := product.NewService(product.NewMockRepository(ctrl))

	got, err := svc.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
