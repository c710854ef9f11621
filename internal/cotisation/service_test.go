package cotisation_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/delivery"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
	"github.com/MrJamesThe3rd/mda/internal/product"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type mocks struct {
	repo     *cotisation.MockRepository
	tx       *cotisation.MockWorkflowTx
	products *cotisation.MockProductFinder
	users    *cotisation.MockUserFinder
}

func newService(t *testing.T, opts cotisation.Options) (*cotisation.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo:     cotisation.NewMockRepository(ctrl),
		tx:       cotisation.NewMockWorkflowTx(ctrl),
		products: cotisation.NewMockProductFinder(ctrl),
		users:    cotisation.NewMockUserFinder(ctrl),
	}

	return cotisation.NewService(m.repo, m.products, m.users, opts), m
}

// recordEntries captures every ledger entry written through tx.
func recordEntries(tx *cotisation.MockWorkflowTx, into *[]ledger.Entry) {
	tx.EXPECT().
		RecordEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e ledger.Entry) (*ledger.Transaction, error) {
			*into = append(*into, e)
			return &ledger.Transaction{ID: uuid.New(), Type: e.Type, Montant: e.Montant}, nil
		}).
		AnyTimes()
}

func TestService_Create(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	type testCase struct {
		name      string
		params    cotisation.CreateParams
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: cotisation.CreateParams{
				UserID: userID, ProductID: productID, Frequence: cotisation.FrequenceWeekly, MontantParMise: 5000,
			},
			setupMock: func(m mocks) {
				m.products.EXPECT().Get(gomock.Any(), productID).
					Return(&product.Product{ID: productID, PrixClient: 150000, IsActive: true}, nil)
				m.repo.EXPECT().CreatePlan(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "InvalidFrequence",
			params: cotisation.CreateParams{
				UserID: userID, ProductID: productID, Frequence: "yearly", MontantParMise: 5000,
			},
			wantErr: cotisation.ErrInvalidFrequence,
		},
		{
			name: "MiseTooLow",
			params: cotisation.CreateParams{
				UserID: userID, ProductID: productID, Frequence: cotisation.FrequenceDaily, MontantParMise: 599,
			},
			wantErr: cotisation.ErrMiseTooLow,
		},
		{
			name: "ProductNotFound",
			params: cotisation.CreateParams{
				UserID: userID, ProductID: productID, Frequence: cotisation.FrequenceDaily, MontantParMise: 600,
			},
			setupMock: func(m mocks) {
				m.products.EXPECT().Get(gomock.Any(), productID).Return(nil, product.ErrNotFound)
			},
			wantErr: product.ErrNotFound,
		},
		{
			name: "InactiveProduct",
			params: cotisation.CreateParams{
				UserID: userID, ProductID: productID, Frequence: cotisation.FrequenceDaily, MontantParMise: 600,
			},
			setupMock: func(m mocks) {
				m.products.EXPECT().Get(gomock.Any(), productID).
					Return(&product.Product{ID: productID, PrixClient: 1000}, nil)
			},
			wantErr: product.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t, cotisation.Options{})
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(150000), got.MontantTotal)
			assert.Equal(t, int64(0), got.MontantCotise)
			assert.Equal(t, cotisation.StatutActif, got.Statut)
			assert.Equal(t, userID, got.UserID)
			require.NotNil(t, got.ProchaineEcheance)
			assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *got.ProchaineEcheance, time.Minute)
		})
	}
}

func activePlan(userID uuid.UUID, total, cotise int64) *cotisation.Plan {
	return &cotisation.Plan{
		ID:             uuid.New(),
		UserID:         userID,
		ProductID:      uuid.New(),
		MontantTotal:   total,
		MontantCotise:  cotise,
		Frequence:      cotisation.FrequenceDaily,
		MontantParMise: 1000,
		Statut:         cotisation.StatutActif,
	}
}

func TestService_MakePayment_Partial(t *testing.T) {
	svc, m := newService(t, cotisation.Options{RecordCompletionSale: true})

	userID := uuid.New()
	plan := activePlan(userID, 10000, 2000)
	due := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	plan.ProchaineEcheance = &due

	var entries []ledger.Entry

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
	m.tx.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *cotisation.Payment) error {
			assert.Equal(t, int64(3000), p.Montant)
			assert.Equal(t, cotisation.PaymentCompleted, p.Statut)
			assert.Regexp(t, `^TXN-\d+$`, p.TransactionRef)

			return nil
		})
	recordEntries(m.tx, &entries)
	m.tx.EXPECT().UpdatePlan(gomock.Any(), plan).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	got, err := svc.MakePayment(context.Background(), cotisation.PaymentParams{
		PlanID: plan.ID, UserID: userID, Montant: 3000, PaymentMethod: "mobile_money",
	})
	require.NoError(t, err)

	assert.False(t, got.PlanComplete)
	assert.Equal(t, int64(5000), got.Plan.MontantCotise)
	assert.Equal(t, cotisation.StatutActif, got.Plan.Statut)
	assert.Equal(t, due.AddDate(0, 0, 1), *got.Plan.ProchaineEcheance)

	require.Len(t, entries, 1)
	assert.Equal(t, ledger.TxCotisationPayment, entries[0].Type)
	assert.Equal(t, ledger.FluxVenteDigitale, *entries[0].Flux)
	assert.Contains(t, entries[0].Description, "pour le plan "+plan.ID.String())
}

func TestService_MakePayment_Completes(t *testing.T) {
	tests := []struct {
		name      string
		sale      bool
		wantTypes []ledger.TxType
	}{
		{
			name:      "WithCompletionSale",
			sale:      true,
			wantTypes: []ledger.TxType{ledger.TxCotisationPayment, ledger.TxCotisationComplete, ledger.TxVente},
		},
		{
			name:      "WithoutCompletionSale",
			sale:      false,
			wantTypes: []ledger.TxType{ledger.TxCotisationPayment, ledger.TxCotisationComplete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t, cotisation.Options{RecordCompletionSale: tt.sale})

			userID := uuid.New()
			plan := activePlan(userID, 10000, 8000)

			var (
				entries    []ledger.Entry
				deliveries []*delivery.Delivery
			)

			m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
			m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
			m.tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
			recordEntries(m.tx, &entries)
			m.users.EXPECT().Get(gomock.Any(), userID).Return(&user.User{ID: userID}, nil)
			m.tx.EXPECT().
				CreateDelivery(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, d *delivery.Delivery) error {
					deliveries = append(deliveries, d)
					return nil
				})
			m.tx.EXPECT().UpdatePlan(gomock.Any(), plan).Return(nil)
			m.tx.EXPECT().Commit().Return(nil)
			m.tx.EXPECT().Rollback().Return(nil)

			got, err := svc.MakePayment(context.Background(), cotisation.PaymentParams{
				PlanID: plan.ID, UserID: userID, Montant: 2500, PaymentMethod: "cash",
			})
			require.NoError(t, err)

			assert.True(t, got.PlanComplete)
			assert.Equal(t, cotisation.StatutComplete, got.Plan.Statut)
			assert.NotNil(t, got.Plan.DateFin)
			assert.Nil(t, got.Plan.ProchaineEcheance)

			require.Len(t, deliveries, 1)
			assert.Equal(t, delivery.StatutEnAttente, deliveries[0].Statut)
			assert.Equal(t, delivery.DefaultAddress, deliveries[0].AdresseLivraison)
			assert.Equal(t, plan.ProductID, deliveries[0].ProductID)

			types := make([]ledger.TxType, len(entries))
			for i, e := range entries {
				types[i] = e.Type
			}

			assert.Equal(t, tt.wantTypes, types)
			assert.Nil(t, entries[1].Flux)

			if tt.sale {
				assert.Equal(t, ledger.FluxVentePhysique, *entries[2].Flux)
				assert.Equal(t, int64(10000), entries[2].Montant)
			}
		})
	}
}

func TestService_MakePayment_CompletesOnce(t *testing.T) {
	svc, m := newService(t, cotisation.Options{RecordCompletionSale: true})

	userID := uuid.New()
	plan := activePlan(userID, 5000, 0)

	var entries []ledger.Entry

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil).Times(2)
	m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil).Times(2)
	m.tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	recordEntries(m.tx, &entries)
	m.users.EXPECT().Get(gomock.Any(), userID).Return(&user.User{ID: userID, Address: "Cocody, Abidjan"}, nil)
	m.tx.EXPECT().
		CreateDelivery(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *delivery.Delivery) error {
			assert.Equal(t, "Cocody, Abidjan", d.AdresseLivraison)
			return nil
		}).
		Times(1)
	m.tx.EXPECT().UpdatePlan(gomock.Any(), plan).Return(nil).Times(1)
	m.tx.EXPECT().Commit().Return(nil).Times(1)
	m.tx.EXPECT().Rollback().Return(nil).Times(2)

	params := cotisation.PaymentParams{PlanID: plan.ID, UserID: userID, Montant: 5000, PaymentMethod: "cash"}

	first, err := svc.MakePayment(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, first.PlanComplete)

	_, err = svc.MakePayment(context.Background(), params)
	assert.ErrorIs(t, err, cotisation.ErrPlanNotActive)
	assert.Len(t, entries, 3)
}

func TestService_MakePayment_Rejected(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		params    func(plan *cotisation.Plan) cotisation.PaymentParams
		plan      func() *cotisation.Plan
		setupMock func(m mocks, plan *cotisation.Plan)
		wantErr   error
		wantKind  apperr.Kind
	}

	tests := []testCase{
		{
			name: "ZeroMontant",
			params: func(plan *cotisation.Plan) cotisation.PaymentParams {
				return cotisation.PaymentParams{PlanID: plan.ID, UserID: userID, PaymentMethod: "cash"}
			},
			wantErr:  cotisation.ErrInvalidMontant,
			wantKind: apperr.KindInvalid,
		},
		{
			name: "NotOwner",
			params: func(plan *cotisation.Plan) cotisation.PaymentParams {
				return cotisation.PaymentParams{PlanID: plan.ID, UserID: uuid.New(), Montant: 1000, PaymentMethod: "cash"}
			},
			setupMock: func(m mocks, plan *cotisation.Plan) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  cotisation.ErrPlanNotFound,
			wantKind: apperr.KindNotFound,
		},
		{
			name: "MissingPlan",
			params: func(plan *cotisation.Plan) cotisation.PaymentParams {
				return cotisation.PaymentParams{PlanID: plan.ID, UserID: userID, Montant: 1000, PaymentMethod: "cash"}
			},
			setupMock: func(m mocks, plan *cotisation.Plan) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(nil, cotisation.ErrPlanNotFound)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  cotisation.ErrPlanNotFound,
			wantKind: apperr.KindNotFound,
		},
		{
			name: "LiquidatedPlan",
			plan: func() *cotisation.Plan {
				p := activePlan(userID, 10000, 3000)
				p.Statut = cotisation.StatutLiquide

				return p
			},
			params: func(plan *cotisation.Plan) cotisation.PaymentParams {
				return cotisation.PaymentParams{PlanID: plan.ID, UserID: userID, Montant: 1000, PaymentMethod: "cash"}
			},
			setupMock: func(m mocks, plan *cotisation.Plan) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  cotisation.ErrPlanNotActive,
			wantKind: apperr.KindConflict,
		},
		{
			name: "MontantOverflowsTotal",
			plan: func() *cotisation.Plan {
				return activePlan(userID, 10000, 2000)
			},
			params: func(plan *cotisation.Plan) cotisation.PaymentParams {
				return cotisation.PaymentParams{PlanID: plan.ID, UserID: userID, Montant: math.MaxInt64, PaymentMethod: "cash"}
			},
			setupMock: func(m mocks, plan *cotisation.Plan) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  cotisation.ErrInvalidMontant,
			wantKind: apperr.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t, cotisation.Options{})

			plan := activePlan(userID, 10000, 0)
			if tt.plan != nil {
				plan = tt.plan()
			}

			if tt.setupMock != nil {
				tt.setupMock(m, plan)
			}

			got, err := svc.MakePayment(context.Background(), tt.params(plan))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestService_MakePayment_LedgerFailureRollsBack(t *testing.T) {
	svc, m := newService(t, cotisation.Options{})

	userID := uuid.New()
	plan := activePlan(userID, 10000, 0)

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
	m.tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	m.tx.EXPECT().RecordEntry(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
	m.tx.EXPECT().Rollback().Return(nil)

	_, err := svc.MakePayment(context.Background(), cotisation.PaymentParams{
		PlanID: plan.ID, UserID: userID, Montant: 1000, PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestService_RequestLiquidation(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		statut  cotisation.Statut
		wantErr error
	}{
		{name: "Active", statut: cotisation.StatutActif},
		{name: "AlreadyComplete", statut: cotisation.StatutComplete, wantErr: cotisation.ErrPlanNotActive},
		{name: "AlreadyLiquidated", statut: cotisation.StatutLiquide, wantErr: cotisation.ErrPlanNotActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t, cotisation.Options{})

			plan := activePlan(userID, 10000, 4000)
			plan.Statut = tt.statut

			m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
			m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
			m.tx.EXPECT().Rollback().Return(nil)

			if tt.wantErr == nil {
				m.tx.EXPECT().UpdatePlan(gomock.Any(), plan).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
			}

			got, err := svc.RequestLiquidation(context.Background(), plan.ID, userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, cotisation.StatutLiquide, got.Statut)
			assert.Nil(t, got.DateFin)
		})
	}
}

func TestService_ValidateLiquidation(t *testing.T) {
	svc, m := newService(t, cotisation.Options{})

	userID := uuid.New()
	plan := activePlan(userID, 30000, 9000)
	plan.Statut = cotisation.StatutLiquide

	var entries []ledger.Entry

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
	recordEntries(m.tx, &entries)
	m.tx.EXPECT().CreditAvoir(gomock.Any(), userID, int64(6000)).Return(nil)
	m.tx.EXPECT().UpdatePlan(gomock.Any(), plan).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	got, err := svc.ValidateLiquidation(context.Background(), plan.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3000), got.Penalite)
	assert.Equal(t, int64(6000), got.AvoirClient)
	assert.Equal(t, cotisation.StatutLiquide, got.Plan.Statut)
	assert.NotNil(t, got.Plan.DateFin)

	require.Len(t, entries, 2)
	assert.Equal(t, ledger.TxLiquidationPenalite, entries[0].Type)
	assert.Equal(t, ledger.FluxRevenuExceptionnel, *entries[0].Flux)
	assert.Equal(t, int64(3000), entries[0].Montant)
	assert.Equal(t, ledger.TxLiquidationAvoir, entries[1].Type)
	assert.Equal(t, ledger.FluxAvoirClient, *entries[1].Flux)
	assert.Equal(t, int64(6000), entries[1].Montant)
	assert.Equal(t, "LIQ-"+plan.ID.String(), entries[1].Reference)
}

// A plan liquidated before any payment still books both settlement entries.
func TestService_ValidateLiquidation_NothingPaid(t *testing.T) {
	svc, m := newService(t, cotisation.Options{})

	userID := uuid.New()
	plan := activePlan(userID, 30000, 0)
	plan.Statut = cotisation.StatutLiquide

	var entries []ledger.Entry

	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
	recordEntries(m.tx, &entries)
	m.tx.EXPECT().CreditAvoir(gomock.Any(), userID, int64(0)).Return(nil)
	m.tx.EXPECT().UpdatePlan(gomock.Any(), plan).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil)

	got, err := svc.ValidateLiquidation(context.Background(), plan.ID)
	require.NoError(t, err)

	assert.Zero(t, got.Penalite)
	assert.Zero(t, got.AvoirClient)

	require.Len(t, entries, 2)
	assert.Equal(t, ledger.TxLiquidationPenalite, entries[0].Type)
	assert.Zero(t, entries[0].Montant)
	assert.Equal(t, ledger.TxLiquidationAvoir, entries[1].Type)
	assert.Zero(t, entries[1].Montant)
}

func TestService_ValidateLiquidation_Rejected(t *testing.T) {
	settled := time.Now()

	tests := []struct {
		name    string
		statut  cotisation.Statut
		dateFin *time.Time
		wantErr error
	}{
		{name: "NotLiquidated", statut: cotisation.StatutActif, wantErr: cotisation.ErrNotLiquidated},
		{name: "Completed", statut: cotisation.StatutComplete, dateFin: &settled, wantErr: cotisation.ErrNotLiquidated},
		{name: "AlreadySettled", statut: cotisation.StatutLiquide, dateFin: &settled, wantErr: cotisation.ErrAlreadySettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t, cotisation.Options{})

			plan := activePlan(uuid.New(), 30000, 9000)
			plan.Statut = tt.statut
			plan.DateFin = tt.dateFin

			m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
			m.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
			m.tx.EXPECT().Rollback().Return(nil)

			_, err := svc.ValidateLiquidation(context.Background(), plan.ID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		})
	}
}

func TestService_GetPlan_OtherOwner(t *testing.T) {
	svc, m := newService(t, cotisation.Options{})

	plan := activePlan(uuid.New(), 10000, 0)
	m.repo.EXPECT().GetPlan(gomock.Any(), plan.ID).Return(&cotisation.PlanView{Plan: plan}, nil)

	_, err := svc.GetPlan(context.Background(), plan.ID, uuid.New())
	assert.ErrorIs(t, err, cotisation.ErrPlanNotFound)
}

func TestService_Payments(t *testing.T) {
	svc, m := newService(t, cotisation.Options{})

	userID := uuid.New()
	plan := activePlan(userID, 10000, 2000)

	m.repo.EXPECT().GetPlan(gomock.Any(), plan.ID).Return(&cotisation.PlanView{Plan: plan}, nil)
	m.repo.EXPECT().ListPayments(gomock.Any(), plan.ID).Return([]*cotisation.Payment{{ID: uuid.New(), Montant: 2000}}, nil)

	got, err := svc.Payments(context.Background(), plan.ID, userID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Payments_OtherOwner(t *testing.T) {
	svc, m := newService(t, cotisation.Options{})

	plan := activePlan(uuid.New(), 10000, 2000)
	m.repo.EXPECT().GetPlan(gomock.Any(), plan.ID).Return(&cotisation.PlanView{Plan: plan}, nil)

	_, err := svc.Payments(context.Background(), plan.ID, uuid.New())
	assert.ErrorIs(t, err, cotisation.ErrPlanNotFound)
}
