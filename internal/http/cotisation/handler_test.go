package cotisation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	cotisationHandler "github.com/MrJamesThe3rd/mda/internal/http/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/http/middleware"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type testServer struct {
	router http.Handler
	repo   *cotisation.MockRepository
	tx     *cotisation.MockWorkflowTx
	caller *user.User
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := cotisation.NewMockRepository(ctrl)
	svc := cotisation.NewService(repo, cotisation.NewMockProductFinder(ctrl), cotisation.NewMockUserFinder(ctrl), cotisation.Options{})

	caller := &user.User{ID: uuid.New(), Role: user.RoleClient}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), caller)))
		})
	})
	r.Route("/cotisation", cotisationHandler.NewHandler(svc).Routes)

	return testServer{router: r, repo: repo, tx: cotisation.NewMockWorkflowTx(ctrl), caller: caller}
}

func (s testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_MakePayment(t *testing.T) {
	s := newTestServer(t)

	plan := &cotisation.Plan{
		ID:             uuid.New(),
		UserID:         s.caller.ID,
		MontantTotal:   10000,
		MontantCotise:  2000,
		Frequence:      cotisation.FrequenceDaily,
		MontantParMise: 2000,
		Statut:         cotisation.StatutActif,
	}

	s.repo.EXPECT().Begin(gomock.Any()).Return(s.tx, nil)
	s.tx.EXPECT().LockPlan(gomock.Any(), plan.ID).Return(plan, nil)
	s.tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	s.tx.EXPECT().RecordEntry(gomock.Any(), gomock.Any()).Return(&ledger.Transaction{ID: uuid.New()}, nil)
	s.tx.EXPECT().UpdatePlan(gomock.Any(), plan).Return(nil)
	s.tx.EXPECT().Commit().Return(nil)
	s.tx.EXPECT().Rollback().Return(nil)

	rec := s.do(http.MethodPost, "/cotisation/plans/"+plan.ID.String()+"/payments", `{"montant":3000,"paymentMethod":"orange_money"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Success      bool `json:"success"`
		PlanComplete bool `json:"planComplete"`
		Plan         struct {
			MontantCotise int64 `json:"montantCotise"`
			Restant       int64 `json:"restant"`
		} `json:"plan"`
		Payment struct {
			TransactionRef string `json:"transactionRef"`
		} `json:"payment"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.True(t, body.Success)
	assert.False(t, body.PlanComplete)
	assert.Equal(t, int64(5000), body.Plan.MontantCotise)
	assert.Equal(t, int64(5000), body.Plan.Restant)
	assert.True(t, strings.HasPrefix(body.Payment.TransactionRef, "TXN-"))
}

func TestHandler_MakePayment_Rejected(t *testing.T) {
	type testCase struct {
		name     string
		path     func(s testServer) string
		body     string
		setup    func(s testServer, planID uuid.UUID)
		wantCode int
		wantErr  string
	}

	tests := []testCase{
		{
			name:     "ZeroAmount",
			body:     `{"montant":0,"paymentMethod":"cash"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name:     "MissingMethod",
			body:     `{"montant":1000}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name:     "MalformedID",
			path:     func(testServer) string { return "/cotisation/plans/not-a-uuid/payments" },
			body:     `{"montant":1000,"paymentMethod":"cash"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name:     "MontantAboveLimit",
			body:     `{"montant":9223372036854775807,"paymentMethod":"cash"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name:     "MethodTooLong",
			body:     `{"montant":1000,"paymentMethod":"` + strings.Repeat("m", 51) + `"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "BAD_REQUEST",
		},
		{
			name: "OtherUsersPlan",
			body: `{"montant":1000,"paymentMethod":"cash"}`,
			setup: func(s testServer, planID uuid.UUID) {
				s.repo.EXPECT().Begin(gomock.Any()).Return(s.tx, nil)
				s.tx.EXPECT().LockPlan(gomock.Any(), planID).
					Return(&cotisation.Plan{ID: planID, UserID: uuid.New(), Statut: cotisation.StatutActif}, nil)
				s.tx.EXPECT().Rollback().Return(nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name: "PlanNotActive",
			body: `{"montant":1000,"paymentMethod":"cash"}`,
			setup: func(s testServer, planID uuid.UUID) {
				s.repo.EXPECT().Begin(gomock.Any()).Return(s.tx, nil)
				s.tx.EXPECT().LockPlan(gomock.Any(), planID).
					Return(&cotisation.Plan{ID: planID, UserID: s.caller.ID, Statut: cotisation.StatutLiquide}, nil)
				s.tx.EXPECT().Rollback().Return(nil)
			},
			wantCode: http.StatusConflict,
			wantErr:  "CONFLICT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			planID := uuid.New()

			if tt.setup != nil {
				tt.setup(s, planID)
			}

			path := "/cotisation/plans/" + planID.String() + "/payments"
			if tt.path != nil {
				path = tt.path(s)
			}

			rec := s.do(http.MethodPost, path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantErr, body["code"])
		})
	}
}

func TestHandler_Create_MiseTooLow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/cotisation/plans",
		`{"productId":"`+uuid.NewString()+`","frequence":"daily","montantParMise":500}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MyPlans(t *testing.T) {
	s := newTestServer(t)

	s.repo.EXPECT().ListUserPlans(gomock.Any(), s.caller.ID).Return([]*cotisation.PlanView{
		{Plan: &cotisation.Plan{ID: uuid.New(), UserID: s.caller.ID, MontantTotal: 9000}},
	}, nil)

	rec := s.do(http.MethodGet, "/cotisation/plans", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Nil(t, body[0]["product"])
	assert.EqualValues(t, 9000, body[0]["restant"])
}


func TestHandler_Create_MalformedProductID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/cotisation/plans",
		`{"productId":"not-a-uuid","frequence":"daily","montantParMise":1000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
