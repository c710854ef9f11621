package profile

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/http/middleware"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
)

type Handler struct {
	ledger *ledger.Service
}

func NewHandler(ledger *ledger.Service) *Handler {
	return &Handler{ledger: ledger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/avoir", h.avoir)
	r.Get("/transactions", h.transactions)
}

type avoirResponse struct {
	Balance int64 `json:"balance"`
}

// avoir reads the balance off the request user, which the authenticator loads
// fresh on every request.
func (h *Handler) avoir(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	respond.JSON(w, http.StatusOK, avoirResponse{Balance: u.AvoirBalance})
}

type transactionResponse struct {
	ID          uuid.UUID     `json:"id"`
	Montant     int64         `json:"montant"`
	Type        ledger.TxType `json:"type"`
	Reference   string        `json:"reference"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.ledger.UserTransactions(r.Context(), middleware.UserFrom(r.Context()).ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = transactionResponse{
			ID:          tx.ID,
			Montant:     tx.Montant,
			Type:        tx.Type,
			Reference:   tx.Reference,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
