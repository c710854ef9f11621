package finance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
)

type Handler struct {
	plans  *cotisation.Service
	ledger *ledger.Service
}

func NewHandler(plans *cotisation.Service, ledger *ledger.Service) *Handler {
	return &Handler{plans: plans, ledger: ledger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/liquidations", h.pendingLiquidations)
	r.Post("/liquidations/{planId}/validate", h.validateLiquidation)
	r.Get("/revenue", h.revenue)
}

func (h *Handler) pendingLiquidations(w http.ResponseWriter, r *http.Request) {
	pending, err := h.plans.PendingLiquidations(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toLiquidationList(pending))
}

type settlementResponse struct {
	Success     bool  `json:"success"`
	Penalite    int64 `json:"penalite"`
	AvoirClient int64 `json:"avoirClient"`
}

func (h *Handler) validateLiquidation(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "planId")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.plans.ValidateLiquidation(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, settlementResponse{
		Success:     true,
		Penalite:    res.Penalite,
		AvoirClient: res.AvoirClient,
	})
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.RevenueReport(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, report)
}
