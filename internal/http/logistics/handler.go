package logistics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/mda/internal/delivery"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
)

type Handler struct {
	svc *delivery.Service
}

func NewHandler(svc *delivery.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/deliveries", h.all)
	r.Get("/deliveries/pending", h.pending)
	r.Post("/deliveries/{id}/validate", h.validate)
	r.Post("/deliveries/{id}/complete", h.complete)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Pending(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toViewList(views))
}

func (h *Handler) all(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.All(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toViewList(views))
}

type validateRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req validateRequest
	if r.ContentLength != 0 {
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	d, err := h.svc.Validate(r.Context(), id, req.Notes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDelivery(d))
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Complete(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDelivery(d))
}
