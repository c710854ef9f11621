package cotisation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/http/middleware"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
)

type Handler struct {
	svc *cotisation.Service
}

func NewHandler(svc *cotisation.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects to be mounted behind middleware.Require, so every handler can
// rely on an authenticated user.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/plans", h.myPlans)
	r.Post("/plans", h.create)
	r.Get("/plans/{id}", h.getPlan)
	r.Get("/plans/{id}/payments", h.payments)
	r.Post("/plans/{id}/payments", h.makePayment)
	r.Post("/plans/{id}/liquidation", h.requestLiquidation)
}

func (h *Handler) myPlans(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	plans, err := h.svc.MyPlans(r.Context(), u.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPlanViewList(plans))
}

func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	v, err := h.svc.GetPlan(r.Context(), id, middleware.UserFrom(r.Context()).ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPlanView(v))
}

type createPlanRequest struct {
	ProductID      string `json:"productId" validate:"required,uuid"`
	Frequence      string `json:"frequence" validate:"required,oneof=daily weekly monthly"`
	MontantParMise int64  `json:"montantParMise" validate:"required,gte=600"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respond.Error(w, r, apperr.Invalidf("invalid productId"))
		return
	}

	v, err := h.svc.Create(r.Context(), cotisation.CreateParams{
		UserID:         middleware.UserFrom(r.Context()).ID,
		ProductID:      productID,
		Frequence:      cotisation.Frequence(req.Frequence),
		MontantParMise: req.MontantParMise,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPlanView(v))
}

func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	payments, err := h.svc.Payments(r.Context(), id, middleware.UserFrom(r.Context()).ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPaymentList(payments))
}

type makePaymentRequest struct {
	Montant       int64  `json:"montant" validate:"required,gt=0,max=1000000000000"`
	PaymentMethod string `json:"paymentMethod" validate:"required,max=50"`
}

type paymentResultResponse struct {
	Success      bool            `json:"success"`
	PlanComplete bool            `json:"planComplete"`
	Payment      paymentResponse `json:"payment"`
	Plan         planResponse    `json:"plan"`
}

func (h *Handler) makePayment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req makePaymentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.svc.MakePayment(r.Context(), cotisation.PaymentParams{
		PlanID:        id,
		UserID:        middleware.UserFrom(r.Context()).ID,
		Montant:       req.Montant,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, paymentResultResponse{
		Success:      true,
		PlanComplete: res.PlanComplete,
		Payment:      toPayment(res.Payment),
		Plan:         toPlan(res.Plan),
	})
}

func (h *Handler) requestLiquidation(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	plan, err := h.svc.RequestLiquidation(r.Context(), id, middleware.UserFrom(r.Context()).ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPlan(plan))
}
