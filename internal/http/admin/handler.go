package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/mda/internal/http/respond"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type Handler struct {
	users  *user.Service
	ledger *ledger.Service
}

func NewHandler(users *user.Service, ledger *ledger.Service) *Handler {
	return &Handler{users: users, ledger: ledger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/users", h.allUsers)
	r.Patch("/users/{id}/role", h.updateRole)
	r.Get("/coffre-fort", h.coffreFort)
}

func (h *Handler) allUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserList(users))
}

type updateRoleResponse struct {
	Success bool `json:"success"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateRoleRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.users.UpdateRole(r.Context(), id, user.Role(req.Role)); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, updateRoleResponse{Success: true})
}

func (h *Handler) coffreFort(w http.ResponseWriter, r *http.Request) {
	vault, err := h.ledger.Vault(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toVault(vault))
}
