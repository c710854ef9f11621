package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/mda/internal/auth"
	"github.com/MrJamesThe3rd/mda/internal/http/middleware"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type Handler struct {
	users    *user.Service
	tokens   *auth.TokenIssuer
	sessions *auth.SessionStore
	revoker  auth.Revoker
}

// NewHandler builds the auth handler. revoker may be nil.
func NewHandler(users *user.Service, tokens *auth.TokenIssuer, sessions *auth.SessionStore, revoker auth.Revoker) *Handler {
	return &Handler{users: users, tokens: tokens, sessions: sessions, revoker: revoker}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	if u == nil {
		respond.JSON(w, http.StatusOK, nil)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(u))
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.signIn(w, r, u, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.signIn(w, r, u, http.StatusOK)
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u *user.User, status int) {
	token, _, err := h.tokens.Issue(u.ID, u.Email)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.sessions.Save(w, r, u.ID); err != nil {
		slog.Warn("failed to save session", "user_id", u.ID, "error", err)
	}

	respond.JSON(w, status, sessionResponse{Token: token, User: toUserResponse(u)})
}

type logoutResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if claims := middleware.ClaimsFrom(r.Context()); claims != nil && h.revoker != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.revoker.Revoke(r.Context(), claims.ID, ttl); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	if err := h.sessions.Clear(w, r); err != nil {
		slog.Warn("failed to clear session", "error", err)
	}

	respond.JSON(w, http.StatusOK, logoutResponse{Success: true})
}
