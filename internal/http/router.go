package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/mda/internal/http/admin"
	"github.com/MrJamesThe3rd/mda/internal/http/auth"
	"github.com/MrJamesThe3rd/mda/internal/http/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/http/finance"
	"github.com/MrJamesThe3rd/mda/internal/http/logistics"
	"github.com/MrJamesThe3rd/mda/internal/http/middleware"
	"github.com/MrJamesThe3rd/mda/internal/http/product"
	"github.com/MrJamesThe3rd/mda/internal/http/profile"
)

type Handlers struct {
	Auth       *auth.Handler
	Products   *product.Handler
	Cotisation *cotisation.Handler
	Finance    *finance.Handler
	Logistics  *logistics.Handler
	Admin      *admin.Handler
	Profile    *profile.Handler
}

func New(authenticator *middleware.Authenticator, allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(authenticator.Middleware)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Auth.Routes)
		r.Route("/products", h.Products.Routes)

		r.Route("/cotisation", func(r chi.Router) {
			r.Use(middleware.Require(middleware.TierClient))
			h.Cotisation.Routes(r)
		})

		r.Route("/finance", func(r chi.Router) {
			r.Use(middleware.Require(middleware.TierFinance))
			h.Finance.Routes(r)
		})

		r.Route("/logistics", func(r chi.Router) {
			r.Use(middleware.Require(middleware.TierLogistique))
			h.Logistics.Routes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Require(middleware.TierAdmin))
			h.Admin.Routes(r)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(middleware.Require(middleware.TierClient))
			h.Profile.Routes(r)
		})
	})

	return router
}
