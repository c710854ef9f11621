package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrJamesThe3rd/mda/internal/auth"
	"github.com/MrJamesThe3rd/mda/internal/config"
	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	planStore "github.com/MrJamesThe3rd/mda/internal/cotisation/store"
	"github.com/MrJamesThe3rd/mda/internal/database"
	"github.com/MrJamesThe3rd/mda/internal/delivery"
	deliveryStore "github.com/MrJamesThe3rd/mda/internal/delivery/store"
	mdaHttp "github.com/MrJamesThe3rd/mda/internal/http"
	adminHandler "github.com/MrJamesThe3rd/mda/internal/http/admin"
	authHandler "github.com/MrJamesThe3rd/mda/internal/http/auth"
	planHandler "github.com/MrJamesThe3rd/mda/internal/http/cotisation"
	financeHandler "github.com/MrJamesThe3rd/mda/internal/http/finance"
	logisticsHandler "github.com/MrJamesThe3rd/mda/internal/http/logistics"
	"github.com/MrJamesThe3rd/mda/internal/http/middleware"
	productHandler "github.com/MrJamesThe3rd/mda/internal/http/product"
	profileHandler "github.com/MrJamesThe3rd/mda/internal/http/profile"
	"github.com/MrJamesThe3rd/mda/internal/importer"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/mda/internal/ledger/store"
	"github.com/MrJamesThe3rd/mda/internal/logging"
	"github.com/MrJamesThe3rd/mda/internal/product"
	productStore "github.com/MrJamesThe3rd/mda/internal/product/store"
	"github.com/MrJamesThe3rd/mda/internal/user"
	userStore "github.com/MrJamesThe3rd/mda/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var revoker auth.Revoker

	if cfg.Redis.Addr != "" {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		revoker = auth.NewRedisRevoker(client)
	} else {
		slog.Warn("REDIS_ADDR not set, bearer tokens stay valid until expiry after logout")
	}

	var (
		tokens   = auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		sessions = auth.NewSessionStore(cfg.Auth.SessionSecret, cfg.Auth.CookieSecure, int(cfg.Auth.TokenTTL.Seconds()))
	)

	var (
		userService     = user.NewService(userStore.New(db), auth.NewBcrypt(0))
		productService  = product.NewService(productStore.New(db))
		deliveryService = delivery.NewService(deliveryStore.New(db))
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		importService   = importer.NewService()
		planService     = cotisation.NewService(planStore.New(db), productService, userService, cotisation.Options{
			RecordCompletionSale: cfg.Ledger.RecordCompletionSale,
		})
	)

	router := mdaHttp.New(
		middleware.NewAuthenticator(tokens, sessions, userService, revoker),
		cfg.CORS.AllowedOrigins,
		mdaHttp.Handlers{
			Auth:       authHandler.NewHandler(userService, tokens, sessions, revoker),
			Products:   productHandler.NewHandler(productService, importService),
			Cotisation: planHandler.NewHandler(planService),
			Finance:    financeHandler.NewHandler(planService, ledgerService),
			Logistics:  logisticsHandler.NewHandler(deliveryService),
			Admin:      adminHandler.NewHandler(userService, ledgerService),
			Profile:    profileHandler.NewHandler(ledgerService),
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "port", srv.Addr, "env", cfg.App.Env)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
