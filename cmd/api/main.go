package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mkaul/splitr/docs"
	"github.com/mkaul/splitr/internal/config"
	"github.com/mkaul/splitr/internal/database"
	"github.com/mkaul/splitr/internal/expense"
	expensesplit "github.com/mkaul/splitr/internal/expense/split"
	"github.com/mkaul/splitr/internal/group"
	"github.com/mkaul/splitr/internal/invitation"
	"github.com/mkaul/splitr/internal/user"
	"github.com/mkaul/splitr/internal/webhook"
	"github.com/mkaul/splitr/pkg/logging"
	mw "github.com/mkaul/splitr/pkg/middleware"
)

// @title        splitr API
// @version      1.0
// @description  Group expense splitting with exact-sum allocations.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Initialize database connection and schema
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to database")

	// Split Strategy Factory
	splitFactory := expensesplit.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Invitation feature
	invitationRepo := invitation.NewRepository(db)
	invitationService := invitation.NewService(invitationRepo, userService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory)
	expenseHandler := expense.NewHandler(expenseService)

	// Group feature (settlement-gated deletion needs the expense ledger)
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, expenseRepo, invitationService, userService)
	groupHandler := group.NewHandler(groupService)

	// Identity webhook
	webhookHandler := webhook.NewHandler(cfg.WebhookSecret, userService, invitationService)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Webhooks authenticate by signature, not by bearer token
		r.Mount("/webhooks", webhookHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(cfg.JWTSecret))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
