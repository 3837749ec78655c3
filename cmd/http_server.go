package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/auth"
	"github.com/frahmantamala/finance-app/internal/budget"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/core/database"
	"github.com/frahmantamala/finance-app/internal/dashboard"
	"github.com/frahmantamala/finance-app/internal/expense"
	"github.com/frahmantamala/finance-app/internal/transport"
	"github.com/frahmantamala/finance-app/internal/transport/rest"
	"github.com/frahmantamala/finance-app/internal/transport/swagger"
	"github.com/frahmantamala/finance-app/internal/user"
	"github.com/frahmantamala/finance-app/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *database.DB
	Router   *chi.Mux
	Services *Services
	Logger   *slog.Logger
}

func startHTTPServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	}()

	setupRoutes(deps)

	cfg := deps.Config.Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Logger.Info("starting HTTP server", "address", server.Addr, "driver", deps.DB.Driver)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Logger.Error("server stopped with error", "error", err)
		return err
	}
	deps.Logger.Info("server stopped")
	return nil
}

func setupRoutes(deps *Dependencies) {
	base := transport.NewBaseHandler(deps.Logger)
	svc := deps.Services

	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Health:    rest.NewHealthHandler(base, deps.DB, deps.DB.Driver),
		Auth:      auth.NewHandler(base, svc.Auth),
		RBAC:      auth.NewRBACAuthorization(base),
		User:      user.NewHandler(base, svc.User),
		Category:  category.NewHandler(base, svc.Category),
		Expense:   expense.NewHandler(base, svc.Expense),
		Budget:    budget.NewHandler(base, svc.Budget),
		Dashboard: dashboard.NewHandler(base, svc.Dashboard),
	}, deps.Config.Server.AllowedOrigins, deps.Logger)
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	if _, err := swagger.Load(ctx); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Dependencies{
		Config:   cfg,
		DB:       db,
		Router:   chi.NewRouter(),
		Services: newServices(cfg, db, lg),
		Logger:   lg,
	}, nil
}
