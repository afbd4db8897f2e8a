package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"pressroom/internal/common/pagination"
	"pressroom/internal/config"
	"pressroom/internal/infra/adapter/persistence/memory"
	pgRepo "pressroom/internal/infra/adapter/persistence/postgres"
	sqliteRepo "pressroom/internal/infra/adapter/persistence/sqlite"
	"pressroom/internal/infra/db"
	"pressroom/internal/infra/mailer"
	"pressroom/internal/observability/logging"
	"pressroom/internal/observability/tracing"
	"pressroom/internal/repository"
	"pressroom/pkg/ratelimit"

	artUC "pressroom/internal/usecase/article"

	hhttp "pressroom/internal/handler/http"
	harticle "pressroom/internal/handler/http/article"
	hauth "pressroom/internal/handler/http/auth"
	"pressroom/internal/handler/http/requestid"
	authservice "pressroom/internal/service/auth"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	rejectWeakSecret(logger, cfg.JWTSecret)

	version := config.GetVersion()

	shutdownTracing, err := tracing.Init("pressroom", version)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}

	repo, database := initStore(logger, cfg)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	components := setupServer(logger, cfg, repo, database, version)
	runServer(logger, cfg, components, version)

	if err := shutdownTracing(context.Background()); err != nil {
		logger.Error("failed to shut down tracing", slog.Any("error", err))
	}
}

// rejectWeakSecret refuses well-known placeholder secrets even when they
// satisfy the length requirement.
func rejectWeakSecret(logger *slog.Logger, secret string) {
	weak := []string{"secret", "password", "test", "admin", "default"}
	for _, w := range weak {
		if secret == w || secret == w+"123" {
			logger.Error("JWT_SECRET must not be a common weak value")
			os.Exit(1)
		}
	}
}

// initStore builds the article repository selected by configuration.
// The returned *sql.DB is nil for the in-memory store.
func initStore(logger *slog.Logger, cfg config.Config) (repository.ArticleRepository, *sql.DB) {
	switch cfg.Store {
	case config.StoreMemory:
		logger.Info("using in-memory article store")
		return memory.NewArticleRepo(), nil

	case config.StorePostgres:
		database, err := db.Open(db.DriverPostgres, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", slog.Any("error", err))
			os.Exit(1)
		}
		if err := db.MigrateUp(database, db.DriverPostgres); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using postgres article store")
		return pgRepo.NewArticleRepo(database), database

	case config.StoreSQLite:
		database, err := db.Open(db.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			logger.Error("failed to open database", slog.Any("error", err))
			os.Exit(1)
		}
		if err := db.MigrateUp(database, db.DriverSQLite); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using sqlite article store", slog.String("path", cfg.SQLitePath))
		return sqliteRepo.NewArticleRepo(database), database
	}

	// config.Load already validated the store name.
	logger.Error("unknown article store", slog.String("store", cfg.Store))
	os.Exit(1)
	return nil, nil
}

// serverComponents holds everything the running server needs, including
// the stores the janitor sweeps.
type serverComponents struct {
	Handler  http.Handler
	Codes    *authservice.CodeStore
	Sessions *authservice.SessionStore
	Limiter  *ratelimit.Limiter
}

func newMailer(logger *slog.Logger, cfg config.Config) mailer.Mailer {
	if cfg.MailWebhookURL != "" {
		logger.Info("login codes delivered via webhook")
		return mailer.NewWebhookMailer(cfg.MailWebhookURL)
	}
	logger.Warn("no mail webhook configured, login codes are logged")
	return mailer.NewLogMailer(logger)
}

// setupServer wires repositories, services, routes, and middleware.
func setupServer(logger *slog.Logger, cfg config.Config, repo repository.ArticleRepository, database *sql.DB, version string) *serverComponents {
	artSvc := &artUC.Service{Repo: repo}

	codes := authservice.NewCodeStore(cfg.LoginCodeTTL, nil)
	sessions := authservice.NewSessionStore(cfg.SessionTTL, nil)
	authSvc := authservice.NewService(codes, sessions, newMailer(logger, cfg), []byte(cfg.JWTSecret), cfg.TokenTTL, nil)

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), cfg.AuthRateLimit, cfg.AuthRateWindow, nil)

	publicMux := http.NewServeMux()
	(&hauth.Handler{
		Service: authSvc,
		Limiter: limiter,
		Logger:  logger,
		Secure:  cfg.SecureCookies,
	}).Register(publicMux)
	publicMux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	publicMux.Handle("/live", &hhttp.LiveHandler{})
	publicMux.Handle("/metrics", hhttp.MetricsHandler())

	privateMux := http.NewServeMux()
	paginationCfg := pagination.Config{MaxLimit: cfg.PaginationMaxLimit}
	harticle.Register(privateMux, artSvc, paginationCfg, logger)

	clientFactory := hauth.NewClientFactory([]byte(cfg.JWTSecret), sessions)
	protected := hauth.WithClient(clientFactory)(privateMux)

	rootMux := http.NewServeMux()
	rootMux.Handle("/auth/", publicMux)
	rootMux.Handle("/health", publicMux)
	rootMux.Handle("/live", publicMux)
	rootMux.Handle("/metrics", publicMux)
	rootMux.Handle("/", protected)

	return &serverComponents{
		Handler:  applyMiddleware(logger, rootMux),
		Codes:    codes,
		Sessions: sessions,
		Limiter:  limiter,
	}
}

// applyMiddleware builds the outer chain, innermost first:
// request ID -> recovery -> logging -> tracing -> metrics -> security
// headers -> body limit -> routes.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.SecurityHeaders()(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// startJanitor schedules periodic sweeps of expired sessions, login
// codes, and rate limit state.
func startJanitor(logger *slog.Logger, components *serverComponents) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@every 5m", func() {
		sessions := components.Sessions.Purge()
		codes := components.Codes.Purge()
		keys, err := components.Limiter.Purge(context.Background())
		if err != nil {
			logger.Warn("rate limit purge failed", slog.Any("error", err))
		}
		logger.Debug("janitor sweep complete",
			slog.Int("sessions_purged", sessions),
			slog.Int("codes_purged", codes),
			slog.Int("limiter_keys_purged", keys),
		)
	})
	if err != nil {
		logger.Error("failed to schedule janitor", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	return c
}

// runServer starts the HTTP server and blocks until shutdown completes.
func runServer(logger *slog.Logger, cfg config.Config, components *serverComponents, version string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	janitor := startJanitor(logger, components)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("store", cfg.Store),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		janitorCtx := janitor.Stop()
		<-janitorCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
