package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"icc-dashboard/internal/audit"
	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/cache"
	"icc-dashboard/internal/composition"
	"icc-dashboard/internal/config"
	"icc-dashboard/internal/database"
	"icc-dashboard/internal/db"
	"icc-dashboard/internal/handlers"
	"icc-dashboard/internal/health"
	h "icc-dashboard/internal/http"
	"icc-dashboard/internal/logging"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/repositories"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/session"
	"icc-dashboard/internal/storage"
	"icc-dashboard/migrations"
	"icc-dashboard/static"
	"icc-dashboard/templates"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessions: Redis when reachable, process memory otherwise
	var store session.Store
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.WithError(err).Warn("redis unavailable, sessions will not survive a restart")
		store = session.NewMemoryStore(cfg.SessionTTL())
	} else {
		log.WithField("addr", cfg.Redis.Addr).Info("connected to redis")
		store = session.NewRedisStore(cache.GetClient(), cfg.SessionTTL())
	}
	defer cache.Close()
	sessions := session.NewManager(store, session.NewBroker())

	// Audit database is optional
	var (
		pool     *pgxpool.Pool
		recorder *audit.Recorder
	)
	if cfg.Database.Enabled {
		pool, err = db.Connect(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("audit database unavailable, audit log disabled")
		} else {
			defer pool.Close()
			if err := database.NewMigrator(pool, migrations.FS, log).RunMigrations(ctx); err != nil {
				log.WithError(err).Fatal("failed to run migrations")
			}
			recorder = audit.NewRecorder(
				repositories.NewLoginLogRepository(pool),
				repositories.NewAdminActionLogRepository(pool),
				log,
			)
			defer recorder.Close()
		}
	}

	// Backend client; a 401 on an authenticated call signs the session out
	client := backend.NewClient(cfg.Backend.BaseURL, backend.Options{
		Timeout:         cfg.BackendTimeout(),
		BreakerFailures: cfg.Backend.BreakerFailures,
		BreakerCooldown: time.Duration(cfg.Backend.BreakerCooldownS) * time.Second,
		Logger:          log,
		OnUnauthorized:  handlers.ForceLogout(sessions, recorder, log),
	})

	// Report archive is optional
	var archiver services.ReportArchiver
	archive, err := storage.NewReportArchive(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Warn("report archive unavailable")
	} else if archive != nil {
		archiver = archive
	}

	// Health probes
	checker := health.NewHealthChecker(health.Probe{
		Name:     "backend",
		Critical: true,
		Check:    func(ctx context.Context) error { return client.Ping(ctx, "/") },
	})
	if cache.GetClient() != nil {
		checker.Add(health.Probe{Name: "redis", Check: func(ctx context.Context) error {
			if !cache.IsHealthy(ctx) {
				return errors.New("redis ping failed")
			}
			return nil
		}})
	}
	if pool != nil {
		checker.Add(health.Probe{Name: "database", Check: pool.Ping})
	}
	if archive != nil {
		checker.Add(health.Probe{Name: "storage", Check: archive.Ping})
	}

	pageHandler, err := handlers.NewPageHandler(templates.FS, composition.NewResolver(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to parse templates")
	}

	authMiddleware := middleware.NewAuthMiddleware(auth.NewJWTManager(cfg), sessions, cfg.Session.CookieName, cfg.Session.Secure, log)

	router := h.NewRouter(h.Handlers{
		Auth:      handlers.NewAuthHandler(services.NewAuthService(client), sessions, authMiddleware, recorder, log),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(client), log),
		Booking:   handlers.NewBookingHandler(services.NewBookingService(client), recorder, log),
		Cleaner:   handlers.NewCleanerHandler(services.NewCleanerService(client), recorder, log),
		Client:    handlers.NewClientHandler(services.NewClientService(client), recorder, log),
		Catalog:   handlers.NewCatalogHandler(services.NewCatalogService(client), recorder, log),
		Payout:    handlers.NewPayoutHandler(services.NewPayoutService(client), recorder, log),
		Dispute:   handlers.NewDisputeHandler(services.NewDisputeService(client), recorder, log),
		Report:    handlers.NewReportHandler(services.NewReportService(client, archiver, log), recorder, log),
		Audit:     handlers.NewAuditHandler(recorder, log),
		Settings:  handlers.NewSettingsHandler(services.NewProfileService(client), sessions, log),
		Billing:   handlers.NewBillingHandler(services.NewBillingService(client), log),
		Live:      handlers.NewLiveHandler(sessions.Broker(), sameOrigin(cfg), log),
		Page:      pageHandler,
		Health:    handlers.NewHealthHandler(checker),
	}, authMiddleware, static.FS, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           middleware.NewCORS(cfg)(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"backend": client.BaseURL(),
		}).Info("dashboard server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// sameOrigin accepts websocket upgrades from this host and from the
// configured CORS origins.
func sameOrigin(cfg *config.Config) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(cfg.Server.CorsAllowedOrigins))
	for _, o := range cfg.Server.CorsAllowedOrigins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host || allowed[origin]
	}
}
