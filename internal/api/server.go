package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mailboard/mailboard/internal/auth"
	"github.com/mailboard/mailboard/internal/campaign"
	"github.com/mailboard/mailboard/internal/compliance"
	"github.com/mailboard/mailboard/internal/config"
	"github.com/mailboard/mailboard/internal/dashboard"
	"github.com/mailboard/mailboard/internal/db"
	"github.com/mailboard/mailboard/internal/metrics"
)

// Server is the HTTP API server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        *config.Config
	db         *db.DB
	logger     *slog.Logger
	metrics    *metrics.Metrics
	verifier   auth.Verifier
}

// NewServer creates an API server wired to the given database
func NewServer(cfg *config.Config, database *db.DB, logger *slog.Logger) (*Server, error) {
	provider, err := complianceProvider(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		db:       database,
		logger:   logger,
		metrics:  metrics.New(),
		verifier: auth.NewTokenVerifier(database.DB, logger),
	}

	h := &Handlers{
		db:         database,
		logger:     logger,
		metrics:    s.metrics,
		campaigns:  campaign.NewManager(database.DB, logger),
		aggregator: dashboard.NewAggregator(database.DB, provider, cfg.Dashboard.RecentCampaigns, logger),
	}
	h.initRepositories()

	s.setupRoutes(h)
	return s, nil
}

func complianceProvider(cfg *config.Config) (compliance.Provider, error) {
	if cfg.Dashboard.Compliance.Mode == config.ComplianceDNS {
		return compliance.NewDNSProvider(cfg.Dashboard.Compliance.Domain, cfg.Dashboard.Compliance.DKIMSelector)
	}
	return &compliance.StaticProvider{}, nil
}

func (s *Server) setupRoutes(h *Handlers) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(middleware.Recoverer)

	// Unauthenticated endpoints
	s.router.Get("/health", h.Health)
	s.router.Handle("/metrics", s.metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/auth/me", h.AuthMe)

		r.Route("/subscribers", func(r chi.Router) {
			r.Get("/", h.SubscriberList)
			r.Post("/", h.SubscriberCreate)
			r.Get("/{id}", h.SubscriberGet)
			r.Patch("/{id}", h.SubscriberUpdate)
			r.Delete("/{id}", h.SubscriberDelete)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.TemplateList)
			r.Post("/", h.TemplateCreate)
			r.Get("/{id}", h.TemplateGet)
			r.Patch("/{id}", h.TemplateUpdate)
			r.Delete("/{id}", h.TemplateDelete)
			r.Post("/{id}/duplicate", h.TemplateDuplicate)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.CampaignList)
			r.Post("/", h.CampaignCreate)
			r.Get("/{id}", h.CampaignGet)
			r.Patch("/{id}", h.CampaignUpdate)
			r.Delete("/{id}", h.CampaignDelete)
			r.Post("/{id}/send", h.CampaignSend)
			r.Get("/{id}/analytics", h.CampaignAnalytics)
		})

		r.Get("/dashboard", h.Dashboard)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.SettingsGetAll)
			r.Get("/{key}", h.SettingGet)
			r.Put("/{key}", h.SettingPut)
			r.Delete("/{key}", h.SettingDelete)
		})
	})
}

// Router returns the underlying handler, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", s.cfg.Server.ListenAddr)
		if s.cfg.Server.TLS.Enabled {
			errCh <- s.httpServer.ListenAndServeTLS(s.cfg.Server.TLS.CertFile, s.cfg.Server.TLS.KeyFile)
		} else {
			errCh <- s.httpServer.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown error", "error", err)
		}
		s.db.Close()
		return nil
	}
}
