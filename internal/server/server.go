package server

import (
	"context"
	"log/slog"
	"net/http"

	appdrill "github.com/preston-bernstein/sebango-service/internal/app/drill"
	applineup "github.com/preston-bernstein/sebango-service/internal/app/lineup"
	appplayers "github.com/preston-bernstein/sebango-service/internal/app/players"
	"github.com/preston-bernstein/sebango-service/internal/config"
	"github.com/preston-bernstein/sebango-service/internal/drill"
	httpserver "github.com/preston-bernstein/sebango-service/internal/http"
	"github.com/preston-bernstein/sebango-service/internal/http/handlers"
	"github.com/preston-bernstein/sebango-service/internal/logging"
	"github.com/preston-bernstein/sebango-service/internal/metrics"
	"github.com/preston-bernstein/sebango-service/internal/poller"
	"github.com/preston-bernstein/sebango-service/internal/roster"
	"github.com/preston-bernstein/sebango-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns the HTTP listener, the optional metrics listener and the roster poller.
type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	store          *store.MemoryStore
	playersService *appplayers.Service
	drillService   *appdrill.Service
	lineupService  *applineup.Service
	httpServer     httpServer
	metricsServer  httpServer
	poller         Poller
	metricsStop    func(context.Context) error
}

// New constructs a server reading rosters from the configured source.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithSource(cfg, logger, nil, nil)
}

// newServerWithSource wires every component; a nil source is chosen from cfg and a nil
// recorder is built from cfg.Metrics.
func newServerWithSource(cfg config.Config, logger *slog.Logger, source roster.Source, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if source == nil {
		source = selectSource(cfg, logger)
	}

	memoryStore := store.NewMemoryStore(cfg.Roster.CacheYears)
	playerSvc := appplayers.NewService(memoryStore, source, logger, recorder)
	generator := drill.NewGenerator(nil, drill.WithMaxAttempts(cfg.Drill.MaxAttempts))
	drillSvc := appdrill.NewService(playerSvc, generator, logger, recorder)
	lineupSvc := applineup.NewService(playerSvc, logger, recorder)

	plr := poller.New(playerSvc, cfg.Roster.DefaultYear, logger, recorder, cfg.Roster.RefreshInterval)
	router := buildRouter(cfg, playerSvc, drillSvc, lineupSvc, logger, recorder, plr)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		store:          memoryStore,
		playersService: playerSvc,
		drillService:   drillSvc,
		lineupService:  lineupSvc,
		httpServer:     netHTTPServer{srv: srv},
		metricsServer:  metricsSrv,
		poller:         plr,
		metricsStop:    metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildRouter(cfg config.Config, playerSvc *appplayers.Service, drillSvc *appdrill.Service, lineupSvc *applineup.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) http.Handler {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	handler := handlers.NewHandler(playerSvc, drillSvc, lineupSvc, logger, statusFn)

	// admin routes stay unmounted without a token
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(playerSvc, cfg.AdminToken, logger)
	}
	return httpserver.NewRouter(handler, admin, logger, recorder)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}
	if !cfg.Metrics.Enabled {
		return metrics.NewRecorder(), nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
