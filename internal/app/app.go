package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/live-dattacks/external/sportmonks"
	"github.com/riskibarqy/live-dattacks/internal/config"
	"github.com/riskibarqy/live-dattacks/internal/domain/livescore"
	"github.com/riskibarqy/live-dattacks/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/live-dattacks/internal/platform/id"
	"github.com/riskibarqy/live-dattacks/internal/platform/logging"
	"github.com/riskibarqy/live-dattacks/internal/platform/resilience"
	"github.com/riskibarqy/live-dattacks/internal/usecase"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultShutdownTimeout = 10 * time.Second

// App wires the live poller to the HTTP surface.
type App struct {
	server          *http.Server
	poller          *usecase.LivePoller
	logger          *logging.Logger
	shutdownTimeout time.Duration
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	feed := sportmonks.NewClient(sportmonks.ClientConfig{
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		BaseURL:    cfg.SportMonksBaseURL,
		Token:      cfg.SportMonksToken,
		MaxRetries: cfg.SportMonksMaxRetries,
		Include:    cfg.SportMonksLiveInclude,
		Filters:    cfg.SportMonksLiveFilters,
		Timezone:   cfg.SportMonksTimezone,
		Populate:   cfg.SportMonksPopulate,
		Logger:     logger.Named("sportmonks"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SportMonksCircuitEnabled,
			FailureThreshold: cfg.SportMonksCircuitFailureCount,
			OpenTimeout:      cfg.SportMonksCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SportMonksCircuitHalfOpenMaxReq,
		},
	})

	poller := usecase.NewLivePoller(feed, livescore.NewDeriver(idgen.NewRandomGenerator()), usecase.LivePollerConfig{
		Interval: cfg.LivePollInterval,
		Workers:  cfg.LivePollWorkers,
		Logger:   logger.Named("poller"),
	})

	handler := httpapi.NewHandler(poller, logger.Named("httpapi"), cfg.CORSAllowedOrigins)
	router := httpapi.NewRouter(handler, logger.Named("httpapi"), cfg.CORSAllowedOrigins)

	return &App{
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		poller:          poller,
		logger:          logger,
		shutdownTimeout: defaultShutdownTimeout,
	}, nil
}

// Handler returns the HTTP router.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and polls until ctx is cancelled or either side fails.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(a.poller.Run)
	p.Go(a.serve)
	return p.Wait()
}

func (a *App) serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return crerr.Wrap(err, "http server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return crerr.Wrap(err, "graceful shutdown")
	}
	a.logger.Info("http server stopped")
	return nil
}
