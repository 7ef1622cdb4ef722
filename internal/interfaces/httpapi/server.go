package httpapi

import (
	"net/http"

	"github.com/riskibarqy/live-dattacks/internal/platform/logging"
)

const streamPath = "/v1/live/stream"

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/live/fixtures", handler.GetLiveFixtures)
	mux.HandleFunc("GET /v1/live/fixtures/{fixtureID}", handler.GetLiveFixture)
	mux.HandleFunc("GET "+streamPath, handler.StreamLive)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}
