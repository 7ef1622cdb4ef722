package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/live-dattacks/internal/domain/livescore"
	"github.com/riskibarqy/live-dattacks/internal/platform/logging"
	"github.com/riskibarqy/live-dattacks/internal/usecase"
)

// LiveStateSource exposes the poller's published state.
type LiveStateSource interface {
	Snapshot() livescore.LiveState
	Subscribe() (<-chan livescore.LiveState, func())
}

type Handler struct {
	live      LiveStateSource
	logger    *logging.Logger
	validator *validator.Validate
	upgrader  websocket.Upgrader
}

func NewHandler(live LiveStateSource, logger *logging.Logger, allowedOrigins []string) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		live:      live,
		logger:    logger,
		validator: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetLiveFixtures(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.GetLiveFixtures")
	defer span.End()

	writeSuccess(w, http.StatusOK, toLiveStateDTO(h.live.Snapshot()))
}

func (h *Handler) GetLiveFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveFixture")
	defer span.End()

	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	if err := h.validator.VarCtx(ctx, fixtureID, "required,max=128"); err != nil {
		writeError(w, fmt.Errorf("%w: invalid fixture id", usecase.ErrInvalidInput))
		return
	}

	for _, fixture := range h.live.Snapshot().Fixtures {
		if fixture.ID == fixtureID {
			writeSuccess(w, http.StatusOK, toLiveFixtureDTO(fixture))
			return
		}
	}
	writeError(w, fmt.Errorf("%w: fixture %s is not in play", usecase.ErrNotFound, fixtureID))
}

func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		switch candidate {
		case "":
		case "*":
			allowAll = true
		default:
			allowMap[candidate] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowMap[origin]
		return ok
	}
}
