package sportmonks

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/live-dattacks/internal/domain/livescore"
	"github.com/riskibarqy/live-dattacks/internal/platform/logging"
	"github.com/riskibarqy/live-dattacks/internal/platform/resilience"
	"github.com/riskibarqy/live-dattacks/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.sportmonks.com/v3/football"
	inplayPath       = "/livescores/inplay"
	maxResponseBytes = 6 << 20

	DefaultLiveInclude = "periods;scores;trends;participants;statistics;state"
	DefaultLiveFilters = "fixtureStatisticTypes:34,42,43,44,45,52,58,83,98,99;trendTypes:34,42,43,44,45,52,58,83,98,99"
	DefaultTimezone    = "Europe/London"
	DefaultPopulate    = 400
)

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errSportMonksTransient = crerr.New("sportmonks transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	MaxRetries     int
	Include        string
	Filters        string
	Timezone       string
	Populate       int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the in-play livescores feed.
type Client struct {
	httpClient *http.Client
	inplayURL  string
	token      string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var _ usecase.LiveFeed = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	// No client timeout: a poll cycle is bounded by cancellation on the next tick.
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		inplayURL:  buildInplayURL(baseURL, cfg),
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// FetchInplay returns the raw in-play fixtures. A payload whose data field is
// not an array yields an empty list.
func (c *Client) FetchInplay(ctx context.Context) ([]livescore.RawFixture, error) {
	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, c.inplayURL)
		return reqErr
	}, isSportMonksCircuitFailure)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "sportmonks circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sport data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	fixtures, err := decodeFixtures(raw)
	if err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("cache-control", "no-cache, no-store")
		req.Header.Set("pragma", "no-cache")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = crerr.Mark(
				crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.token)),
				errSportMonksTransient,
			)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = crerr.Newf("HTTP %d", resp.StatusCode)
				if !isRetryableStatus(resp.StatusCode) {
					c.logger.WarnContext(ctx, "sportmonks request rejected",
						"url", redactAPIURL(fullURL),
						"status", resp.StatusCode,
						"body", abbreviateBody(raw),
					)
					return nil, lastErr
				}
				lastErr = crerr.Mark(lastErr, errSportMonksTransient)
			case readErr != nil:
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errSportMonksTransient)
			default:
				return raw, nil
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "sportmonks request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func decodeFixtures(raw []byte) ([]livescore.RawFixture, error) {
	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode livescores payload")
	}

	envelope, _ := payload.(map[string]any)
	items, _ := envelope["data"].([]any)
	fixtures := make([]livescore.RawFixture, 0, len(items))
	for _, item := range items {
		fixture, _ := item.(map[string]any)
		fixtures = append(fixtures, livescore.RawFixture(fixture))
	}
	return fixtures, nil
}

func buildInplayURL(baseURL string, cfg ClientConfig) string {
	values := url.Values{}
	values.Set("api_token", strings.TrimSpace(cfg.Token))
	values.Set("include", firstNonEmpty(cfg.Include, DefaultLiveInclude))
	values.Set("filters", firstNonEmpty(cfg.Filters, DefaultLiveFilters))
	values.Set("timezone", firstNonEmpty(cfg.Timezone, DefaultTimezone))
	populate := cfg.Populate
	if populate <= 0 {
		populate = DefaultPopulate
	}
	values.Set("populate", strconv.Itoa(populate))

	return baseURL + inplayPath + "?" + values.Encode()
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func isSportMonksCircuitFailure(err error) bool {
	return err != nil && crerr.Is(err, errSportMonksTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
