package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/live-dattacks/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string        `validate:"oneof=dev stage prod"`
	ServiceName        string        `validate:"required"`
	ServiceVersion     string        `validate:"required"`
	HTTPAddr           string        `validate:"required"`
	ReadTimeout        time.Duration `validate:"gt=0"`
	WriteTimeout       time.Duration `validate:"gt=0"`
	CORSAllowedOrigins []string      `validate:"min=1,dive,required"`
	LogLevel           logging.Level

	SportMonksBaseURL               string        `validate:"required,url"`
	SportMonksToken                 string        `validate:"required_unless=AppEnv dev"`
	SportMonksMaxRetries            int           `validate:"gte=0"`
	SportMonksCircuitEnabled        bool
	SportMonksCircuitFailureCount   int           `validate:"gte=1"`
	SportMonksCircuitOpenTimeout    time.Duration `validate:"gt=0"`
	SportMonksCircuitHalfOpenMaxReq int           `validate:"gte=1"`
	SportMonksLiveInclude           string
	SportMonksLiveFilters           string
	SportMonksTimezone              string
	SportMonksPopulate              int `validate:"gte=0"`

	LivePollInterval time.Duration `validate:"gt=0"`
	LivePollWorkers  int           `validate:"gte=2"`

	UptraceEnabled         bool
	UptraceDSN             string `validate:"required_if=UptraceEnabled true"`
	PprofEnabled           bool
	PprofAddr              string `validate:"required_if=PprofEnabled true"`
	PyroscopeEnabled       bool
	PyroscopeServerAddress string        `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName       string        `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeUploadRate    time.Duration `validate:"gt=0"`
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	sportMonksMaxRetries, err := getEnvAsInt("SPORTMONKS_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_MAX_RETRIES: %w", err)
	}
	sportMonksCircuitEnabled, err := strconv.ParseBool(getEnv("SPORTMONKS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_ENABLED: %w", err)
	}
	sportMonksCircuitFailureCount, err := getEnvAsInt("SPORTMONKS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	sportMonksCircuitOpenTimeout, err := time.ParseDuration(getEnv("SPORTMONKS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	sportMonksCircuitHalfOpenMaxReq, err := getEnvAsInt("SPORTMONKS_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	sportMonksPopulate, err := getEnvAsInt("SPORTMONKS_POPULATE", 400)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_POPULATE: %w", err)
	}

	livePollInterval, err := time.ParseDuration(getEnv("LIVE_POLL_INTERVAL", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_POLL_INTERVAL: %w", err)
	}
	livePollWorkers, err := getEnvAsInt("LIVE_POLL_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_POLL_WORKERS: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	cfg := Config{
		AppEnv:                          appEnv,
		ServiceName:                     strings.TrimSpace(getEnv("SERVICE_NAME", "live-dattacks")),
		ServiceVersion:                  strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:                        strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		ReadTimeout:                     readTimeout,
		WriteTimeout:                    writeTimeout,
		CORSAllowedOrigins:              splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                        parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		SportMonksBaseURL:               strings.TrimSpace(getEnv("SPORTMONKS_BASE_URL", "https://api.sportmonks.com/v3/football")),
		SportMonksToken:                 strings.TrimSpace(getEnv("SPORTMONKS_TOKEN", "")),
		SportMonksMaxRetries:            sportMonksMaxRetries,
		SportMonksCircuitEnabled:        sportMonksCircuitEnabled,
		SportMonksCircuitFailureCount:   sportMonksCircuitFailureCount,
		SportMonksCircuitOpenTimeout:    sportMonksCircuitOpenTimeout,
		SportMonksCircuitHalfOpenMaxReq: sportMonksCircuitHalfOpenMaxReq,
		SportMonksLiveInclude:           strings.TrimSpace(getEnv("SPORTMONKS_LIVE_INCLUDE", "")),
		SportMonksLiveFilters:           strings.TrimSpace(getEnv("SPORTMONKS_LIVE_FILTERS", "")),
		SportMonksTimezone:              strings.TrimSpace(getEnv("SPORTMONKS_TIMEZONE", "Europe/London")),
		SportMonksPopulate:              sportMonksPopulate,
		LivePollInterval:                livePollInterval,
		LivePollWorkers:                 livePollWorkers,
		UptraceEnabled:                  uptraceEnabled,
		UptraceDSN:                      uptraceDSN,
		PprofEnabled:                    pprofEnabled,
		PprofAddr:                       strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeEnabled:                pyroscopeEnabled,
		PyroscopeServerAddress:          strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeUploadRate:             pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
