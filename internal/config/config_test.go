package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LIVE_POLL_INTERVAL", "")
	t.Setenv("SPORTMONKS_TIMEZONE", "")
	t.Setenv("SPORTMONKS_POPULATE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LivePollInterval != 3*time.Second {
		t.Fatalf("expected 3s poll interval, got %s", cfg.LivePollInterval)
	}
	if cfg.LivePollWorkers != 4 {
		t.Fatalf("expected 4 poll workers, got %d", cfg.LivePollWorkers)
	}
	if cfg.SportMonksTimezone != "Europe/London" || cfg.SportMonksPopulate != 400 {
		t.Fatalf("unexpected feed defaults: %q/%d", cfg.SportMonksTimezone, cfg.SportMonksPopulate)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.SportMonksCircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
}

func TestLoad_LivePollSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LIVE_POLL_INTERVAL", "5s")
	t.Setenv("LIVE_POLL_WORKERS", "8")
	t.Setenv("SPORTMONKS_LIVE_INCLUDE", "periods;trends")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LivePollInterval != 5*time.Second {
		t.Fatalf("unexpected poll interval: %s", cfg.LivePollInterval)
	}
	if cfg.LivePollWorkers != 8 {
		t.Fatalf("unexpected poll workers: %d", cfg.LivePollWorkers)
	}
	if cfg.SportMonksLiveInclude != "periods;trends" {
		t.Fatalf("unexpected include: %q", cfg.SportMonksLiveInclude)
	}
	if cfg.LogLevel.String() != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel.String())
	}
}

func TestLoad_RejectsInvalidPollSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"unparseable interval": {"LIVE_POLL_INTERVAL": "soon"},
		"zero interval":        {"LIVE_POLL_INTERVAL": "0s"},
		"single worker":        {"LIVE_POLL_WORKERS": "1"},
		"negative retries":     {"SPORTMONKS_MAX_RETRIES": "-1"},
		"bad base url":         {"SPORTMONKS_BASE_URL": "not a url"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			for key, value := range env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}

func TestLoad_TokenRequiredOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SPORTMONKS_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SPORTMONKS_TOKEN is empty in prod")
	}

	t.Setenv("SPORTMONKS_TOKEN", "token-123")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SportMonksToken != "token-123" {
		t.Fatalf("unexpected token")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
