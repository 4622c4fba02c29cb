package config

import (
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// App
	t.Setenv("DB_PATH", "palace.sqlite")
	t.Setenv("GEN_MAX_ATTEMPTS", "5")
	t.Setenv("GEN_TITLE_MAX_RUNES", "64")

	// Quotas
	t.Setenv("QUOTA_USER_DAILY", "3")
	t.Setenv("QUOTA_ANON_DAILY", "30")
	t.Setenv("QUOTA_BACKEND", "Redis") // will normalize to "redis"
	t.Setenv("QUOTA_REDIS_ADDR", "redis:6379")

	// Gateway
	t.Setenv("GATEWAY_URL", "https://gw.example/v1")
	t.Setenv("GATEWAY_API_KEY", "sk-test")
	t.Setenv("GATEWAY_MODEL", "test/model")
	t.Setenv("GATEWAY_TIMEOUT", "12s")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// Idempotency
	t.Setenv("IDEMPOTENCY_TTL", "48h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging / Docs
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	// App
	if cfg.DBPath != "palace.sqlite" || cfg.MaxAttempts != 5 || cfg.TitleMaxLen != 64 {
		t.Fatalf("app fields unexpected: %+v", cfg)
	}

	// Quotas
	if cfg.Quota.UserDaily != 3 || cfg.Quota.AnonDaily != 30 ||
		cfg.Quota.Backend != "redis" || cfg.Quota.RedisAddr != "redis:6379" {
		t.Fatalf("quota fields unexpected: %+v", cfg.Quota)
	}

	// Gateway
	if cfg.Gateway.BaseURL != "https://gw.example/v1" ||
		cfg.Gateway.APIKey != "sk-test" ||
		cfg.Gateway.Model != "test/model" ||
		cfg.Gateway.Timeout != 12*time.Second {
		t.Fatalf("gateway fields unexpected: %+v", cfg.Gateway)
	}

	// Rate limiting fell back to defaults on parse failure
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate fields unexpected: %+v", cfg)
	}

	// CORS trimmed and pruned
	if len(cfg.CORS.AllowedOrigins) != 2 ||
		cfg.CORS.AllowedOrigins[0] != "https://a.com" ||
		cfg.CORS.AllowedOrigins[1] != "http://b" {
		t.Fatalf("cors unexpected: %+v", cfg.CORS)
	}

	// Security / Idempotency / OTEL
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency unexpected: %v", cfg.IdempotencyTTL)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure ||
		cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("default attempt budget: got %d, want 3", cfg.MaxAttempts)
	}
	if cfg.Quota.UserDaily != 3 || cfg.Quota.AnonDaily != 30 {
		t.Errorf("default quotas: got %d/%d, want 3/30", cfg.Quota.UserDaily, cfg.Quota.AnonDaily)
	}
	if cfg.Quota.Backend != "db" {
		t.Errorf("default quota backend: got %q, want db", cfg.Quota.Backend)
	}
	if cfg.Gateway.Timeout != 30*time.Second {
		t.Errorf("default gateway timeout: got %v, want 30s", cfg.Gateway.Timeout)
	}
}

// --- validation failures ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"zero timeout", map[string]string{"READ_TIMEOUT": "-1s"}, "timeouts"},
		{"bad header bytes", map[string]string{"MAX_HEADER_BYTES": "-5"}, "MAX_HEADER_BYTES"},
		{"zero attempts", map[string]string{"GEN_MAX_ATTEMPTS": "0"}, "GEN_MAX_ATTEMPTS"},
		{"negative quota", map[string]string{"QUOTA_USER_DAILY": "-1"}, "quotas"},
		{"bad quota backend", map[string]string{"QUOTA_BACKEND": "memcached"}, "QUOTA_BACKEND"},
		{"negative rps", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"zero burst", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"bad sampler", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
		{"zero idem ttl", map[string]string{"IDEMPOTENCY_TTL": "-1h"}, "IDEMPOTENCY_TTL"},
		{"bad gateway timeout", map[string]string{"GATEWAY_TIMEOUT": "-5s"}, "GATEWAY_TIMEOUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

// --- helpers ---

func TestNormalizeBasePath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"api", "/api"},
		{"/api/v1/", "/api/v1"},
		{"  /api/v2  ", "/api/v2"},
	}
	for _, tc := range cases {
		if got := normalizeBasePath(tc.in); got != tc.want {
			t.Errorf("normalizeBasePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
