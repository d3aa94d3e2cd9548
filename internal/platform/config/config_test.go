package config

import (
	"log/slog"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DatabaseURL:        "postgres://localhost/hr",
		JWTSecret:          "secret",
		Environment:        "development",
		MaxBodyBytes:       4096,
		RateLimitPerMinute: 10,
		TokenTTL:           time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = " " }, wantErr: true},
		{name: "production without secret", mutate: func(c *Config) {
			c.Environment = "production"
			c.JWTSecret = ""
		}, wantErr: true},
		{name: "production seed without password", mutate: func(c *Config) {
			c.Environment = "production"
			c.RunSeed = true
		}, wantErr: true},
		{name: "tiny body limit", mutate: func(c *Config) { c.MaxBodyBytes = 10 }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = 0 }, wantErr: true},
		{name: "zero token ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFromEnvDefaultsAndOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/hr")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("RUN_SEED", "false")

	cfg := FromEnv()
	if cfg.DatabaseURL != "postgres://db/hr" {
		t.Fatalf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected fallback rate limit, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m ttl, got %v", cfg.TokenTTL)
	}
	if cfg.RunSeed {
		t.Fatal("expected RUN_SEED override to false")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := (Config{LogLevel: raw}).SlogLevel(); got != want {
			t.Fatalf("level %q: expected %v, got %v", raw, want, got)
		}
	}
}
