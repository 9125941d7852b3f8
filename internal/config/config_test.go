package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	for _, k := range []string{"PORT", "WEB_PORT", "STORE_BACKEND", "CAPACITY_POLICY", "SIMULATED_LATENCY", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GRPCPort != "50051" || cfg.WebPort != "8080" {
		t.Errorf("ports: %s %s", cfg.GRPCPort, cfg.WebPort)
	}
	if cfg.StoreBackend != "file" {
		t.Errorf("backend: %s", cfg.StoreBackend)
	}
	if cfg.CapacityPolicy != "request" {
		t.Errorf("policy: %s", cfg.CapacityPolicy)
	}
	if cfg.SimulatedLatency != 0 {
		t.Errorf("latency: %v", cfg.SimulatedLatency)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Errorf("rate limit: %v %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_BACKEND", " Redis ")
	t.Setenv("CAPACITY_POLICY", "STRICT")
	t.Setenv("SIMULATED_LATENCY", "600ms")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreBackend != "redis" {
		t.Errorf("backend: %q", cfg.StoreBackend)
	}
	if cfg.CapacityPolicy != "strict" {
		t.Errorf("policy: %q", cfg.CapacityPolicy)
	}
	if cfg.SimulatedLatency != 600*time.Millisecond {
		t.Errorf("latency: %v", cfg.SimulatedLatency)
	}
	if cfg.RateLimitBurst != 10 {
		t.Errorf("bad int should fall back, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
