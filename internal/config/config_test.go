package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("CFG_VALUE", "custom")
	if got := getEnv("CFG_VALUE", "default"); got != "custom" {
		t.Fatalf("getEnv returned %q, want custom", got)
	}

	// Empty environment value should fall back to default
	t.Setenv("CFG_EMPTY", "")
	if got := getEnv("CFG_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("getEnv returned %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("CFG_INT", "45")
	if got := getEnvInt("CFG_INT", 30); got != 45 {
		t.Fatalf("getEnvInt returned %d, want 45", got)
	}

	// Non-numeric and non-positive values fall back to the default.
	t.Setenv("CFG_INT", "abc")
	if got := getEnvInt("CFG_INT", 30); got != 30 {
		t.Fatalf("getEnvInt returned %d, want 30", got)
	}
	t.Setenv("CFG_INT", "-5")
	if got := getEnvInt("CFG_INT", 30); got != 30 {
		t.Fatalf("getEnvInt returned %d, want 30", got)
	}
}

func TestLoad(t *testing.T) {
	// Ensure defaults when env vars are empty.
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SEED", "")
	t.Setenv("MODEL_PATH", "")
	t.Setenv("MIN_TRAINING_SAMPLES", "")
	t.Setenv("MAX_FORECAST_HORIZON_HOURS", "")

	cfg := Load()
	if cfg.Port != "8000" || cfg.DatabaseURL == "" || cfg.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Seed {
		t.Fatalf("expected Seed default false")
	}
	if cfg.ModelPath != "./models/glucose_model.json" {
		t.Fatalf("unexpected default model path: %q", cfg.ModelPath)
	}
	if cfg.MinTrainingSamples != 30 || cfg.MaxHorizonHours != 24 {
		t.Fatalf("ML defaults not applied: %+v", cfg)
	}

	// Custom values override defaults
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED", "true")
	t.Setenv("MODEL_PATH", "/data/model.json")
	t.Setenv("MIN_TRAINING_SAMPLES", "50")
	t.Setenv("MAX_FORECAST_HORIZON_HOURS", "12")

	cfg = Load()
	if cfg.Port != "9090" || cfg.DatabaseURL != "postgres://example" || cfg.LogLevel != "debug" || !cfg.Seed {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.ModelPath != "/data/model.json" || cfg.MinTrainingSamples != 50 || cfg.MaxHorizonHours != 12 {
		t.Fatalf("ML env overrides missing: %+v", cfg)
	}
}
