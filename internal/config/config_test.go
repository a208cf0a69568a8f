package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/app")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.TokenTTLDays != 30 {
		t.Errorf("TokenTTLDays = %d, want 30", cfg.TokenTTLDays)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/app")
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("EMERGENCY_FALLBACK_NUMBERS", "9111111111,9222222222")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
	if len(cfg.FallbackNumbers) != 2 {
		t.Errorf("FallbackNumbers = %v, want 2 entries", cfg.FallbackNumbers)
	}
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTLDays: 30}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}

	cfg.JWTSecret = "real-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error with secret set: %v", err)
	}
}

func TestValidate_DevFallsBack(t *testing.T) {
	cfg := &Config{Env: "development", TokenTTLDays: 30}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("development must tolerate a missing secret: %v", err)
	}
	if string(cfg.ResolvedJWTSecret()) != devJWTSecret {
		t.Error("expected the built-in development secret")
	}

	cfg.JWTSecret = "custom"
	if string(cfg.ResolvedJWTSecret()) != "custom" {
		t.Error("explicit secret must win")
	}
}

func TestValidate_TokenTTL(t *testing.T) {
	cfg := &Config{Env: "development", TokenTTLDays: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive TOKEN_TTL_DAYS")
	}
}
