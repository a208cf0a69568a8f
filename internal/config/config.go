package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret       string   `mapstructure:"JWT_SECRET"`
	TokenTTLDays    int      `mapstructure:"TOKEN_TTL_DAYS"`
	Fast2SMSAPIKey  string   `mapstructure:"FAST2SMS_API_KEY"`
	FallbackNumbers []string `mapstructure:"EMERGENCY_FALLBACK_NUMBERS"`
	GeminiAPIKey    string   `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string   `mapstructure:"GEMINI_MODEL"`
	RateLimitRPS    float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int      `mapstructure:"RATE_LIMIT_BURST"`
	BodyLimit       string   `mapstructure:"BODY_LIMIT"`
	AudioBodyLimit  string   `mapstructure:"AUDIO_BODY_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TOKEN_TTL_DAYS", 30)
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("AUDIO_BODY_LIMIT", "12M")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("TOKEN_TTL_DAYS")
	v.BindEnv("FAST2SMS_API_KEY")
	v.BindEnv("EMERGENCY_FALLBACK_NUMBERS")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GEMINI_MODEL")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("BODY_LIMIT")
	v.BindEnv("AUDIO_BODY_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	if cfg.FallbackNumbers == nil {
		if numbers := v.GetString("EMERGENCY_FALLBACK_NUMBERS"); numbers != "" {
			cfg.FallbackNumbers = strings.Split(numbers, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside
// development a real JWT secret must be provided; development falls back
// to a fixed secret so the mobile client works against a fresh checkout.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q. Refusing to start with the built-in development secret", c.Env)
	}
	if c.TokenTTLDays <= 0 {
		return fmt.Errorf("TOKEN_TTL_DAYS must be positive, got %d", c.TokenTTLDays)
	}
	return nil
}

// devJWTSecret keeps local development working without a .env file. It is
// rejected outside development by Validate.
const devJWTSecret = "maternal-health-secret"

// ResolvedJWTSecret returns the secret to sign tokens with.
func (c *Config) ResolvedJWTSecret() []byte {
	if c.JWTSecret != "" {
		return []byte(c.JWTSecret)
	}
	return []byte(devJWTSecret)
}
