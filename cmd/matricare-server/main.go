package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/matricare/matricare/internal/config"
	assistantdomain "github.com/matricare/matricare/internal/domain/assistant"
	"github.com/matricare/matricare/internal/domain/emergency"
	"github.com/matricare/matricare/internal/domain/identity"
	"github.com/matricare/matricare/internal/domain/movement"
	"github.com/matricare/matricare/internal/domain/nutrition"
	"github.com/matricare/matricare/internal/domain/risk"
	"github.com/matricare/matricare/internal/domain/symptom"
	"github.com/matricare/matricare/internal/platform/assistant"
	"github.com/matricare/matricare/internal/platform/auth"
	"github.com/matricare/matricare/internal/platform/db"
	"github.com/matricare/matricare/internal/platform/middleware"
	"github.com/matricare/matricare/internal/platform/sms"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "matricare-server",
		Short: "Maternal health companion API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	jwtSecret := cfg.ResolvedJWTSecret()
	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set; using the built-in development secret")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.BodyLimit(cfg.BodyLimit, cfg.AudioBodyLimit))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// API groups. Registration, login and the pre-sign-in chat screen live
	// on the public group; everything else requires a bearer token.
	public := e.Group("/api/v1")
	api := e.Group("/api/v1")
	api.Use(auth.Middleware(jwtSecret))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	public.Use(middleware.RateLimit(rateLimitCfg))
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// SMS dispatcher
	var dispatcher sms.Dispatcher
	if cfg.Fast2SMSAPIKey != "" {
		dispatcher = sms.NewFast2SMSClient(cfg.Fast2SMSAPIKey, logger)
	} else {
		logger.Warn().Msg("FAST2SMS_API_KEY not set; SMS escalation is disabled")
		dispatcher = sms.Nop{}
	}

	// Identity domain
	userRepo := identity.NewRepoPG(pool)
	identitySvc := identity.NewService(userRepo, jwtSecret, time.Duration(cfg.TokenTTLDays)*24*time.Hour)
	identityHandler := identity.NewHandler(identitySvc)
	identityHandler.RegisterRoutes(public, api)

	// Risk engine
	classifier := risk.DefaultClassifier()

	// Movement domain
	movementRepo := movement.NewRepoPG(pool)
	movementSvc := movement.NewService(movementRepo, identitySvc, classifier, dispatcher, logger)
	movementHandler := movement.NewHandler(movementSvc)
	movementHandler.RegisterRoutes(api)

	// Symptom domain
	symptomRepo := symptom.NewRepoPG(pool)
	symptomSvc := symptom.NewService(symptomRepo, identitySvc, movementSvc, classifier, dispatcher, logger)
	symptomHandler := symptom.NewHandler(symptomSvc)
	symptomHandler.RegisterRoutes(api)

	// Aggregate risk level
	riskSvc := risk.NewService(symptomSvc, movementSvc, risk.DefaultConfig())
	riskHandler := risk.NewHandler(riskSvc)
	riskHandler.RegisterRoutes(api)

	// Emergency escalation
	emergencySvc := emergency.NewService(identitySvc, dispatcher, cfg.FallbackNumbers, logger)
	emergencyHandler := emergency.NewHandler(emergencySvc)
	emergencyHandler.RegisterRoutes(api)

	// Nutrition plans
	nutritionHandler := nutrition.NewHandler(nutrition.NewService())
	nutritionHandler.RegisterRoutes(api)

	// Assistant (optional; endpoints return 503 when unconfigured)
	var assistantClient assistant.Client
	if cfg.GeminiAPIKey != "" {
		client, err := assistant.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create assistant client")
		}
		assistantClient = client
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; assistant endpoints are disabled")
	}
	assistantHandler := assistantdomain.NewHandler(assistantClient, logger)
	assistantHandler.RegisterRoutes(public, api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
