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

	"github.com/g2g/mri/internal/config"
	"github.com/g2g/mri/internal/domain/calendar"
	"github.com/g2g/mri/internal/domain/chat"
	"github.com/g2g/mri/internal/domain/dashboard"
	"github.com/g2g/mri/internal/domain/notification"
	"github.com/g2g/mri/internal/domain/patient"
	"github.com/g2g/mri/internal/domain/query"
	"github.com/g2g/mri/internal/domain/result"
	"github.com/g2g/mri/internal/domain/staff"
	"github.com/g2g/mri/internal/platform/auth"
	"github.com/g2g/mri/internal/platform/blobstore"
	"github.com/g2g/mri/internal/platform/db"
	"github.com/g2g/mri/internal/platform/middleware"
	"github.com/g2g/mri/internal/platform/notify"
	"github.com/g2g/mri/internal/platform/render"
	"github.com/g2g/mri/internal/platform/validate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mri-server",
		Short: "MRI department records API server",
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
			if dir == "" {
				dir = cfg.MigrationsDir
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
	upCmd.Flags().String("dir", "", "Path to migrations directory")
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
			if dir == "" {
				dir = cfg.MigrationsDir
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
	statusCmd.Flags().String("dir", "", "Path to migrations directory")
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
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Object store for result documents. Development falls back to an
	// in-memory store so the server runs without a MinIO instance.
	var store blobstore.Store
	if cfg.BlobEndpoint != "" {
		minioStore, err := blobstore.NewMinioStore(ctx, blobstore.MinioConfig{
			Endpoint:  cfg.BlobEndpoint,
			AccessKey: cfg.BlobAccessKey,
			SecretKey: cfg.BlobSecretKey,
			Bucket:    cfg.BlobBucket,
			UseSSL:    cfg.BlobUseSSL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to object store")
		}
		store = minioStore
		logger.Info().Str("bucket", cfg.BlobBucket).Msg("connected to object store")
	} else if cfg.IsDev() {
		store = blobstore.NewMemoryStore()
		logger.Warn().Msg("BLOB_ENDPOINT not set, using in-memory object store")
	} else {
		logger.Fatal().Msg("BLOB_ENDPOINT is required outside development")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() && cfg.JWTSecret == "" {
		e.Use(auth.DevAuthMiddleware())
		logger.Warn().Msg("JWT_SECRET not set, using development identity")
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
		}))
	}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")

	// Live notification hub
	hub := notify.NewHub(logger)
	notifier := notify.NewHubNotifier(hub)
	notify.NewHandler(hub).RegisterRoutes(apiV1)

	// Patient records
	patientRepo := patient.NewRepoPG(pool)
	patientSvc := patient.NewService(patientRepo, func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.WithTx(ctx, pool, fn)
	}, logger)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	// Staff accounts
	staffRepo := staff.NewRepoPG(pool)
	staffSvc := staff.NewService(staffRepo)
	staff.NewHandler(staffSvc).RegisterRoutes(apiV1)

	// Notifications persist to the database and push over the hub.
	notificationRepo := notification.NewRepoPG(pool)
	notificationSvc := notification.NewService(notificationRepo, notifier, logger)
	notification.NewHandler(notificationSvc).RegisterRoutes(apiV1)

	// Result documents
	resultRepo := result.NewRepoPG(pool)
	resultSvc := result.NewService(resultRepo, patientRepo, staffRepo, store, render.NewPlaceholder(), notificationSvc, logger)
	result.NewHandler(resultSvc).RegisterRoutes(apiV1)

	// Patient queries
	queryRepo := query.NewRepoPG(pool)
	querySvc := query.NewService(queryRepo)
	query.NewHandler(querySvc).RegisterRoutes(apiV1)

	// Department calendar
	calendarRepo := calendar.NewRepoPG(pool)
	calendarSvc := calendar.NewService(calendarRepo)
	calendar.NewHandler(calendarSvc).RegisterRoutes(apiV1)

	// Staff chat
	chatRepo := chat.NewRepoPG(pool)
	chatSvc := chat.NewService(chatRepo, notifier, logger)
	chat.NewHandler(chatSvc).RegisterRoutes(apiV1)

	// Dashboard
	dashboardRepo := dashboard.NewRepoPG(pool, patientRepo)
	dashboardSvc := dashboard.NewService(dashboardRepo)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(apiV1)

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
