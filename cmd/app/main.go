package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"moneytrail/configs"
	"moneytrail/internal/auth"
	"moneytrail/internal/cache"
	"moneytrail/internal/database"
	httpdelivery "moneytrail/internal/delivery/http"
	"moneytrail/internal/delivery/ops"
	"moneytrail/internal/infra"
	"moneytrail/internal/logger"
	"moneytrail/internal/middleware"
	"moneytrail/internal/repository"
	"moneytrail/internal/usecase"
	"moneytrail/internal/utils"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Load configuration
	cfg := configs.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("moneytrail stopped")
	}
}

func run(cfg *configs.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() && cfg.Auth.JWTSecret == configs.DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, log); err != nil {
		return err
	}

	// Initialize repositories
	recordRepo := repository.NewFinancialRecordRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	recordCache := cache.NewRecordCache(cfg.Cache.TTL)
	recordService := usecase.NewRecordService(recordRepo, recordCache, cfg.Display.DefaultCurrency, log)
	sessions := middleware.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	providers := auth.NewProviders(cfg.Auth, cfg.Server.BaseURL)
	if len(providers.Names()) == 0 {
		log.Warn().Msg("no login provider configured, users cannot sign in")
	}

	scheduler := infra.NewScheduler(recordCache, cfg.Cache.SweepSchedule, log)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	// API server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	httpdelivery.SetupRoutes(e, &httpdelivery.RouterConfig{
		AuthHandler:   httpdelivery.NewAuthHandler(userRepo, providers, sessions, cfg.Server.AppRedirect, cfg.Auth.CookieSecure),
		RecordHandler: httpdelivery.NewRecordHandler(recordService, utils.LoadLocation(cfg.Display.Timezone)),
		Sessions:      sessions,
		Logger:        log,
		AllowOrigins:  cfg.Server.CORSOrigins,
	})
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Ops server
	opsServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.OpsPort),
		Handler:      ops.NewRouter(db, recordCache, log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 35 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{apiServer, opsServer} {
		srv := srv
		g.Go(func() error {
			log.Info().Str("addr", srv.Addr).Msg("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s failed: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Str("env", cfg.Server.Env).Msg("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return errors.Join(apiServer.Shutdown(shutdownCtx), opsServer.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("server exited gracefully")
	return nil
}
