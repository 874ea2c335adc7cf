package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/reqscribe/requisition-api/internal/config"
	"github.com/reqscribe/requisition-api/internal/form"
	fieldHandler "github.com/reqscribe/requisition-api/internal/handler/field"
	healthHandler "github.com/reqscribe/requisition-api/internal/handler/health"
	requisitionHandler "github.com/reqscribe/requisition-api/internal/handler/requisition"
	"github.com/reqscribe/requisition-api/internal/middleware"
	"github.com/reqscribe/requisition-api/internal/repository/tablesource"
	"github.com/reqscribe/requisition-api/internal/router"
	"github.com/reqscribe/requisition-api/internal/service/basicinfo"
	"github.com/reqscribe/requisition-api/internal/service/classifier"
	requisitionService "github.com/reqscribe/requisition-api/internal/service/requisition"
	"github.com/reqscribe/requisition-api/pkg/logger"
	"github.com/reqscribe/requisition-api/pkg/metrics"
)

func main() {
	logger.SetupGlobal(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// process-wide read-only state: field mapping and the valid-id sets
	fieldCfg, err := config.LoadFieldConfig(cfg.Form.FieldConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load field config")
	}
	validIDs, err := config.LoadValidIDs(cfg.Form.ValidIDsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load valid ids")
	}

	if err := os.MkdirAll(cfg.Form.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output directory")
	}

	if err := form.SetLicense(cfg.Form.LicenseKey); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize pdf license")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	source := tablesource.NewClient(cfg.Source.BaseURL, cfg.Source.Timeout,
		tablesource.WithFetchMetrics(m.TableFetchDuration))

	svc := requisitionService.NewService(
		source,
		cfg.Source.Tables,
		basicinfo.NewService(fieldCfg),
		classifier.New(fieldCfg),
		form.NewFiller(cfg.Form.TemplatePath, cfg.Form.OutputDir),
		fieldCfg,
		m,
	)

	r := router.NewRouter(
		router.RouterConfig{
			RateLimit:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
			MaxBody:    cfg.Server.MaxBodyBytes,
		},
		requisitionHandler.NewHandler(svc, validIDs),
		fieldHandler.NewHandler(fieldCfg),
		healthHandler.NewHandler(source),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
