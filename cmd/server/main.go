package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/adapters/event"
	httpAdapter "github.com/khoahotran/namelookup/adapters/http"
	"github.com/khoahotran/namelookup/adapters/persistence"
	lookupUC "github.com/khoahotran/namelookup/internal/application/usecase/lookup"
	registrationUC "github.com/khoahotran/namelookup/internal/application/usecase/registration"
	"github.com/khoahotran/namelookup/internal/config"
	"github.com/khoahotran/namelookup/pkg/logger"
	"github.com/khoahotran/namelookup/pkg/metrics"
	"github.com/khoahotran/namelookup/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start display-name lookup API server...", zap.String("store", cfg.Store.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(ctx, cfg, appLogger, "namelookup-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracer", err)
	}
	defer tracing.Shutdown(context.Background(), tp, appLogger)

	// Record store
	userStore, closeStore, err := persistence.OpenUserStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open user store", err, zap.String("driver", cfg.Store.Driver))
	}
	defer closeStore()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	lookupMetrics := metrics.NewLookupMetrics(registry)

	// Use Cases
	lookupUseCase := lookupUC.NewLookupUseCase(userStore, appLogger, lookupMetrics)
	registerUseCase := registrationUC.NewRegisterUserUseCase(kafkaClient, appLogger)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AllowedOrigins:     cfg.App.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.App.RateLimitPerSecond,
		RateLimitBurst:     cfg.App.RateLimitBurst,
		Gatherer:           registry,
	},
		httpAdapter.NewLookupHandler(lookupUseCase, appLogger),
		httpAdapter.NewUserHandler(registerUseCase, appLogger),
		appLogger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Cannot run server", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
