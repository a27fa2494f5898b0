package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/semka95/repositories/backend/cmd"
	"github.com/semka95/repositories/backend/metrics"
	_MyMiddleware "github.com/semka95/repositories/backend/middleware"
	_RepoHttpDelivery "github.com/semka95/repositories/backend/repository/delivery/http"
	_RepoUcase "github.com/semka95/repositories/backend/repository/usecase"
	"github.com/semka95/repositories/backend/store"
	"github.com/semka95/repositories/backend/web"
)

const serviceName = "repositories-api"

func main() {
	// Logging
	logger, err := zap.NewDevelopment(zap.AddCaller())
	if err != nil {
		log.Println("can't create logger: ", err)
		return
	}
	defer func() {
		// do not need to check for errors
		_ = logger.Sync()
	}()

	if err := run(logger); err != nil {
		logger.Error("shutting down, error: ", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	// Configuration
	cfg, err := cmd.LoadConfig(logger)
	if err != nil {
		return err
	}

	// Initialize context
	timeoutContext := time.Duration(cfg.Server.Timeout) * time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			// the service name used to display traces in backends
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return err
	}

	// Initialize tracing
	tp, err := newTracerProvider(ctx, cfg.Server.OtlpAddress, res)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tp)
	tracer := otel.Tracer("repositories-tracer")
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown tracer provider", zap.Error(err))
		}
	}()

	// Initialize metrics
	meterProvider, err := newMeterProvider(ctx, cfg.Server.OtlpAddress, res)
	if err != nil {
		return err
	}
	otel.SetMeterProvider(meterProvider)
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown meter provider", zap.Error(err))
		}
	}()

	metricsMiddleware, err := metrics.Middleware(metrics.WithMeterProvider(meterProvider))
	if err != nil {
		return fmt.Errorf("metrics middleware creation failed: %w", err)
	}

	// Echo configure
	e := echo.New()
	e.HideBanner = true
	middL := _MyMiddleware.InitMiddleware(logger)
	e.Use(middleware.RequestID())
	e.Use(middL.CORS)
	e.Use(middL.Logger)
	e.Use(middleware.RecoverWithConfig(middleware.DefaultRecoverConfig))
	e.Use(otelecho.Middleware(serviceName, otelecho.WithTracerProvider(tp)))
	e.Use(metricsMiddleware)

	// Initialize validator
	v, err := web.NewAppValidator()
	if err != nil {
		return err
	}

	// Create store
	repoStore := store.NewMemoryStore(logger, tracer)
	if cfg.Store.Seed {
		if err := store.Seed(ctx, repoStore); err != nil {
			return fmt.Errorf("can't seed store: %w", err)
		}
		logger.Info("store seeded")
	}

	// Create Repository API
	ru := _RepoUcase.NewRepositoryUsecase(repoStore, timeoutContext, tracer)
	rh, err := _RepoHttpDelivery.NewRepositoryHandler(ru, v, logger, tracer)
	if err != nil {
		return fmt.Errorf("repository handler creation failed: %w", err)
	}
	rh.RegisterRoutes(e)

	// Status check
	store.NewStatusHandler(e, repoStore)

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("can't start server: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancelSrv := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancelSrv()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("can't shutdown server: %w", err)
	}

	return nil
}

// newTracerProvider exports spans over OTLP when address is set, otherwise spans are only sampled in-process
func newTracerProvider(ctx context.Context, address string, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()), // dev env only
		sdktrace.WithResource(res),
	}

	if address != "" {
		traceExporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(address),
			otlptracegrpc.WithDialOption(grpc.WithBlock()),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(traceExporter)))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

// newMeterProvider exports metrics over OTLP when address is set
func newMeterProvider(ctx context.Context, address string, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}

	if address != "" {
		metricExporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithInsecure(),
			otlpmetricgrpc.WithEndpoint(address),
			otlpmetricgrpc.WithDialOption(grpc.WithBlock()),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(10*time.Second))))
	}

	return sdkmetric.NewMeterProvider(opts...), nil
}
