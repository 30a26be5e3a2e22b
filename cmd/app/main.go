package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carriertable"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/observability"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracingSDK(ctx, observability.TracingConfig{
		Endpoint: configs.OtelExporterEndpoint,
		Insecure: configs.OtelExporterInsecure,
	})
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}

	gormDB := mustGormOpen(configs.DSN())
	mustAutoMigrate(gormDB)

	table, err := carriertable.Load(configs.CarrierTablePath)
	if err != nil {
		log.Fatalf("failed to load carrier table: %v", err)
	}

	publisher, closePublisher := newPublisher(configs, logger)

	app, err := cmd.NewCompositionRoot(configs, gormDB, table, publisher, logger)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	startWebServer(ctx, app, configs.HTTPPort, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = errors.Join(closePublisher(), shutdownTracing(shutdownCtx)); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

func getConfigs() cmd.Config {
	// A missing .env is fine: containers get their variables from the environment.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		AppEnv:                 envOr("APP_ENV", "development"),
		LogLevel:               envOr("LOG_LEVEL", "info"),
		DBHost:                 envOr("DB_HOST", "localhost"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: envOr("KAFKA_ORDER_CHANGED_TOPIC", "order.status.changed"),
		CarrierTablePath:       envOr("CARRIER_TABLE_PATH", "carriers.yaml"),
		RequestBudget:          envDuration("REQUEST_BUDGET", 5*time.Second),
		SplitPolicy:            os.Getenv("SPLIT_POLICY"),
		LocationPreference:     os.Getenv("LOCATION_PREFERENCE"),
		OtelExporterEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterInsecure:   envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}
	return config
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Fatalf("%s must be a positive duration, got %q", key, raw)
	}
	return d
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s must be a boolean, got %q", key, raw)
	}
	return b
}

func newLogger(configs cmd.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(configs.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if configs.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", observability.ServiceName)
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	return gormDB
}

func mustAutoMigrate(db *gorm.DB) {
	models := append(orderrepo.Models(), &stockrepo.StockRecordDTO{})
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.OrderEventPublisher, func() error) {
	if configs.KafkaHost == "" {
		logger.Warn("KAFKA_HOST is empty, order events are not published")
		return kafka.NopPublisher{}, func() error { return nil }
	}
	p := kafka.NewPublisher(strings.Split(configs.KafkaHost, ","), configs.KafkaOrderChangedTopic)
	return p, p.Close
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	handlers, err := app.CreateHTTPHandlers()
	if err != nil {
		log.Fatalf("failed to build handlers: %v", err)
	}

	e, err := httpadapter.NewRouter(ctx, httpadapter.NewServer(handlers))
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.Info("http server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
}
