package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"offroute/cmd"
	"offroute/internal/adapters/out/postgres"
	"offroute/internal/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configs.TraceOutput != "" {
		shutdownTracing, err := tracing.Init(ctx, "offroute", configs.TraceOutput)
		if err != nil {
			log.Fatalf("Error initializing tracing: %v", err)
		}
		defer func() { _ = shutdownTracing(context.Background()) }()
	}

	gormDB := openDatabase(ctx, configs)

	policy, err := cmd.LoadPolicy(configs.PolicyFile)
	if err != nil {
		log.Fatalf("Error loading off-route policy: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, policy, logger)
	defer func() { _ = app.Close() }()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded, using process environment")
	}

	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:          goDotEnvVariable("REDIS_ADDR"),
		RouteCacheTTL:      goDotEnvVariable("ROUTE_CACHE_TTL_SECONDS"),
		KafkaBrokers:       goDotEnvVariable("KAFKA_BROKERS"),
		KafkaOffRouteTopic: goDotEnvVariable("KAFKA_OFF_ROUTE_TOPIC"),
		SchedulerSpec:      goDotEnvVariable("SCHEDULER_SPEC"),
		PolicyFile:         goDotEnvVariable("OFFROUTE_POLICY_FILE"),
		TraceOutput:        goDotEnvVariable("TRACE_OUTPUT"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func openDatabase(ctx context.Context, configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = postgres.Migrate(ctx, gormDB, false); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
