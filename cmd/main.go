package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/spf13/pflag"

	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/executor"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/memory"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/metrics"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/natsport"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/postgres/testcaserepository"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/redis/summaryport"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/sinks"
	"gitlab.com/fcv-2025.net/codejudge/internal/config"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	logger2 "gitlab.com/fcv-2025.net/codejudge/internal/global/logger"
	"gitlab.com/fcv-2025.net/codejudge/internal/handlers"
	http2 "gitlab.com/fcv-2025.net/codejudge/internal/http"
	"gitlab.com/fcv-2025.net/codejudge/internal/schedulerengine"
)

func main() {
	if err := run(); err != nil {
		logger2.Error("judge service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	env := pflag.String("env", "", "environment name; loads <env>.env when present")
	pflag.Parse()

	envFile := ""
	if *env != "" {
		envFile = *env + ".env"
	}
	sysCfg, err := config.NewSystemConfig(envFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger2.Init(sysCfg.DebugMode)
	logger := logger2.Logger
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting judge service", "backend", sysCfg.JudgeConfig.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		return fmt.Errorf("set up database: %w", err)
	}
	defer db.Close()

	// SECONDARY PORTS
	recorder := metrics.NewRecorder()
	rawBackend, err := executor.NewBackend(sysCfg, logger.With("backend", sysCfg.JudgeConfig.Backend))
	if err != nil {
		return fmt.Errorf("create execution backend: %w", err)
	}
	backend := metrics.InstrumentBackend(rawBackend, recorder)
	testCasePort := testcaserepository.New(db, logger, sysCfg.PostgresConfig.Schema)
	summaryPort, closeSummaries := setupSummaryStore(sysCfg.RedisConfig, logger)
	defer closeSummaries()

	sink := []secondary.ResultSink{recorder}
	if sysCfg.NatsConfig.Url != "" {
		nc, err := natsport.Connect(sysCfg.NatsConfig.Url, logger)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer drain(nc, logger)
		sink = append(sink, natsport.NewPublisher(nc, sysCfg.NatsConfig.CaseSubject, sysCfg.NatsConfig.SummarySubject, logger))
	}

	//services
	cpu, memLimit := sysCfg.JudgeConfig.Limits()
	judgeSvc := judge.NewJudgeService(backend, testCasePort, sinks.New(sink...), logger, judge.RunnerOptions{
		Parallelism:       sysCfg.JudgeConfig.Parallelism,
		IsolateCaseErrors: sysCfg.JudgeConfig.IsolateCaseErrors,
		Limits:            domain.Limits{CPUTimeLimit: cpu, MemoryLimit: memLimit},
	})

	var middleware *handlers.MiddlewareProvider
	if sysCfg.JwtConfig.Secret != "" {
		middleware = handlers.New(sysCfg.JwtConfig.Secret)
	}
	serviceProvider := http2.NewServiceProvider(judgeSvc, summaryPort, recorder.Handler(), middleware)

	//server
	httpServer := http2.NewServer(sysCfg.HttpConfig.Port, "judge", *serviceProvider, writeTimeout(sysCfg), logger)
	if err := httpServer.Init(); err != nil {
		return fmt.Errorf("initialise http server: %w", err)
	}
	serveErr := httpServer.Start(ctx)

	warmer := schedulerengine.NewCatalogWarmer(backend, sysCfg.JudgeConfig.RuntimeWarmInterval(), logger)
	warmer.Start(ctx)

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
		stop()
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	warmer.Wait()

	logger.Info("successfully shutdown server")
	return runErr
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// setupSummaryStore uses Redis when an address is configured and process
// memory otherwise.
func setupSummaryStore(cfg *config.RedisConfig, logger *logging.ZapLogger) (secondary.SummaryStore, func()) {
	if cfg.Addr == "" {
		logger.Info("Redis not configured, keeping submission summaries in memory")
		return memory.NewSummaryStore(cfg.SummaryTTL()), func() {}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return summaryport.NewSummaryRepository(redisClient, logger, cfg.SummaryTTL()), func() {
		_ = redisClient.Close()
	}
}

func drain(nc *nats.Conn, logger *logging.ZapLogger) {
	if err := nc.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", "error", err)
	}
}

// writeTimeout allows a request to spend ten backend timeouts.
func writeTimeout(cfg *config.AppConfig) time.Duration {
	perCall := cfg.PistonConfig.Timeout()
	if cfg.JudgeConfig.Backend == config.BackendJudge0 {
		perCall = cfg.Judge0Config.Timeout()
	}
	if perCall <= 0 {
		return 0
	}
	return 10 * perCall
}

