package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"reeltor/internal/config"
	"reeltor/internal/publisher"
	"reeltor/internal/scheduler"
	"reeltor/internal/service"
	"reeltor/internal/source/chotot"
	"reeltor/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	wipe := flag.Bool("wipe", false, "delete all stored data and exit")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	queries := service.NewQueryService(postgres.NewAdStore(db), postgres.NewStatsStore(db))

	if *wipe {
		if err := queries.Wipe(context.Background()); err != nil {
			logger.Error("failed to wipe store", "error", err)
			os.Exit(1)
		}
		logger.Info("store wiped")
		return
	}

	if counts, err := queries.Counts(context.Background()); err == nil {
		logger.Info("store state",
			"accounts", counts.Accounts,
			"ads", counts.Ads,
			"images", counts.Images,
			"parameters", counts.Parameters,
		)
	}

	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	accountStore := postgres.NewAccountStore(db)
	adStore := postgres.NewAdStore(db)
	imageStore := postgres.NewImageStore(db)
	paramStore := postgres.NewParameterStore(db)
	txManager := postgres.NewTransactionManager(db)

	source := chotot.New(chotot.Config{
		BaseURL:     cfg.API.BaseURL,
		Limit:       cfg.API.Limit,
		Fingerprint: cfg.API.Fingerprint,
		Timeout:     cfg.API.Timeout,
	}, logger)

	reconciler := service.NewReconcileService(
		source,
		accountStore,
		adStore,
		imageStore,
		paramStore,
		txManager,
		rabbitMQ,
		logger,
	)

	sched := scheduler.NewScheduler(reconciler, cfg.Sync.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting listing syncer",
		"source", source.Name(),
		"interval", cfg.Sync.Interval,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
