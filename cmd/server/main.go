package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/open-climate-tech/firecam/internal/api"
	"github.com/open-climate-tech/firecam/internal/domain/port"
	"github.com/open-climate-tech/firecam/internal/infra/config"
	"github.com/open-climate-tech/firecam/internal/infra/ffmpeg"
	"github.com/open-climate-tech/firecam/internal/infra/httpfetch"
	miniostorage "github.com/open-climate-tech/firecam/internal/infra/minio"
	"github.com/open-climate-tech/firecam/internal/infra/postgres"
	"github.com/open-climate-tech/firecam/internal/infra/rabbitmq"
	"github.com/open-climate-tech/firecam/internal/infra/tracing"
	"github.com/open-climate-tech/firecam/internal/usecase"
	"github.com/open-climate-tech/firecam/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting firecam ingest service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if the collector is unavailable)
	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(ctx)
		}
	}

	// Database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	fatalOnErr(err, "connect to postgres")
	defer pool.Close()

	// Migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Warn("migration warning", zap.Error(err))
	}

	// Object storage
	storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		UseSSL:    cfg.StorageUseSSL,
	})
	fatalOnErr(err, "create object storage client")

	// Optional extraction-event publisher
	var eventPub port.EventPublisher
	if cfg.RabbitMQURL != "" {
		rmqConn, err := amqp.Dial(cfg.RabbitMQURL)
		fatalOnErr(err, "connect to rabbitmq")
		defer rmqConn.Close()

		pub, err := rabbitmq.NewPublisher(rmqConn, cfg.RabbitMQExchange)
		fatalOnErr(err, "create rabbitmq publisher")
		eventPub = rabbitmq.NewFramesPublisher(pub)
	}

	// Infra adapters
	repo := postgres.NewLabelRepository(pool)
	fetcher := httpfetch.NewFetcher(cfg.DownloadTimeout, log)
	splitter := ffmpeg.NewSplitter(log)

	// Use cases
	recorder := usecase.NewRecordLabelUseCase(repo, log)
	extractor := usecase.NewExtractFramesUseCase(fetcher, splitter, storage, eventPub, log,
		usecase.ExtractFramesConfig{TempDir: cfg.TempDir, BatchSize: cfg.UploadBatchSize})

	srv := api.NewServer(cfg.HTTPPort, recorder, extractor, log)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	}()

	if err := srv.Start(); err != nil {
		log.Error("http server error", zap.Error(err))
	}

	log.Info("firecam ingest service stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
