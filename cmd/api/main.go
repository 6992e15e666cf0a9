package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fullstack0516/express-digital-asset-backend/internal/adapter/classifier"
	"github.com/fullstack0516/express-digital-asset-backend/internal/adapter/gcs"
	"github.com/fullstack0516/express-digital-asset-backend/internal/adapter/memory"
	mongo_adapter "github.com/fullstack0516/express-digital-asset-backend/internal/adapter/mongo"
	"github.com/fullstack0516/express-digital-asset-backend/internal/adapter/postgres"
	redis_adapter "github.com/fullstack0516/express-digital-asset-backend/internal/adapter/redis"
	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/handler"
	"github.com/fullstack0516/express-digital-asset-backend/internal/delivery/http/router"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/internal/usecase"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/config"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/logger"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
)

type stores struct {
	pages     repository.PageRepository
	history   repository.PageHistoryRepository
	tags      repository.UserDataTagRepository
	blacklist repository.BlacklistRepository
	close     func()
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("could not build logger", zap.Error(err))
	}
	defer log.Sync()

	// --- Metrics ---
	m := metrics.New(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Document store ---
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("could not open document store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.close()

	// --- Object storage ---
	var objects repository.ObjectStorage
	if cfg.StorageBucket != "" {
		client, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatal("could not create storage client", zap.Error(err))
		}
		defer client.Close()
		objects = gcs.NewStorage(client, cfg.StorageBucket, cfg.StoragePublicBaseURL)
		log.Info("Using GCS bucket", zap.String("bucket", cfg.StorageBucket))
	} else {
		objects = memory.NewStorage("http://localhost:" + cfg.ServerPort + "/media")
		log.Warn("STORAGE_BUCKET not set, media is kept in memory")
	}

	// --- Classifier ---
	var extractor repository.TagExtractor
	switch cfg.Classifier {
	case "google":
		extractor, err = classifier.NewGoogleClassifier(ctx, cfg.GoogleAPIKey, cfg.ClassifierRequestsPerSecond, cfg.ClassifierMaxEntitiesPerPage)
		if err != nil {
			log.Fatal("could not create classifier", zap.Error(err))
		}
	default:
		extractor = classifier.NewHeuristicClassifier(nil, cfg.ClassifierMaxEntitiesPerPage)
	}

	// --- Media ---
	policy := usecase.MediaPolicy{
		PlaceholderURL: cfg.PlaceholderImageURL,
		DummyPhotoURLs: cfg.DummyPhotoURLs,
		ProtectedHosts: cfg.ProtectedMediaHosts,
		DedupeTTL:      cfg.MediaDedupeTTL,
	}
	var mediaOpts []usecase.MediaOption
	var cleanup usecase.MediaCleanup
	if cfg.MediaCleanupMode == "queue" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Unable to connect to Redis", zap.Error(err))
		}
		log.Info("Redis connection established")

		queue := redis_adapter.NewQueueRepo(rdb)
		pending := redis_adapter.NewPendingRepo(rdb)
		mediaOpts = append(mediaOpts, usecase.WithDeletionQueue(queue, pending))
		cleanup = usecase.NewMediaCleanup(queue, pending, objects, log, m)
	}
	media := usecase.NewMediaManager(objects, policy, log, m, mediaOpts...)

	// --- Use Cases ---
	pageSvc := usecase.NewPageService(st.pages, media, cfg.PlaceholderImageURL, nil, log)
	sections := usecase.NewSectionStore(st.pages, media, cfg.PlaceholderImageURL, cfg.MaxDraftSections, nil, log)
	publisher := usecase.NewPublisher(st.pages, extractor, media, nil, log, m)
	ledger := usecase.NewLedger(st.pages, st.tags, st.blacklist, cfg.LedgerFetchLimit, nil, log, m)
	tracker := usecase.NewHistoryTracker(st.pages, st.history, nil, log)
	visits := usecase.NewVisitRecorder(pageSvc, tracker, ledger, log, m)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(pageSvc, sections, publisher, visits, ledger, log)
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(apiHandler, log, m, prometheus.DefaultGatherer),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cleanup != nil {
		g.Go(func() error {
			log.Info("Starting media cleanup worker", zap.Duration("interval", cfg.MediaCleanupInterval))
			return cleanup.Run(gctx, cfg.MediaCleanupInterval)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exiting")
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("PostgreSQL connection pool established")
		return &stores{
			pages:     postgres.NewPageRepo(pool),
			history:   postgres.NewPageHistoryRepo(pool),
			tags:      postgres.NewUserDataTagRepo(pool),
			blacklist: postgres.NewBlacklistRepo(pool),
			close:     pool.Close,
		}, nil

	case "mongo":
		client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, err
		}
		closeClient := func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}
		if err := client.Ping(ctx, nil); err != nil {
			closeClient()
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongo_adapter.EnsureIndexes(ctx, db); err != nil {
			closeClient()
			return nil, err
		}
		log.Info("MongoDB connection established", zap.String("database", cfg.MongoDatabase))
		return &stores{
			pages:     mongo_adapter.NewPageRepo(db),
			history:   mongo_adapter.NewPageHistoryRepo(db),
			tags:      mongo_adapter.NewUserDataTagRepo(db),
			blacklist: mongo_adapter.NewBlacklistRepo(db),
			close:     closeClient,
		}, nil

	default:
		log.Warn("Using in-memory store, data is lost on restart")
		return &stores{
			pages:     memory.NewPageRepo(),
			history:   memory.NewPageHistoryRepo(),
			tags:      memory.NewUserDataTagRepo(),
			blacklist: memory.NewBlacklistRepo(),
			close:     func() {},
		}, nil
	}
}
