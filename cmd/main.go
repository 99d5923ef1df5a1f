package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Flamage82/WowTalentComparer/internal/adapters"
	"github.com/Flamage82/WowTalentComparer/internal/bootstrap"
	talentDelivery "github.com/Flamage82/WowTalentComparer/internal/delivery/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/branch"
	ownMiddleware "github.com/Flamage82/WowTalentComparer/internal/middleware"
	"github.com/Flamage82/WowTalentComparer/internal/repository"
	talentuc "github.com/Flamage82/WowTalentComparer/internal/usecase/talent"
)

type mainDeliveryHandler struct {
	talent *talentDelivery.TalentHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		bootstrap.NewLogger("info").Errorw("Failed to setup configuration", "error", err)
		return
	}
	logger := bootstrap.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	defer databaseAdapters.close(context.Background())

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnw("server shutdown", "error", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(ownMiddleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.talent.Routes(r)
}

// initDatabaseAdapters connects only the backends the configuration asks
// for: mongo when topologies live there, redis when REDIS_URL is set.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	out := &dataBaseAdapters{}

	if cfg.TopologySource == bootstrap.TopologySourceMongo {
		out.mongoAdapter = adapters.NewAdapterMongo(&cfg, log)
		if err := out.mongoAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize MongoDB", zap.Error(err))
		}
	}

	if cfg.RedisUrl != "" {
		out.redisAdapter = adapters.NewAdapterRedis(&cfg, log)
		if err := out.redisAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize Redis", zap.Error(err))
		}
	}

	log.Infow("database adapters initialized",
		"mongo", out.mongoAdapter != nil, "redis", out.redisAdapter != nil)
	return out
}

func (d *dataBaseAdapters) close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	var store talentuc.TopologyStore
	if databaseAdapters.mongoAdapter != nil {
		store = repository.NewMongoTopologyStore(log, databaseAdapters.mongoAdapter.Database)
	} else {
		store = repository.NewFileTopologyStore(cfg.TopologyDir, log)
	}

	policy := branch.Policy{MinSize: cfg.BranchMinSize, MaxSize: cfg.BranchMaxSize}
	var shared talentuc.SharedPartitionStore
	if databaseAdapters.redisAdapter != nil {
		shared = repository.NewRedisPartitionCache(log, databaseAdapters.redisAdapter.GetClient(), cfg.PartitionCacheTTL)
	}
	partitions := talentuc.NewPartitionCache(log, policy, shared, repository.PartitionKey)

	talentUC := talentuc.NewTalentUseCase(log, store, partitions)
	return &mainDeliveryHandler{
		talent: talentDelivery.NewTalentHandler(log, talentUC),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
