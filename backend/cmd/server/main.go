package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"socialgraph/backend/internal/cache"
	"socialgraph/backend/internal/social"
	"socialgraph/backend/internal/store"
	"socialgraph/backend/pkg/config"
	"socialgraph/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting social graph server...")

	ctx := context.Background()

	// Initialize user store
	userStore, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize user store", zap.Error(err))
	}
	defer closeStore()

	// Optional redis-backed graph cache
	var graphCache social.GraphCache
	if cfg.GraphCacheEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		graphCache = cache.NewGraphCache(client, cfg.GraphCacheTTL)
		log.Info("Graph cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	svc := social.NewUserService(userStore, graphCache)
	router := newRouter(svc, cfg, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Run until interrupted, then drain in-flight requests
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		log.Info("Server started", zap.String("port", cfg.Port), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server terminated with error", zap.Error(err))
	}
	log.Info("Server exited")
}

// buildStore selects the configured UserStore backend. The returned closer
// is a no-op for the memory store.
func buildStore(ctx context.Context, cfg *config.Config) (social.UserStore, func(), error) {
	if cfg.Store == config.StoreMemory {
		return store.NewMemoryStore(), func() {}, nil
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	st := store.NewNeo4jStore(driver)
	return st, func() { _ = st.Close(context.Background()) }, nil
}
