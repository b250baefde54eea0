package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/api"
	"github.com/pageza/pantrymatch/backend/internal/database"
	"github.com/pageza/pantrymatch/backend/internal/logger"
	"github.com/pageza/pantrymatch/backend/internal/matching"
	"github.com/pageza/pantrymatch/backend/internal/middleware"
	"github.com/pageza/pantrymatch/backend/internal/server"
	"github.com/pageza/pantrymatch/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, config.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx := context.Background()

	engine, err := newEngine(ctx, cfg, zlog)
	if err != nil {
		return err
	}

	// Initialize database
	db, err := database.New(cfg, zlog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	// Redis backs drafts and the generation rate limit. Without it search still
	// works and the /llm routes stay unmounted.
	rdb, err := database.NewRedisClient(cfg, zlog)
	if err != nil {
		zlog.Warn("redis unavailable, recipe generation disabled", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	deps := newDeps(cfg, zlog, db, rdb, engine)
	srv := server.New(cfg, deps)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	zlog.Info("server stopped")
	return nil
}

// newEngine loads the matching tables, from S3 when a key is configured
func newEngine(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (*matching.Engine, error) {
	var fetcher config.ObjectFetcher
	if cfg.MatchingConfigS3Key != "" {
		s3cfg, err := config.NewS3Config(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3: %w", err)
		}
		fetcher = s3cfg
	}

	mcfg, tables, err := config.LoadMatching(ctx, cfg, fetcher)
	if err != nil {
		return nil, err
	}
	engine, err := matching.NewEngine(mcfg, tables, nil)
	if err != nil {
		return nil, err
	}

	zlog.Info("matching engine ready",
		zap.Float64("min_score", mcfg.MinScore),
		zap.Int("pool_limit", mcfg.PoolLimit),
		zap.Int("rules", len(tables.Rules.Rules())),
		zap.String("source", matchingSource(cfg)),
	)
	return engine, nil
}

func matchingSource(cfg *config.Config) string {
	if cfg.MatchingConfigS3Key != "" {
		return "s3:" + cfg.MatchingConfigS3Key
	}
	return cfg.MatchingConfigPath
}

func newDeps(cfg *config.Config, zlog *zap.Logger, db *gorm.DB, rdb *redis.Client, engine *matching.Engine) api.Deps {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, engine, zlog.Named("recipes"))
	pantryService := service.NewPantryService(db)
	llmService := service.NewLLMService(service.LLMConfig{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, zlog)

	deps := api.Deps{
		Auth:    authService,
		Recipes: recipeService,
		Pantry:  pantryService,
		Log:     zlog,
		Ready: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}

	if rdb == nil {
		deps.Search = service.NewSearchService(engine, recipeService, pantryService, llmService, nil, zlog.Named("search"))
		return deps
	}

	drafts := service.NewDraftStore(rdb)
	deps.Search = service.NewSearchService(engine, recipeService, pantryService, llmService, drafts, zlog.Named("search"))
	deps.LLM = llmService
	deps.Drafts = drafts
	deps.GenerationLimiter = middleware.NewGenerationRateLimiter(middleware.NewRedisCounter(rdb), zlog.Named("ratelimit"))
	return deps
}
