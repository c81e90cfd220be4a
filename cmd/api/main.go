package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-recommender/internal/api"
	"meal-recommender/internal/core/ai"
	"meal-recommender/internal/core/ai/cache"
	aiService "meal-recommender/internal/core/ai/service"
	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/core/service"
	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/infrastructure/database"
	"meal-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("openrouter_api_key", config.MaskSecret(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.Bool("database_enabled", cfg.Database.Enabled),
		zap.Bool("fallback_enabled", cfg.Fallback.Enabled),
	)

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize store", zap.Error(err))
	}
	defer store.Close()

	// 初始化快取
	fallbackCache, err := openCache(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	defer fallbackCache.Close()

	tokens, err := auth.NewJWTManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		common.LogFatal("Failed to initialize token manager", zap.Error(err))
	}

	router := api.SetupRouter(cfg, api.Dependencies{
		Store:       store,
		Auth:        auth.NewService(store, tokens, cfg.Auth.BcryptCost),
		Recommender: meal.NewService(store, newSynthesizer(cfg, fallbackCache)),
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}

// openStore 資料庫開啟時連線 PostgreSQL 並建立資料表，否則使用記憶體儲存
func openStore(ctx context.Context, cfg *config.Config) (database.Repository, error) {
	if !cfg.Database.Enabled {
		common.LogWarn("Database disabled, using in-memory store")
		return database.NewMemoryStore(meal.SampleMeals()), nil
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if cfg.Database.SeedSampleMeals {
		if err := db.SeedMeals(ctx, meal.SampleMeals()); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// openCache 依設定建立備援回應快取，關閉時回傳停用的記憶體快取
func openCache(ctx context.Context, cfg *config.Config) (ai.Cache, error) {
	if cfg.Cache.Enabled && cfg.Cache.Backend == "redis" {
		svc, err := cache.NewService(ctx, cfg.Cache, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	return cache.NewManager(cfg.Cache), nil
}

// newSynthesizer 備援開啟且設定 API key 時才建立生成式推薦
func newSynthesizer(cfg *config.Config, c ai.Cache) meal.Synthesizer {
	if !cfg.Fallback.Enabled {
		return nil
	}
	if cfg.OpenRouter.APIKey == "" {
		common.LogWarn("Fallback enabled without OpenRouter API key, fallback disabled")
		return nil
	}

	provider := service.NewOpenRouterService(cfg.OpenRouter)
	completer := aiService.NewService(provider, c, cfg.OpenRouter.RequestsPerMinute)
	return meal.NewAISynthesizer(completer, cfg.Fallback.MealCount)
}
