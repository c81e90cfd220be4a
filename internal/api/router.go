package api

import (
	"time"

	authHandler "meal-recommender/internal/api/handlers/auth"
	"meal-recommender/internal/api/handlers/health"
	mealHandler "meal-recommender/internal/api/handlers/meal"
	"meal-recommender/internal/api/middleware"
	"meal-recommender/internal/core/auth"
	"meal-recommender/internal/core/meal"
	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/infrastructure/database"
	"meal-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const recommendationsRoute = "/api/recommendations"

// Dependencies 路由所需的服務
type Dependencies struct {
	Store       database.Repository
	Auth        *auth.Service
	Recommender *meal.Service
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", mealHandler.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupWindow > 0 {
		// 推薦為冪等查詢，同一 IP 後的不同用戶端可能送出相同內容
		router.Use(middleware.Deduplication(cfg.DedupWindow, recommendationsRoute))
	}
	router.Use(middleware.RequestContext(cfg.Server.RequestTimeout))

	healthH := health.NewHandler(deps.Store, cfg.App.Version)
	authH := authHandler.NewHandler(deps.Auth)
	mealH := mealHandler.NewHandler(deps.Recommender, deps.Store, deps.Store, deps.Store)

	// 健康檢查路由
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/health", healthH.APIHealth)
		api.POST("/recommendations", middleware.OptionalAuth(deps.Auth), mealH.Recommend)
		api.GET("/meals/:id", mealH.GetMeal)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authH.Register)
			authGroup.POST("/login", authH.Login)
		}

		api.POST("/feedback", middleware.RequireAuth(deps.Auth), mealH.SubmitFeedback)

		userGroup := api.Group("/user", middleware.RequireAuth(deps.Auth))
		{
			userGroup.GET("/preferences", mealH.GetPreferences)
			userGroup.POST("/preferences", mealH.SavePreferences)
			userGroup.GET("/history", mealH.GetHistory)
			userGroup.POST("/history", mealH.AddHistory)
		}

		if cfg.Admin.Enabled {
			api.POST("/admin/reset-meals", mealH.ResetMeals)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound)
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("admin_enabled", cfg.Admin.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

// allowsAnyOrigin cors 不允許萬用字元搭配 credentials
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}
