package api

import (
	"context"
	"net/http"
	"time"

	"fridge-chef/internal/api/handlers/analyze"
	"fridge-chef/internal/api/handlers/health"
	"fridge-chef/internal/api/middleware"
	"fridge-chef/internal/core/ai/cache"
	"fridge-chef/internal/core/ai/image"
	aiservice "fridge-chef/internal/core/ai/service"
	"fridge-chef/internal/core/analysis"
	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 整體請求超時：涵蓋最多三次外部模型呼叫
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由。
// 所有服務在此顯式構建並注入 handler，不依賴全局狀態。
func SetupRouter(cfg *config.Config, cacheManager *cache.CacheManager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 請求超時：取消令牌貫穿所有外部呼叫
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
			})
		}
	})

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("vision_model", cfg.OpenRouter.VisionModel),
		zap.String("recipe_model", cfg.OpenRouter.RecipeModel),
		zap.String("parse_mode", cfg.Analysis.ParseMode),
	)

	// 初始化服務
	aiService := aiservice.NewService(cfg, cacheManager)
	imageProcessor := image.NewProcessor(cfg.Image.MaxSizeBytes)
	analysisService := analysis.NewService(aiService, cfg)

	// 初始化 handler
	analyzeHandler := analyze.NewHandler(analysisService, imageProcessor)
	healthHandler := health.NewHandler(cfg, cacheManager)

	// 靜態前端
	router.StaticFile("/", "./web/index.html")

	// 健康檢查路由
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// 分析端點：同一張圖片短時間內重複上傳直接去重
	router.POST("/analyze", middleware.Deduplication(cfg.DedupWindow), analyzeHandler.HandleAnalyze)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
