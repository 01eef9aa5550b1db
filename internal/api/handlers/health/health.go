package health

import (
	"net/http"
	"runtime"
	"time"

	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CacheStats 提供快取統計的能力
type CacheStats interface {
	GetStats() map[string]interface{}
}

// Handler 健康檢查處理器
type Handler struct {
	config *config.Config
	cache  CacheStats
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, cache CacheStats) *Handler {
	return &Handler{
		config: cfg,
		cache:  cache,
	}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.cache != nil {
		response.Cache = h.cache.GetStats()
	}

	common.LogDebug("Health check request")

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
