package config

import (
	"fmt"
	"strings"
	"time"

	"fridge-chef/internal/pkg/common"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 食材解析模式
const (
	ParseModeStrict  = "strict"  // 解析失敗直接回報錯誤
	ParseModeLenient = "lenient" // 解析失敗退回逗號切分
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Image       ImageConfig   `mapstructure:"image"`
	DedupWindow time.Duration `mapstructure:"dedup_window"`
	LogLevel    string        `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	VisionModel  string        `mapstructure:"vision_model"`
	RecipeModel  string        `mapstructure:"recipe_model"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// AnalysisConfig 分析流程設定
type AnalysisConfig struct {
	ParseMode      string `mapstructure:"parse_mode"`      // strict | lenient
	RecipeCount    int    `mapstructure:"recipe_count"`    // 一次產生的食譜數量
	StretchEnabled bool   `mapstructure:"stretch_enabled"` // 是否產生升級食譜
	StretchCount   int    `mapstructure:"stretch_count"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"` // 留空則使用進程內緩存
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（允許不存在，CI 與容器環境直接用環境變數）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.vision_model", "OPENROUTER_VISION_MODEL")
	viper.BindEnv("openrouter.recipe_model", "OPENROUTER_RECIPE_MODEL")
	viper.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("analysis.parse_mode", "PARSE_MODE")
	viper.BindEnv("analysis.stretch_enabled", "STRETCH_ENABLED")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger 尚未初始化，改用 fmt.Println
	fmt.Println("Loading configuration",
		"openrouter_api_key:", common.MaskAPIKey(viper.GetString("openrouter.api_key")),
		"vision_model:", viper.GetString("openrouter.vision_model"),
		"recipe_model:", viper.GetString("openrouter.recipe_model"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "fridge-chef")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.idle_timeout", "120s")

	// OpenRouter 設定
	viper.SetDefault("openrouter.vision_model", "qwen/qwen2.5-vl-72b-instruct:free")
	viper.SetDefault("openrouter.recipe_model", "openai/gpt-4.1-mini")
	viper.SetDefault("openrouter.max_tokens", 2048)
	viper.SetDefault("openrouter.timeout", "60s")
	viper.SetDefault("openrouter.max_retries", 2)
	viper.SetDefault("openrouter.retry_backoff", "500ms")

	// 分析設定
	viper.SetDefault("analysis.parse_mode", ParseModeStrict)
	viper.SetDefault("analysis.recipe_count", 3)
	viper.SetDefault("analysis.stretch_enabled", true)
	viper.SetDefault("analysis.stretch_count", 2)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.redis_addr", "")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	viper.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB

	// 去重窗口
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證解析模式
	if config.Analysis.ParseMode != ParseModeStrict && config.Analysis.ParseMode != ParseModeLenient {
		return fmt.Errorf("invalid parse mode: %q", config.Analysis.ParseMode)
	}
	if config.Analysis.RecipeCount <= 0 {
		return fmt.Errorf("invalid recipe count")
	}
	if config.Analysis.StretchEnabled && config.Analysis.StretchCount <= 0 {
		return fmt.Errorf("invalid stretch recipe count")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證重試設定
	if config.OpenRouter.MaxRetries < 0 {
		return fmt.Errorf("invalid max retries")
	}

	return nil
}
