package analyze

import (
	"context"
	"errors"
	"io"
	"net/http"

	"fridge-chef/internal/core/analysis"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 對外錯誤訊息，為前端契約的一部分，不可改動
const (
	msgNoImage      = "No image uploaded"
	msgEmptyImage   = "Uploaded file is empty"
	msgParseFailure = "AI response could not be parsed as JSON. Try again in a moment."
	msgGeneric      = "Something went wrong while analyzing the image."
)

// Analyzer 分析服務能力，測試時注入假實作
type Analyzer interface {
	AnalyzeImage(ctx context.Context, imageData string) (*common.AnalysisResult, error)
}

// ImageFormatter 圖片格式化能力
type ImageFormatter interface {
	FormatImageData(data []byte) (string, error)
}

// Handler 分析請求處理器
type Handler struct {
	analyzer  Analyzer
	formatter ImageFormatter
}

// NewHandler 創建分析請求處理器
func NewHandler(analyzer Analyzer, formatter ImageFormatter) *Handler {
	return &Handler{
		analyzer:  analyzer,
		formatter: formatter,
	}
}

// HandleAnalyze 處理 POST /analyze：
// 讀取 multipart 圖片 → 視覺識別食材 → 生成食譜 → 回傳組合結果
func (h *Handler) HandleAnalyze(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		common.LogWarn("分析請求缺少圖片欄位",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoImage})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.LogError("無法開啟上傳檔案",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgGeneric})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		common.LogError("讀取上傳檔案失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgGeneric})
		return
	}

	if len(imageBytes) == 0 {
		common.LogWarn("上傳檔案為空",
			zap.String("request_id", requestID),
			zap.String("filename", fileHeader.Filename),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyImage})
		return
	}

	imageData, err := h.formatter.FormatImageData(imageBytes)
	if err != nil {
		common.LogError("圖片格式化失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgGeneric})
		return
	}

	result, err := h.analyzer.AnalyzeImage(c.Request.Context(), imageData)
	if err != nil {
		// MalformedModelOutput 對外帶重試提示；InvalidShape 與外部呼叫錯誤折入一般 500
		if errors.Is(err, analysis.ErrMalformedModelOutput) {
			common.LogError("模型輸出無法解析",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgParseFailure})
			return
		}
		common.LogError("分析流程失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgGeneric})
		return
	}

	common.LogInfo("分析完成",
		zap.String("request_id", requestID),
		zap.Int("ingredients_count", len(result.Ingredients)),
		zap.Int("recipes_count", len(result.Recipes)),
		zap.Int("stretch_recipes_count", len(result.StretchRecipes)),
	)
	c.JSON(http.StatusOK, result)
}
