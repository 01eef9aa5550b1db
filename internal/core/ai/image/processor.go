package image

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"fridge-chef/internal/pkg/common"
)

// Processor 圖片處理器：驗證上傳內容並轉為 data URL
type Processor struct {
	maxSizeBytes int64
}

// NewProcessor 創建圖片處理器
func NewProcessor(maxSizeBytes int64) *Processor {
	return &Processor{
		maxSizeBytes: maxSizeBytes,
	}
}

// FormatImageData 將上傳的原始位元組轉為 base64 data URL。
// MIME 類型以內容嗅探判斷，不信任副檔名。
func (p *Processor) FormatImageData(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data is empty")
	}
	if p.maxSizeBytes > 0 && int64(len(data)) > p.maxSizeBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", common.ErrInvalidImageSize, len(data), p.maxSizeBytes)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: detected %s", common.ErrInvalidImageFormat, mimeType)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded), nil
}
