package analysis

import (
	"fmt"
	"strings"

	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// NormalizeIngredients 將清理後的視覺模型輸出轉換為去重的食材列表。
// 接受兩種形狀：純字串陣列，或帶 ingredients 欄位的物件。
// mode 為 strict 時解碼失敗直接回報 ErrMalformedModelOutput；
// lenient 時退回逗號切分的盡力恢復。
func NormalizeIngredients(text string, mode string) ([]string, error) {
	var decoded interface{}
	if err := common.ParseJSON(text, &decoded); err != nil {
		if mode == config.ParseModeLenient {
			common.LogWarn("食材解析失敗，退回逗號切分",
				zap.Error(err),
				zap.Int("text_length", len(text)),
			)
			return dedupeIngredients(splitOnCommas(text)), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}

	// 物件形狀時取出 ingredients 欄位
	if obj, ok := decoded.(map[string]interface{}); ok {
		decoded = obj["ingredients"]
	}

	items, ok := decoded.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected array of ingredients, got %T", ErrInvalidShape, decoded)
	}

	// 非字串元素直接丟棄
	raw := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			raw = append(raw, s)
		}
	}

	return dedupeIngredients(raw), nil
}

// splitOnCommas 將原始文字按逗號切分並修剪，不做進一步驗證
func splitOnCommas(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// dedupeIngredients 修剪、轉小寫、去空值，並以首見順序做不分大小寫去重
func dedupeIngredients(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		cleaned = append(cleaned, normalized)
	}
	return cleaned
}
