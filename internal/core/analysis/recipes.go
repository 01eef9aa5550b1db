package analysis

import (
	"fmt"
	"strings"

	"fridge-chef/internal/pkg/common"
)

const defaultRecipeTitle = "Untitled Recipe"

// NormalizeRecipes 將清理後的食譜模型輸出轉換為食譜列表。
// 預期形狀為 {"recipes": [...]}；解碼失敗回報 ErrMalformedModelOutput，
// 欄位缺失或型別不符回報 ErrInvalidShape。
func NormalizeRecipes(text string) ([]common.Recipe, error) {
	items, err := decodeRecipeItems(text, "recipes")
	if err != nil {
		return nil, err
	}

	recipes := make([]common.Recipe, 0, len(items))
	for _, item := range items {
		// 非物件元素靜默跳過
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		recipes = append(recipes, common.Recipe{
			Title:            stringField(obj, "title", defaultRecipeTitle),
			ShortDescription: stringField(obj, "short_description", ""),
			IngredientsUsed:  stringSliceField(obj, "ingredients_used"),
			Steps:            stringSliceField(obj, "steps"),
		})
	}
	return recipes, nil
}

// FallbackRecipe 食譜解析整體失敗時的固定保底食譜。
// 刻意的 degrade-to-useful-default：使用者永遠拿得到可操作的結果。
func FallbackRecipe(ingredients []string) common.Recipe {
	used := make([]string, len(ingredients))
	copy(used, ingredients)
	return common.Recipe{
		Title:            "Freestyle Fridge Scramble",
		ShortDescription: "A simple dish using whatever is available.",
		IngredientsUsed:  used,
		Steps: []string{
			"Chop everything.",
			"Heat oil in a pan.",
			"Add ingredients and cook.",
			"Season and serve.",
		},
	}
}

// decodeRecipeItems 解碼頂層物件並取出指定鍵下的陣列
func decodeRecipeItems(text string, key string) ([]interface{}, error) {
	var decoded interface{}
	if err := common.ParseJSON(text, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModelOutput, err)
	}

	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected object with %q field, got %T", ErrInvalidShape, key, decoded)
	}

	items, ok := obj[key].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %q field missing or not an array", ErrInvalidShape, key)
	}
	return items, nil
}

// stringField 取出字串欄位，修剪後為空則使用預設值
func stringField(obj map[string]interface{}, key string, fallback string) string {
	if s, ok := obj[key].(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// stringSliceField 取出字串陣列欄位，缺失時回傳空陣列，不做內容驗證
func stringSliceField(obj map[string]interface{}, key string) []string {
	items, ok := obj[key].([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
