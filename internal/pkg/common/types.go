package common

import (
	"strings"
)

// Recipe 食譜
// 欄位名稱與前端契約一一對應，不可改動
type Recipe struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	IngredientsUsed  []string `json:"ingredients_used"`
	Steps            []string `json:"steps"`
}

// StretchRecipe 升級食譜（允許額外購買少量食材）
type StretchRecipe struct {
	Title                     string   `json:"title"`
	ShortDescription          string   `json:"short_description"`
	IngredientsUsedFromFridge []string `json:"ingredients_used_from_fridge"`
	ExtraIngredientsToBuy     []string `json:"extra_ingredients_to_buy"`
	Steps                     []string `json:"steps"`
}

// AnalysisResult 單次分析的完整結果，只存在於單一請求的生命週期內
type AnalysisResult struct {
	Ingredients    []string        `json:"ingredients"`
	Recipes        []Recipe        `json:"recipes"`
	StretchRecipes []StretchRecipe `json:"stretch_recipes"`
}

// FormatIngredientList 格式化食材列表，供 prompt 使用
func FormatIngredientList(ingredients []string) string {
	return strings.Join(ingredients, ", ")
}
