package analysis

import (
	"fridge-chef/internal/pkg/common"
)

// NormalizeStretchRecipes 將清理後的升級食譜輸出轉換為升級食譜列表。
// 契約與 NormalizeRecipes 相同，鍵改為 stretch_recipes，
// 食材欄位拆成冰箱既有與需加購兩側。
func NormalizeStretchRecipes(text string) ([]common.StretchRecipe, error) {
	items, err := decodeRecipeItems(text, "stretch_recipes")
	if err != nil {
		return nil, err
	}

	recipes := make([]common.StretchRecipe, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		recipes = append(recipes, common.StretchRecipe{
			Title:                     stringField(obj, "title", defaultRecipeTitle),
			ShortDescription:          stringField(obj, "short_description", ""),
			IngredientsUsedFromFridge: stringSliceField(obj, "ingredients_used_from_fridge"),
			ExtraIngredientsToBuy:     stringSliceField(obj, "extra_ingredients_to_buy"),
			Steps:                     stringSliceField(obj, "steps"),
		})
	}
	return recipes, nil
}

// FallbackStretchRecipe 升級食譜解析整體失敗時的固定保底記錄
func FallbackStretchRecipe() common.StretchRecipe {
	return common.StretchRecipe{
		Title:                     "Upgraded Recipe Idea",
		ShortDescription:          "A flexible upgrade built around a few extra ingredients.",
		IngredientsUsedFromFridge: []string{},
		ExtraIngredientsToBuy:     []string{},
		Steps:                     []string{},
	}
}
