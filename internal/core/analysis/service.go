package analysis

import (
	"context"
	"fmt"

	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// ModelCaller 抽象對 AI 模型的一次往返呼叫。
// imageData 非空時走視覺模型，否則走文字模型。
// 測試時注入假實作，正式環境注入 ai service。
type ModelCaller interface {
	ProcessRequest(ctx context.Context, prompt string, imageData string) (string, error)
}

// Service 冰箱照片分析服務：視覺識別食材，再生成食譜與升級食譜
type Service struct {
	caller ModelCaller
	config *config.Config
}

// NewService 創建分析服務
func NewService(caller ModelCaller, cfg *config.Config) *Service {
	return &Service{
		caller: caller,
		config: cfg,
	}
}

// AnalyzeImage 執行完整分析流程。
// 三次外部呼叫依序執行（食譜呼叫依賴食材結果），ctx 貫穿全程。
// 食材解析失敗向上傳播；食譜解析失敗以保底食譜軟性降級。
func (s *Service) AnalyzeImage(ctx context.Context, imageData string) (*common.AnalysisResult, error) {
	ingredients, err := s.detectIngredients(ctx, imageData)
	if err != nil {
		return nil, err
	}

	recipes, err := s.generateRecipes(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	stretchRecipes := []common.StretchRecipe{}
	if s.config.Analysis.StretchEnabled {
		stretchRecipes, err = s.generateStretchRecipes(ctx, ingredients)
		if err != nil {
			return nil, err
		}
	}

	return &common.AnalysisResult{
		Ingredients:    ingredients,
		Recipes:        recipes,
		StretchRecipes: stretchRecipes,
	}, nil
}

// detectIngredients 視覺呼叫，食材錯誤採 fail-loud：
// 食材列表是使用者可檢查、可重傳修正的基礎輸入
func (s *Service) detectIngredients(ctx context.Context, imageData string) ([]string, error) {
	prompt := `Look at this fridge photo and return ONLY a JSON array of the visible food ingredients.
		Requirements:
		1. Only list ingredients actually visible in the photo
		2. Do not invent items that are not there
		3. Use short lowercase names, e.g. ["milk", "eggs", "cheddar"]
		4. Return the raw JSON array with no markdown formatting and no extra text`

	content, err := s.caller.ProcessRequest(ctx, prompt, imageData)
	if err != nil {
		return nil, fmt.Errorf("vision call failed: %w", err)
	}

	ingredients, err := NormalizeIngredients(Sanitize(content), s.config.Analysis.ParseMode)
	if err != nil {
		return nil, err
	}

	common.LogInfo("食材識別完成",
		zap.Int("ingredients_count", len(ingredients)),
	)
	return ingredients, nil
}

// generateRecipes 食譜呼叫，解析失敗以保底食譜降級而不是回報錯誤
func (s *Service) generateRecipes(ctx context.Context, ingredients []string) ([]common.Recipe, error) {
	prompt := fmt.Sprintf(`You are a helpful cooking assistant.
		The user has these ingredients: %s
		Create exactly %d simple recipes using mostly these ingredients.
		Requirements:
		1. Use mostly the listed ingredients; pantry staples (salt, oil) are fine
		2. Keep the steps short and beginner friendly
		3. Return STRICT JSON with no markdown formatting, in this shape:
		{"recipes":[{"title":"...","short_description":"...","ingredients_used":["..."],"steps":["...","..."]}]}`,
		common.FormatIngredientList(ingredients), s.config.Analysis.RecipeCount)

	content, err := s.caller.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return nil, fmt.Errorf("recipe call failed: %w", err)
	}

	recipes, err := NormalizeRecipes(Sanitize(content))
	if err != nil {
		common.LogWarn("食譜解析失敗，使用保底食譜",
			zap.Error(err),
		)
		return []common.Recipe{FallbackRecipe(ingredients)}, nil
	}

	common.LogInfo("食譜生成完成",
		zap.Int("recipes_count", len(recipes)),
	)
	return recipes, nil
}

// generateStretchRecipes 升級食譜呼叫，同樣採軟性降級
func (s *Service) generateStretchRecipes(ctx context.Context, ingredients []string) ([]common.StretchRecipe, error) {
	prompt := fmt.Sprintf(`You are a helpful cooking assistant.
		The user has these ingredients: %s
		Create exactly %d "stretch" recipes that use these ingredients plus at most 3 extra ingredients the user would need to buy.
		Requirements:
		1. Keep the extra purchases cheap and common
		2. Separate what the user already has from what they need to buy
		3. Return STRICT JSON with no markdown formatting, in this shape:
		{"stretch_recipes":[{"title":"...","short_description":"...","ingredients_used_from_fridge":["..."],"extra_ingredients_to_buy":["..."],"steps":["...","..."]}]}`,
		common.FormatIngredientList(ingredients), s.config.Analysis.StretchCount)

	content, err := s.caller.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return nil, fmt.Errorf("stretch recipe call failed: %w", err)
	}

	recipes, err := NormalizeStretchRecipes(Sanitize(content))
	if err != nil {
		common.LogWarn("升級食譜解析失敗，使用保底記錄",
			zap.Error(err),
		)
		return []common.StretchRecipe{FallbackStretchRecipe()}, nil
	}

	common.LogInfo("升級食譜生成完成",
		zap.Int("stretch_recipes_count", len(recipes)),
	)
	return recipes, nil
}
