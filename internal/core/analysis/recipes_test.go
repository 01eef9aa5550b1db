package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecipes(t *testing.T) {
	text := `{"recipes":[{"title":"Cheesy Spinach Omelette","short_description":"A quick breakfast.","ingredients_used":["eggs","spinach"],"steps":["Beat the eggs.","Cook in pan."]}]}`
	got, err := NormalizeRecipes(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cheesy Spinach Omelette", got[0].Title)
	assert.Equal(t, "A quick breakfast.", got[0].ShortDescription)
	assert.Equal(t, []string{"eggs", "spinach"}, got[0].IngredientsUsed)
	assert.Equal(t, []string{"Beat the eggs.", "Cook in pan."}, got[0].Steps)
}

func TestNormalizeRecipesDefaultsMissingTitle(t *testing.T) {
	got, err := NormalizeRecipes(`{"recipes":[{"short_description":"no name"}]}`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Untitled Recipe", got[0].Title)
}

func TestNormalizeRecipesDefaultsBlankTitle(t *testing.T) {
	got, err := NormalizeRecipes(`{"recipes":[{"title":"   "}]}`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Untitled Recipe", got[0].Title)
}

func TestNormalizeRecipesDefaultsMissingFields(t *testing.T) {
	got, err := NormalizeRecipes(`{"recipes":[{"title":"Toast"}]}`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].ShortDescription)
	assert.Equal(t, []string{}, got[0].IngredientsUsed)
	assert.Equal(t, []string{}, got[0].Steps)
}

func TestNormalizeRecipesSkipsNonObjectElements(t *testing.T) {
	got, err := NormalizeRecipes(`{"recipes":[{"title":"Toast"},"not a recipe",42]}`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Toast", got[0].Title)
}

func TestNormalizeRecipesMalformedInput(t *testing.T) {
	_, err := NormalizeRecipes("here are some recipes for you")
	assert.ErrorIs(t, err, ErrMalformedModelOutput)
}

func TestNormalizeRecipesInvalidShape(t *testing.T) {
	// recipes 欄位缺失
	_, err := NormalizeRecipes(`{"meals":[]}`)
	assert.ErrorIs(t, err, ErrInvalidShape)

	// recipes 欄位不是陣列
	_, err = NormalizeRecipes(`{"recipes":"none"}`)
	assert.ErrorIs(t, err, ErrInvalidShape)

	// 頂層不是物件
	_, err = NormalizeRecipes(`["a","b"]`)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestFallbackRecipe(t *testing.T) {
	ingredients := []string{"eggs", "milk"}
	got := FallbackRecipe(ingredients)

	assert.Equal(t, "Freestyle Fridge Scramble", got.Title)
	assert.Equal(t, ingredients, got.IngredientsUsed)
	assert.Len(t, got.Steps, 4)

	// 保底食譜持有自己的副本，呼叫方之後改動列表不影響結果
	ingredients[0] = "tofu"
	assert.Equal(t, "eggs", got.IngredientsUsed[0])
}

func TestNormalizeStretchRecipes(t *testing.T) {
	text := `{"stretch_recipes":[{"title":"Spinach Quiche","short_description":"Worth buying a crust.","ingredients_used_from_fridge":["eggs","spinach"],"extra_ingredients_to_buy":["pie crust","cream"],"steps":["Mix.","Bake."]}]}`
	got, err := NormalizeStretchRecipes(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Spinach Quiche", got[0].Title)
	assert.Equal(t, []string{"eggs", "spinach"}, got[0].IngredientsUsedFromFridge)
	assert.Equal(t, []string{"pie crust", "cream"}, got[0].ExtraIngredientsToBuy)
}

func TestNormalizeStretchRecipesRequiresOwnKey(t *testing.T) {
	// recipes 鍵對升級食譜而言是錯誤形狀
	_, err := NormalizeStretchRecipes(`{"recipes":[{"title":"Toast"}]}`)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestFallbackStretchRecipe(t *testing.T) {
	got := FallbackStretchRecipe()
	assert.Equal(t, "Upgraded Recipe Idea", got.Title)
	assert.Equal(t, []string{}, got.IngredientsUsedFromFridge)
	assert.Equal(t, []string{}, got.ExtraIngredientsToBuy)
}
