package recipe

import (
	"testing"

	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	r := &common.Recipe{
		Name:        "Chicken Tikka Masala",
		Description: "A creamy Indian curry with tender chicken",
		PrepTime:    15,
		CookTime:    25,
		TotalTime:   999,
		DietaryTags: []string{"Gluten-Free", "gluten-free"},
		Ingredients: []string{
			"1.5 lb chicken breast, cubed",
			"1 cup plain yogurt",
			"2 tbsp garam masala",
			"1 can (14 oz) tomato sauce",
			"1 cup heavy cream",
			"2 cups basmati rice",
		},
	}
	Derive(r)

	assert.Equal(t, 40, r.TotalTime)
	assert.Equal(t, []string{"gluten-free"}, r.DietaryTags)
	assert.Equal(t, []string{"chicken", "tikka", "masala", "creamy", "indian", "curry", "tender", "gluten-free"}, r.Keywords)
	assert.Equal(t, "chicken", r.PrimaryProtein)
	assert.Equal(t, []string{"chicken", "plain", "garam", "tomato", "heavy"}, r.MainIngredients)
}

func TestDerive_KeywordLimit(t *testing.T) {
	r := &common.Recipe{
		Name: "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima " +
			"mike november oscar papa quebec romeo sierra tango uniform victor",
	}
	Derive(r)
	assert.Len(t, r.Keywords, 20)
	assert.Equal(t, "alpha", r.Keywords[0])
}

func TestDerive_PrimaryProtein(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		tags        []string
		want        string
	}{
		{"seafood first", []string{"1 lb salmon fillet", "2 tbsp fish sauce"}, nil, "salmon"},
		{"vegetarian tag", []string{"2 cups spinach"}, []string{"Vegan"}, "vegetarian"},
		{"none", []string{"2 cups spinach"}, nil, ""},
		{"tofu", []string{"1 block firm tofu"}, []string{"vegan"}, "tofu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &common.Recipe{Ingredients: tt.ingredients, DietaryTags: tt.tags}
			Derive(r)
			assert.Equal(t, tt.want, r.PrimaryProtein)
		})
	}
}

func TestDerive_MainIngredientsScansSixLines(t *testing.T) {
	r := &common.Recipe{Ingredients: []string{
		"1 cup rice", "2 cups broth", "salt", "1 tsp cumin", "3 oz feta", "2 lemons", "1 bunch parsley",
	}}
	Derive(r)
	assert.Equal(t, []string{"rice", "broth", "salt", "cumin", "feta"}, r.MainIngredients)
}

func TestFallbackRecipe(t *testing.T) {
	mon := FallbackRecipe("Monday", 6)
	assert.Equal(t, "Simple Spaghetti with Marinara", mon.Name)
	assert.Equal(t, 20, mon.TotalTime)
	assert.Equal(t, 6, mon.Servings)
	assert.Equal(t, "6 servings spaghetti pasta", mon.Ingredients[0])
	assert.Equal(t, FallbackSource, mon.Source)

	tue := FallbackRecipe("tuesday", 6)
	assert.Equal(t, "Quick Chicken and Rice", tue.Name)
	assert.Equal(t, 30, tue.TotalTime)
	assert.Equal(t, "3 cups rice", tue.Ingredients[1])
	assert.Equal(t, "chicken", tue.PrimaryProtein)
	assert.Equal(t, "3 cups rice", FallbackRecipe("tuesday", 5).Ingredients[1])
	assert.Equal(t, "1 cups rice", FallbackRecipe("tuesday", 1).Ingredients[1])

	assert.Equal(t, mon.Name, FallbackRecipe("wednesday", 2).Name)
	assert.Equal(t, mon.Name, FallbackRecipe("someday", 2).Name)
	assert.Equal(t, 4, FallbackRecipe("sunday", 0).Servings)
}
