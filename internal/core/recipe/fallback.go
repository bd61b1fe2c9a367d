package recipe

import (
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/pkg/common"
)

// FallbackSource 備用食譜的來源標記
const FallbackSource = "fallback"

// FallbackRecipe 生成失敗時使用的固定食譜；依星期輪替兩道菜
func FallbackRecipe(day string, servings int) *common.Recipe {
	if servings <= 0 {
		servings = 4
	}

	var r *common.Recipe
	if dayIndex(day)%2 == 0 {
		r = &common.Recipe{
			Name:        "Simple Spaghetti with Marinara",
			Description: "Pantry pasta with jarred marinara and parmesan",
			PrepTime:    5,
			CookTime:    15,
			Difficulty:  string(common.SkillBeginner),
			Cuisine:     "Italian",
			Ingredients: []string{
				fmt.Sprintf("%d servings spaghetti pasta", servings),
				"1 jar marinara sauce",
				"Grated Parmesan cheese",
				"2 tbsp olive oil",
			},
			Instructions: []string{
				"Cook pasta according to package directions",
				"Heat marinara sauce in a separate pan",
				"Drain pasta and serve with sauce and cheese",
			},
			DietaryTags: []string{"vegetarian"},
		}
	} else {
		r = &common.Recipe{
			Name:        "Quick Chicken and Rice",
			Description: "Skillet chicken served over seasoned rice",
			PrepTime:    10,
			CookTime:    20,
			Difficulty:  string(common.SkillBeginner),
			Cuisine:     "American",
			Ingredients: []string{
				fmt.Sprintf("%d chicken breasts", servings),
				fmt.Sprintf("%d cups rice", (servings+1)/2),
				"1 packet onion soup mix",
				"Salt and pepper",
			},
			Instructions: []string{
				"Season chicken and cook in skillet",
				"Cook rice separately",
				"Serve chicken over rice",
			},
			DietaryTags: []string{"gluten-free"},
		}
	}

	r.Servings = servings
	r.MealType = common.DefaultMealType
	r.Source = FallbackSource
	r.CreatedAt = time.Now().UTC()
	Derive(r)
	return r
}

// dayIndex 星期在一週中的位置，未知的日子視為週一
func dayIndex(day string) int {
	day = strings.ToLower(strings.TrimSpace(day))
	for i, d := range common.Weekdays {
		if d == day {
			return i
		}
	}
	return 0
}
