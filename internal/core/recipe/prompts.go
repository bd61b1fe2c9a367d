package recipe

import (
	"encoding/json"
	"fmt"
	"strings"

	"meal-planner/internal/pkg/common"
)

const recipeSystemPrompt = "You are a professional recipe developer. Always respond with valid JSON only. " +
	"Focus on practical, achievable recipes that real families will cook."

const recipeDevelopmentPrompt = `You are a professional recipe developer and culinary expert. Create a recipe that fits the requirements below.

Request: %s.

Requirements:
%s

Household Context:
%s

Tasks:
1. Adapt the recipe to the household's dietary restrictions, skill level and available equipment
2. Scale the recipe for exactly %d servings
3. Keep the total of prep_time and cook_time within %s
4. Use ingredients that are commonly available and reasonably priced
5. Write each ingredient as one line starting with a number and a unit when possible, e.g. "2 cups basmati rice"
6. Write instructions appropriate for the specified cooking skill level
7. Only use dietary_tags that truly apply to the finished dish, in lower case

Respond with a JSON object in this exact format:
{
  "name": "Recipe name",
  "description": "Brief description of the dish",
  "prep_time": 15,
  "cook_time": 30,
  "servings": 4,
  "difficulty": "beginner|intermediate|advanced",
  "cuisine": "Type of cuisine",
  "ingredients": ["1 lb chicken breast, boneless and skinless", "2 cups basmati rice", "1 medium onion, diced"],
  "instructions": ["Detailed step 1 with timing and technique", "Detailed step 2 with visual cues"],
  "equipment_needed": ["Large skillet", "Chef's knife"],
  "dietary_tags": ["gluten-free", "dairy-free", "high-protein"],
  "tips": ["Helpful cooking tip or substitution"],
  "nutrition_per_serving": {"calories": "350", "protein": "25g", "carbs": "40g", "fat": "10g"},
  "source_inspiration": "Inspired by traditional cooking techniques"
}`

// householdContext 提示詞用的家庭摘要
type householdContext struct {
	Members          int      `json:"members"`
	CookingSkill     string   `json:"cooking_skill"`
	MaxCookingTime   int      `json:"max_cooking_time"`
	FavoriteCuisines []string `json:"favorite_cuisines"`
	Dislikes         []string `json:"dislikes"`
	KitchenEquipment []string `json:"kitchen_equipment"`
}

// buildRecipePrompt 組合食譜生成的 user prompt
func buildRecipePrompt(req Requirements) string {
	reqJSON, _ := json.MarshalIndent(req, "", "  ")

	limit := "the household's usual cooking time"
	if req.MaxTime > 0 {
		limit = fmt.Sprintf("%d minutes", req.MaxTime)
	}

	return fmt.Sprintf(recipeDevelopmentPrompt, describeRequest(req), reqJSON, householdJSON(req.Household), req.Servings, limit)
}

// householdJSON 提示詞用的家庭摘要 JSON，沒有家庭資料時為 "{}"
func householdJSON(h *common.HouseholdProfile) []byte {
	if h == nil {
		return []byte("{}")
	}
	data, _ := json.MarshalIndent(householdContext{
		Members:          h.Size(),
		CookingSkill:     string(h.CookingSkill),
		MaxCookingTime:   h.MaxCookingTime,
		FavoriteCuisines: h.FavoriteCuisines,
		Dislikes:         h.Dislikes,
		KitchenEquipment: h.KitchenEquipment,
	}, "", "  ")
	return data
}

// describeRequest 一句話描述需求，例如 "A beginner Thai dinner recipe featuring tofu"
func describeRequest(req Requirements) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %s %s %s recipe", req.SkillLevel, req.Cuisine, req.MealType)
	if req.Protein != "" {
		fmt.Fprintf(&b, " featuring %s", req.Protein)
	}
	if req.MaxTime > 0 {
		fmt.Fprintf(&b, " that can be made in under %d minutes", req.MaxTime)
	}
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, " that is %s", common.StringSliceToString(req.DietaryRestrictions, ""))
	}
	return b.String()
}

const adaptationSystemPrompt = "You are a culinary expert specializing in recipe adaptation. Always respond with valid JSON only."

const recipeAdaptationPrompt = `You are a culinary expert specializing in recipe adaptation. Take the recipe below and modify it according to the adaptation requirements.

Original Recipe:
%s

Adaptation Requirements:
%s

Household Context:
%s

Tasks:
1. Modify the recipe to meet the adaptation requirements
2. Keep the flavor of the original dish
3. Adjust cooking times and techniques as needed
4. Update ingredient quantities proportionally, one ingredient per line starting with a number and a unit when possible
5. Explain the changes you made

Respond with the adapted recipe in the same JSON format as the original recipe, plus an "adaptation_notes" string field explaining the changes made.`

// adaptedRecipe 改編回應，多一個說明欄位
type adaptedRecipe struct {
	generatedRecipe
	AdaptationNotes common.FlexString `json:"adaptation_notes"`
}

// buildAdaptationPrompt 組合食譜改編的 user prompt
func buildAdaptationPrompt(original *common.Recipe, a Adaptation) string {
	recipeJSON, _ := json.MarshalIndent(promptRecipe(original), "", "  ")
	reqJSON, _ := json.MarshalIndent(a, "", "  ")
	return fmt.Sprintf(recipeAdaptationPrompt, recipeJSON, reqJSON, householdJSON(a.Household))
}

// promptRecipe 只保留模型需要的欄位
func promptRecipe(r *common.Recipe) map[string]interface{} {
	return map[string]interface{}{
		"name":                  r.Name,
		"description":           r.Description,
		"prep_time":             r.PrepTime,
		"cook_time":             r.CookTime,
		"servings":              r.Servings,
		"difficulty":            r.Difficulty,
		"cuisine":               r.Cuisine,
		"ingredients":           r.Ingredients,
		"instructions":          r.Instructions,
		"equipment_needed":      r.EquipmentNeeded,
		"dietary_tags":          r.DietaryTags,
		"tips":                  r.Tips,
		"nutrition_per_serving": r.Nutrition,
	}
}
