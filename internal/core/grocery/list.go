package grocery

import (
	"sort"
	"strings"

	"meal-planner/internal/pkg/common"
)

// CollectIngredients 依星期順序取出菜單中所有食譜的食材行
func CollectIngredients(plan *common.MealPlan) []string {
	var lines []string
	for _, day := range common.Weekdays {
		slot, ok := plan.Meals[day]
		if !ok || slot.Recipe == nil {
			continue
		}
		lines = append(lines, slot.Recipe.Ingredients...)
	}
	return lines
}

// BuildItems 解析、合併、分類食材行，輸出每個分類排序後的字串
func BuildItems(lines []string) map[string][]string {
	merged := Aggregate(ParseAll(lines))

	items := make(map[string][]string)
	for _, ing := range merged {
		text := Format(ing)
		if text == "" {
			continue
		}
		category := Classify(ing.Item)
		items[category] = append(items[category], text)
	}
	for _, list := range items {
		sort.Strings(list)
	}
	return items
}

// Format 購物清單上的顯示文字
func Format(ing Ingredient) string {
	if ing.Ambiguous {
		return strings.TrimSpace(ing.Original)
	}
	if ing.Unit != "" {
		return strings.TrimSpace(ing.Quantity + " " + ing.Unit + " " + ing.Item)
	}
	quantity := ing.Quantity
	if quantity == "1" {
		quantity = ""
	}
	return strings.TrimSpace(quantity + " " + ing.Item)
}
