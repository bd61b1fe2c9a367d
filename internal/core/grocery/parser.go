package grocery

import (
	"regexp"
	"strings"
)

// Ingredient 結構化的食材行
type Ingredient struct {
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Item     string `json:"item"`
	Original string `json:"original"`
	// Ambiguous 為 true 表示合併時無法加總，Original 保存串接後的原文
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// 數量：整數或小數；單位：緊接在後、1 到 12 個英文字母的完整單字（可帶句點）
var ingredientPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?|\.\d+)\s*(?:([A-Za-z]{1,12})\.?(?:\s+|$))?(.*)$`)

// ParseIngredient 解析一行食材文字，永不失敗
func ParseIngredient(line string) Ingredient {
	trimmed := strings.TrimSpace(line)
	m := ingredientPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Ingredient{Quantity: "1", Item: trimmed, Original: line}
	}

	quantity, unit, item := m[1], m[2], strings.TrimSpace(m[3])
	if item == "" && unit != "" {
		// "3 eggs"：字母 token 其實是品項
		item, unit = unit, ""
	}

	return Ingredient{
		Quantity: quantity,
		Unit:     unit,
		Item:     item,
		Original: line,
	}
}

// ParseAll 解析多行食材
func ParseAll(lines []string) []Ingredient {
	out := make([]Ingredient, 0, len(lines))
	for _, l := range lines {
		out = append(out, ParseIngredient(l))
	}
	return out
}
