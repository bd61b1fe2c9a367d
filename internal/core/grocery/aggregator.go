package grocery

import (
	"strconv"
	"strings"
)

// originalSeparator 無法加總時串接原文的分隔符
const originalSeparator = ", "

// Aggregate 依小寫品項名稱合併食材
//
// 同單位且數量皆為數字時加總；否則標記為 Ambiguous 並改以串接的原文呈現，之後同一品項只再串接，
// 不做單位換算。Original 一律累積所有來源行，避免加總後再遇到不同單位時遺失資訊。
// 空白品項以 "" 為鍵保留。
func Aggregate(items []Ingredient) map[string]Ingredient {
	merged := make(map[string]Ingredient, len(items))
	for _, ing := range items {
		key := strings.ToLower(strings.TrimSpace(ing.Item))
		existing, ok := merged[key]
		if !ok {
			merged[key] = ing
			continue
		}
		merged[key] = combine(existing, ing)
	}
	return merged
}

func combine(a, b Ingredient) Ingredient {
	if !a.Ambiguous && a.Unit == b.Unit {
		qa, errA := strconv.ParseFloat(a.Quantity, 64)
		qb, errB := strconv.ParseFloat(b.Quantity, 64)
		if errA == nil && errB == nil {
			a.Quantity = formatQuantity(qa + qb)
			// 之後若遇到單位不符，串接的原文須包含每一行
			a.Original = a.Original + originalSeparator + b.Original
			return a
		}
	}
	a.Original = a.Original + originalSeparator + b.Original
	a.Ambiguous = true
	return a
}

// formatQuantity 以浮點數形式輸出，整數值保留 ".0"（例如 "3.0"）
func formatQuantity(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
