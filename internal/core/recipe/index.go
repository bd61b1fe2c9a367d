package recipe

import (
	"strconv"
	"strings"
	"unicode"

	"meal-planner/internal/pkg/common"
)

const (
	maxKeywords        = 20
	maxMainIngredients = 5
	mainIngredientScan = 6
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "with": true, "of": true, "in": true,
	"on": true, "for": true, "to": true, "or": true, "this": true, "that": true, "is": true,
	"are": true, "it": true, "its": true, "from": true, "by": true, "at": true, "as": true,
	"into": true, "your": true, "our": true, "over": true, "until": true, "served": true,
	"dish": true, "recipe": true, "perfect": true, "delicious": true, "easy": true, "simple": true,
}

// 順序即優先順序，海鮮名稱放在 fish 之前
var proteinKeywords = []string{
	"chicken", "beef", "pork", "lamb", "turkey", "duck",
	"salmon", "tuna", "cod", "shrimp", "prawn", "scallop", "fish",
	"tofu", "tempeh", "seitan", "eggs", "egg",
	"lentil", "chickpea", "beans",
}

// 計量與形容詞，不算主要食材
var measureWords = map[string]bool{
	"cup": true, "cups": true, "tablespoon": true, "tablespoons": true, "teaspoon": true,
	"teaspoons": true, "tbsp": true, "pound": true, "pounds": true, "ounce": true, "ounces": true,
	"gram": true, "grams": true, "cloves": true, "clove": true, "pinch": true, "dash": true,
	"large": true, "medium": true, "small": true, "fresh": true, "chopped": true, "diced": true,
	"sliced": true, "minced": true, "whole": true, "package": true, "packet": true, "servings": true,
}

// Derive 由食譜的文字欄位重新計算索引欄位與總時間
func Derive(r *common.Recipe) {
	r.TotalTime = r.PrepTime + r.CookTime
	r.DietaryTags = lowerTags(r.DietaryTags)
	r.Keywords = extractKeywords(r)
	r.PrimaryProtein = primaryProtein(r)
	r.MainIngredients = mainIngredients(r.Ingredients)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-'
	})
}

func extractKeywords(r *common.Recipe) []string {
	text := r.Name + " " + r.Description + " " + strings.Join(r.DietaryTags, " ")

	seen := make(map[string]bool)
	keywords := make([]string, 0, maxKeywords)
	for _, tok := range tokenize(text) {
		tok = strings.Trim(tok, "-")
		if len(tok) < 2 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

func primaryProtein(r *common.Recipe) string {
	joined := strings.ToLower(strings.Join(r.Ingredients, " "))
	for _, p := range proteinKeywords {
		if strings.Contains(joined, p) {
			return p
		}
	}
	for _, tag := range r.DietaryTags {
		if tag == "vegetarian" || tag == "vegan" {
			return "vegetarian"
		}
	}
	return ""
}

// mainIngredients 每行取第一個有意義的字，最多五個
func mainIngredients(lines []string) []string {
	if len(lines) > mainIngredientScan {
		lines = lines[:mainIngredientScan]
	}

	seen := make(map[string]bool)
	var out []string
	for _, line := range lines {
		for _, tok := range tokenize(line) {
			tok = strings.Trim(tok, "-")
			if !significant(tok) {
				continue
			}
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
			break
		}
		if len(out) == maxMainIngredients {
			break
		}
	}
	return out
}

func significant(tok string) bool {
	if len(tok) <= 3 || measureWords[tok] || stopWords[tok] {
		return false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return strings.IndexFunc(tok, unicode.IsLetter) >= 0
}

func lowerTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
