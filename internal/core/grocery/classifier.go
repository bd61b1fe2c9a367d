package grocery

import "strings"

// 購物清單分類
const (
	CategoryProduce     = "produce"
	CategoryMeat        = "meat"
	CategoryDairy       = "dairy"
	CategoryPantry      = "pantry"
	CategoryCannedGoods = "canned_goods"
	CategoryFrozen      = "frozen"
	CategoryBakery      = "bakery"
	CategoryOther       = "other"
)

// Categories 固定的分類順序，other 永遠在最後
var Categories = []string{
	CategoryProduce,
	CategoryMeat,
	CategoryDairy,
	CategoryPantry,
	CategoryCannedGoods,
	CategoryFrozen,
	CategoryBakery,
	CategoryOther,
}

type categoryKeywords struct {
	category string
	keywords []string
}

// keywordTable 依序比對，先命中者勝出；順序會影響結果，不可改成 map
var keywordTable = []categoryKeywords{
	{CategoryProduce, []string{
		"onion", "garlic", "tomato", "lettuce", "carrot", "potato", "bell pepper",
		"mushroom", "spinach", "broccoli", "cucumber", "celery", "lemon", "lime",
		"avocado", "herbs", "parsley", "cilantro", "basil",
	}},
	{CategoryMeat, []string{
		"chicken", "beef", "pork", "turkey", "fish", "salmon", "shrimp",
		"ground beef", "ground turkey",
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "butter", "yogurt", "cream", "eggs", "sour cream",
	}},
	{CategoryPantry, []string{
		"rice", "pasta", "flour", "sugar", "salt", "pepper", "oil", "vinegar",
		"soy sauce", "garlic powder", "onion powder", "paprika", "cumin",
		"oregano", "thyme", "bay leaves",
	}},
	{CategoryCannedGoods, []string{
		"tomatoes", "beans", "broth", "stock", "coconut milk", "tomato paste",
		"corn", "diced tomatoes",
	}},
	{CategoryFrozen, []string{
		"peas", "corn", "berries", "ice cream",
	}},
	{CategoryBakery, []string{
		"bread", "tortillas", "bagels",
	}},
}

// Classify 回傳品項的分類；無關鍵字命中時為 other
func Classify(item string) string {
	lower := strings.ToLower(item)
	if strings.TrimSpace(lower) == "" {
		return CategoryOther
	}
	for _, entry := range keywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
