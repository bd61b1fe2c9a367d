package planner

import (
	"math"
	"strings"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/pkg/common"
)

// DefaultCuisines 家庭沒有偏好菜系時使用
var DefaultCuisines = []string{"American", "Italian", "Mexican", "Asian", "Mediterranean"}

const (
	// QuickMaxTime 忙碌或簡單料理日的烹飪時間上限（分鐘）
	QuickMaxTime = 20
	// DefaultServingsFactor 份量倍數，多出來的留作剩菜
	DefaultServingsFactor = 1.5
)

var (
	quickWords     = []string{"busy", "quick"}
	specialWords   = []string{"celebration", "party", "special", "guests"}
	proteinWords   = []string{"workout", "gym"}
	diningOutWords = []string{"eating out", "eat out", "dining out", "dine out", "restaurant"}
)

// SlotRequirements 某一天的餐點需求
type SlotRequirements struct {
	Day      string
	Cuisine  string
	MaxTime  int
	Servings int

	Quick           bool
	SpecialOccasion bool
	HighProtein     bool
	Reduced         bool
	Notes           string

	// Skip 為 true 時不煮，以 Placeholder 填入
	Skip        bool
	Placeholder common.SlotKind
}

// PlanCuisines 排出七天的菜系，以間隔 2 輪替避免相鄰兩天重複
//
// 偏好數為偶數時只會輪到一半的菜系，例如兩個偏好整週都是第一個。
func PlanCuisines(favorites []string) []string {
	cuisines := make([]string, 0, len(favorites))
	for _, c := range favorites {
		if c = strings.TrimSpace(c); c != "" {
			cuisines = append(cuisines, c)
		}
	}
	if len(cuisines) == 0 {
		cuisines = DefaultCuisines
	}

	doubled := append(append(make([]string, 0, 2*len(cuisines)), cuisines...), cuisines...)
	plan := make([]string, len(common.Weekdays))
	for i := range plan {
		plan[i] = doubled[(i*2)%len(cuisines)]
	}
	return plan
}

// DayRequirements 把單日限制轉成食譜需求
func DayRequirements(day string, c common.DayConstraint, profile *common.HouseholdProfile) SlotRequirements {
	notes := strings.ToLower(c.Notes)
	req := SlotRequirements{
		Day:     day,
		MaxTime: profile.MaxCookingTime,
		Notes:   strings.TrimSpace(c.Notes),
	}

	if c.Portions == common.PortionsNone {
		req.Skip = true
		req.Placeholder = common.SlotNoCooking
		if containsAny(notes, diningOutWords) {
			req.Placeholder = common.SlotDiningOut
		}
		return req
	}

	if c.Complexity == common.ComplexitySimple || containsAny(notes, quickWords) {
		req.Quick = true
		if req.MaxTime <= 0 || req.MaxTime > QuickMaxTime {
			req.MaxTime = QuickMaxTime
		}
	}
	if c.Portions == common.PortionsExtra || containsAny(notes, specialWords) {
		req.SpecialOccasion = true
	}
	if containsAny(notes, proteinWords) {
		req.HighProtein = true
	}
	if c.Portions == common.PortionsReduced {
		req.Reduced = true
	}
	return req
}

// Servings 份量 = ceil(家庭人數 × factor)
func Servings(size int, factor float64) int {
	if factor <= 0 {
		factor = DefaultServingsFactor
	}
	n := int(math.Ceil(float64(size) * factor))
	if n < 1 {
		return 1
	}
	return n
}

// PlanWeek 產生一週七天的需求，順序同 common.Weekdays
func PlanWeek(profile *common.HouseholdProfile, constraints common.WeeklyConstraints, factor float64) []SlotRequirements {
	cuisines := PlanCuisines(profile.FavoriteCuisines)
	servings := Servings(profile.Size(), factor)

	slots := make([]SlotRequirements, len(common.Weekdays))
	for i, day := range common.Weekdays {
		s := DayRequirements(day, constraints.For(day), profile)
		s.Cuisine = cuisines[i]
		if !s.Skip {
			s.Servings = servings
		}
		slots[i] = s
	}
	return slots
}

// Special 給食譜生成的額外要求
func (s SlotRequirements) Special(profile *common.HouseholdProfile) []string {
	var out []string
	if s.Quick {
		out = append(out, "quick meal for a busy day")
	}
	if s.SpecialOccasion {
		out = append(out, "special occasion: festive dish with generous portions")
	}
	if s.HighProtein {
		out = append(out, "high protein")
	}
	if s.Reduced {
		out = append(out, "fewer people eating: keep it light")
	}
	if len(profile.Dislikes) > 0 {
		out = append(out, "avoid: "+common.StringSliceToString(profile.Dislikes, ""))
	}
	if s.Notes != "" {
		out = append(out, "notes: "+s.Notes)
	}
	return out
}

// Recipe 轉成食譜快取的查詢需求
func (s SlotRequirements) Recipe(profile *common.HouseholdProfile) recipe.Requirements {
	return recipe.Requirements{
		Cuisine:             s.Cuisine,
		MealType:            common.DefaultMealType,
		MaxTime:             s.MaxTime,
		DietaryRestrictions: profile.DietaryRestrictions(),
		Servings:            s.Servings,
		SkillLevel:          string(profile.CookingSkill),
		Equipment:           profile.KitchenEquipment,
		SpecialRequirements: s.Special(profile),
		Household:           profile,
	}
}

// placeholderNote 不煮的日子顯示的說明
func placeholderNote(s SlotRequirements) string {
	if s.Notes != "" {
		return s.Notes
	}
	if s.Placeholder == common.SlotDiningOut {
		return "Dining out"
	}
	return "No cooking planned"
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
