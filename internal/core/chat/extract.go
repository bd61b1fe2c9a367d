package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"meal-planner/internal/pkg/common"
)

type extractedMember struct {
	Name                common.FlexString   `json:"name"`
	Age                 *common.FlexInt     `json:"age"`
	IsAdult             *bool               `json:"is_adult"`
	DietaryRestrictions []common.FlexString `json:"dietary_restrictions"`
}

// extractedProfile 對話抽取出的家庭資料
type extractedProfile struct {
	Members          []extractedMember   `json:"members"`
	CookingSkill     common.FlexString   `json:"cooking_skill"`
	MaxCookingTime   common.FlexInt      `json:"max_cooking_time"`
	BudgetPerWeek    *float64            `json:"budget_per_week"`
	FavoriteCuisines []common.FlexString `json:"favorite_cuisines"`
	Dislikes         []common.FlexString `json:"dislikes"`
	KitchenEquipment []common.FlexString `json:"kitchen_equipment"`
}

func (e *extractedProfile) toProfile() *common.HouseholdProfile {
	h := &common.HouseholdProfile{
		CookingSkill:     common.CookingSkill(strings.ToLower(strings.TrimSpace(string(e.CookingSkill)))),
		MaxCookingTime:   int(e.MaxCookingTime),
		BudgetPerWeek:    e.BudgetPerWeek,
		FavoriteCuisines: strs(e.FavoriteCuisines),
		Dislikes:         strs(e.Dislikes),
		KitchenEquipment: strs(e.KitchenEquipment),
	}
	for _, m := range e.Members {
		member := common.HouseholdMember{
			Name:                strings.TrimSpace(string(m.Name)),
			DietaryRestrictions: strs(m.DietaryRestrictions),
		}
		if m.Age != nil {
			age := int(*m.Age)
			member.Age = &age
		}
		switch {
		case m.IsAdult != nil:
			member.IsAdult = *m.IsAdult
		default:
			member.IsAdult = member.Age == nil || *member.Age >= 18
		}
		h.Members = append(h.Members, member)
	}
	return h
}

// decodeProfile 解析家庭資料，至少要有一位成員
func decodeProfile(raw string) (*common.HouseholdProfile, error) {
	var e extractedProfile
	if err := common.ParseJSON(raw, &e); err != nil {
		return nil, common.Wrap(common.ErrParseFailure, err)
	}
	if len(e.Members) == 0 {
		return nil, common.Wrap(common.ErrParseFailure, fmt.Errorf("extracted profile has no members"))
	}
	return e.toProfile(), nil
}

type extractedDay struct {
	Portions   common.FlexString `json:"portions"`
	Complexity common.FlexString `json:"complexity"`
	Notes      common.FlexString `json:"notes"`
}

var (
	validPortions = map[common.Portions]bool{
		common.PortionsNormal: true, common.PortionsExtra: true,
		common.PortionsNone: true, common.PortionsReduced: true,
	}
	validComplexity = map[common.Complexity]bool{
		common.ComplexitySimple: true, common.ComplexityNormal: true, common.ComplexityComplex: true,
	}
)

// decodeConstraints 解析每日限制；未知的值改回 normal，七天都會有資料
func decodeConstraints(raw string) (common.WeeklyConstraints, error) {
	var days map[string]extractedDay
	if err := common.ParseJSON(raw, &days); err != nil {
		return nil, common.Wrap(common.ErrParseFailure, err)
	}

	byDay := make(map[string]extractedDay, len(days))
	for k, v := range days {
		byDay[strings.ToLower(strings.TrimSpace(k))] = v
	}

	out := make(common.WeeklyConstraints, len(common.Weekdays))
	for _, day := range common.Weekdays {
		d := byDay[day]
		c := common.DayConstraint{
			Portions:   common.Portions(strings.ToLower(strings.TrimSpace(string(d.Portions)))),
			Complexity: common.Complexity(strings.ToLower(strings.TrimSpace(string(d.Complexity)))),
			Notes:      strings.TrimSpace(string(d.Notes)),
		}
		if !validPortions[c.Portions] {
			c.Portions = common.PortionsNormal
		}
		if !validComplexity[c.Complexity] {
			c.Complexity = common.ComplexityNormal
		}
		out[day] = c
	}
	return out, nil
}

// transcript 把對話轉成 "User: ..." 形式的文字
func transcript(messages []common.ChatMessage) string {
	var b strings.Builder
	for _, m := range messages {
		role := m.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	return b.String()
}

// toMap 轉成可存入 JSON 欄位的 map
func toMap(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func strs(in []common.FlexString) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(string(s)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
