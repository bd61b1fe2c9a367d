package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextMonday(t *testing.T) {
	loc := time.UTC
	cases := map[string]struct {
		now  time.Time
		want string
	}{
		"monday is this week": {time.Date(2026, 10, 12, 15, 30, 0, 0, loc), "2026-10-12"},
		"wednesday":           {time.Date(2026, 10, 14, 9, 0, 0, 0, loc), "2026-10-19"},
		"sunday":              {time.Date(2026, 10, 18, 23, 59, 0, 0, loc), "2026-10-19"},
		"across month":        {time.Date(2026, 10, 30, 0, 0, 0, 0, loc), "2026-11-02"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := NextMonday(tc.now)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
			assert.Equal(t, time.Monday, got.Weekday())
			assert.Zero(t, got.Hour())
		})
	}
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
		D FlexInt `json:"d"`
		E FlexInt `json:"e"`
	}
	require.NoError(t, ParseJSON(`{"a": 15, "b": "25 minutes", "c": 2.5, "d": null, "e": "about an hour"}`, &v))
	assert.Equal(t, FlexInt(15), v.A)
	assert.Equal(t, FlexInt(25), v.B)
	assert.Equal(t, FlexInt(3), v.C)
	assert.Equal(t, FlexInt(0), v.D)
	assert.Equal(t, FlexInt(0), v.E)
}

func TestFlexString(t *testing.T) {
	var v []FlexString
	require.NoError(t, ParseJSON(`["32g", 450, null]`, &v))
	assert.Equal(t, []FlexString{"32g", "450", ""}, v)
}

func TestExtractJSONObject(t *testing.T) {
	text, ok := ExtractJSONObject("```json\n{\"name\": \"Soup\"}\n```")
	assert.True(t, ok)
	assert.Equal(t, `{"name": "Soup"}`, text)

	text, ok = ExtractJSONObject(`Here is your recipe: {"a": {"b": 1}} Enjoy!`)
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, text)

	_, ok = ExtractJSONObject("no json here")
	assert.False(t, ok)
}

func TestParseJSON_RejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	assert.Error(t, ParseJSON(`{"a": 1} {"b": 2}`, &v))
	assert.NoError(t, ParseJSON(`{"a": 1}`, &v))
}

func TestQuoteJSONKeys(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, ParseJSON(QuoteJSONKeys(`{name: "Soup", servings: 4}`), &v))
	assert.Equal(t, "Soup", v["name"])
}

func TestWrapKeepsKind(t *testing.T) {
	err := fmt.Errorf("resolve slot: %w", Wrap(ErrParseFailure, errors.New("bad json")))

	assert.ErrorIs(t, err, ErrParseFailure)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Equal(t, ErrCodeParseFailure, CodeOf(err))
	assert.Contains(t, err.Error(), "bad json")

	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, ErrCodeInternalError, CodeOf(errors.New("boom")))
}

func TestValidateStruct(t *testing.T) {
	h := &HouseholdProfile{CookingSkill: "expert", MaxCookingTime: 30}
	err := ValidateStruct(h)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Contains(t, err.Error(), "members is required")
	assert.Contains(t, err.Error(), "cooking_skill must be one of")

	h = &HouseholdProfile{
		Members:        []HouseholdMember{{Name: "Ana", IsAdult: true}},
		CookingSkill:   SkillBeginner,
		MaxCookingTime: 30,
	}
	assert.NoError(t, ValidateStruct(h))
}

func TestHouseholdDefaultsAndRestrictions(t *testing.T) {
	h := &HouseholdProfile{Members: []HouseholdMember{
		{Name: "Ana", DietaryRestrictions: []string{"Vegetarian", "none"}},
		{Name: "Ben", DietaryRestrictions: []string{"vegetarian", "Gluten-Free"}},
	}}
	h.ApplyDefaults()

	assert.Equal(t, SkillIntermediate, h.CookingSkill)
	assert.Equal(t, 30, h.MaxCookingTime)
	assert.Equal(t, 2, h.Size())
	assert.ElementsMatch(t, []string{"vegetarian", "gluten-free"}, h.DietaryRestrictions())
}

func TestWeeklyConstraintsFor(t *testing.T) {
	w := WeeklyConstraints{"monday": {Portions: PortionsExtra}}
	assert.Equal(t, DayConstraint{Portions: PortionsExtra, Complexity: ComplexityNormal}, w.For("Monday"))
	assert.Equal(t, DayConstraint{Portions: PortionsNormal, Complexity: ComplexityNormal}, w.For("tuesday"))
}
