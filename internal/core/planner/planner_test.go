package planner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *common.HouseholdProfile {
	return &common.HouseholdProfile{
		ID: "house-1",
		Members: []common.HouseholdMember{
			{Name: "Alex", IsAdult: true, DietaryRestrictions: []string{"Vegetarian"}},
			{Name: "Sam", IsAdult: true},
			{Name: "Kid", DietaryRestrictions: []string{"vegetarian", "nut-free"}},
		},
		CookingSkill:     common.SkillBeginner,
		MaxCookingTime:   45,
		FavoriteCuisines: []string{"Thai", "Greek"},
		Dislikes:         []string{"olives"},
	}
}

func TestPlanCuisines(t *testing.T) {
	assert.Equal(t,
		[]string{"American", "Mexican", "Mediterranean", "Italian", "Asian", "American", "Mexican"},
		PlanCuisines(nil))
	assert.Equal(t,
		[]string{"Thai", "Thai", "Thai", "Thai", "Thai", "Thai", "Thai"},
		PlanCuisines([]string{"Thai", "Greek"}))
	assert.Equal(t,
		[]string{"A", "C", "B", "A", "C", "B", "A"},
		PlanCuisines([]string{"A", "B", "C"}))
	assert.Len(t, PlanCuisines([]string{" ", ""}), 7)
}

func TestDayRequirements(t *testing.T) {
	p := testProfile()

	quick := DayRequirements("monday", common.DayConstraint{Portions: common.PortionsNormal, Complexity: common.ComplexityNormal, Notes: "Busy day at work"}, p)
	assert.True(t, quick.Quick)
	assert.Equal(t, QuickMaxTime, quick.MaxTime)

	simple := DayRequirements("tuesday", common.DayConstraint{Complexity: common.ComplexitySimple}, p)
	assert.True(t, simple.Quick)
	assert.Equal(t, QuickMaxTime, simple.MaxTime)

	complex := DayRequirements("wednesday", common.DayConstraint{Complexity: common.ComplexityComplex}, p)
	assert.False(t, complex.Quick)
	assert.Equal(t, 45, complex.MaxTime)

	party := DayRequirements("friday", common.DayConstraint{Notes: "Birthday party"}, p)
	assert.True(t, party.SpecialOccasion)

	extra := DayRequirements("saturday", common.DayConstraint{Portions: common.PortionsExtra}, p)
	assert.True(t, extra.SpecialOccasion)

	gym := DayRequirements("thursday", common.DayConstraint{Notes: "gym after work"}, p)
	assert.True(t, gym.HighProtein)

	reduced := DayRequirements("sunday", common.DayConstraint{Portions: common.PortionsReduced}, p)
	assert.True(t, reduced.Reduced)
	assert.Contains(t, reduced.Special(p), "fewer people eating: keep it light")

	out := DayRequirements("wednesday", common.DayConstraint{Portions: common.PortionsNone, Notes: "Eating out with friends"}, p)
	assert.True(t, out.Skip)
	assert.Equal(t, common.SlotDiningOut, out.Placeholder)

	away := DayRequirements("wednesday", common.DayConstraint{Portions: common.PortionsNone, Notes: "Away"}, p)
	assert.Equal(t, common.SlotNoCooking, away.Placeholder)
}

func TestDayRequirements_QuickKeepsShorterHouseholdLimit(t *testing.T) {
	p := testProfile()
	p.MaxCookingTime = 15
	r := DayRequirements("monday", common.DayConstraint{Complexity: common.ComplexitySimple}, p)
	assert.Equal(t, 15, r.MaxTime)
}

func TestServings(t *testing.T) {
	assert.Equal(t, 5, Servings(3, 1.5))
	assert.Equal(t, 3, Servings(2, 1.5))
	assert.Equal(t, 2, Servings(1, 1.5))
	assert.Equal(t, 6, Servings(4, 0))
	assert.Equal(t, 1, Servings(0, 1.5))
}

func TestSlotRecipeRequirements(t *testing.T) {
	p := testProfile()
	slots := PlanWeek(p, common.WeeklyConstraints{}, 1.5)
	req := slots[0].Recipe(p)

	assert.Equal(t, "Thai", req.Cuisine)
	assert.Equal(t, "dinner", req.MealType)
	assert.Equal(t, 5, req.Servings)
	assert.Equal(t, 45, req.MaxTime)
	assert.Equal(t, []string{"vegetarian", "nut-free"}, req.DietaryRestrictions)
	assert.Equal(t, "beginner", req.SkillLevel)
	assert.Contains(t, req.SpecialRequirements, "avoid: olives")
	assert.Same(t, p, req.Household)
}

type households map[string]*common.HouseholdProfile

func (h households) Get(ctx context.Context, id string) (*common.HouseholdProfile, error) {
	p, ok := h[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeResolver struct {
	mu       sync.Mutex
	requests []recipe.Requirements
	failOn   string
	inFlight int32
	maxSeen  int32
}

func (f *fakeResolver) Resolve(ctx context.Context, req recipe.Requirements) (*common.Recipe, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if req.Cuisine == f.failOn {
		return nil, common.Wrap(common.ErrParseFailure, errors.New("bad json"))
	}
	return &common.Recipe{ID: "r-" + req.Cuisine, Name: req.Cuisine + " dinner", Cuisine: req.Cuisine}, nil
}

type planStore struct {
	mu    sync.Mutex
	plans map[string]*common.MealPlan
}

func (s *planStore) Create(ctx context.Context, p *common.MealPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = p
	return nil
}

func (s *planStore) Get(ctx context.Context, id string) (*common.MealPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (s *planStore) ListByHousehold(ctx context.Context, householdID string, limit int) ([]common.MealPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []common.MealPlan
	for _, p := range s.plans {
		if p.HouseholdID == householdID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *planStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return common.ErrNotFound
	}
	delete(s.plans, id)
	return nil
}

type invalidations []string

func (i *invalidations) Invalidate(ctx context.Context, mealPlanID string) {
	*i = append(*i, mealPlanID)
}

func newPlanner(resolver *fakeResolver, concurrency int) (*Service, *planStore, *invalidations) {
	store := &planStore{plans: make(map[string]*common.MealPlan)}
	inv := &invalidations{}
	p := testProfile()
	p.FavoriteCuisines = []string{"A", "B", "C"}
	svc := NewService(households{"house-1": p}, resolver, store, inv, config.PlannerConfig{Concurrency: concurrency, ServingsFactor: 1.5})
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) } // 週三
	return svc, store, inv
}

func TestGenerate_SevenSlotsWithPlaceholder(t *testing.T) {
	resolver := &fakeResolver{}
	svc, store, _ := newPlanner(resolver, 3)

	plan, err := svc.Generate(context.Background(), "house-1", common.WeeklyConstraints{
		"wednesday": {Portions: common.PortionsNone, Notes: "restaurant night"},
	})
	require.NoError(t, err)

	assert.Len(t, plan.Meals, 7)
	for _, day := range common.Weekdays {
		_, ok := plan.Meals[day]
		assert.True(t, ok, day)
	}
	assert.Equal(t, common.SlotDiningOut, plan.Meals["wednesday"].Kind)
	assert.Nil(t, plan.Meals["wednesday"].Recipe)
	assert.Equal(t, "restaurant night", plan.Meals["wednesday"].Note)
	assert.Len(t, resolver.requests, 6)
	for _, req := range resolver.requests {
		assert.Equal(t, 5, req.Servings)
	}

	assert.Equal(t, "2026-10-19", plan.WeekStartDate)
	assert.Equal(t, "house-1", plan.HouseholdID)
	_, err = store.Get(context.Background(), plan.ID)
	assert.NoError(t, err)
}

func TestGenerate_FailedSlotUsesFallback(t *testing.T) {
	// A, C, B, A, C, B, A：B 落在 wednesday 與 saturday
	resolver := &fakeResolver{failOn: "B"}
	svc, _, _ := newPlanner(resolver, 3)

	plan, err := svc.Generate(context.Background(), "house-1", nil)
	require.NoError(t, err)

	assert.Len(t, plan.Meals, 7)
	wed := plan.Meals["wednesday"]
	assert.Equal(t, common.SlotFallback, wed.Kind)
	assert.Equal(t, "Simple Spaghetti with Marinara", wed.Recipe.Name)
	assert.Equal(t, 5, wed.Recipe.Servings)

	sat := plan.Meals["saturday"]
	assert.Equal(t, common.SlotFallback, sat.Kind)
	assert.Equal(t, "Quick Chicken and Rice", sat.Recipe.Name)

	assert.Equal(t, common.SlotRecipe, plan.Meals["monday"].Kind)
	assert.Equal(t, "r-A", plan.Meals["monday"].Recipe.ID)
}

func TestGenerate_RespectsConcurrencyLimit(t *testing.T) {
	resolver := &fakeResolver{}
	svc, _, _ := newPlanner(resolver, 2)

	_, err := svc.Generate(context.Background(), "house-1", nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&resolver.maxSeen), int32(2))
	assert.Len(t, resolver.requests, 7)
}

func TestGenerate_UnknownHousehold(t *testing.T) {
	svc, _, _ := newPlanner(&fakeResolver{}, 3)
	_, err := svc.Generate(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_InvalidatesGrocery(t *testing.T) {
	svc, _, inv := newPlanner(&fakeResolver{}, 3)
	plan, err := svc.Generate(context.Background(), "house-1", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), plan.ID))
	assert.Equal(t, []string{plan.ID}, []string(*inv))
	assert.ErrorIs(t, svc.Delete(context.Background(), plan.ID), common.ErrNotFound)
}
