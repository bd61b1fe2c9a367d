package grocery

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"meal-planner/internal/infrastructure/cache"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlans map[string]*common.MealPlan

func (f fakePlans) Get(ctx context.Context, id string) (*common.MealPlan, error) {
	p, ok := f[id]
	if !ok {
		return nil, common.Wrap(common.ErrNotFound, fmt.Errorf("meal plan %s", id))
	}
	return p, nil
}

type fakeStore struct {
	byPlan  map[string]*common.GroceryList
	upserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byPlan: make(map[string]*common.GroceryList)}
}

func (s *fakeStore) Upsert(ctx context.Context, g *common.GroceryList) error {
	s.upserts++
	if existing, ok := s.byPlan[g.MealPlanID]; ok {
		g.ID = existing.ID
	} else {
		g.ID = fmt.Sprintf("list-%d", len(s.byPlan)+1)
	}
	cp := *g
	s.byPlan[g.MealPlanID] = &cp
	return nil
}

func (s *fakeStore) Get(ctx context.Context, id string) (*common.GroceryList, error) {
	for _, g := range s.byPlan {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *fakeStore) GetByMealPlan(ctx context.Context, mealPlanID string) (*common.GroceryList, error) {
	g, ok := s.byPlan[mealPlanID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return g, nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) (string, error) {
	for planID, g := range s.byPlan {
		if g.ID == id {
			delete(s.byPlan, planID)
			return planID, nil
		}
	}
	return "", common.ErrNotFound
}

func newTestService(store *fakeStore) (*Service, *cache.Memory) {
	mem := cache.NewMemory(&config.CacheConfig{MaxSize: 10, TTL: time.Minute})
	return NewService(fakePlans{"plan-1": samplePlan()}, store, mem, time.Minute), mem
}

func TestService_GenerateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc, mem := newTestService(store)
	defer mem.Close()

	first, err := svc.Generate(ctx, "plan-1")
	require.NoError(t, err)
	second, err := svc.Generate(ctx, "plan-1")
	require.NoError(t, err)

	a, _ := json.Marshal(first.Items)
	b, _ := json.Marshal(second.Items)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.byPlan, 1)
	assert.Nil(t, second.TotalEstimatedCost)

	assert.Equal(t, []string{"3.0 cups rice"}, second.Items[CategoryPantry])
	assert.Equal(t, []string{"3 tomato"}, second.Items[CategoryProduce])
}

func TestService_GenerateMissingPlan(t *testing.T) {
	svc, mem := newTestService(newFakeStore())
	defer mem.Close()

	_, err := svc.Generate(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestService_GetByMealPlanUsesCache(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc, mem := newTestService(store)
	defer mem.Close()

	generated, err := svc.Generate(ctx, "plan-1")
	require.NoError(t, err)

	// 即使儲存層資料消失，快取仍可回應
	delete(store.byPlan, "plan-1")
	got, err := svc.GetByMealPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, generated.Items, got.Items)
}

func TestService_DeleteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc, mem := newTestService(store)
	defer mem.Close()

	generated, err := svc.Generate(ctx, "plan-1")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, generated.ID))

	_, err = svc.GetByMealPlan(ctx, "plan-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
