package household

import (
	"context"
	"testing"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/infrastructure/persistence"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db, "sqlite"))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewService(persistence.NewHouseholdRepository(db))
}

func validProfile() *common.HouseholdProfile {
	age := 40
	user := "user-1"
	return &common.HouseholdProfile{
		UserID: &user,
		Members: []common.HouseholdMember{
			{Name: " Robin ", Age: &age, DietaryRestrictions: []string{"vegetarian", " "}},
		},
		FavoriteCuisines: []string{"Thai", ""},
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	h, err := svc.Create(ctx, validProfile())
	require.NoError(t, err)

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, common.SkillIntermediate, h.CookingSkill)
	assert.Equal(t, 30, h.MaxCookingTime)
	assert.Equal(t, "Robin", h.Members[0].Name)
	assert.True(t, h.Members[0].IsAdult)
	assert.Equal(t, []string{"vegetarian"}, h.Members[0].DietaryRestrictions)
	assert.Equal(t, []string{"Thai"}, h.FavoriteCuisines)

	byUser, err := svc.GetByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, h.ID, byUser.ID)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t)

	tests := map[string]func(h *common.HouseholdProfile){
		"no members":   func(h *common.HouseholdProfile) { h.Members = nil },
		"unnamed":      func(h *common.HouseholdProfile) { h.Members[0].Name = "  " },
		"bad skill":    func(h *common.HouseholdProfile) { h.CookingSkill = "chef" },
		"negative age": func(h *common.HouseholdProfile) { a := -1; h.Members[0].Age = &a },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			h := validProfile()
			mutate(h)
			_, err := svc.Create(context.Background(), h)
			require.Error(t, err)
			assert.True(t, common.IsValidationError(err))
		})
	}
}

func TestUpdate_KeepsIdentity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.Create(ctx, validProfile())
	require.NoError(t, err)

	changed := validProfile()
	changed.CookingSkill = "Advanced"
	changed.MaxCookingTime = 60
	updated, err := svc.Update(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, common.SkillAdvanced, got.CookingSkill)
	assert.Equal(t, 60, got.MaxCookingTime)

	_, err = svc.Update(ctx, "missing", validProfile())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.Create(ctx, validProfile())
	require.NoError(t, err)
	_, err = svc.Create(ctx, validProfile())
	require.NoError(t, err)

	list, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), common.ErrNotFound)
}
