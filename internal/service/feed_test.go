package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) foodType(t *testing.T, name string, cost float64) *models.FoodType {
	t.Helper()
	ft, err := f.feed.CreateFoodType(f.ctx, &types.CreateFoodTypeRequest{Name: name, Category: "grain", CostPerKg: cost})
	require.NoError(t, err)
	return ft
}

func TestCreateFoodTypeConflict(t *testing.T) {
	f := newFixture(t)
	ft := f.foodType(t, "Corn", 0.4)
	assert.Equal(t, "kg", ft.Unit)
	assert.True(t, ft.IsActive)

	_, err := f.feed.CreateFoodType(f.ctx, &types.CreateFoodTypeRequest{Name: "Corn", CostPerKg: 0.5})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestNutritionFactsRequireFoodType(t *testing.T) {
	f := newFixture(t)
	ft := f.foodType(t, "Soybean meal", 0.6)

	_, err := f.feed.AddNutritionFacts(f.ctx, ft.ID, &types.CreateNutritionFactsRequest{ProteinPercent: 44})
	require.NoError(t, err)
	facts, err := f.feed.ListNutritionFacts(f.ctx, ft.ID)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.InDelta(t, 44, facts[0].ProteinPercent, 1e-9)

	_, err = f.feed.AddNutritionFacts(f.ctx, uuid.New(), &types.CreateNutritionFactsRequest{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateFormulation(t *testing.T) {
	f := newFixture(t)
	stage := f.stage(t, "Layer")
	corn := f.foodType(t, "Corn", 0.40)
	soy := f.foodType(t, "Soybean meal", 0.60)
	shell := f.foodType(t, "Oyster shell", 0.20)

	detail, err := f.feed.CreateFormulation(f.ctx, &types.CreateFormulationRequest{
		Name:          "Layer mash",
		GrowthStageID: stage.ID,
		Ingredients: []types.IngredientInput{
			{FoodTypeID: corn.ID, Percentage: 60},
			{FoodTypeID: soy.ID, Percentage: 30},
			{FoodTypeID: shell.ID, Percentage: 10},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.6*0.40+0.3*0.60+0.1*0.20, detail.TotalCostPerKg, 1e-9)
	require.Len(t, detail.Ingredients, 3)
	assert.Equal(t, "Corn", detail.Ingredients[0].FoodTypeName)
	assert.InDelta(t, 60, detail.Ingredients[0].Percentage, 1e-9)

	got, err := f.feed.GetFormulation(f.ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, detail.Ingredients, got.Ingredients)
}

func TestCreateFormulationValidation(t *testing.T) {
	f := newFixture(t)
	stage := f.stage(t, "Grower")
	corn := f.foodType(t, "Corn", 0.40)
	soy := f.foodType(t, "Soybean meal", 0.60)

	cases := map[string]types.CreateFormulationRequest{
		"percentages below 100": {
			Name: "short", GrowthStageID: stage.ID,
			Ingredients: []types.IngredientInput{{FoodTypeID: corn.ID, Percentage: 60}, {FoodTypeID: soy.ID, Percentage: 30}},
		},
		"duplicate food type": {
			Name: "dup", GrowthStageID: stage.ID,
			Ingredients: []types.IngredientInput{{FoodTypeID: corn.ID, Percentage: 50}, {FoodTypeID: corn.ID, Percentage: 50}},
		},
		"no ingredients": {Name: "empty", GrowthStageID: stage.ID},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			req := req
			_, err := f.feed.CreateFormulation(f.ctx, &req)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	_, err := f.feed.CreateFormulation(f.ctx, &types.CreateFormulationRequest{
		Name: "ghost", GrowthStageID: stage.ID,
		Ingredients: []types.IngredientInput{{FoodTypeID: uuid.New(), Percentage: 100}},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.FeedFormulation{}).Count(&count).Error)
	assert.Zero(t, count, "failed creates leave no rows behind")
}

func TestOptimalFormulation(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "optimal")
	stage := f.stage(t, "Chick")
	flock := f.flock(t, user.ID, &stage.ID, 50, 0.3, "2024-03-01")

	_, err := f.calculator.OptimalFormulation(f.ctx, flock.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	corn := f.foodType(t, "Corn", 0.40)
	_, err = f.feed.CreateFormulation(f.ctx, &types.CreateFormulationRequest{
		Name: "Chick starter", GrowthStageID: stage.ID,
		Ingredients: []types.IngredientInput{{FoodTypeID: corn.ID, Percentage: 100}},
	})
	require.NoError(t, err)

	detail, err := f.calculator.OptimalFormulation(f.ctx, flock.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chick starter", detail.Name)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Corn", detail.Ingredients[0].FoodTypeName)
}
