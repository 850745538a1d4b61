package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFlock(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "owner")

	flock := f.flock(t, user.ID, nil, 120, 1.2, "2024-04-01")
	assert.Equal(t, 120, flock.CurrentQuantity)
	assert.True(t, flock.IsActive)
	assert.Equal(t, "2024-04-01", flock.StartDate.Format("2006-01-02"))

	_, err := f.flocks.CreateFlock(f.ctx, &types.CreateFlockRequest{
		UserID: uuid.New(), BatchNumber: "X", Breed: "Leghorn", Quantity: 1, StartDate: "2024-04-01",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListFlocksByUserAndDeactivate(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	a1 := f.flock(t, alice.ID, nil, 10, 1, "2024-01-01")
	f.flock(t, alice.ID, nil, 20, 1, "2024-01-02")
	f.flock(t, bob.ID, nil, 30, 1, "2024-01-03")

	all, err := f.flocks.ListFlocks(f.ctx, nil, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := f.flocks.ListFlocks(f.ctx, &alice.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	page, err := f.flocks.ListFlocks(f.ctx, nil, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	deactivated, err := f.flocks.Deactivate(f.ctx, a1.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	stored, err := f.flocks.GetFlock(f.ctx, a1.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestRecordsRequireFlock(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "records")
	flock := f.flock(t, user.ID, nil, 10, 1, "2024-01-01")
	other := f.flock(t, user.ID, nil, 10, 1, "2024-01-01")

	f.feeding(t, flock.ID, "2024-01-03", 5, 2)
	f.feeding(t, flock.ID, "2024-01-02", 4, 2)
	f.feeding(t, other.ID, "2024-01-02", 4, 2)

	_, err := f.records.CreateFeedingRecord(f.ctx, &types.CreateFeedingRecordRequest{
		GroupID: uuid.New(), FeedingDate: "2024-01-02", FeedQuantityKg: 1,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.records.CreateGrowthRecord(f.ctx, &types.CreateGrowthTrackingRequest{
		GroupID: flock.ID, TrackingDate: "02/01/2024",
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	records, err := f.records.ListFeedingRecords(f.ctx, &flock.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-02", records[0].FeedingDate.Format("2006-01-02"))

	all, err := f.records.ListFeedingRecords(f.ctx, nil, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ft := f.foodType(t, "Wheat", 0.3)
	_, err = f.records.CreateConsumptionRecord(f.ctx, &types.CreateConsumptionRequest{
		GroupID: flock.ID, FoodTypeID: ft.ID, ConsumptionDate: "2024-01-02", QuantityKg: 3, Cost: 0.9,
	})
	require.NoError(t, err)
	consumption, err := f.records.ListConsumptionRecords(f.ctx, &flock.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, consumption, 1)
}

func TestStageUpdateAndRequirements(t *testing.T) {
	f := newFixture(t)
	stage := f.stage(t, "Starter")

	_, err := f.stages.CreateStage(f.ctx, &types.CreateGrowthStageRequest{Name: "Starter", MaxAgeDays: 10})
	assert.ErrorIs(t, err, service.ErrConflict)

	max := 56
	updated, err := f.stages.UpdateStage(f.ctx, stage.ID, &types.UpdateGrowthStageRequest{MaxAgeDays: &max})
	require.NoError(t, err)
	assert.Equal(t, 56, updated.MaxAgeDays)

	min := 60
	_, err = f.stages.UpdateStage(f.ctx, stage.ID, &types.UpdateGrowthStageRequest{MinAgeDays: &min})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.stages.AddRequirement(f.ctx, stage.ID, &types.CreateNutritionRequirementRequest{ProteinPercent: 20})
	require.NoError(t, err)
	reqs, err := f.stages.ListRequirements(f.ctx, stage.ID)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	_, err = f.stages.CreateTemplate(f.ctx, &types.CreateFeedingTemplateRequest{
		GrowthStageID: uuid.New(), FeedPercentage: 5, FeedingFrequency: 2,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
