package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/testhelpers"
	"github.com/pageza/flockfeed/backend/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx        context.Context
	db         *gorm.DB
	users      *service.UserService
	stages     *service.StageService
	flocks     *service.FlockService
	feed       *service.FeedService
	records    *service.RecordService
	calculator *service.CalculatorService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return &fixture{
		ctx:        context.Background(),
		db:         db,
		users:      service.NewUserService(db, nil),
		stages:     service.NewStageService(db),
		flocks:     service.NewFlockService(db, nil),
		feed:       service.NewFeedService(db),
		records:    service.NewRecordService(db),
		calculator: service.NewCalculatorService(db, nil),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.users.Register(f.ctx, &types.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		FullName: "Test " + username,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) stage(t *testing.T, name string) *models.GrowthStage {
	t.Helper()
	stage, err := f.stages.CreateStage(f.ctx, &types.CreateGrowthStageRequest{
		Name:       name,
		MinAgeDays: 0,
		MaxAgeDays: 42,
	})
	require.NoError(t, err)
	return stage
}

func (f *fixture) template(t *testing.T, stageID uuid.UUID, pct float64, meals int) *models.FeedingScheduleTemplate {
	t.Helper()
	tmpl, err := f.stages.CreateTemplate(f.ctx, &types.CreateFeedingTemplateRequest{
		GrowthStageID:    stageID,
		FeedPercentage:   pct,
		FeedingFrequency: meals,
	})
	require.NoError(t, err)
	return tmpl
}

func (f *fixture) flock(t *testing.T, userID uuid.UUID, stageID *uuid.UUID, quantity int, weight float64, start string) *models.Flock {
	t.Helper()
	flock, err := f.flocks.CreateFlock(f.ctx, &types.CreateFlockRequest{
		UserID:         userID,
		BatchNumber:    "B-" + uuid.NewString()[:8],
		Breed:          "Rhode Island Red",
		Quantity:       quantity,
		AvgWeightKg:    weight,
		StartDate:      start,
		CurrentStageID: stageID,
	})
	require.NoError(t, err)
	return flock
}

func (f *fixture) growth(t *testing.T, flockID uuid.UUID, date string, weight float64, deaths int) {
	t.Helper()
	_, err := f.records.CreateGrowthRecord(f.ctx, &types.CreateGrowthTrackingRequest{
		GroupID:        flockID,
		TrackingDate:   date,
		AvgWeightKg:    weight,
		MortalityCount: deaths,
	})
	require.NoError(t, err)
}

func (f *fixture) feeding(t *testing.T, flockID uuid.UUID, date string, kg, cost float64) {
	t.Helper()
	_, err := f.records.CreateFeedingRecord(f.ctx, &types.CreateFeedingRecordRequest{
		GroupID:        flockID,
		FeedingDate:    date,
		FeedQuantityKg: kg,
		TotalCost:      cost,
	})
	require.NoError(t, err)
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}
