package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DailyFeedKg is the flock's daily ration: birds × body weight × share of
// body weight eaten per day.
func DailyFeedKg(quantity int, avgWeightKg, feedPercentage float64) float64 {
	return float64(quantity) * avgWeightKg * (feedPercentage / 100)
}

// PerMealKg splits a daily ration over the meals in a day.
func PerMealKg(dailyKg float64, mealsPerDay int) float64 {
	if mealsPerDay < 1 {
		mealsPerDay = 1
	}
	return dailyKg / float64(mealsPerDay)
}

// PerformanceInput is everything the performance rollup reads.
type PerformanceInput struct {
	Quantity        int
	CurrentQuantity int
	StartDate       time.Time
	CalcDate        time.Time
	Feedings        []models.FeedingRecord
	Growth          []models.GrowthTrackingRecord
}

// ComputePerformance derives the metrics snapshot from a flock's history.
// Growth must hold at least one record.
func ComputePerformance(in PerformanceInput) models.PerformanceMetrics {
	var out models.PerformanceMetrics

	for _, f := range in.Feedings {
		out.TotalFeedKg += f.FeedQuantityKg
		out.TotalFeedCost += f.TotalCost
	}

	growth := make([]models.GrowthTrackingRecord, len(in.Growth))
	copy(growth, in.Growth)
	sort.SliceStable(growth, func(i, j int) bool {
		return growth[i].TrackingDate.Before(growth[j].TrackingDate)
	})

	totalMortality := 0
	for _, g := range growth {
		totalMortality += g.MortalityCount
	}
	if len(growth) > 0 {
		out.WeightGainKg = growth[len(growth)-1].AvgWeightKg - growth[0].AvgWeightKg
	}

	if in.Quantity > 0 {
		out.MortalityRate = float64(totalMortality) / float64(in.Quantity) * 100
	}

	// negative or zero gain makes the ratios meaningless, report 0
	if out.WeightGainKg > 0 && in.CurrentQuantity > 0 {
		denominator := out.WeightGainKg * float64(in.CurrentQuantity)
		out.FCR = out.TotalFeedKg / denominator
		out.CostPerKgGain = out.TotalFeedCost / denominator
	}

	days := elapsedDays(in.StartDate, in.CalcDate)
	if days > 0 {
		out.AvgDailyGain = out.WeightGainKg / float64(days)
	}

	out.CalculationDate = models.DateOnly(in.CalcDate)
	return out
}

// elapsedDays counts whole calendar days from start to end.
func elapsedDays(start, end time.Time) int {
	return int(models.DateOnly(end).Sub(models.DateOnly(start)).Hours() / 24)
}

// DailySchedule is the derived feeding plan for one flock on one date.
type DailySchedule struct {
	GroupID          uuid.UUID  `json:"group_id"`
	Date             string     `json:"date"`
	DailyFeedKg      float64    `json:"daily_feed_kg"`
	FeedingFrequency int        `json:"feeding_frequency"`
	FeedPerMealKg    float64    `json:"feed_per_meal_kg"`
	FeedPercentage   float64    `json:"feed_percentage"`
	FormulationID    *uuid.UUID `json:"formulation_id"`
}

// MortalityUpdate reports the result of recording deaths.
type MortalityUpdate struct {
	Message         string    `json:"message"`
	GroupID         uuid.UUID `json:"group_id"`
	CurrentQuantity int       `json:"current_quantity"`
	RecordID        uuid.UUID `json:"growth_record_id"`
}

// CalculatorService exposes the computed flock endpoints over storage.
type CalculatorService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCalculatorService(db *gorm.DB, logger *zap.Logger) *CalculatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorService{db: db, logger: logger}
}

func (s *CalculatorService) loadFlock(db *gorm.DB, id uuid.UUID) (*models.Flock, error) {
	var flock models.Flock
	if err := db.First(&flock, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "Group")
	}
	return &flock, nil
}

// DailySchedule derives the day's ration from the active feeding template of
// the flock's current stage.
func (s *CalculatorService) DailySchedule(ctx context.Context, flockID uuid.UUID, date time.Time) (*DailySchedule, error) {
	db := s.db.WithContext(ctx)
	flock, err := s.loadFlock(db, flockID)
	if err != nil {
		return nil, err
	}
	if flock.CurrentStageID == nil {
		return nil, notFound("Growth stage for group")
	}

	var template models.FeedingScheduleTemplate
	err = db.Where("growth_stage_id = ? AND is_active = ?", *flock.CurrentStageID, true).
		Order("created_at DESC").
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Feeding schedule for current stage")
		}
		return nil, fmt.Errorf("failed to load feeding template: %w", err)
	}

	daily := DailyFeedKg(flock.CurrentQuantity, flock.AvgWeightKg, template.FeedPercentage)
	return &DailySchedule{
		GroupID:          flock.ID,
		Date:             models.DateOnly(date).Format(models.DateLayout),
		DailyFeedKg:      daily,
		FeedingFrequency: template.FeedingFrequency,
		FeedPerMealKg:    PerMealKg(daily, template.FeedingFrequency),
		FeedPercentage:   template.FeedPercentage,
		FormulationID:    template.FormulationID,
	}, nil
}

// OptimalFormulation returns the active formulation for the flock's current
// stage with its ingredients.
func (s *CalculatorService) OptimalFormulation(ctx context.Context, flockID uuid.UUID) (*FormulationDetail, error) {
	db := s.db.WithContext(ctx)
	flock, err := s.loadFlock(db, flockID)
	if err != nil {
		return nil, err
	}
	if flock.CurrentStageID == nil {
		return nil, notFound("Growth stage for group")
	}

	var formulation models.FeedFormulation
	err = db.Where("growth_stage_id = ? AND is_active = ?", *flock.CurrentStageID, true).
		Order("total_cost_per_kg").
		First(&formulation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Formulation for current stage")
		}
		return nil, fmt.Errorf("failed to load formulation: %w", err)
	}

	lines, err := ingredientLines(db, formulation.ID)
	if err != nil {
		return nil, err
	}
	return &FormulationDetail{FeedFormulation: formulation, Ingredients: lines}, nil
}

// UpdateMortality lowers the live count, never below zero, and appends a
// growth record for the event at the flock's last known weight. That weight
// is the latest growth record on or before the date, not the flock's stored
// AvgWeightKg, which only holds the weight at creation; the stored weight is
// used when no such record exists.
func (s *CalculatorService) UpdateMortality(ctx context.Context, flockID uuid.UUID, deaths int, date time.Time) (*MortalityUpdate, error) {
	if deaths < 0 {
		return nil, invalid("new_deaths must not be negative")
	}

	var result MortalityUpdate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flock, err := s.loadFlock(tx, flockID)
		if err != nil {
			return err
		}

		remaining := flock.CurrentQuantity - deaths
		if remaining < 0 {
			remaining = 0
		}
		if err := tx.Model(flock).Update("current_quantity", remaining).Error; err != nil {
			return fmt.Errorf("failed to update quantity: %w", err)
		}

		weight := flock.AvgWeightKg
		var last models.GrowthTrackingRecord
		err = tx.Where("flock_id = ? AND tracking_date <= ?", flockID, models.DateOnly(date)).
			Order("tracking_date DESC").Order("created_at DESC").
			First(&last).Error
		switch {
		case err == nil:
			weight = last.AvgWeightKg
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to load last growth record: %w", err)
		}

		record := models.GrowthTrackingRecord{
			FlockID:        flockID,
			TrackingDate:   models.DateOnly(date),
			AvgWeightKg:    weight,
			MortalityCount: deaths,
			HealthNotes:    fmt.Sprintf("Mortality update: %d deaths", deaths),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record mortality: %w", err)
		}

		result = MortalityUpdate{
			Message:         fmt.Sprintf("Updated mortality: %d deaths recorded", deaths),
			GroupID:         flockID,
			CurrentQuantity: remaining,
			RecordID:        record.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("mortality recorded",
		zap.String("flock_id", flockID.String()),
		zap.Int("deaths", deaths),
		zap.Int("current_quantity", result.CurrentQuantity))
	return &result, nil
}

// CalculatePerformance computes metrics from the records dated on or before
// calcDate and stores them as a new snapshot.
func (s *CalculatorService) CalculatePerformance(ctx context.Context, flockID uuid.UUID, calcDate time.Time) (*models.PerformanceMetrics, error) {
	metrics, err := s.PreviewPerformance(ctx, flockID, calcDate)
	if err != nil {
		return nil, err
	}
	if err := s.SavePerformance(ctx, metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// PreviewPerformance computes the snapshot CalculatePerformance would store
// without writing it. The returned metrics carry a fresh ID.
func (s *CalculatorService) PreviewPerformance(ctx context.Context, flockID uuid.UUID, calcDate time.Time) (*models.PerformanceMetrics, error) {
	db := s.db.WithContext(ctx)
	flock, err := s.loadFlock(db, flockID)
	if err != nil {
		return nil, err
	}
	calcDate = models.DateOnly(calcDate)

	var feedings []models.FeedingRecord
	if err := db.Where("flock_id = ? AND feeding_date <= ?", flockID, calcDate).
		Order("feeding_date").Find(&feedings).Error; err != nil {
		return nil, fmt.Errorf("failed to load feeding records: %w", err)
	}

	var growth []models.GrowthTrackingRecord
	if err := db.Where("flock_id = ? AND tracking_date <= ?", flockID, calcDate).
		Order("tracking_date").Order("created_at").Find(&growth).Error; err != nil {
		return nil, fmt.Errorf("failed to load growth records: %w", err)
	}
	if len(growth) == 0 {
		return nil, notFound("Growth data")
	}

	metrics := ComputePerformance(PerformanceInput{
		Quantity:        flock.Quantity,
		CurrentQuantity: flock.CurrentQuantity,
		StartDate:       flock.StartDate,
		CalcDate:        calcDate,
		Feedings:        feedings,
		Growth:          growth,
	})
	metrics.ID = uuid.New()
	metrics.FlockID = flockID
	return &metrics, nil
}

// SavePerformance stores a computed snapshot.
func (s *CalculatorService) SavePerformance(ctx context.Context, metrics *models.PerformanceMetrics) error {
	if err := s.db.WithContext(ctx).Create(metrics).Error; err != nil {
		return fmt.Errorf("failed to store performance metrics: %w", err)
	}

	s.logger.Info("performance calculated",
		zap.String("flock_id", metrics.FlockID.String()),
		zap.Float64("fcr", metrics.FCR),
		zap.Float64("mortality_rate", metrics.MortalityRate))
	return nil
}
