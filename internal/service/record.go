package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/types"
	"gorm.io/gorm"
)

// RecordService appends to and lists the per-flock record tables. Rows are
// never updated or deleted.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

func (s *RecordService) CreateFeedingRecord(ctx context.Context, req *types.CreateFeedingRecordRequest) (*models.FeedingRecord, error) {
	date, err := parseRecordDate("feeding_date", req.FeedingDate)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := requireFlock(db, req.GroupID); err != nil {
		return nil, err
	}
	if req.FormulationID != nil {
		var formulation models.FeedFormulation
		if err := db.First(&formulation, "id = ?", *req.FormulationID).Error; err != nil {
			return nil, lookupErr(err, "Formulation")
		}
	}

	record := models.FeedingRecord{
		FlockID:        req.GroupID,
		FeedingDate:    date,
		FormulationID:  req.FormulationID,
		FeedQuantityKg: req.FeedQuantityKg,
		TotalCost:      req.TotalCost,
		Notes:          req.Notes,
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create feeding record: %w", err)
	}
	return &record, nil
}

func (s *RecordService) ListFeedingRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.FeedingRecord, error) {
	records := []models.FeedingRecord{}
	if err := listByFlock(s.db.WithContext(ctx), "feeding_date", flockID, offset, limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list feeding records: %w", err)
	}
	return records, nil
}

func (s *RecordService) CreateGrowthRecord(ctx context.Context, req *types.CreateGrowthTrackingRequest) (*models.GrowthTrackingRecord, error) {
	date, err := parseRecordDate("tracking_date", req.TrackingDate)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := requireFlock(db, req.GroupID); err != nil {
		return nil, err
	}

	record := models.GrowthTrackingRecord{
		FlockID:        req.GroupID,
		TrackingDate:   date,
		AvgWeightKg:    req.AvgWeightKg,
		MortalityCount: req.MortalityCount,
		HealthNotes:    req.HealthNotes,
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create growth record: %w", err)
	}
	return &record, nil
}

func (s *RecordService) ListGrowthRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.GrowthTrackingRecord, error) {
	records := []models.GrowthTrackingRecord{}
	if err := listByFlock(s.db.WithContext(ctx), "tracking_date", flockID, offset, limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list growth records: %w", err)
	}
	return records, nil
}

func (s *RecordService) CreateConsumptionRecord(ctx context.Context, req *types.CreateConsumptionRequest) (*models.InventoryConsumptionRecord, error) {
	date, err := parseRecordDate("consumption_date", req.ConsumptionDate)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := requireFlock(db, req.GroupID); err != nil {
		return nil, err
	}
	var foodType models.FoodType
	if err := db.First(&foodType, "id = ?", req.FoodTypeID).Error; err != nil {
		return nil, lookupErr(err, "Food type")
	}

	record := models.InventoryConsumptionRecord{
		FlockID:         req.GroupID,
		FoodTypeID:      req.FoodTypeID,
		ConsumptionDate: date,
		QuantityKg:      req.QuantityKg,
		Cost:            req.Cost,
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create consumption record: %w", err)
	}
	return &record, nil
}

func (s *RecordService) ListConsumptionRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.InventoryConsumptionRecord, error) {
	records := []models.InventoryConsumptionRecord{}
	if err := listByFlock(s.db.WithContext(ctx), "consumption_date", flockID, offset, limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list consumption records: %w", err)
	}
	return records, nil
}

// CreatePerformanceRecord stores externally computed metrics as-is.
func (s *RecordService) CreatePerformanceRecord(ctx context.Context, req *types.CreatePerformanceRequest) (*models.PerformanceMetrics, error) {
	date, err := parseRecordDate("calculation_date", req.CalculationDate)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := requireFlock(db, req.GroupID); err != nil {
		return nil, err
	}

	metrics := models.PerformanceMetrics{
		FlockID:         req.GroupID,
		CalculationDate: date,
		TotalFeedKg:     req.TotalFeedKg,
		TotalFeedCost:   req.TotalFeedCost,
		WeightGainKg:    req.WeightGainKg,
		FCR:             req.FCR,
		CostPerKgGain:   req.CostPerKgGain,
		MortalityRate:   req.MortalityRate,
		AvgDailyGain:    req.AvgDailyGain,
	}
	if err := db.Create(&metrics).Error; err != nil {
		return nil, fmt.Errorf("failed to create performance metrics: %w", err)
	}
	return &metrics, nil
}

func (s *RecordService) ListPerformanceRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.PerformanceMetrics, error) {
	records := []models.PerformanceMetrics{}
	if err := listByFlock(s.db.WithContext(ctx), "calculation_date", flockID, offset, limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list performance metrics: %w", err)
	}
	return records, nil
}

func requireFlock(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Flock{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}
	if count == 0 {
		return notFound("Group")
	}
	return nil
}

func listByFlock(db *gorm.DB, dateColumn string, flockID *uuid.UUID, offset, limit int) *gorm.DB {
	if flockID != nil {
		db = db.Where("flock_id = ?", *flockID)
	}
	return db.Order(dateColumn).Order("created_at").Offset(offset).Limit(limit)
}

func parseRecordDate(field, value string) (time.Time, error) {
	date, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, invalid("%s must be YYYY-MM-DD", field)
	}
	return date, nil
}
