package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FlockService manages flocks ("chicken groups" on the wire).
type FlockService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewFlockService(db *gorm.DB, logger *zap.Logger) *FlockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlockService{db: db, logger: logger}
}

// CreateFlock registers a new active flock for an existing user. The current
// quantity starts equal to the placed quantity.
func (s *FlockService) CreateFlock(ctx context.Context, req *types.CreateFlockRequest) (*models.Flock, error) {
	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, invalid("start_date must be YYYY-MM-DD")
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return nil, lookupErr(err, "User")
	}
	if req.CurrentStageID != nil {
		var stage models.GrowthStage
		if err := db.First(&stage, "id = ?", *req.CurrentStageID).Error; err != nil {
			return nil, lookupErr(err, "Growth stage")
		}
	}

	flock := models.Flock{
		UserID:          req.UserID,
		BatchNumber:     strings.TrimSpace(req.BatchNumber),
		Breed:           strings.TrimSpace(req.Breed),
		Quantity:        req.Quantity,
		CurrentQuantity: req.Quantity,
		AvgWeightKg:     req.AvgWeightKg,
		StartDate:       startDate,
		CurrentStageID:  req.CurrentStageID,
		IsActive:        true,
	}
	if err := db.Create(&flock).Error; err != nil {
		return nil, fmt.Errorf("failed to create flock: %w", err)
	}

	s.logger.Info("flock created",
		zap.String("flock_id", flock.ID.String()),
		zap.String("user_id", flock.UserID.String()),
		zap.Int("quantity", flock.Quantity))
	return &flock, nil
}

func (s *FlockService) GetFlock(ctx context.Context, id uuid.UUID) (*models.Flock, error) {
	var flock models.Flock
	if err := s.db.WithContext(ctx).First(&flock, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "Group")
	}
	return &flock, nil
}

// ListFlocks returns flocks, optionally only those owned by userID.
func (s *FlockService) ListFlocks(ctx context.Context, userID *uuid.UUID, offset, limit int) ([]models.Flock, error) {
	query := s.db.WithContext(ctx).Order("created_at")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	flocks := []models.Flock{}
	if err := query.Offset(offset).Limit(limit).Find(&flocks).Error; err != nil {
		return nil, fmt.Errorf("failed to list flocks: %w", err)
	}
	return flocks, nil
}

// Deactivate marks the flock inactive. Its history is kept.
func (s *FlockService) Deactivate(ctx context.Context, id uuid.UUID) (*models.Flock, error) {
	flock, err := s.GetFlock(ctx, id)
	if err != nil {
		return nil, err
	}
	flock.IsActive = false
	if err := s.db.WithContext(ctx).Model(flock).Update("is_active", false).Error; err != nil {
		return nil, fmt.Errorf("failed to deactivate flock: %w", err)
	}
	s.logger.Info("flock deactivated", zap.String("flock_id", id.String()))
	return flock, nil
}
