package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"go.uber.org/zap"
)

// ObjectStore is the slice of the S3 client the report export needs.
type ObjectStore interface {
	PutJSON(ctx context.Context, key string, body []byte) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// PerformanceReport is the document written to object storage.
type PerformanceReport struct {
	GeneratedAt time.Time                   `json:"generated_at"`
	Group       *models.Flock               `json:"group"`
	Metrics     *models.PerformanceMetrics  `json:"metrics"`
	History     []models.PerformanceMetrics `json:"history"`
}

// ReportExport tells the caller where the report was written.
type ReportExport struct {
	Key       string                     `json:"key"`
	URL       string                     `json:"url"`
	ExpiresAt time.Time                  `json:"expires_at"`
	Metrics   *models.PerformanceMetrics `json:"metrics"`
}

// ReportService calculates a fresh performance snapshot and uploads it with
// the flock's earlier snapshots as a JSON report.
type ReportService struct {
	calculator ICalculatorService
	records    IRecordService
	flocks     IFlockService
	store      ObjectStore
	prefix     string
	expiry     time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService creates a ReportService. A nil store disables exports.
func NewReportService(calculator ICalculatorService, records IRecordService, flocks IFlockService, store ObjectStore, prefix string, expiry time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &ReportService{
		calculator: calculator,
		records:    records,
		flocks:     flocks,
		store:      store,
		prefix:     prefix,
		expiry:     expiry,
		logger:     logger,
		now:        time.Now,
	}
}

// ExportPerformanceReport computes a snapshot, uploads the report and only
// then stores the snapshot, so a failed export leaves no new metrics row.
func (s *ReportService) ExportPerformanceReport(ctx context.Context, flockID uuid.UUID, calcDate time.Time) (*ReportExport, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	flock, err := s.flocks.GetFlock(ctx, flockID)
	if err != nil {
		return nil, err
	}
	metrics, err := s.calculator.PreviewPerformance(ctx, flockID, calcDate)
	if err != nil {
		return nil, err
	}
	history, err := s.records.ListPerformanceRecords(ctx, &flockID, 0, 1000)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	metrics.CreatedAt = now
	history = append(history, *metrics)
	body, err := json.MarshalIndent(PerformanceReport{
		GeneratedAt: now,
		Group:       flock,
		Metrics:     metrics,
		History:     history,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	key := path.Join(s.prefix, flockID.String(),
		fmt.Sprintf("%s-%s.json", metrics.CalculationDate.Format(models.DateLayout), metrics.ID))
	if err := s.store.PutJSON(ctx, key, body); err != nil {
		return nil, err
	}
	url, err := s.store.GeneratePresignedURL(ctx, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign report url: %w", err)
	}
	if err := s.calculator.SavePerformance(ctx, metrics); err != nil {
		return nil, err
	}

	s.logger.Info("performance report exported", zap.String("flock_id", flockID.String()), zap.String("key", key))
	return &ReportExport{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.expiry),
		Metrics:   metrics,
	}, nil
}
