package service_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportPerformanceReport(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "reporter")
	flock := f.flock(t, user.ID, nil, 100, 1.0, "2024-01-01")
	f.growth(t, flock.ID, "2024-01-01", 1.0, 0)
	f.growth(t, flock.ID, "2024-01-11", 1.5, 1)
	f.feeding(t, flock.ID, "2024-01-05", 50, 25)

	store := new(testhelpers.MockObjectStore)
	var uploaded []byte
	store.On("PutJSON", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "reports/"+flock.ID.String()+"/2024-01-11-")
	}), mock.Anything).Run(func(args mock.Arguments) {
		uploaded = args.Get(2).([]byte)
	}).Return(nil).Once()
	store.On("GeneratePresignedURL", mock.Anything, mock.Anything, 30*time.Minute).
		Return("https://bucket.example/report.json?sig=abc", nil).Once()

	reports := service.NewReportService(f.calculator, f.records, f.flocks, store, "reports", 30*time.Minute, nil)
	export, err := reports.ExportPerformanceReport(f.ctx, flock.ID, date(t, "2024-01-11"))
	require.NoError(t, err)

	assert.Equal(t, "https://bucket.example/report.json?sig=abc", export.URL)
	assert.InDelta(t, 1.0, export.Metrics.MortalityRate, 1e-9)

	var report service.PerformanceReport
	require.NoError(t, json.Unmarshal(uploaded, &report))
	assert.Equal(t, flock.ID, report.Group.ID)
	assert.Len(t, report.History, 1)
	assert.Equal(t, export.Metrics.ID, report.Metrics.ID)

	snapshots, err := f.records.ListPerformanceRecords(f.ctx, &flock.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, export.Metrics.ID, snapshots[0].ID)
	store.AssertExpectations(t)
}

func TestExportWithoutStorage(t *testing.T) {
	f := newFixture(t)
	reports := service.NewReportService(f.calculator, f.records, f.flocks, nil, "reports", 0, nil)

	_, err := reports.ExportPerformanceReport(f.ctx, uuid.New(), time.Now())
	assert.ErrorIs(t, err, service.ErrStorageDisabled)
}

func TestExportUploadFailure(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "uploadfail")
	flock := f.flock(t, user.ID, nil, 10, 1.0, "2024-01-01")
	f.growth(t, flock.ID, "2024-01-02", 1.1, 0)

	store := new(testhelpers.MockObjectStore)
	store.On("PutJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access denied")).Once()

	reports := service.NewReportService(f.calculator, f.records, f.flocks, store, "reports", time.Minute, nil)
	_, err := reports.ExportPerformanceReport(f.ctx, flock.ID, date(t, "2024-01-02"))
	assert.Error(t, err)
	store.AssertNotCalled(t, "GeneratePresignedURL", mock.Anything, mock.Anything, mock.Anything)

	snapshots, err := f.records.ListPerformanceRecords(f.ctx, &flock.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestExportPresignFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "presignfail")
	flock := f.flock(t, user.ID, nil, 10, 1.0, "2024-01-01")
	f.growth(t, flock.ID, "2024-01-02", 1.1, 0)

	store := new(testhelpers.MockObjectStore)
	store.On("PutJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	store.On("GeneratePresignedURL", mock.Anything, mock.Anything, time.Minute).Return("", errors.New("no credentials")).Once()

	reports := service.NewReportService(f.calculator, f.records, f.flocks, store, "reports", time.Minute, nil)
	_, err := reports.ExportPerformanceReport(f.ctx, flock.ID, date(t, "2024-01-02"))
	require.Error(t, err)

	snapshots, err := f.records.ListPerformanceRecords(f.ctx, &flock.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
	store.AssertExpectations(t)
}
