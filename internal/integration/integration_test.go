package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/config"
	"github.com/pageza/flockfeed/backend/internal/api"
	"github.com/pageza/flockfeed/backend/internal/database"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/testhelpers"
	"github.com/pageza/flockfeed/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// TestFlockReportOnPostgres runs a flock from registration to an exported
// performance report against a real postgres container.
func TestFlockReportOnPostgres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupPostgresDatabase(t)
	require.NoError(t, database.SeedReferenceData(db, nil))

	store := new(testhelpers.MockObjectStore)
	store.On("PutJSON", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "reports/")
	}), mock.Anything).Return(nil).Once()
	store.On("GeneratePresignedURL", mock.Anything, mock.Anything, 10*time.Minute).
		Return("https://bucket.example/report.json?sig=abc", nil).Once()

	storage := config.StorageConfig{Bucket: "reports-bucket", ReportPrefix: "reports", URLExpiry: 10 * time.Minute}
	router := api.NewFlockRouter(db, api.NewFlockServices(db, store, storage, nil), nil, nil)

	rr := request(t, router, http.MethodPost, "/api/v1/users/register", types.RegisterRequest{
		Username: "pguser", Email: "PGUser@Example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var user models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "pguser@example.com", user.Email)

	rr = request(t, router, http.MethodPost, "/api/v1/chicken-groups/", types.CreateFlockRequest{
		UserID: user.ID, BatchNumber: "PG-1", Breed: "Sussex", Quantity: 200, AvgWeightKg: 0.05, StartDate: "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var flock models.Flock
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flock))

	for _, body := range []any{
		types.CreateFeedingRecordRequest{GroupID: flock.ID, FeedingDate: "2024-03-05", FeedQuantityKg: 30, TotalCost: 15},
		types.CreateGrowthTrackingRequest{GroupID: flock.ID, TrackingDate: "2024-03-01", AvgWeightKg: 0.05},
		types.CreateGrowthTrackingRequest{GroupID: flock.ID, TrackingDate: "2024-03-11", AvgWeightKg: 0.15, MortalityCount: 2},
	} {
		target := "/api/v1/feeding-records/"
		if _, ok := body.(types.CreateGrowthTrackingRequest); ok {
			target = "/api/v1/growth-tracking/"
		}
		rr = request(t, router, http.MethodPost, target, body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr = request(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/groups/%s/performance-report?calc_date=2024-03-11", flock.ID), nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var export service.ReportExport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &export))
	assert.Equal(t, "https://bucket.example/report.json?sig=abc", export.URL)
	assert.True(t, strings.HasPrefix(export.Key, "reports/"+flock.ID.String()+"/2024-03-11-"))
	require.NotNil(t, export.Metrics)
	assert.InDelta(t, 30.0, export.Metrics.TotalFeedKg, 1e-9)
	assert.InDelta(t, 1.0, export.Metrics.MortalityRate, 1e-9)
	store.AssertExpectations(t)
}
