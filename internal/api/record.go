package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/service"
)

// RecordHandler serves the append-only feeding, growth, consumption and
// performance tables. Every list accepts an optional group_id filter.
type RecordHandler struct {
	records service.IRecordService
}

func NewRecordHandler(records service.IRecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

func (h *RecordHandler) RegisterRoutes(router *gin.RouterGroup) {
	feeding := router.Group("/feeding-records")
	feeding.POST("/", createRecord(h.records.CreateFeedingRecord))
	feeding.GET("/", listRecords(h.records.ListFeedingRecords))

	growth := router.Group("/growth-tracking")
	growth.POST("/", createRecord(h.records.CreateGrowthRecord))
	growth.GET("/", listRecords(h.records.ListGrowthRecords))

	consumption := router.Group("/inventory-consumption")
	consumption.POST("/", createRecord(h.records.CreateConsumptionRecord))
	consumption.GET("/", listRecords(h.records.ListConsumptionRecords))

	performance := router.Group("/performance-metrics")
	performance.POST("/", createRecord(h.records.CreatePerformanceRecord))
	performance.GET("/", listRecords(h.records.ListPerformanceRecords))
}

func createRecord[Req, Out any](create func(context.Context, *Req) (*Out, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Req
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		record, err := create(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, record)
	}
}

func listRecords[Out any](list func(context.Context, *uuid.UUID, int, int) ([]Out, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := listQuery(c)
		if !ok {
			return
		}
		offset, limit := q.Page()
		records, err := list(c.Request.Context(), optionalID(q.GroupID), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	}
}
