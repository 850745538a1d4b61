package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
)

// CalculatorHandler exposes the computed group endpoints.
type CalculatorHandler struct {
	calculator service.ICalculatorService
	reports    service.IReportService
}

func NewCalculatorHandler(calculator service.ICalculatorService, reports service.IReportService) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator, reports: reports}
}

func (h *CalculatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	groups := router.Group("/groups/:id")
	{
		groups.GET("/daily-schedule/:date", h.DailySchedule)
		groups.GET("/optimal-formulation", h.OptimalFormulation)
		groups.POST("/update-mortality", h.UpdateMortality)
		groups.POST("/calculate-performance", h.CalculatePerformance)
		groups.POST("/performance-report", h.PerformanceReport)
	}
}

func (h *CalculatorHandler) DailySchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	date, ok := dateOrToday(c, c.Param("date"))
	if !ok {
		return
	}

	schedule, err := h.calculator.DailySchedule(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *CalculatorHandler) OptimalFormulation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	formulation, err := h.calculator.OptimalFormulation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formulation)
}

func (h *CalculatorHandler) UpdateMortality(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q types.MortalityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	date, err := models.ParseDate(q.DeathDate)
	if err != nil {
		badRequest(c, err)
		return
	}

	update, err := h.calculator.UpdateMortality(c.Request.Context(), id, *q.NewDeaths, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *CalculatorHandler) CalculatePerformance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q types.PerformanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	date, ok := dateOrToday(c, q.CalcDate)
	if !ok {
		return
	}

	metrics, err := h.calculator.CalculatePerformance(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// PerformanceReport computes metrics and exports them to object storage.
func (h *CalculatorHandler) PerformanceReport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q types.PerformanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	date, ok := dateOrToday(c, q.CalcDate)
	if !ok {
		return
	}

	export, err := h.reports.ExportPerformanceReport(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}
