package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
)

// StageHandler serves growth stages, their nutrition requirements and the
// feeding templates attached to them.
type StageHandler struct {
	stages service.IStageService
}

func NewStageHandler(stages service.IStageService) *StageHandler {
	return &StageHandler{stages: stages}
}

func (h *StageHandler) RegisterRoutes(router *gin.RouterGroup) {
	stages := router.Group("/growth-stages")
	{
		stages.POST("/", h.CreateStage)
		stages.GET("/", h.ListStages)
		stages.GET("/:id", h.GetStage)
		stages.PUT("/:id", h.UpdateStage)
		stages.POST("/:id/nutrition-requirements", h.AddRequirement)
		stages.GET("/:id/nutrition-requirements", h.ListRequirements)
	}

	templates := router.Group("/feeding-templates")
	{
		templates.POST("/", h.CreateTemplate)
		templates.GET("/", h.ListTemplates)
	}
}

func (h *StageHandler) CreateStage(c *gin.Context) {
	var req types.CreateGrowthStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	stage, err := h.stages.CreateStage(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stage)
}

func (h *StageHandler) ListStages(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	offset, limit := q.Page()
	stages, err := h.stages.ListStages(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stages)
}

func (h *StageHandler) GetStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stage, err := h.stages.GetStage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stage)
}

func (h *StageHandler) UpdateStage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateGrowthStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	stage, err := h.stages.UpdateStage(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stage)
}

func (h *StageHandler) AddRequirement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.CreateNutritionRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	requirement, err := h.stages.AddRequirement(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, requirement)
}

func (h *StageHandler) ListRequirements(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	requirements, err := h.stages.ListRequirements(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requirements)
}

func (h *StageHandler) CreateTemplate(c *gin.Context) {
	var req types.CreateFeedingTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	template, err := h.stages.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *StageHandler) ListTemplates(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	offset, limit := q.Page()
	templates, err := h.stages.ListTemplates(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}
