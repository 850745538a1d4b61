package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
)

// FeedHandler serves the food type catalogue and feed formulations.
type FeedHandler struct {
	feeds service.IFeedService
}

func NewFeedHandler(feeds service.IFeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

func (h *FeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/food-types")
	{
		foods.POST("/", h.CreateFoodType)
		foods.GET("/", h.ListFoodTypes)
		foods.GET("/:id", h.GetFoodType)
		foods.PUT("/:id", h.UpdateFoodType)
		foods.POST("/:id/nutrition-facts", h.AddNutritionFacts)
		foods.GET("/:id/nutrition-facts", h.ListNutritionFacts)
	}

	formulations := router.Group("/formulations")
	{
		formulations.POST("/", h.CreateFormulation)
		formulations.GET("/", h.ListFormulations)
		formulations.GET("/:id", h.GetFormulation)
	}
}

func (h *FeedHandler) CreateFoodType(c *gin.Context) {
	var req types.CreateFoodTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	food, err := h.feeds.CreateFoodType(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *FeedHandler) ListFoodTypes(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	offset, limit := q.Page()
	foods, err := h.feeds.ListFoodTypes(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (h *FeedHandler) GetFoodType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	food, err := h.feeds.GetFoodType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FeedHandler) UpdateFoodType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateFoodTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	food, err := h.feeds.UpdateFoodType(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FeedHandler) AddNutritionFacts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.CreateNutritionFactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	facts, err := h.feeds.AddNutritionFacts(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, facts)
}

func (h *FeedHandler) ListNutritionFacts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	facts, err := h.feeds.ListNutritionFacts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facts)
}

func (h *FeedHandler) CreateFormulation(c *gin.Context) {
	var req types.CreateFormulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	formulation, err := h.feeds.CreateFormulation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, formulation)
}

func (h *FeedHandler) ListFormulations(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	offset, limit := q.Page()
	formulations, err := h.feeds.ListFormulations(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formulations)
}

func (h *FeedHandler) GetFormulation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	formulation, err := h.feeds.GetFormulation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formulation)
}
