package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
)

type FlockHandler struct {
	flocks service.IFlockService
}

func NewFlockHandler(flocks service.IFlockService) *FlockHandler {
	return &FlockHandler{flocks: flocks}
}

func (h *FlockHandler) RegisterRoutes(router *gin.RouterGroup) {
	groups := router.Group("/chicken-groups")
	{
		groups.POST("/", h.CreateFlock)
		groups.GET("/", h.ListFlocks)
		groups.GET("/:id", h.GetFlock)
		groups.POST("/:id/deactivate", h.Deactivate)
	}
}

func (h *FlockHandler) CreateFlock(c *gin.Context) {
	var req types.CreateFlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flock, err := h.flocks.CreateFlock(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flock)
}

func (h *FlockHandler) ListFlocks(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	offset, limit := q.Page()
	flocks, err := h.flocks.ListFlocks(c.Request.Context(), optionalID(q.UserID), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flocks)
}

func (h *FlockHandler) GetFlock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	flock, err := h.flocks.GetFlock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flock)
}

func (h *FlockHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	flock, err := h.flocks.Deactivate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group deactivated", "group": flock})
}
