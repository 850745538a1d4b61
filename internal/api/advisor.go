package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/internal/middleware"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
)

const advisorVersion = "1.0.0"

type AdvisorHandler struct {
	advisor service.IAdvisorService
	limiter *middleware.RateLimiter
}

// NewAdvisorHandler creates the advisor handler. A nil limiter disables rate
// limiting on the model-backed routes.
func NewAdvisorHandler(advisor service.IAdvisorService, limiter *middleware.RateLimiter) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor, limiter: limiter}
}

func (h *AdvisorHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Info)
	router.GET("/health", h.Health)
	router.GET("/seasons", h.Seasons)
	router.GET("/auth/info", h.AuthInfo)
	router.GET("/auth/validate", h.ValidateCredentials)

	model := router.Group("")
	model.Use(h.limiter.Middleware())
	{
		model.POST("/recommend-feed", h.Recommend)
		model.POST("/calculate-feed", h.Calculate)
		model.POST("/weekly-recipes", h.WeeklyRecipes)
		model.POST("/disease-recovery", h.DiseaseRecovery)
		model.POST("/disease-weekly-recipes", h.DiseaseWeeklyRecipes)
	}
}

// Info describes the service and whether it is ready to call the model.
func (h *AdvisorHandler) Info(c *gin.Context) {
	status := h.advisor.ConfigStatus()
	c.JSON(http.StatusOK, gin.H{
		"service":        "Chicken Feed Nutrition Advisor",
		"version":        advisorVersion,
		"status":         status.Status,
		"missing":        status.Missing,
		"remediation":    status.Remediation,
		"current_season": h.advisor.CurrentSeason(),
		"endpoints": []string{
			"/recommend-feed",
			"/calculate-feed",
			"/weekly-recipes",
			"/disease-recovery",
			"/disease-weekly-recipes",
			"/seasons",
			"/auth/info",
			"/auth/validate",
			"/health",
		},
	})
}

func (h *AdvisorHandler) Health(c *gin.Context) {
	info := h.advisor.AuthInfo()
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"provider": info.Provider,
		"model_id": info.ModelID,
		"config":   h.advisor.ConfigStatus().Status,
	})
}

func (h *AdvisorHandler) Seasons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"seasons":        types.Seasons,
		"current_season": h.advisor.CurrentSeason(),
		"environments":   types.Environments,
		"purposes":       types.Purposes,
		"diseases":       types.Diseases,
	})
}

func (h *AdvisorHandler) AuthInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.advisor.AuthInfo())
}

func (h *AdvisorHandler) ValidateCredentials(c *gin.Context) {
	valid, err := h.advisor.ValidateCredentials(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Credentials are valid"
	if !valid {
		message = "Credentials were rejected by the model provider"
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":     valid,
		"message":   message,
		"auth_info": h.advisor.AuthInfo(),
	})
}

func (h *AdvisorHandler) Recommend(c *gin.Context) {
	var req types.CohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.advisor.Recommend(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdvisorHandler) Calculate(c *gin.Context) {
	var req types.CohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.advisor.Calculate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdvisorHandler) WeeklyRecipes(c *gin.Context) {
	var req types.CohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.advisor.WeeklyRecipes(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdvisorHandler) DiseaseRecovery(c *gin.Context) {
	var req types.DiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.advisor.DiseaseRecovery(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdvisorHandler) DiseaseWeeklyRecipes(c *gin.Context) {
	var req types.DiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.advisor.DiseaseWeeklyRecipes(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
