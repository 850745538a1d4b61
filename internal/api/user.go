package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/pageza/flockfeed/backend/internal/types"
)

type UserHandler struct {
	users  service.IUserService
	flocks service.IFlockService
}

func NewUserHandler(users service.IUserService, flocks service.IFlockService) *UserHandler {
	return &UserHandler{users: users, flocks: flocks}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/", h.ListUsers)
		users.GET("/check-username/:username", h.CheckUsername)
		users.GET("/:id", h.GetUser)
		users.GET("/:id/settings", h.GetSettings)
		users.PUT("/:id/settings", h.UpdateSettings)
		users.GET("/:id/chicken-groups", h.ListUserFlocks)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.LoginResponse{
		Message:  "Login successful",
		UserID:   user.ID,
		Username: user.Username,
	})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	offset, limit := q.Page()
	users, err := h.users.ListUsers(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CheckUsername(c *gin.Context) {
	username := c.Param("username")
	available, err := h.users.UsernameAvailable(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Username is available"
	if !available {
		message = "Username is already taken"
	}
	c.JSON(http.StatusOK, types.UsernameAvailability{Username: username, Available: available, Message: message})
}

func (h *UserHandler) GetSettings(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	settings, err := h.users.GetSettings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *UserHandler) UpdateSettings(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	settings, err := h.users.UpdateSettings(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListUserFlocks lists the groups owned by one user.
func (h *UserHandler) ListUserFlocks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, ok := listQuery(c)
	if !ok {
		return
	}
	if _, err := h.users.GetUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	offset, limit := q.Page()
	flocks, err := h.flocks.ListFlocks(c.Request.Context(), &id, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flocks)
}
