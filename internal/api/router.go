package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/config"
	"github.com/pageza/flockfeed/backend/internal/database"
	"github.com/pageza/flockfeed/backend/internal/middleware"
	"github.com/pageza/flockfeed/backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FlockServices groups the services behind the flock management API.
type FlockServices struct {
	Users      service.IUserService
	Stages     service.IStageService
	Flocks     service.IFlockService
	Feeds      service.IFeedService
	Records    service.IRecordService
	Calculator service.ICalculatorService
	Reports    service.IReportService
}

// NewFlockServices builds the gorm-backed services. A nil store leaves
// report export disabled.
func NewFlockServices(db *gorm.DB, store service.ObjectStore, storage config.StorageConfig, logger *zap.Logger) FlockServices {
	if logger == nil {
		logger = zap.NewNop()
	}
	flocks := service.NewFlockService(db, logger.Named("flocks"))
	records := service.NewRecordService(db)
	calculator := service.NewCalculatorService(db, logger.Named("calculator"))

	return FlockServices{
		Users:      service.NewUserService(db, logger.Named("users")),
		Stages:     service.NewStageService(db),
		Flocks:     flocks,
		Feeds:      service.NewFeedService(db),
		Records:    records,
		Calculator: calculator,
		Reports: service.NewReportService(calculator, records, flocks, store,
			storage.ReportPrefix, storage.URLExpiry, logger.Named("reports")),
	}
}

func newEngine(origins []string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(origins))
	router.NoRoute(middleware.NotFound())
	return router
}

// NewFlockRouter wires the flock management routes under /api/v1.
func NewFlockRouter(db *gorm.DB, svc FlockServices, origins []string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := newEngine(origins, logger)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Chicken Feed Flock Management",
			"version": "1.0.0",
			"docs":    "/api/v1",
		})
	})
	router.GET("/health", databaseHealth(db))

	v1 := router.Group("/api/v1")
	NewUserHandler(svc.Users, svc.Flocks).RegisterRoutes(v1)
	NewStageHandler(svc.Stages).RegisterRoutes(v1)
	NewFlockHandler(svc.Flocks).RegisterRoutes(v1)
	NewFeedHandler(svc.Feeds).RegisterRoutes(v1)
	NewRecordHandler(svc.Records).RegisterRoutes(v1)
	NewCalculatorHandler(svc.Calculator, svc.Reports).RegisterRoutes(v1)

	return router
}

// NewAdvisorRouter wires the nutrition advisor routes at the root.
func NewAdvisorRouter(advisor service.IAdvisorService, limiter *middleware.RateLimiter, origins []string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := newEngine(origins, logger)
	NewAdvisorHandler(advisor, limiter).RegisterRoutes(router)
	return router
}

func databaseHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	}
}
