package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/types"
)

// IUserService defines the interface for account and settings operations
type IUserService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*models.UserSettings, error)
}

// IStageService defines the interface for growth stage reference data
type IStageService interface {
	CreateStage(ctx context.Context, req *types.CreateGrowthStageRequest) (*models.GrowthStage, error)
	GetStage(ctx context.Context, id uuid.UUID) (*models.GrowthStage, error)
	ListStages(ctx context.Context, offset, limit int) ([]models.GrowthStage, error)
	UpdateStage(ctx context.Context, id uuid.UUID, req *types.UpdateGrowthStageRequest) (*models.GrowthStage, error)
	AddRequirement(ctx context.Context, stageID uuid.UUID, req *types.CreateNutritionRequirementRequest) (*models.StageNutritionRequirement, error)
	ListRequirements(ctx context.Context, stageID uuid.UUID) ([]models.StageNutritionRequirement, error)
	CreateTemplate(ctx context.Context, req *types.CreateFeedingTemplateRequest) (*models.FeedingScheduleTemplate, error)
	ListTemplates(ctx context.Context, offset, limit int) ([]models.FeedingScheduleTemplate, error)
}

// IFlockService defines the interface for flock operations
type IFlockService interface {
	CreateFlock(ctx context.Context, req *types.CreateFlockRequest) (*models.Flock, error)
	GetFlock(ctx context.Context, id uuid.UUID) (*models.Flock, error)
	ListFlocks(ctx context.Context, userID *uuid.UUID, offset, limit int) ([]models.Flock, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Flock, error)
}

// IFeedService defines the interface for food types and formulations
type IFeedService interface {
	CreateFoodType(ctx context.Context, req *types.CreateFoodTypeRequest) (*models.FoodType, error)
	GetFoodType(ctx context.Context, id uuid.UUID) (*models.FoodType, error)
	ListFoodTypes(ctx context.Context, offset, limit int) ([]models.FoodType, error)
	UpdateFoodType(ctx context.Context, id uuid.UUID, req *types.UpdateFoodTypeRequest) (*models.FoodType, error)
	AddNutritionFacts(ctx context.Context, foodTypeID uuid.UUID, req *types.CreateNutritionFactsRequest) (*models.NutritionFacts, error)
	ListNutritionFacts(ctx context.Context, foodTypeID uuid.UUID) ([]models.NutritionFacts, error)
	CreateFormulation(ctx context.Context, req *types.CreateFormulationRequest) (*FormulationDetail, error)
	GetFormulation(ctx context.Context, id uuid.UUID) (*FormulationDetail, error)
	ListFormulations(ctx context.Context, offset, limit int) ([]models.FeedFormulation, error)
}

// IRecordService defines the interface for the append-only record tables
type IRecordService interface {
	CreateFeedingRecord(ctx context.Context, req *types.CreateFeedingRecordRequest) (*models.FeedingRecord, error)
	ListFeedingRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.FeedingRecord, error)
	CreateGrowthRecord(ctx context.Context, req *types.CreateGrowthTrackingRequest) (*models.GrowthTrackingRecord, error)
	ListGrowthRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.GrowthTrackingRecord, error)
	CreateConsumptionRecord(ctx context.Context, req *types.CreateConsumptionRequest) (*models.InventoryConsumptionRecord, error)
	ListConsumptionRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.InventoryConsumptionRecord, error)
	CreatePerformanceRecord(ctx context.Context, req *types.CreatePerformanceRequest) (*models.PerformanceMetrics, error)
	ListPerformanceRecords(ctx context.Context, flockID *uuid.UUID, offset, limit int) ([]models.PerformanceMetrics, error)
}

// ICalculatorService defines the interface for the computed flock endpoints
type ICalculatorService interface {
	DailySchedule(ctx context.Context, flockID uuid.UUID, date time.Time) (*DailySchedule, error)
	OptimalFormulation(ctx context.Context, flockID uuid.UUID) (*FormulationDetail, error)
	UpdateMortality(ctx context.Context, flockID uuid.UUID, deaths int, date time.Time) (*MortalityUpdate, error)
	CalculatePerformance(ctx context.Context, flockID uuid.UUID, calcDate time.Time) (*models.PerformanceMetrics, error)
	PreviewPerformance(ctx context.Context, flockID uuid.UUID, calcDate time.Time) (*models.PerformanceMetrics, error)
	SavePerformance(ctx context.Context, metrics *models.PerformanceMetrics) error
}

// IReportService defines the interface for performance report export
type IReportService interface {
	ExportPerformanceReport(ctx context.Context, flockID uuid.UUID, calcDate time.Time) (*ReportExport, error)
}

// IAdvisorService defines the interface for the nutrition advisor
type IAdvisorService interface {
	Recommend(ctx context.Context, req *types.CohortRequest) (*types.Recommendation, error)
	Calculate(ctx context.Context, req *types.CohortRequest) (*types.CalculationResult, error)
	WeeklyRecipes(ctx context.Context, req *types.CohortRequest) (*types.WeeklyPlan, error)
	DiseaseRecovery(ctx context.Context, req *types.DiseaseRequest) (*types.RecoveryPlan, error)
	DiseaseWeeklyRecipes(ctx context.Context, req *types.DiseaseRequest) (*types.RecoveryWeeklyPlan, error)
	ValidateCredentials(ctx context.Context) (bool, error)
	AuthInfo() AuthInfo
	ConfigStatus() ConfigStatus
	CurrentSeason() string
}

var (
	_ IUserService       = (*UserService)(nil)
	_ IStageService      = (*StageService)(nil)
	_ IFlockService      = (*FlockService)(nil)
	_ IFeedService       = (*FeedService)(nil)
	_ IRecordService     = (*RecordService)(nil)
	_ ICalculatorService = (*CalculatorService)(nil)
	_ IReportService     = (*ReportService)(nil)
	_ IAdvisorService    = (*AdvisorService)(nil)
)
