package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pageza/flockfeed/backend/config"
	"github.com/pageza/flockfeed/backend/internal/llm"
	"github.com/pageza/flockfeed/backend/internal/types"
	"go.uber.org/zap"
)

// AuthInfo describes how the advisor authenticates to the model, without
// revealing the secret itself.
type AuthInfo struct {
	AuthMethod     string  `json:"auth_method"`
	Provider       string  `json:"provider"`
	Region         string  `json:"region"`
	ModelID        string  `json:"model_id"`
	BearerTokenSet bool    `json:"bearer_token_set"`
	ConnectTimeout float64 `json:"connect_timeout"`
	ReadTimeout    float64 `json:"read_timeout"`
	MaxAttempts    int     `json:"max_attempts"`
}

// ConfigStatus is "ready" or "configuration_required" with the settings to fix.
type ConfigStatus struct {
	Status      string   `json:"status"`
	Missing     []string `json:"missing,omitempty"`
	Remediation []string `json:"remediation,omitempty"`
}

// AdvisorService builds nutrition prompts, calls the model and decodes the
// replies. It keeps no state between requests.
type AdvisorService struct {
	cfg    config.AdvisorConfig
	client llm.ModelClient
	logger *zap.Logger
	now    func() time.Time
}

// AdvisorOption customises an AdvisorService.
type AdvisorOption func(*AdvisorService)

// WithClock replaces the wall clock used for season detection.
func WithClock(now func() time.Time) AdvisorOption {
	return func(s *AdvisorService) {
		s.now = now
	}
}

func NewAdvisorService(cfg config.AdvisorConfig, client llm.ModelClient, logger *zap.Logger, opts ...AdvisorOption) *AdvisorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AdvisorService{
		cfg:    cfg,
		client: client,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentSeason is the season for today's date.
func (s *AdvisorService) CurrentSeason() string {
	return SeasonForMonth(s.now().Month())
}

// Recommend asks the model for a feed composition for the cohort.
func (s *AdvisorService) Recommend(ctx context.Context, req *types.CohortRequest) (*types.Recommendation, error) {
	if err := s.prepareCohort(req); err != nil {
		return nil, err
	}
	season := s.seasonFor(req)
	return s.recommend(ctx, req, season)
}

// Calculate runs Recommend and then asks the model to split the ration into
// meals.
func (s *AdvisorService) Calculate(ctx context.Context, req *types.CohortRequest) (*types.CalculationResult, error) {
	if err := s.prepareCohort(req); err != nil {
		return nil, err
	}
	season := s.seasonFor(req)
	return s.calculate(ctx, req, season)
}

// WeeklyRecipes runs Calculate and then asks the model for a seven day
// recipe calendar.
func (s *AdvisorService) WeeklyRecipes(ctx context.Context, req *types.CohortRequest) (*types.WeeklyPlan, error) {
	if err := s.prepareCohort(req); err != nil {
		return nil, err
	}
	season := s.seasonFor(req)

	calc, err := s.calculate(ctx, req, season)
	if err != nil {
		return nil, err
	}

	var envelope types.WeeklyEnvelope
	prompt := buildWeeklyPrompt(req, season, calc.NutritionalContext, calc.FeedCalculation)
	if err := s.ask(ctx, "weekly_recipes", prompt, &envelope); err != nil {
		return nil, err
	}

	return &types.WeeklyPlan{
		WeeklyCalendar:     envelope.WeeklyCalendar,
		FeedCalculation:    calc.FeedCalculation,
		NutritionalContext: calc.NutritionalContext,
		RequestInfo:        calc.RequestInfo,
	}, nil
}

// DiseaseRecovery asks the model for a recovery feed plan.
func (s *AdvisorService) DiseaseRecovery(ctx context.Context, req *types.DiseaseRequest) (*types.RecoveryPlan, error) {
	if err := s.prepareDisease(req); err != nil {
		return nil, err
	}
	return s.recovery(ctx, req)
}

// DiseaseWeeklyRecipes runs DiseaseRecovery and then asks for a seven day
// recovery calendar.
func (s *AdvisorService) DiseaseWeeklyRecipes(ctx context.Context, req *types.DiseaseRequest) (*types.RecoveryWeeklyPlan, error) {
	if err := s.prepareDisease(req); err != nil {
		return nil, err
	}
	plan, err := s.recovery(ctx, req)
	if err != nil {
		return nil, err
	}

	var envelope types.WeeklyEnvelope
	if err := s.ask(ctx, "disease_weekly_recipes", buildRecoveryWeeklyPrompt(req, plan), &envelope); err != nil {
		return nil, err
	}

	info := plan.RequestInfo
	plan.RequestInfo = nil
	return &types.RecoveryWeeklyPlan{
		WeeklyCalendar: envelope.WeeklyCalendar,
		RecoveryPlan:   plan,
		RequestInfo:    info,
	}, nil
}

// ValidateCredentials makes a minimal model call. Only a rejection of the
// credentials counts as invalid; other failures mean the credentials were
// accepted as far as we can tell.
func (s *AdvisorService) ValidateCredentials(ctx context.Context) (bool, error) {
	if missing := s.cfg.Missing(); len(missing) > 0 {
		return false, fmt.Errorf("%w: %s is required but not set", ErrNotConfigured, strings.Join(missing, ", "))
	}

	_, err := s.client.Generate(ctx, credentialCheckPrompt)
	if err == nil {
		s.logger.Info("model credentials validated")
		return true, nil
	}
	if llm.IsCredentialError(err) {
		s.logger.Warn("model credentials rejected", zap.Error(err))
		return false, nil
	}
	s.logger.Info("credentials appear valid, got non-credential error", zap.Error(err))
	return true, nil
}

func (s *AdvisorService) AuthInfo() AuthInfo {
	modelID := s.cfg.ModelID
	if s.cfg.Provider == "gemini" {
		modelID = s.cfg.GeminiModel
	}
	return AuthInfo{
		AuthMethod:     "bearer_token",
		Provider:       s.providerName(),
		Region:         s.cfg.Region,
		ModelID:        modelID,
		BearerTokenSet: s.cfg.BearerToken != "" || (s.cfg.Provider == "gemini" && s.cfg.GeminiAPIKey != ""),
		ConnectTimeout: s.cfg.ConnectTimeout.Seconds(),
		ReadTimeout:    s.cfg.ReadTimeout.Seconds(),
		MaxAttempts:    s.cfg.MaxAttempts,
	}
}

// ConfigStatus reports missing settings instead of refusing to start.
func (s *AdvisorService) ConfigStatus() ConfigStatus {
	missing := s.cfg.Missing()
	if len(missing) == 0 {
		return ConfigStatus{Status: "ready"}
	}
	remediation := make([]string, 0, len(missing)+1)
	for _, name := range missing {
		remediation = append(remediation, fmt.Sprintf("Set the %s environment variable (or provide it as a secret file)", name))
	}
	remediation = append(remediation, "Restart the advisor service after updating the configuration")
	return ConfigStatus{
		Status:      "configuration_required",
		Missing:     missing,
		Remediation: remediation,
	}
}

func (s *AdvisorService) providerName() string {
	if s.cfg.Provider == "" {
		return "bedrock"
	}
	return s.cfg.Provider
}

func (s *AdvisorService) prepareCohort(req *types.CohortRequest) error {
	if err := req.Normalize(); err != nil {
		return validationFrom(err)
	}
	return s.requireConfigured()
}

func (s *AdvisorService) prepareDisease(req *types.DiseaseRequest) error {
	if err := req.Normalize(); err != nil {
		return validationFrom(err)
	}
	return s.requireConfigured()
}

func (s *AdvisorService) requireConfigured() error {
	if missing := s.cfg.Missing(); len(missing) > 0 {
		return newError(ErrNotConfigured, "%s is required but not set", strings.Join(missing, ", "))
	}
	return nil
}

func validationFrom(err error) error {
	var fe *types.FieldError
	if errors.As(err, &fe) {
		return invalid("%s %s", fe.Field, fe.Message)
	}
	return invalid("%s", err.Error())
}

func (s *AdvisorService) seasonFor(req *types.CohortRequest) string {
	if req.Season != "" {
		return req.Season
	}
	return s.CurrentSeason()
}

func (s *AdvisorService) requestInfo(req *types.CohortRequest, season string) *types.RequestInfo {
	return &types.RequestInfo{
		ProcessedAt:     s.now().UTC().Format(time.RFC3339),
		ChickenCount:    req.Count,
		Breed:           req.Breed,
		AverageWeightKg: req.AverageWeightKg,
		AgeWeeks:        req.AgeWeeks,
		Environment:     req.Environment,
		Purpose:         req.Purpose,
		SeasonUsed:      season,
	}
}

func (s *AdvisorService) recommend(ctx context.Context, req *types.CohortRequest, season string) (*types.Recommendation, error) {
	var rec types.Recommendation
	if err := s.ask(ctx, "recommendation", buildRecommendationPrompt(req, season), &rec); err != nil {
		return nil, err
	}
	rec.RequestInfo = s.requestInfo(req, season)
	return &rec, nil
}

func (s *AdvisorService) calculate(ctx context.Context, req *types.CohortRequest, season string) (*types.CalculationResult, error) {
	rec, err := s.recommend(ctx, req, season)
	if err != nil {
		return nil, err
	}

	var envelope types.CalculationEnvelope
	if err := s.ask(ctx, "calculation", buildCalculationPrompt(req, season, rec), &envelope); err != nil {
		return nil, err
	}

	info := rec.RequestInfo
	return &types.CalculationResult{
		FeedCalculation:    envelope.FeedCalculation,
		NutritionalContext: withoutRequestInfo(rec),
		RequestInfo:        info,
	}, nil
}

func (s *AdvisorService) recovery(ctx context.Context, req *types.DiseaseRequest) (*types.RecoveryPlan, error) {
	var plan types.RecoveryPlan
	if err := s.ask(ctx, "disease_recovery", buildRecoveryPrompt(req), &plan); err != nil {
		return nil, err
	}
	plan.RequestInfo = &types.RequestInfo{
		ProcessedAt:     s.now().UTC().Format(time.RFC3339),
		ChickenCount:    req.Count,
		Breed:           req.Breed,
		AverageWeightKg: req.AverageWeightKg,
		AgeWeeks:        req.AgeWeeks,
		Disease:         req.Disease,
	}
	return &plan, nil
}

// ask sends one prompt and decodes the reply into out.
func (s *AdvisorService) ask(ctx context.Context, step, prompt string, out any) error {
	start := time.Now()
	raw, err := s.client.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("model call failed",
			zap.String("step", step),
			zap.String("provider", s.client.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return fmt.Errorf("%s: %w", step, err)
	}

	if err := llm.Parse(raw, out); err != nil {
		s.logger.Error("model response could not be parsed",
			zap.String("step", step),
			zap.String("excerpt", llm.Truncate(raw, llm.ExcerptLength)),
			zap.Error(err))
		return fmt.Errorf("%s: %w", step, err)
	}

	s.logger.Info("model call completed",
		zap.String("step", step),
		zap.String("provider", s.client.Name()),
		zap.Duration("duration", time.Since(start)))
	return nil
}
