package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cohort limits and enumerations accepted by the advisor.
const (
	MinChickenCount = 1
	MaxChickenCount = 10000
	MinWeightKg     = 0.1
	MaxWeightKg     = 10.0
	MinAgeWeeks     = 1
	MaxAgeWeeks     = 200

	DefaultEnvironment = "free range"
	DefaultPurpose     = "eggs"
)

var (
	Environments = []string{"free range", "barn", "battery cage", "organic"}
	Purposes     = []string{"eggs", "breeding", "meat production"}
	Seasons      = []string{"spring", "summer", "autumn", "winter"}
	Diseases     = []string{
		"respiratory_infection",
		"coccidiosis",
		"mites_lice",
		"egg_binding",
		"marek_disease",
		"newcastle_disease",
	}
)

// FieldError describes one rejected cohort field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CohortRequest describes a group of birds for the advisor.
type CohortRequest struct {
	Count           int     `json:"count" binding:"required,min=1,max=10000"`
	Breed           string  `json:"breed" binding:"required"`
	AverageWeightKg float64 `json:"average_weight_kg" binding:"required,min=0.1,max=10"`
	AgeWeeks        int     `json:"age_weeks" binding:"required,min=1,max=200"`
	Environment     string  `json:"environment"`
	Purpose         string  `json:"purpose"`
	Season          string  `json:"season,omitempty"`
}

// Normalize trims and lowercases the text fields, applies defaults and
// checks every range and enumeration. It is safe to call more than once.
func (r *CohortRequest) Normalize() error {
	if err := checkBird(r.Count, r.AverageWeightKg, r.AgeWeeks, &r.Breed); err != nil {
		return err
	}

	r.Environment = clean(r.Environment)
	if r.Environment == "" {
		r.Environment = DefaultEnvironment
	}
	if !contains(Environments, r.Environment) {
		return &FieldError{"environment", "must be one of: " + strings.Join(Environments, ", ")}
	}

	r.Purpose = clean(r.Purpose)
	if r.Purpose == "" {
		r.Purpose = DefaultPurpose
	}
	if !contains(Purposes, r.Purpose) {
		return &FieldError{"purpose", "must be one of: " + strings.Join(Purposes, ", ")}
	}

	r.Season = clean(r.Season)
	if r.Season != "" && !contains(Seasons, r.Season) {
		return &FieldError{"season", "must be one of: " + strings.Join(Seasons, ", ")}
	}
	return nil
}

// DiseaseRequest describes a sick cohort for the recovery plan.
type DiseaseRequest struct {
	Count           int     `json:"count" binding:"required,min=1,max=10000"`
	Breed           string  `json:"breed" binding:"required"`
	AverageWeightKg float64 `json:"average_weight_kg" binding:"required,min=0.1,max=10"`
	AgeWeeks        int     `json:"age_weeks" binding:"required,min=1,max=200"`
	Disease         string  `json:"disease" binding:"required"`
}

// Normalize applies the same cleaning and range checks as CohortRequest and
// checks the disease against the supported list.
func (r *DiseaseRequest) Normalize() error {
	if err := checkBird(r.Count, r.AverageWeightKg, r.AgeWeeks, &r.Breed); err != nil {
		return err
	}
	r.Disease = strings.ReplaceAll(clean(r.Disease), " ", "_")
	if !contains(Diseases, r.Disease) {
		return &FieldError{"disease", "must be one of: " + strings.Join(Diseases, ", ")}
	}
	return nil
}

// DiseaseLabel renders the disease key for prompts, e.g. "marek disease".
func (r *DiseaseRequest) DiseaseLabel() string {
	return strings.ReplaceAll(r.Disease, "_", " ")
}

func checkBird(count int, weight float64, age int, breed *string) error {
	if count < MinChickenCount || count > MaxChickenCount {
		return &FieldError{"count", fmt.Sprintf("must be between %d and %d", MinChickenCount, MaxChickenCount)}
	}
	if weight < MinWeightKg || weight > MaxWeightKg {
		return &FieldError{"average_weight_kg", fmt.Sprintf("must be between %.1f and %.1f", MinWeightKg, MaxWeightKg)}
	}
	if age < MinAgeWeeks || age > MaxAgeWeeks {
		return &FieldError{"age_weeks", fmt.Sprintf("must be between %d and %d", MinAgeWeeks, MaxAgeWeeks)}
	}
	*breed = clean(*breed)
	if *breed == "" {
		return &FieldError{"breed", "must not be empty"}
	}
	return nil
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Amount is a number the model may emit as a JSON number or as a string
// such as "30%", "1,200 g" or "10-15 g". A range resolves to its midpoint.
type Amount float64

var (
	amountPattern = regexp.MustCompile(`^(` + numberToken + `)(?:\s*(?:-|–|to)\s*(` + numberToken + `))?`)
	thousandsSep  = regexp.MustCompile(`(\d),(\d{3})(\D|$)`)
)

const numberToken = `-?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`

func (a *Amount) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = Amount(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid amount %s", string(data))
	}
	num, err := parseAmount(str)
	if err != nil {
		return err
	}
	*a = Amount(num)
	return nil
}

func parseAmount(raw string) (float64, error) {
	str := strings.TrimSpace(raw)
	for {
		next := thousandsSep.ReplaceAllString(str, "$1$2$3")
		if next == str {
			break
		}
		str = next
	}

	m := amountPattern.FindStringSubmatch(str)
	if m == nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	// "1,5 kg" is a decimal comma, not a thousands separator
	if rest := str[len(m[0]):]; len(rest) > 1 && rest[0] == ',' && rest[1] >= '0' && rest[1] <= '9' {
		return 0, fmt.Errorf("ambiguous amount %q", raw)
	}

	low, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if m[2] == "" {
		return low, nil
	}
	high, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if high < low {
		return 0, fmt.Errorf("invalid range %q", raw)
	}
	return (low + high) / 2, nil
}

// RequestInfo echoes the inputs and the season the advisor used.
type RequestInfo struct {
	ProcessedAt     string  `json:"processed_at"`
	ChickenCount    int     `json:"chicken_count"`
	Breed           string  `json:"breed"`
	AverageWeightKg float64 `json:"average_weight_kg"`
	AgeWeeks        int     `json:"age_weeks"`
	Environment     string  `json:"environment,omitempty"`
	Purpose         string  `json:"purpose,omitempty"`
	SeasonUsed      string  `json:"season_used,omitempty"`
	Disease         string  `json:"disease,omitempty"`
}

type Vitamins struct {
	VitaminAIUPerKg  float64 `json:"vitamin_a_iu_per_kg" validate:"gte=0"`
	VitaminD3IUPerKg float64 `json:"vitamin_d3_iu_per_kg" validate:"gte=0"`
	VitaminEIUPerKg  float64 `json:"vitamin_e_iu_per_kg" validate:"gte=0"`
}

type Minerals struct {
	SodiumPercent    float64 `json:"sodium_percent" validate:"gte=0,lte=100"`
	ChloridePercent  float64 `json:"chloride_percent" validate:"gte=0,lte=100"`
	MagnesiumPercent float64 `json:"magnesium_percent" validate:"gte=0,lte=100"`
}

type FeedComposition struct {
	CrudeProteinPercent          float64  `json:"crude_protein_percent" validate:"gte=0,lte=100"`
	MetabolizableEnergyKcalPerKg float64  `json:"metabolizable_energy_kcal_per_kg" validate:"gte=0"`
	CrudeFatPercent              float64  `json:"crude_fat_percent" validate:"gte=0,lte=100"`
	CrudeFiberPercent            float64  `json:"crude_fiber_percent" validate:"gte=0,lte=100"`
	CalciumPercent               float64  `json:"calcium_percent" validate:"gte=0,lte=100"`
	PhosphorusPercent            float64  `json:"phosphorus_percent" validate:"gte=0,lte=100"`
	LysinePercent                float64  `json:"lysine_percent" validate:"gte=0,lte=100"`
	MethioninePercent            float64  `json:"methionine_percent" validate:"gte=0,lte=100"`
	Vitamins                     Vitamins `json:"vitamins"`
	Minerals                     Minerals `json:"minerals"`
}

type SeasonalAdjustments struct {
	EnergyAdjustment    string `json:"energy_adjustment"`
	ProteinAdjustment   string `json:"protein_adjustment"`
	WaterConsiderations string `json:"water_considerations"`
}

// Recommendation is the first layer of advice: what the feed should contain
// and how much of it the cohort needs per day.
type Recommendation struct {
	FeedComposition           *FeedComposition    `json:"feed_composition" validate:"required"`
	DailyFeedAmountPerBirdKg  float64             `json:"daily_feed_amount_per_bird_kg" validate:"gte=0"`
	TotalDailyFeedKg          float64             `json:"total_daily_feed_kg" validate:"gte=0"`
	SeasonalAdjustments       SeasonalAdjustments `json:"seasonal_adjustments"`
	AdditionalRecommendations []string            `json:"additional_recommendations"`
	RequestInfo               *RequestInfo        `json:"request_info,omitempty"`
}

// FeedCalculation splits the daily total into meals.
type FeedCalculation struct {
	TotalQuantityPerDayKg  float64  `json:"total_quantity_per_day_kg" validate:"gte=0"`
	QuantityPerChickenG    float64  `json:"quantity_per_chicken_g" validate:"gte=0"`
	QuantityPerMealG       float64  `json:"quantity_per_meal_g" validate:"gte=0"`
	MealsPerDay            int      `json:"meals_per_day" validate:"gte=1"`
	FeedingSchedule        []string `json:"feeding_schedule"`
	StorageRecommendations []string `json:"storage_recommendations"`
}

// CalculationEnvelope is the shape the model returns for the second call.
type CalculationEnvelope struct {
	FeedCalculation *FeedCalculation `json:"feed_calculation" validate:"required"`
}

// CalculationResult merges the meal split with the recommendation it came from.
type CalculationResult struct {
	FeedCalculation    *FeedCalculation `json:"feed_calculation"`
	NutritionalContext *Recommendation  `json:"nutritional_context"`
	RequestInfo        *RequestInfo     `json:"request_info"`
}

type IngredientPortion struct {
	IngredientName          string `json:"ingredient_name" validate:"required"`
	Percentage              Amount `json:"percentage" validate:"gte=0,lte=100"`
	Grams                   Amount `json:"grams" validate:"gte=0"`
	NutritionalContribution string `json:"nutritional_contribution"`
}

type FeedingRecipe struct {
	FeedingTime         string              `json:"feeding_time"`
	QuantityKg          Amount              `json:"quantity_kg" validate:"gte=0"`
	QuantityGrams       Amount              `json:"quantity_grams" validate:"gte=0"`
	NutritionalFocus    string              `json:"nutritional_focus"`
	Recipe              string              `json:"recipe"`
	IngredientBreakdown []IngredientPortion `json:"ingredient_breakdown" validate:"dive"`
}

type DailyRecipe struct {
	Day                   string          `json:"day" validate:"required"`
	TotalDailyKg          Amount          `json:"total_daily_kg" validate:"gte=0"`
	FeedingRecipes        []FeedingRecipe `json:"feeding_recipes" validate:"dive"`
	NutritionalNotes      string          `json:"nutritional_notes"`
	SpecialConsiderations []string        `json:"special_considerations"`
}

type WeeklyCalendar struct {
	DailyRecipes           []DailyRecipe `json:"daily_recipes" validate:"min=1,max=7,dive"`
	WeeklyNutritionalGoals []string      `json:"weekly_nutritional_goals"`
	PreparationNotes       []string      `json:"preparation_notes"`
	SeasonalAdjustments    []string      `json:"seasonal_adjustments"`
}

// WeeklyEnvelope is the shape the model returns for the calendar call.
type WeeklyEnvelope struct {
	WeeklyCalendar *WeeklyCalendar `json:"weekly_calendar" validate:"required"`
}

// WeeklyPlan merges all three layers of advice.
type WeeklyPlan struct {
	WeeklyCalendar     *WeeklyCalendar  `json:"weekly_calendar"`
	FeedCalculation    *FeedCalculation `json:"feed_calculation"`
	NutritionalContext *Recommendation  `json:"nutritional_context"`
	RequestInfo        *RequestInfo     `json:"request_info"`
}

type RecoveryComposition struct {
	CrudeProteinPercent          float64        `json:"crude_protein_percent" validate:"gte=0,lte=100"`
	MetabolizableEnergyKcalPerKg float64        `json:"metabolizable_energy_kcal_per_kg" validate:"gte=0"`
	CalciumPercent               float64        `json:"calcium_percent" validate:"gte=0,lte=100"`
	PhosphorusPercent            float64        `json:"phosphorus_percent" validate:"gte=0,lte=100"`
	CrudeFiberPercent            float64        `json:"crude_fiber_percent" validate:"gte=0,lte=100"`
	ImmuneSupportNutrients       map[string]any `json:"immune_support_nutrients"`
}

type DiseaseTreatment struct {
	TreatmentApproach    string   `json:"treatment_approach"`
	FeedModifications    []string `json:"feed_modifications"`
	Supplements          []string `json:"supplements"`
	EnvironmentalChanges []string `json:"environmental_changes"`
}

// RecoveryPlan is the disease-recovery advice for a sick cohort.
type RecoveryPlan struct {
	RecoveryFeedComposition  *RecoveryComposition `json:"recovery_feed_composition" validate:"required"`
	DailyFeedAmountPerBirdKg float64              `json:"daily_feed_amount_per_bird_kg" validate:"gte=0"`
	TotalDailyFeedKg         float64              `json:"total_daily_feed_kg" validate:"gte=0"`
	DiseaseTreatment         DiseaseTreatment     `json:"disease_treatment"`
	FeedingSchedule          []string             `json:"feeding_schedule"`
	SpecialConsiderations    []string             `json:"special_considerations"`
	RequestInfo              *RequestInfo         `json:"request_info,omitempty"`
}

// RecoveryWeeklyPlan pairs a recovery plan with a seven day calendar.
type RecoveryWeeklyPlan struct {
	WeeklyCalendar *WeeklyCalendar `json:"weekly_calendar"`
	RecoveryPlan   *RecoveryPlan   `json:"recovery_plan"`
	RequestInfo    *RequestInfo    `json:"request_info"`
}
