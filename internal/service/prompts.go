package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageza/flockfeed/backend/internal/types"
)

const recommendationPrompt = `You are a poultry nutrition expert. Please provide a detailed nutritional feed composition recommendation for the following chicken group:

Chicken Details:
- Number of birds: %d
- Breed: %s
- Average weight: %g kg per bird
- Age: %d weeks
- Housing environment: %s
- Production purpose: %s
- Current season: %s

Please provide a comprehensive response in JSON format with the following structure:
{
    "feed_composition": {
        "crude_protein_percent": <percentage>,
        "metabolizable_energy_kcal_per_kg": <value>,
        "crude_fat_percent": <percentage>,
        "crude_fiber_percent": <percentage>,
        "calcium_percent": <percentage>,
        "phosphorus_percent": <percentage>,
        "lysine_percent": <percentage>,
        "methionine_percent": <percentage>,
        "vitamins": {
            "vitamin_a_iu_per_kg": <value>,
            "vitamin_d3_iu_per_kg": <value>,
            "vitamin_e_iu_per_kg": <value>
        },
        "minerals": {
            "sodium_percent": <percentage>,
            "chloride_percent": <percentage>,
            "magnesium_percent": <percentage>
        }
    },
    "daily_feed_amount_per_bird_kg": <amount in kg>,
    "total_daily_feed_kg": <total for all birds>,
    "seasonal_adjustments": {
        "energy_adjustment": "<explanation>",
        "protein_adjustment": "<explanation>",
        "water_considerations": "<explanation>"
    },
    "additional_recommendations": [
        "<recommendation 1>",
        "<recommendation 2>",
        "<recommendation 3>"
    ]
}

Consider the bird's age, weight, breed characteristics, housing and seasonal requirements. For laying hens, focus on calcium and protein needs. For meat production, focus on energy and growth. Adjust energy requirements based on the season and provide practical feeding advice. Respond with the JSON object only.`

const calculationPrompt = `You are a poultry feeding specialist. A nutrition expert produced the following recommendation for a flock of %d %s chickens (%g kg average weight, %d weeks old, %s, raised for %s, %s season):

%s

Divide the recommended total daily feed into practical meals for this flock. Respond in JSON format with the following structure:
{
    "feed_calculation": {
        "total_quantity_per_day_kg": <total kg for the flock per day>,
        "quantity_per_chicken_g": <grams per bird per day>,
        "quantity_per_meal_g": <grams per bird per meal>,
        "meals_per_day": <number of meals>,
        "feeding_schedule": ["<HH:MM - description>", "..."],
        "storage_recommendations": ["<advice>", "..."]
    }
}

Respond with the JSON object only.`

const weeklyPrompt = `You are a poultry nutritionist designing practical farm recipes. The flock has %d %s chickens (%g kg average weight, %d weeks old, %s, raised for %s, %s season).

Nutritional target:
%s

Feeding plan:
%s

Create a 7-day feeding calendar that meets the target using common farm ingredients. For every meal give the ingredients with their percentage of the meal and the grams for the whole flock. Respond in JSON format with the following structure:
{
    "weekly_calendar": {
        "daily_recipes": [
            {
                "day": "Monday",
                "total_daily_kg": <kg>,
                "feeding_recipes": [
                    {
                        "feeding_time": "<HH:MM>",
                        "quantity_kg": <kg>,
                        "quantity_grams": <grams>,
                        "nutritional_focus": "<focus>",
                        "recipe": "<short description>",
                        "ingredient_breakdown": [
                            {
                                "ingredient_name": "<name>",
                                "percentage": <percent of meal>,
                                "grams": <grams>,
                                "nutritional_contribution": "<what it adds>"
                            }
                        ]
                    }
                ],
                "nutritional_notes": "<notes>",
                "special_considerations": ["<note>"]
            }
        ],
        "weekly_nutritional_goals": ["<goal>"],
        "preparation_notes": ["<note>"],
        "seasonal_adjustments": ["<note>"]
    }
}

Include all seven days from Monday to Sunday. Respond with the JSON object only.`

const recoveryPrompt = `You are a poultry veterinarian and nutrition expert. A flock is recovering from %s. Please provide a recovery-focused feed plan for the following chicken group:

Chicken Details:
- Number of birds: %d
- Breed: %s
- Average weight: %g kg per bird
- Age: %d weeks
- Condition: %s

Please provide a comprehensive response in JSON format with the following structure:
{
    "recovery_feed_composition": {
        "crude_protein_percent": <percentage>,
        "metabolizable_energy_kcal_per_kg": <value>,
        "calcium_percent": <percentage>,
        "phosphorus_percent": <percentage>,
        "crude_fiber_percent": <percentage>,
        "immune_support_nutrients": {
            "<nutrient>": "<amount and purpose>"
        }
    },
    "daily_feed_amount_per_bird_kg": <amount in kg>,
    "total_daily_feed_kg": <total for all birds>,
    "disease_treatment": {
        "treatment_approach": "<approach>",
        "feed_modifications": ["<modification>"],
        "supplements": ["<supplement>"],
        "environmental_changes": ["<change>"]
    },
    "feeding_schedule": ["<HH:MM - description>"],
    "special_considerations": ["<consideration>"]
}

Focus on nutrition that supports recovery and immunity. Recommend consulting a veterinarian for medication. Respond with the JSON object only.`

const recoveryWeeklyPrompt = `You are a poultry nutritionist designing a recovery diet. The flock has %d %s chickens (%g kg average weight, %d weeks old) recovering from %s.

Recovery plan:
%s

Create a 7-day recovery feeding calendar that follows this plan using common farm ingredients. For every meal give the ingredients with their percentage of the meal and the grams for the whole flock. Respond in JSON format with the following structure:
{
    "weekly_calendar": {
        "daily_recipes": [
            {
                "day": "Day 1",
                "total_daily_kg": <kg>,
                "feeding_recipes": [
                    {
                        "feeding_time": "<HH:MM>",
                        "quantity_kg": <kg>,
                        "quantity_grams": <grams>,
                        "nutritional_focus": "<focus>",
                        "recipe": "<short description>",
                        "ingredient_breakdown": [
                            {
                                "ingredient_name": "<name>",
                                "percentage": <percent of meal>,
                                "grams": <grams>,
                                "nutritional_contribution": "<what it adds>"
                            }
                        ]
                    }
                ],
                "nutritional_notes": "<notes>",
                "special_considerations": ["<note>"]
            }
        ],
        "weekly_nutritional_goals": ["<goal>"],
        "preparation_notes": ["<note>"],
        "seasonal_adjustments": ["<note>"]
    }
}

Include seven days. Respond with the JSON object only.`

// credentialCheckPrompt is sent by ValidateCredentials; any answer will do.
const credentialCheckPrompt = "Reply with the single word: ok"

func buildRecommendationPrompt(req *types.CohortRequest, season string) string {
	return fmt.Sprintf(recommendationPrompt,
		req.Count, req.Breed, req.AverageWeightKg, req.AgeWeeks, req.Environment, req.Purpose, season)
}

func buildCalculationPrompt(req *types.CohortRequest, season string, rec *types.Recommendation) string {
	return fmt.Sprintf(calculationPrompt,
		req.Count, req.Breed, req.AverageWeightKg, req.AgeWeeks, req.Environment, req.Purpose, season,
		asPromptJSON(withoutRequestInfo(rec)))
}

func buildWeeklyPrompt(req *types.CohortRequest, season string, rec *types.Recommendation, calc *types.FeedCalculation) string {
	return fmt.Sprintf(weeklyPrompt,
		req.Count, req.Breed, req.AverageWeightKg, req.AgeWeeks, req.Environment, req.Purpose, season,
		asPromptJSON(withoutRequestInfo(rec)), asPromptJSON(calc))
}

func buildRecoveryPrompt(req *types.DiseaseRequest) string {
	label := req.DiseaseLabel()
	return fmt.Sprintf(recoveryPrompt,
		label, req.Count, req.Breed, req.AverageWeightKg, req.AgeWeeks, label)
}

func buildRecoveryWeeklyPrompt(req *types.DiseaseRequest, plan *types.RecoveryPlan) string {
	trimmed := *plan
	trimmed.RequestInfo = nil
	return fmt.Sprintf(recoveryWeeklyPrompt,
		req.Count, req.Breed, req.AverageWeightKg, req.AgeWeeks, req.DiseaseLabel(),
		asPromptJSON(&trimmed))
}

func withoutRequestInfo(rec *types.Recommendation) *types.Recommendation {
	trimmed := *rec
	trimmed.RequestInfo = nil
	return &trimmed
}

func asPromptJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		// the advisor types always marshal
		return strings.TrimSpace(fmt.Sprintf("%+v", v))
	}
	return string(data)
}
