package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
)

const estimatePrompt = `Identify the food in this image. Estimate the portion size shown and give an approximate
nutrition estimate for that portion. If there is no food in the image, say so in "foodName" and set every
nutrient value to 0. Respond with JSON only, using exactly these keys:
{"foodName": string, "servingSize": string, "calories": number, "protein": number, "fat": number, "carbohydrates": number}`

// NutritionEstimate is the only response shape accepted from a vision provider.
type NutritionEstimate struct {
	FoodName      string  `json:"foodName"`
	ServingSize   string  `json:"servingSize"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

// NutritionEstimatorInterface is best-effort: any failure yields nil, never an error.
type NutritionEstimatorInterface interface {
	Estimate(ctx context.Context, image []byte, mimeType string) *NutritionEstimate
	Provider() string
}

type rawEstimate struct {
	FoodName      *string  `json:"foodName"`
	ServingSize   *string  `json:"servingSize"`
	Calories      *float64 `json:"calories"`
	Protein       *float64 `json:"protein"`
	Fat           *float64 `json:"fat"`
	Carbohydrates *float64 `json:"carbohydrates"`
}

// ParseNutritionEstimate decodes a provider reply. Every key must be present and
// every number finite and non-negative.
func ParseNutritionEstimate(content string) (*NutritionEstimate, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(content))))
	var raw rawEstimate
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode estimate: %w", err)
	}
	if dec.More() {
		return nil, errors.New("trailing data after estimate object")
	}

	if raw.FoodName == nil || raw.ServingSize == nil || raw.Calories == nil ||
		raw.Protein == nil || raw.Fat == nil || raw.Carbohydrates == nil {
		return nil, errors.New("estimate is missing required fields")
	}

	for name, v := range map[string]float64{
		"calories":      *raw.Calories,
		"protein":       *raw.Protein,
		"fat":           *raw.Fat,
		"carbohydrates": *raw.Carbohydrates,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("estimate field %s has invalid value %v", name, v)
		}
	}

	return &NutritionEstimate{
		FoodName:      strings.TrimSpace(*raw.FoodName),
		ServingSize:   strings.TrimSpace(*raw.ServingSize),
		Calories:      *raw.Calories,
		Protein:       *raw.Protein,
		Fat:           *raw.Fat,
		Carbohydrates: *raw.Carbohydrates,
	}, nil
}

// NoopNutritionEstimator is used when no provider credentials are configured.
type NoopNutritionEstimator struct{}

func (NoopNutritionEstimator) Estimate(ctx context.Context, image []byte, mimeType string) *NutritionEstimate {
	log.Printf("Image analysis disabled: no estimator credentials configured")
	return nil
}

func (NoopNutritionEstimator) Provider() string { return "none" }

// NewNutritionEstimator picks a provider by name. Missing credentials degrade to the no-op estimator.
func NewNutritionEstimator(provider, apiKey, model string) (NutritionEstimatorInterface, error) {
	if apiKey == "" {
		log.Printf("%s API key not set; image analysis disabled", provider)
		return NoopNutritionEstimator{}, nil
	}

	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAINutritionEstimator(apiKey, model), nil
	case "gemini":
		estimator, err := NewGeminiNutritionEstimator(apiKey, model)
		if err != nil {
			return nil, err
		}
		return estimator, nil
	default:
		return nil, fmt.Errorf("unsupported estimator provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
