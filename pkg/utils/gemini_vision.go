package utils

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiNutritionEstimator asks a Gemini vision model for a nutrition estimate.
type GeminiNutritionEstimator struct {
	client *genai.Client
	model  string
}

func NewGeminiNutritionEstimator(apiKey, model string) (*GeminiNutritionEstimator, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiNutritionEstimator{client: client, model: model}, nil
}

func (g *GeminiNutritionEstimator) Provider() string { return "gemini" }

func (g *GeminiNutritionEstimator) Estimate(ctx context.Context, image []byte, mimeType string) *NutritionEstimate {
	if len(image) == 0 {
		return nil
	}

	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = nutritionSchema()
	m.SetTemperature(0.1)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.ImageData(imageFormat(mimeType), image), genai.Text(estimatePrompt))
	if err != nil {
		log.Printf("Gemini image analysis failed: %v", err)
		return nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Printf("Gemini returned no content")
		return nil
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		log.Printf("Gemini returned a non-text part")
		return nil
	}

	estimate, err := ParseNutritionEstimate(string(text))
	if err != nil {
		log.Printf("Failed to parse Gemini estimate: %v", err)
		return nil
	}
	return estimate
}

func (g *GeminiNutritionEstimator) Close() error {
	return g.client.Close()
}

func nutritionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"foodName":      {Type: genai.TypeString, Description: "Detected food name"},
			"servingSize":   {Type: genai.TypeString, Description: "Estimated serving size"},
			"calories":      {Type: genai.TypeNumber, Description: "Estimated calories"},
			"protein":       {Type: genai.TypeNumber, Description: "Protein grams"},
			"fat":           {Type: genai.TypeNumber, Description: "Fat grams"},
			"carbohydrates": {Type: genai.TypeNumber, Description: "Carbohydrate grams"},
		},
		Required: []string{"foodName", "servingSize", "calories", "protein", "fat", "carbohydrates"},
	}
}

// imageFormat turns "image/png" into "png"; genai.ImageData adds the prefix back.
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(strings.ToLower(mimeType), "image/")
	if format == "" || format == "jpg" {
		return "jpeg"
	}
	return format
}
