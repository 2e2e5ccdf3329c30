package utils

import (
	"context"
	"encoding/base64"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAINutritionEstimator struct {
	client *openai.Client
	model  string
}

func NewOpenAINutritionEstimator(apiKey, model string) *OpenAINutritionEstimator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAINutritionEstimator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAINutritionEstimator) Provider() string { return "openai" }

func (o *OpenAINutritionEstimator) Estimate(ctx context.Context, image []byte, mimeType string) *NutritionEstimate {
	if len(image) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dataURI := "data:image/" + imageFormat(mimeType) + ";base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: estimatePrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("OpenAI image analysis failed: %v", err)
		return nil
	}
	if len(resp.Choices) == 0 {
		log.Printf("OpenAI returned no choices")
		return nil
	}

	estimate, err := ParseNutritionEstimate(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("Failed to parse OpenAI estimate: %v", err)
		return nil
	}
	return estimate
}
