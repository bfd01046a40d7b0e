package genai

import (
	"context"
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"

	"github.com/elnathantransportes-ai/troca/pkg/config"
	"github.com/elnathantransportes-ai/troca/pkg/logger"
)

func respWithText(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}}},
		},
	}
}

func TestDecodeJSONResponse(t *testing.T) {
	var result ModerationResult
	err := decodeJSONResponse(respWithText(`{"approved": false, "reason": "weapon", "confidence": 0.97}`), &result)

	assert.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, "weapon", result.Reason)
	assert.InDelta(t, 0.97, result.Confidence, 0.001)
}

func TestDecodeJSONResponseStripsFences(t *testing.T) {
	var result ModerationResult
	err := decodeJSONResponse(respWithText("```json\n{\"approved\": true, \"confidence\": 0.8}\n```"), &result)

	assert.NoError(t, err)
	assert.True(t, result.Approved)
}

func TestDecodeJSONResponseEmpty(t *testing.T) {
	var result ModerationResult
	err := decodeJSONResponse(&genai.GenerateContentResponse{}, &result)

	assert.Error(t, err)
}

func TestClassifyListingApprovesWithoutProject(t *testing.T) {
	client := NewClient(&config.Config{}, logger.New())

	result := client.ClassifyListing(context.Background(), "Bike aro 29", "Bicicleta usada", nil)

	assert.True(t, result.Approved)
	assert.Zero(t, result.Confidence)
}
