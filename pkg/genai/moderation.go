// Package genai wraps the Vertex AI moderation model. Every call in here
// fails OPEN: if the model is unreachable or misbehaves, content is treated
// as approved with zero confidence and the degradation is logged, so
// moderation downtime never blocks publishing.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/elnathantransportes-ai/troca/pkg/config"
	"github.com/elnathantransportes-ai/troca/pkg/logger"
)

type ModerationResult struct {
	Approved   bool    `json:"approved"`
	Reason     string  `json:"reason,omitempty"`
	Confidence float64 `json:"confidence"`
}

type QualityResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type Moderator interface {
	ClassifyListing(ctx context.Context, title, description string, imageData []byte) ModerationResult
	ImproveListingCopy(ctx context.Context, title, tradeInterest, draft string) (string, string, error)
	VerifyDocument(ctx context.Context, imageData []byte) QualityResult
}

type Client struct {
	projectID string
	location  string
	modelName string
	credsPath string
	logger    *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		projectID: cfg.GCPProjectID,
		location:  cfg.GCPLocation,
		modelName: cfg.ModerationModel,
		credsPath: cfg.GCPCredentials,
		logger:    log,
	}
}

func (c *Client) newModel(ctx context.Context) (*genai.Client, *genai.GenerativeModel, error) {
	var opts []option.ClientOption
	if c.credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(c.credsPath))
	}

	client, err := genai.NewClient(ctx, c.projectID, c.location, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := client.GenerativeModel(c.modelName)
	model.ResponseMIMEType = "application/json"
	return client, model, nil
}

// ClassifyListing checks a listing against the marketplace content rules.
func (c *Client) ClassifyListing(ctx context.Context, title, description string, imageData []byte) ModerationResult {
	approved := ModerationResult{Approved: true, Reason: "AI service unavailable, auto-approved.", Confidence: 0}

	if c.projectID == "" {
		c.logger.Warn("GCP_PROJECT_ID not set, skipping AI moderation (auto-approve)")
		return approved
	}

	client, model, err := c.newModel(ctx)
	if err != nil {
		c.logger.Warn("Moderation degraded, auto-approving: %v", err)
		return approved
	}
	defer client.Close()

	prompt := fmt.Sprintf(`You are a content moderation AI for a peer-to-peer trading app.
Analyze the following item listing.
Rules:
1. No illegal items (drugs, weapons, stolen goods).
2. No adult/NSFW content.
3. No spam or gibberish.
4. No hate speech or violence.

Item Title: %s
Item Description: %s

Respond with JSON: {"approved": boolean, "reason": string, "confidence": number}`, title, description)

	parts := []genai.Part{genai.Text(prompt)}
	if len(imageData) > 0 {
		parts = append(parts, genai.ImageData("jpeg", imageData))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		c.logger.Warn("Moderation degraded, auto-approving: %v", err)
		return approved
	}

	var result ModerationResult
	if err := decodeJSONResponse(resp, &result); err != nil {
		c.logger.Warn("Moderation returned unparsable response, auto-approving: %v", err)
		return approved
	}
	return result
}

// ImproveListingCopy rewrites a listing title/description draft. Unlike
// moderation this is a convenience feature, so errors are returned to the
// caller instead of silently swallowed.
func (c *Client) ImproveListingCopy(ctx context.Context, title, tradeInterest, draft string) (string, string, error) {
	if c.projectID == "" {
		return title, draft, nil
	}

	client, model, err := c.newModel(ctx)
	if err != nil {
		return "", "", err
	}
	defer client.Close()

	prompt := fmt.Sprintf(`Improve this product listing for a trading app.
Product: %s
Trade interest: %s
Draft: %s

Respond with JSON: {"titulo": string, "descricao": string} where "titulo" is
a catchy title and "descricao" a detailed, persuasive description in the same
language as the draft.`, title, tradeInterest, draft)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate content: %w", err)
	}

	var result struct {
		Titulo    string `json:"titulo"`
		Descricao string `json:"descricao"`
	}
	if err := decodeJSONResponse(resp, &result); err != nil {
		return "", "", err
	}
	return result.Titulo, result.Descricao, nil
}

// VerifyDocument checks that an uploaded identification document is legible.
func (c *Client) VerifyDocument(ctx context.Context, imageData []byte) QualityResult {
	valid := QualityResult{Valid: true}

	if c.projectID == "" {
		return valid
	}

	client, model, err := c.newModel(ctx)
	if err != nil {
		c.logger.Warn("Document check degraded, accepting: %v", err)
		return valid
	}
	defer client.Close()

	prompt := `Analyze this image. Is it a valid identification document (ID card,
Driver's License) and is the text legible?
Respond with JSON: {"valid": boolean, "reason": string}`

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", imageData), genai.Text(prompt))
	if err != nil {
		c.logger.Warn("Document check degraded, accepting: %v", err)
		return valid
	}

	var result QualityResult
	if err := decodeJSONResponse(resp, &result); err != nil {
		c.logger.Warn("Document check returned unparsable response, accepting: %v", err)
		return valid
	}
	return result
}

func decodeJSONResponse(resp *genai.GenerateContentResponse, out interface{}) error {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no response from AI")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return fmt.Errorf("unexpected response format")
	}

	// Strip markdown fencing the model sometimes adds despite the MIME hint.
	clean := strings.TrimSpace(string(text))
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")

	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

var _ Moderator = (*Client)(nil)
