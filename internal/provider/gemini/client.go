// Package gemini talks to the Gemini generateContent REST API to turn
// meal descriptions or photos into structured calorie estimates, and
// user profiles into daily-goal suggestions. Without an API key the
// client runs in demonstration mode and returns fixed placeholder
// values instead of failing.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"
)

type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

var estimateSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"mealName":          map[string]any{"type": "STRING"},
		"estimatedCalories": map[string]any{"type": "INTEGER"},
		"breakdown": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"itemName": map[string]any{"type": "STRING"},
					"quantity": map[string]any{"type": "STRING"},
					"calories": map[string]any{"type": "INTEGER"},
				},
				"required": []string{"itemName", "quantity", "calories"},
			},
		},
	},
	"required": []string{"mealName", "estimatedCalories", "breakdown"},
}

var goalSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"dailyCalories": map[string]any{"type": "INTEGER"},
		"reasoning":     map[string]any{"type": "STRING"},
	},
	"required": []string{"dailyCalories", "reasoning"},
}

// AnalyzeMeal requests a calorie estimate for a meal described by text,
// an inline image, or both. The parsed estimate is shape-validated
// before it is returned; a well-formed transport response with a
// malformed estimate surfaces as service.ErrInvalidEstimateFormat.
func (c *Client) AnalyzeMeal(ctx context.Context, text string, image *model.ImagePayload) (model.AIEstimate, []byte, error) {
	if strings.TrimSpace(text) == "" && image == nil {
		return model.AIEstimate{}, nil, fmt.Errorf("provide a meal description or an image")
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return demoEstimate(), nil, nil
	}

	parts := make([]part, 0, 2)
	if image != nil {
		if strings.TrimSpace(image.Data) == "" || strings.TrimSpace(image.MimeType) == "" {
			return model.AIEstimate{}, nil, fmt.Errorf("image payload needs data and mime type")
		}
		parts = append(parts, part{InlineData: &inlineData{Data: image.Data, MimeType: image.MimeType}})
	}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, part{Text: text})
	}

	body, err := c.generate(ctx, parts, estimateSchema)
	if err != nil {
		return model.AIEstimate{}, body, err
	}

	jsonText, err := candidateText(body)
	if err != nil {
		return model.AIEstimate{}, body, fmt.Errorf("%w: %v", service.ErrInvalidEstimateFormat, err)
	}
	var est model.AIEstimate
	if err := json.Unmarshal([]byte(jsonText), &est); err != nil {
		return model.AIEstimate{}, body, fmt.Errorf("%w: decode estimate: %v", service.ErrInvalidEstimateFormat, err)
	}
	if err := service.ValidateEstimate(est); err != nil {
		return model.AIEstimate{}, body, err
	}
	return est, body, nil
}

// CalculateGoal requests a daily calorie goal suggestion for the given
// profile. The caller validates the profile before dispatch.
func (c *Client) CalculateGoal(ctx context.Context, profile model.UserProfile) (model.GoalCalculationResult, []byte, error) {
	if err := service.ValidateProfile(profile); err != nil {
		return model.GoalCalculationResult{}, nil, err
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return model.GoalCalculationResult{
			DailyCalories: 2000,
			Reasoning:     "Sample calculation (No API Key provided).",
		}, nil, nil
	}

	prompt := fmt.Sprintf(`Calculate the daily calorie target for a user with the following profile:
- Age: %d
- Gender: %s
- Height: %.0f cm
- Weight: %.0f kg
- Activity Level: %s
- Goal: %s

Provide a JSON response with the recommended 'dailyCalories' (integer) and a brief 'reasoning'.`,
		profile.Age, profile.Gender, profile.HeightCm, profile.WeightKg, profile.ActivityLevel, profile.Goal)

	body, err := c.generate(ctx, []part{{Text: prompt}}, goalSchema)
	if err != nil {
		return model.GoalCalculationResult{}, body, err
	}

	jsonText, err := candidateText(body)
	if err != nil {
		return model.GoalCalculationResult{}, body, fmt.Errorf("%w: %v", service.ErrInvalidGoalResult, err)
	}
	var result model.GoalCalculationResult
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return model.GoalCalculationResult{}, body, fmt.Errorf("%w: decode goal result: %v", service.ErrInvalidGoalResult, err)
	}
	if result.DailyCalories <= 0 {
		return model.GoalCalculationResult{}, body, fmt.Errorf("%w: got %d", service.ErrInvalidGoalResult, result.DailyCalories)
	}
	return result, body, nil
}

func (c *Client) generate(ctx context.Context, parts []part, schema map[string]any) ([]byte, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	modelName := strings.TrimSpace(c.Model)
	if modelName == "" {
		modelName = defaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal Gemini payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", baseURL, modelName, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute Gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read Gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("Gemini request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

func candidateText(body []byte) (string, error) {
	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode Gemini response: %v", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini response has no candidates")
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("Gemini candidate has no text")
	}
	return text, nil
}

// demoEstimate matches the app's no-credential placeholder contract.
func demoEstimate() model.AIEstimate {
	return model.AIEstimate{
		MealName:          "Sample Meal (No API Key)",
		EstimatedCalories: 350,
		Breakdown: []model.AIBreakdownItem{
			{ItemName: "Item 1", Quantity: "100g", Calories: 200},
			{ItemName: "Item 2", Quantity: "1 cup", Calories: 150},
		},
	}
}
