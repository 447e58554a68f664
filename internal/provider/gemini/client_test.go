package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
)

func candidatePayload(t *testing.T, inner any) string {
	t.Helper()
	text, err := json.Marshal(inner)
	if err != nil {
		t.Fatalf("marshal inner payload: %v", err)
	}
	outer, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": string(text)}}}},
		},
	})
	if err != nil {
		t.Fatalf("marshal candidate payload: %v", err)
	}
	return string(outer)
}

func TestAnalyzeMealParsesCandidate(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := req["generationConfig"]; !ok {
			t.Errorf("expected generationConfig in request")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidatePayload(t, map[string]any{
			"mealName":          "Oatmeal with banana",
			"estimatedCalories": 420,
			"breakdown": []map[string]any{
				{"itemName": "Oatmeal", "quantity": "1 cup", "calories": 300},
				{"itemName": "Banana", "quantity": "1 medium", "calories": 120},
			},
		})))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	est, _, err := c.AnalyzeMeal(context.Background(), "oatmeal with banana", nil)
	if err != nil {
		t.Fatalf("analyze meal: %v", err)
	}
	if est.MealName != "Oatmeal with banana" || est.EstimatedCalories != 420 || len(est.Breakdown) != 2 {
		t.Fatalf("unexpected estimate: %+v", est)
	}
}

func TestAnalyzeMealRejectsMalformedEstimate(t *testing.T) {
	t.Parallel()

	// Shape-valid transport, but the estimate is missing its breakdown.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidatePayload(t, map[string]any{
			"mealName":          "Mystery meal",
			"estimatedCalories": 500,
		})))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, _, err := c.AnalyzeMeal(context.Background(), "mystery", nil)
	if !errors.Is(err, service.ErrInvalidEstimateFormat) {
		t.Fatalf("expected ErrInvalidEstimateFormat, got %v", err)
	}
}

func TestAnalyzeMealSurfacesTransportFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, _, err := c.AnalyzeMeal(context.Background(), "toast", nil)
	if err == nil {
		t.Fatalf("expected transport failure to surface")
	}
	if errors.Is(err, service.ErrInvalidEstimateFormat) {
		t.Fatalf("transport failure must not masquerade as a format error: %v", err)
	}
}

func TestAnalyzeMealDemoModeWithoutKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	est, _, err := c.AnalyzeMeal(context.Background(), "two eggs", nil)
	if err != nil {
		t.Fatalf("demo mode analyze: %v", err)
	}
	if est.MealName != "Sample Meal (No API Key)" || est.EstimatedCalories != 350 || len(est.Breakdown) != 2 {
		t.Fatalf("unexpected demo estimate: %+v", est)
	}
	if err := service.ValidateEstimate(est); err != nil {
		t.Fatalf("demo estimate must validate: %v", err)
	}
}

func TestAnalyzeMealRequiresInput(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if _, _, err := c.AnalyzeMeal(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestAnalyzeMealSendsInlineImage(t *testing.T) {
	t.Parallel()

	var sawInline bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		for _, c := range req.Contents {
			for _, p := range c.Parts {
				if p.InlineData != nil && p.InlineData.MimeType == "image/jpeg" {
					sawInline = true
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidatePayload(t, map[string]any{
			"mealName":          "Plate of pasta",
			"estimatedCalories": 600,
			"breakdown":         []map[string]any{{"itemName": "Pasta", "quantity": "200g", "calories": 600}},
		})))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	image := &model.ImagePayload{Data: "aGVsbG8=", MimeType: "image/jpeg"}
	if _, _, err := c.AnalyzeMeal(context.Background(), "", image); err != nil {
		t.Fatalf("analyze image: %v", err)
	}
	if !sawInline {
		t.Fatalf("expected inline image part in request")
	}
}

func TestCalculateGoalParsesCandidate(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidatePayload(t, map[string]any{
			"dailyCalories": 1800,
			"reasoning":     "Based on TDEE of 2300 minus 500 for weight loss.",
		})))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	result, _, err := c.CalculateGoal(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("calculate goal: %v", err)
	}
	if result.DailyCalories != 1800 || result.Reasoning == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCalculateGoalDemoModeWithoutKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	result, _, err := c.CalculateGoal(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("demo mode goal: %v", err)
	}
	if result.DailyCalories != 2000 || result.Reasoning != "Sample calculation (No API Key provided)." {
		t.Fatalf("unexpected demo result: %+v", result)
	}
}

func TestCalculateGoalRejectsNonPositiveSuggestion(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidatePayload(t, map[string]any{
			"dailyCalories": 0,
			"reasoning":     "nonsense",
		})))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, _, err := c.CalculateGoal(context.Background(), testProfile())
	if !errors.Is(err, service.ErrInvalidGoalResult) {
		t.Fatalf("expected ErrInvalidGoalResult, got %v", err)
	}
}

func TestCalculateGoalRejectsIncompleteProfile(t *testing.T) {
	t.Parallel()

	c := &Client{}
	p := testProfile()
	p.Age = 0
	if _, _, err := c.CalculateGoal(context.Background(), p); err == nil {
		t.Fatalf("expected incomplete profile to be rejected before dispatch")
	}
}

func testProfile() model.UserProfile {
	return model.UserProfile{
		Age:           30,
		Gender:        model.GenderMale,
		HeightCm:      180,
		WeightKg:      80,
		ActivityLevel: model.ActivityModerate,
		Goal:          model.GoalLose,
	}
}
