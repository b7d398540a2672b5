package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spec-kit/nutrition-service/internal/config"
	"github.com/spec-kit/nutrition-service/internal/domain"
	apperrors "github.com/spec-kit/nutrition-service/pkg/util"
)

// Analyzer produces a normalized meal analysis from a JPEG image.
type Analyzer interface {
	AnalyzeMeal(ctx context.Context, jpeg []byte, cuisineHint string) (*domain.MealAnalysis, error)
}

// Client calls the Gemini generateContent REST endpoint. One synchronous call
// per analysis, bounded by the configured timeout, never retried here.
type Client struct {
	apiKey  string
	model   string
	timeout time.Duration
	http    *http.Client
	baseURL string
}

// NewClient builds a Gemini-backed analyzer.
func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout(),
		http:    &http.Client{},
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeMeal sends the image plus the strict-schema prompt, extracts the JSON
// object from the response text and normalizes it into a MealAnalysis.
func (c *Client) AnalyzeMeal(ctx context.Context, jpeg []byte, cuisineHint string) (*domain.MealAnalysis, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: analysisPrompt(cuisineHint)},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(jpeg),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewUpstreamTimeout("vision model", err)
		}
		return nil, apperrors.NewUpstreamFailure("vision model", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("vision model", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamFailure("vision model", fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewUpstreamFailure("vision model", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, apperrors.NewUpstreamFailure("vision model", errors.New("empty response"))
	}

	obj, err := ExtractObject(parsed.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		if errors.Is(err, ErrNoJSONFound) {
			return nil, apperrors.NewNoJSONFound(err)
		}
		return nil, apperrors.NewMalformedJSON(err)
	}

	return NormalizeAnalysis(obj), nil
}

// NormalizeAnalysis forces the raw model object into the fixed analysis shape.
// Per-item and total nutrition pass through the identical mapping rule; the
// total is trusted as supplied, not recomputed from items.
func NormalizeAnalysis(obj map[string]any) *domain.MealAnalysis {
	analysis := &domain.MealAnalysis{Items: []domain.FoodItem{}}

	if rawItems, ok := obj["items"].([]any); ok {
		for _, rawItem := range rawItems {
			item, ok := rawItem.(map[string]any)
			if !ok {
				continue
			}
			food := domain.FoodItem{
				Name:             stringAt(item, "name"),
				Confidence:       numberOr(item, "confidence", 0.9),
				EstimatedWeightG: numberOr(item, "estimated_weight_g", 0),
			}
			if per, ok := item["nutrition_per_portion"].(map[string]any); ok {
				food.NutritionPerPortion = domain.NormalizeNutrition(per)
			}
			analysis.Items = append(analysis.Items, food)
		}
	}

	if total, ok := obj["total_nutrition"].(map[string]any); ok {
		analysis.TotalNutrition = domain.NormalizeNutrition(total)
	}
	return analysis
}

func analysisPrompt(cuisineHint string) string {
	if cuisineHint == "" {
		cuisineHint = "general"
	}
	return fmt.Sprintf(`You are a professional food nutrition analysis engine.

Rules (VERY IMPORTANT):
- Return ONLY valid JSON
- DO NOT use markdown
- DO NOT omit any field
- Use EXACT field names

Schema:

{
"items": [
{
"name": "string",
"confidence": number,
"estimated_weight_g": number,
"nutrition_per_portion": {
        "calories": number,
        "protein_g": number,
        "carbs_g": number,
        "fat_g": number,
        "fiber_g": number,
        "sugar_g": number,
        "sodium_mg": number
}
    }
],
"total_nutrition": {
    "calories": number,
    "protein_g": number,
    "carbs_g": number,
    "fat_g": number,
    "fiber_g": number,
    "sugar_g": number,
    "sodium_mg": number
}
}

Analyze the meal image and fill ALL fields.
Cuisine hint: %s.`, cuisineHint)
}

func stringAt(src map[string]any, key string) string {
	if val, ok := src[key].(string); ok {
		return val
	}
	return ""
}

func numberOr(src map[string]any, key string, fallback float64) float64 {
	if val, ok := src[key].(float64); ok {
		return val
	}
	return fallback
}
