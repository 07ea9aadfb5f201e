package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient implements OrderParser against the Gemini REST API. Every
// failure mode maps to ErrUnavailable so callers degrade instead of aborting.
type GeminiClient struct {
	apiKey    string
	model     string
	baseURL   string
	menuNames []string
	client    *http.Client
	log       *zap.Logger
}

// NewGeminiClient reads GEMINI_API_KEY / GEMINI_MODEL (and optional
// GEMINI_API_URL for tests). With no key the client still constructs; calls
// just return ErrUnavailable.
func NewGeminiClient(menuNames []string, log *zap.Logger) *GeminiClient {
	baseURL := os.Getenv("GEMINI_API_URL")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiClient{
		apiKey:    os.Getenv("GEMINI_API_KEY"),
		model:     os.Getenv("GEMINI_MODEL"),
		baseURL:   baseURL,
		menuNames: menuNames,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
}

func (g *GeminiClient) ParseOrderText(ctx context.Context, orderText string) ([]ParsedItem, error) {
	if g.apiKey == "" || g.model == "" {
		return nil, fmt.Errorf("missing gemini credentials: %w", ErrUnavailable)
	}
	if strings.TrimSpace(orderText) == "" {
		return nil, fmt.Errorf("empty order text: %w", ErrUnavailable)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": BuildOrderParsePrompt(orderText, g.menuNames)},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.2,
			"maxOutputTokens": 2048,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", ErrUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("gemini request failed", zap.Error(err))
		return nil, fmt.Errorf("gemini request: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		g.log.Warn("gemini api error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return nil, fmt.Errorf("gemini status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	// Gemini response shape
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", ErrUnavailable)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty gemini response: %w", ErrUnavailable)
	}

	return decodeItems(result.Candidates[0].Content.Parts[0].Text)
}

// decodeItems parses the model's text output into items. The prompt demands
// bare JSON; brace extraction rescues the occasional markdown fence anyway.
func decodeItems(output string) ([]ParsedItem, error) {
	if !json.Valid([]byte(output)) {
		output = extractJSON(output)
		if output == "" {
			return nil, fmt.Errorf("non-json model output: %w", ErrUnavailable)
		}
	}

	var parsed struct {
		Items []ParsedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		return nil, fmt.Errorf("decode items: %w", ErrUnavailable)
	}

	items := parsed.Items[:0]
	for _, item := range parsed.Items {
		if strings.TrimSpace(item.Item) == "" {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		items = append(items, item)
	}
	return items, nil
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return ""
	}
	return candidate
}
