package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blacks1k-sc/ParcelVision/internal/config"
	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/extract"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Extractor implements port.VisionExtractor using Google's Gemini API.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor creates a Gemini-based label extractor. The API key is
// mandatory: without it every call would fail, so construction fails
// instead.
func NewExtractor(cfg *config.VisionConfig) (*Extractor, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	return newExtractor(cfg, ""), nil
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API
// endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.VisionConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.VisionConfig, endpoint string) *Extractor {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Extract sends the label photo to Gemini and returns the candidate record.
// Any transport, status, or payload failure wraps domain.ErrRemoteExtraction
// so the caller can fall back to local recognition.
func (e *Extractor) Extract(ctx context.Context, input port.VisionInput) (*domain.Candidate, error) {
	prompt := extract.BuildLabelPrompt()

	mimeType, err := toGeminiMimeType(input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteExtraction, err)
	}

	encoded := base64.StdEncoding.EncodeToString(input.ImageBytes)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      encoded,
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0,
			"topP":            1,
			"topK":            1,
			"maxOutputTokens": 4096,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", domain.ErrRemoteExtraction, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", domain.ErrRemoteExtraction, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling gemini API: %v", domain.ErrRemoteExtraction, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRemoteExtraction, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini API error (status %d): %s",
			domain.ErrRemoteExtraction, resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
}

func toGeminiMimeType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "image/jpeg", nil
	case "image/png":
		return "image/png", nil
	default:
		return "", fmt.Errorf("unsupported content type for extraction: %s", contentType)
	}
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte) (*domain.Candidate, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", domain.ErrRemoteExtraction, err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: empty response from API: no candidates", domain.ErrRemoteExtraction)
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response from API: no parts", domain.ErrRemoteExtraction)
	}

	text := resp.Candidates[0].Content.Parts[0].Text

	fields, err := parseModelJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", domain.ErrRemoteExtraction, err, truncate(text, 500))
	}

	return &domain.Candidate{
		Unit:       fieldOrSentinel(fields, "unit", domain.UnknownValue),
		Name:       fieldOrSentinel(fields, "name", domain.UnknownValue),
		Supplier:   fieldOrSentinel(fields, "supplier", domain.SupplierOther),
		ParcelType: fieldOrSentinel(fields, "parcel_type", domain.UnknownValue),
	}, nil
}

// parseModelJSON recovers the flat field object from model output that may
// be wrapped in markdown fences, surrounded by prose, or truncated before
// the closing brace.
func parseModelJSON(text string) (map[string]interface{}, error) {
	text = stripFences(strings.TrimSpace(text))

	start := strings.Index(text, "{")
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	candidate := text[start:]
	if end := balancedObjectEnd(candidate); end > 0 {
		candidate = candidate[:end]
	}

	fields, err := decodeFlatObject(candidate)
	if err == nil {
		return fields, nil
	}

	// Truncated output: try closing the object.
	if repaired, rerr := decodeFlatObject(candidate + "}"); rerr == nil {
		return repaired, nil
	}
	return nil, fmt.Errorf("parsing model JSON output: %v", err)
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// balancedObjectEnd returns the index one past the brace that closes the
// object opening at position 0, or -1 if the text ends first. String
// literals are skipped so braces inside values do not count.
func balancedObjectEnd(text string) int {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func decodeFlatObject(text string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	for key, val := range raw {
		switch val.(type) {
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("unexpected nested value for %q", key)
		}
	}
	return raw, nil
}

// fieldOrSentinel reads a scalar field, tolerating numeric values the model
// sometimes emits for units.
func fieldOrSentinel(fields map[string]interface{}, key, sentinel string) string {
	val, ok := fields[key]
	if !ok || val == nil {
		return sentinel
	}
	var s string
	switch v := val.(type) {
	case string:
		s = strings.TrimSpace(v)
	case float64:
		s = strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
	default:
		s = strings.TrimSpace(fmt.Sprint(v))
	}
	if s == "" {
		return sentinel
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
