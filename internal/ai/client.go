package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"greenhalal/backend/internal/scoring"
)

// Explainer produces a narrative for a scored record.
type Explainer interface {
	Enabled() bool
	Explain(ctx context.Context, input ExplanationInput) (Narrative, error)
}

// Config holds OpenAI configuration parameters.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// ExplanationInput is everything the narrative may draw on.
type ExplanationInput struct {
	Record          scoring.Record
	Result          scoring.Result
	Recommendations []string
	CertificationID string
}

// Client implements the Explainer interface against an OpenAI-compatible chat API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// ErrDisabled reports that no narrative source is configured.
var ErrDisabled = errors.New("ai explainer disabled")

const (
	defaultModel       = "gpt-4.1-mini"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultTemperature = 0.2
	defaultMaxTokens   = 600
	requestTimeout     = 30 * time.Second
)

// NewClient builds a Client, filling unset parameters with defaults.
// It returns ErrDisabled when no API key is configured.
func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrDisabled
	}
	c := &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		apiKey:      key,
		model:       orDefault(strings.TrimSpace(cfg.Model), defaultModel),
		baseURL:     orDefault(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"), defaultBaseURL),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if c.temperature <= 0 {
		c.temperature = defaultTemperature
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	return c, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Enabled reports whether the client can make outbound calls.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Explain requests a narrative for the evaluation.
func (c *Client) Explain(ctx context.Context, input ExplanationInput) (Narrative, error) {
	if c == nil || !c.Enabled() {
		return Narrative{}, ErrDisabled
	}
	content, err := c.complete(ctx, c.buildRequest(input))
	if err != nil {
		return Narrative{}, err
	}
	narrative, err := parseNarrative(content)
	if err != nil {
		return Narrative{}, err
	}
	narrative.Source = c.model
	return narrative, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a halal compliance and sustainability advisor. " +
	"Reply with a strict JSON object containing keys summary and priorities. " +
	"summary is at most three sentences explaining the rating in plain language. " +
	"priorities is an ordered list of at most three concrete next steps drawn from the supplied advisories. " +
	"Never restate or change the numeric scores beyond quoting them. Emit nothing outside the JSON object."

func (c *Client) buildRequest(input ExplanationInput) chatRequest {
	return chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(input)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
}

// complete posts one chat completion and returns the first choice's content.
func (c *Client) complete(ctx context.Context, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// parseNarrative extracts the JSON object from a reply that may be wrapped in a code fence.
func parseNarrative(content string) (Narrative, error) {
	block := jsonObject(content)
	if block == "" {
		return Narrative{}, errors.New("empty narrative")
	}
	var narrative Narrative
	if err := json.Unmarshal([]byte(block), &narrative); err != nil {
		return Narrative{}, fmt.Errorf("parse narrative: %w", err)
	}
	narrative.Summary = strings.TrimSpace(narrative.Summary)
	if narrative.Summary == "" {
		return Narrative{}, errors.New("narrative summary missing")
	}
	narrative.Priorities = compact(narrative.Priorities)
	return narrative, nil
}

func jsonObject(input string) string {
	text := strings.TrimSpace(input)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		if _, body, found := strings.Cut(rest, "\n"); found {
			rest = body
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}

func buildUserPrompt(input ExplanationInput) string {
	rec, res := input.Record, input.Result
	b := &strings.Builder{}
	fmt.Fprintf(b, "Company: %s\n", rec.CompanyName)
	if rec.ProductName != "" {
		fmt.Fprintf(b, "Product: %s\n", rec.ProductName)
	}
	if rec.Country != "" {
		fmt.Fprintf(b, "Country: %s\n", rec.Country)
	}
	if rec.Category != "" {
		fmt.Fprintf(b, "Category: %s\n", rec.Category)
	}
	fmt.Fprintf(b, "Halal score: %.2f\n", res.HalalScore)
	fmt.Fprintf(b, "Sustainability score: %.2f\n", res.SustainabilityScore)
	if res.EthicsModeled {
		fmt.Fprintf(b, "Ethical score: %.2f\n", res.EthicalScore)
	}
	fmt.Fprintf(b, "GreenHalal score: %.2f (%s)\n", res.GreenHalalScore, res.Rating)
	if input.CertificationID != "" {
		fmt.Fprintf(b, "Verified halal certification: %s\n", input.CertificationID)
	}
	if len(input.Recommendations) == 0 {
		b.WriteString("Advisories: none\n")
	} else {
		b.WriteString("Advisories:\n")
		for _, advice := range input.Recommendations {
			fmt.Fprintf(b, "- %s\n", advice)
		}
	}
	return b.String()
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
