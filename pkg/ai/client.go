package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/classroom-seating-api/pkg/config"
)

// Request holds the parameters of a single generation call.
type Request struct {
	// Label tags the call in logs and metrics, e.g. "generate" or "modify".
	Label          string
	SystemPrompt   string
	Prompt         string
	ResponseSchema map[string]any
	Temperature    *float64 // nil uses the configured temperature
}

// Response holds the model's text reply.
type Response struct {
	Text    string
	Model   string
	Latency time.Duration
}

// Client sends prompts to a generative text service.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// geminiClient talks to a Gemini-compatible generateContent endpoint. Each call
// is a single request: no retries, no caching.
type geminiClient struct {
	cfg      config.AIConfig
	http     *http.Client
	observer Observer
}

// NewGeminiClient creates a Client for the configured endpoint and model.
func NewGeminiClient(cfg config.AIConfig, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64        `json:"temperature"`
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

func (c *geminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	temperature := c.cfg.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:    temperature,
			ResponseSchema: req.ResponseSchema,
		},
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}
	if req.ResponseSchema != nil {
		body.GenerationConfig.ResponseMimeType = "application/json"
	}

	resp, err := c.doRequest(ctx, body)
	latency := time.Since(start)
	event := CallEvent{Label: req.Label, Model: c.cfg.Model, Latency: latency, Outcome: OutcomeSuccess}

	if err != nil {
		if ctx.Err() != nil {
			event.Outcome = OutcomeTimeout
			c.observer.OnCallComplete(event)
			return nil, fmt.Errorf("%w: %w", ErrCommunication, ErrTimeout)
		}
		event.Outcome = OutcomeCommunication
		c.observer.OnCallComplete(event)
		return nil, fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	c.observer.OnCallComplete(event)

	model := resp.ModelVersion
	if model == "" {
		model = c.cfg.Model
	}
	return &Response{Text: resp.text(), Model: model, Latency: latency}, nil
}

func (c *geminiClient) doRequest(ctx context.Context, body geminiRequest) (*geminiResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai service returned status %d: %s", httpResp.StatusCode, truncate(string(respBody), 512))
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("response has no candidates")
	}
	return &resp, nil
}

func (r *geminiResponse) text() string {
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
