// Package gateway implements the HTTP client for the hosted text-generation
// service (an OpenAI-compatible chat-completions API). The client performs
// exactly one request per call; retry policy belongs to the orchestrator in
// the services package, which decides per error class whether another
// attempt is worthwhile.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/phototheology/go-palace-backend/internal/observability"
)

// DefaultTimeout bounds a single gateway round trip. The upstream has no
// SLA; a hung call past this point is classified as transient.
const DefaultTimeout = 30 * time.Second

// Client issues chat-completion requests against an OpenAI-compatible
// gateway. Safe for concurrent use.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	// HTTPClient is used for all requests; when nil, a client with
	// DefaultTimeout is lazily constructed by New.
	HTTPClient *http.Client
}

// New constructs a Client with the default bounded timeout.
func New(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// chatRequest is the wire body for one completion call.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate performs a single completion call for the template and params
// and returns the raw content of the first choice. Failures are classified
// into the package sentinel errors; callers use errors.Is to branch.
func (c *Client) Generate(ctx context.Context, tmpl Template, params Params) (string, error) {
	tr := otel.Tracer("gateway/Client")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("gen.template", tmpl.Name),
			attribute.String("gen.model", c.Model),
		),
	)
	defer span.End()

	body := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: tmpl.System},
			{Role: "user", Content: tmpl.UserPrompt(params)},
		},
		Temperature: tmpl.Temperature,
		MaxTokens:   tmpl.MaxTokens,
	}
	if tmpl.JSONMode {
		body.ResponseFormat = &respFormat{Type: "json_object"}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrTransient, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTransient, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	observability.GatewayDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		// Network error or client timeout.
		observability.GatewayRequests.WithLabelValues("transient").Inc()
		return "", fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		observability.GatewayRequests.WithLabelValues("rate_limited").Inc()
		log.Warn().Int("status", resp.StatusCode).Str("template", tmpl.Name).Msg("gateway rate limited")
		return "", fmt.Errorf("%w: status %d", ErrUpstreamRateLimited, resp.StatusCode)
	case resp.StatusCode == http.StatusPaymentRequired:
		observability.GatewayRequests.WithLabelValues("quota").Inc()
		log.Warn().Int("status", resp.StatusCode).Str("template", tmpl.Name).Msg("gateway quota exhausted")
		return "", fmt.Errorf("%w: status %d", ErrUpstreamQuota, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		observability.GatewayRequests.WithLabelValues("transient").Inc()
		log.Warn().Int("status", resp.StatusCode).Str("template", tmpl.Name).Msg("gateway non-2xx")
		return "", fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		observability.GatewayRequests.WithLabelValues("transient").Inc()
		return "", fmt.Errorf("%w: decode response: %v", ErrTransient, err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		observability.GatewayRequests.WithLabelValues("empty").Inc()
		return "", ErrEmptyResponse
	}

	observability.GatewayRequests.WithLabelValues("ok").Inc()
	return out.Choices[0].Message.Content, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}
