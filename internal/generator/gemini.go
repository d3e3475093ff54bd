package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.0-flash"

	maxResponseBytes = 4 << 20
	maxErrorBodyLen  = 512
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type GeminiParams struct {
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Gemini calls the generateContent REST endpoint. No retries.
type Gemini struct {
	baseURL    string
	model      string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewGemini(params GeminiParams) *Gemini {
	g := &Gemini{
		baseURL:    params.BaseURL,
		model:      params.Model,
		apiKey:     params.APIKey,
		timeout:    params.Timeout,
		httpClient: params.HTTPClient,
	}
	if g.baseURL == "" {
		g.baseURL = DefaultGeminiBaseURL
	}
	if g.model == "" {
		g.model = DefaultGeminiModel
	}
	if g.httpClient == nil {
		g.httpClient = http.DefaultClient
	}
	return g
}

func (g *Gemini) Provider() string {
	return ProviderGemini
}

func (g *Gemini) endpoint() string {
	return fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?%s",
		g.baseURL, url.PathEscape(g.model), url.Values{"key": {g.apiKey}}.Encode(),
	)
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "generator.gemini.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("model", g.model),
		attribute.Int("prompt.length", len(prompt)),
	)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, generationError("new request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("calling gemini model [%s], prompt length: %d", g.model, len(prompt))
	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, generationError("gemini call timed out after %s", g.timeout)
		}
		// the url carries the api key, keep it out of the error
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, generationError("http client do: %s", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, generationError("read gemini response: %s", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := string(respBytes)
		if len(body) > maxErrorBodyLen {
			body = body[:maxErrorBodyLen]
		}
		return nil, &APIError{
			Provider:   ProviderGemini,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBytes, &geminiResp); err != nil {
		return nil, generationError("unmarshal gemini response: %s", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, generationError("gemini response has no candidates or parts")
	}

	return &Response{
		Text:     geminiResp.Candidates[0].Content.Parts[0].Text,
		Provider: ProviderGemini,
		Model:    g.model,
	}, nil
}
