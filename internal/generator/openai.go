package generator

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/tracing"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

type OpenAIParams struct {
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OpenAI talks to any OpenAI compatible chat completions API (OpenAI, Groq, ...).
type OpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAI(params OpenAIParams) *OpenAI {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	model := params.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if params.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(params.HTTPClient))
	}

	return &OpenAI{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: params.Timeout,
	}
}

func (o *OpenAI) Provider() string {
	return ProviderOpenAI
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (_ *Response, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "generator.openai.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("model", o.model),
		attribute.Int("prompt.length", len(prompt)),
	)

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	log.Debugf("calling openai compatible model [%s], prompt length: %d", o.model, len(prompt))
	chat, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			body := apiErr.Message
			if body == "" {
				body = apiErr.RawJSON()
			}
			return nil, &APIError{
				Provider:   ProviderOpenAI,
				StatusCode: apiErr.StatusCode,
				Body:       body,
			}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, generationError("openai call timed out after %s", o.timeout)
		}
		return nil, generationError("chat completion: %s", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, generationError("openai response has no choices or content")
	}

	return &Response{
		Text:     chat.Choices[0].Message.Content,
		Provider: ProviderOpenAI,
		Model:    o.model,
	}, nil
}
