package generator

import (
	"context"
	"errors"
	"fmt"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	// ErrGeneration covers transport failures, non-2xx replies, timeouts and
	// replies without any text.
	ErrGeneration = errors.New("generation failed")
	// ErrParse is returned when generated text is not valid JSON.
	ErrParse = errors.New("failed to parse generated response")
	// ErrGenerationFormat is returned when generated JSON has the wrong shape
	// or lacks a required field.
	ErrGenerationFormat = errors.New("unexpected generated response format")
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (*Response, error)
	Provider() string
}

type Response struct {
	Text     string
	Provider string
	Model    string
}

// APIError is a non-2xx reply from the provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrGeneration
}

func generationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeneration, fmt.Sprintf(format, args...))
}
