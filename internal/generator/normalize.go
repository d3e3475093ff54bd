package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StripCodeFence removes one leading "```json" line and one trailing "```"
// line, the way models usually wrap JSON, then trims whitespace.
func StripCodeFence(text string) string {
	text = strings.TrimPrefix(text, "```json\n")
	text = strings.TrimSuffix(text, "\n```")
	return strings.TrimSpace(text)
}

// ExtractJSON unmarshals the fence-stripped response text into v. Text that
// is not JSON gives ErrParse, JSON of the wrong shape gives ErrGenerationFormat.
func ExtractJSON(resp *Response, v any) error {
	if resp == nil {
		return fmt.Errorf("%w: empty response", ErrParse)
	}
	if err := json.Unmarshal([]byte(StripCodeFence(resp.Text)), v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %w", ErrGenerationFormat, err)
		}
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

// ExtractText returns the response text as is.
func ExtractText(resp *Response) string {
	if resp == nil {
		return ""
	}
	return resp.Text
}
