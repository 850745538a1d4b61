package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExcerptLength bounds the raw model text carried in a ParseError.
const ExcerptLength = 200

// ErrNoJSON means the reply contained no brace-delimited object.
var ErrNoJSON = errors.New("no JSON object found in model response")

// ParseError reports that the model answered but the answer could not be
// turned into the expected shape.
type ParseError struct {
	Stage string // "extract", "decode" or "validate"
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to %s model response: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Excerpt returns the start of the raw reply for diagnostics.
func (e *ParseError) Excerpt() string {
	return Truncate(e.Raw, ExcerptLength)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ExtractJSON strips Markdown code fences and returns the text between the
// first '{' and the last '}'.
func ExtractJSON(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", ErrNoJSON
	}
	return cleaned[start : end+1], nil
}

// DecodeJSON decodes a candidate object into v and validates it against v's
// `validate` tags. v must be a pointer to a struct.
func DecodeJSON(candidate string, v any) error {
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return &ParseError{Stage: "decode", Raw: candidate, Err: err}
	}
	if err := validate.Struct(v); err != nil {
		return &ParseError{Stage: "validate", Raw: candidate, Err: err}
	}
	return nil
}

// Parse runs both stages on a raw reply. Any ParseError carries the full
// raw text so callers can surface an excerpt.
func Parse(raw string, v any) error {
	candidate, err := ExtractJSON(raw)
	if err != nil {
		return &ParseError{Stage: "extract", Raw: raw, Err: err}
	}
	if err := DecodeJSON(candidate, v); err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Raw = raw
		}
		return err
	}
	return nil
}
