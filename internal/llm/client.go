// Package llm talks to the external generative models behind the nutrition
// advisor and turns their free-text replies into typed values.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/flockfeed/backend/config"
)

// ModelClient sends one prompt and returns the model's text reply.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// UpstreamError reports that the model could not be reached, answered with a
// non-success status, or produced no text.
type UpstreamError struct {
	Provider           string
	StatusCode         int
	Message            string
	CredentialRejected bool
	Err                error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s model call failed", e.Provider)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

var credentialMarkers = []string{
	"unable to locate credentials",
	"invalid security token",
	"access denied",
	"unauthorized",
	"unauthenticated",
	"permission_denied",
	"api key not valid",
}

// looksLikeCredentialFailure matches the messages providers use when a
// token or key is rejected.
func looksLikeCredentialFailure(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range credentialMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsCredentialError reports whether err means the model rejected our
// credentials, as opposed to any other failure.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.CredentialRejected {
		return true
	}
	return looksLikeCredentialFailure(err.Error())
}

// Truncate returns at most n runes of s, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// NewModelClient returns the client for the configured provider.
func NewModelClient(ctx context.Context, cfg config.AdvisorConfig, logger *zap.Logger) (ModelClient, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(ctx, cfg, logger)
	case "bedrock", "":
		return NewBedrockClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
