package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pageza/flockfeed/backend/config"
)

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	attempts    int
	maxTokens   int32
	temperature float32
	topP        float32
	logger      *zap.Logger
}

var _ ModelClient = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed model client.
func NewGeminiClient(ctx context.Context, cfg config.AdvisorConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required for the gemini provider")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &UpstreamError{Provider: "gemini", Message: "failed to create client", Err: err}
	}

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		timeout:     cfg.ConnectTimeout + cfg.ReadTimeout,
		attempts:    attempts,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: float32(cfg.Temperature),
		topP:        float32(cfg.TopP),
		logger:      logger,
	}, nil
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

// Generate sends prompt and returns the concatenated text parts of the first
// candidate. Credential failures are not retried.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		TopP:            genai.Ptr(c.topP),
		MaxOutputTokens: c.maxTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		text, err := c.generateOnce(ctx, prompt, genCfg)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if IsCredentialError(err) || ctx.Err() != nil {
			break
		}
		c.logger.Warn("gemini call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return "", lastErr
}

func (c *GeminiClient) generateOnce(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", &UpstreamError{Provider: c.Name(), Err: err, CredentialRejected: looksLikeCredentialFailure(err.Error())}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &UpstreamError{Provider: c.Name(), Message: "empty text in model response"}
	}
	return text, nil
}
