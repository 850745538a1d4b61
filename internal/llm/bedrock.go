package llm

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pageza/flockfeed/backend/config"
)

// BedrockClient invokes a Bedrock-hosted Nova model over HTTPS with a
// bearer token.
type BedrockClient struct {
	http        *resty.Client
	transport   *http.Transport
	modelID     string
	maxTokens   int
	temperature float64
	topP        float64
	logger      *zap.Logger
}

var _ ModelClient = (*BedrockClient)(nil)

type novaContent struct {
	Text string `json:"text"`
}

type novaMessage struct {
	Role    string        `json:"role"`
	Content []novaContent `json:"content"`
}

type inferenceConfig struct {
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type novaRequest struct {
	Messages        []novaMessage   `json:"messages"`
	InferenceConfig inferenceConfig `json:"inferenceConfig"`
}

type novaResponse struct {
	Output struct {
		Message novaMessage `json:"message"`
	} `json:"output"`
	StopReason string `json:"stopReason"`
}

type bedrockError struct {
	Message string `json:"message"`
}

// NewBedrockClient builds a client from the advisor settings. Connect and
// read timeouts apply per attempt; failed attempts on transport errors, 429
// and 5xx are retried up to MaxAttempts in total.
func NewBedrockClient(cfg config.AdvisorConfig, logger *zap.Logger) *BedrockClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   4,
	}

	retries := cfg.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}

	client := resty.New().
		SetTransport(transport).
		SetBaseURL(cfg.Endpoint()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.BearerToken).
		SetTimeout(cfg.ConnectTimeout + cfg.ReadTimeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})

	return &BedrockClient{
		http:        client,
		transport:   transport,
		modelID:     cfg.ModelID,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		logger:      logger,
	}
}

func (c *BedrockClient) Name() string {
	return "bedrock"
}

// Generate sends prompt as a single user message and returns the first text
// block of the reply.
func (c *BedrockClient) Generate(ctx context.Context, prompt string) (string, error) {
	body := novaRequest{
		Messages: []novaMessage{{Role: "user", Content: []novaContent{{Text: prompt}}}},
		InferenceConfig: inferenceConfig{
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			TopP:        c.topP,
		},
	}

	var out novaResponse
	var apiErr bedrockError
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("modelId", c.modelID).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/model/{modelId}/invoke")
	if err != nil {
		return "", &UpstreamError{Provider: c.Name(), Err: err, CredentialRejected: looksLikeCredentialFailure(err.Error())}
	}

	c.logger.Debug("model call completed",
		zap.String("model_id", c.modelID),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)))

	if resp.IsError() {
		msg := apiErr.Message
		if msg == "" {
			msg = Truncate(strings.TrimSpace(resp.String()), ExcerptLength)
		}
		status := resp.StatusCode()
		return "", &UpstreamError{
			Provider:           c.Name(),
			StatusCode:         status,
			Message:            msg,
			CredentialRejected: status == http.StatusUnauthorized || status == http.StatusForbidden || looksLikeCredentialFailure(msg),
		}
	}

	content := out.Output.Message.Content
	if len(content) == 0 {
		return "", &UpstreamError{Provider: c.Name(), StatusCode: resp.StatusCode(), Message: "no content in model response"}
	}
	text := strings.TrimSpace(content[0].Text)
	if text == "" {
		return "", &UpstreamError{Provider: c.Name(), StatusCode: resp.StatusCode(), Message: "empty text in model response"}
	}
	return text, nil
}

// Close releases idle connections held by the transport.
func (c *BedrockClient) Close() {
	c.transport.CloseIdleConnections()
}

func (c *BedrockClient) String() string {
	return fmt.Sprintf("bedrock(%s)", c.modelID)
}
