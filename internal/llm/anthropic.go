package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicVersion = "2023-06-01"
)

type AnthropicConfig struct {
	BaseURL    string
	Token      string
	Version    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type AnthropicClient struct {
	endpoint   string
	token      string
	version    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Client = (*AnthropicClient)(nil)

func NewAnthropicClient(cfg AnthropicConfig) (*AnthropicClient, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("anthropic token is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = defaultAnthropicVersion
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicClient{
		endpoint:   buildAnthropicEndpoint(baseURL),
		token:      token,
		version:    version,
		httpClient: client,
		logger:     logger,
	}, nil
}

// SendMessage performs one POST to the messages endpoint. It never retries.
func (c *AnthropicClient) SendMessage(ctx context.Context, req MessageRequest) (MessageResponse, error) {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return MessageResponse{}, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return MessageResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.token)
	httpReq.Header.Set("anthropic-version", c.version)

	c.logger.Debug("sending message request",
		zap.Stringer("model", req.Model),
		zap.Int("messages", len(req.Messages)),
		zap.Int("bytes", len(requestBody)),
	)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return MessageResponse{}, fmt.Errorf("anthropic request: %w", err)
	}
	defer httpResp.Body.Close()

	c.logger.Debug("received message response", zap.Int("status", httpResp.StatusCode))

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return MessageResponse{}, readAnthropicError(httpResp.Body, httpResp.StatusCode)
	}
	var out MessageResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return MessageResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func buildAnthropicEndpoint(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(base, "/v1") {
		return base + "/messages"
	}
	return base + "/v1/messages"
}

func readAnthropicError(body io.Reader, status int) error {
	var resp anthropicErrorResponse
	_ = json.NewDecoder(body).Decode(&resp)
	if resp.Error != nil && resp.Error.Message != "" {
		return fmt.Errorf("anthropic request failed: %s (status %d)", resp.Error.Message, status)
	}
	return fmt.Errorf("anthropic request failed with status %d", status)
}

type anthropicErrorResponse struct {
	Error *anthropicError `json:"error,omitempty"`
}

type anthropicError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
