package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"assembly-line-api/internal/metrics"
)

// SMSMessage represents a single text message to the andon escalation list
type SMSMessage struct {
	Recipients []string `json:"recipients"`
	Body       string   `json:"body"`
	Reference  string   `json:"reference,omitempty"`
	SentAt     string   `json:"sentAt,omitempty"`
}

// SMSClient defines the interface for the SMS gateway
type SMSClient interface {
	// Send delivers a text message to the configured recipients
	Send(ctx context.Context, msg SMSMessage) error
}

// smsClient implements SMSClient against the plant SMS gateway
type smsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewSMSClient creates a new SMS gateway client
func NewSMSClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) SMSClient {
	return &smsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// Send delivers a text message to the gateway. Gateway failures are logged
// and swallowed: an unreachable SMS provider must never fail the andon write.
func (c *smsClient) Send(ctx context.Context, msg SMSMessage) error {
	if len(msg.Recipients) == 0 {
		return nil
	}

	url := fmt.Sprintf("%s/api/v1/messages", c.baseURL)

	if msg.SentAt == "" {
		msg.SentAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("Failed to marshal SMS message",
			zap.Error(err),
			zap.String("reference", msg.Reference),
		)
		return fmt.Errorf("failed to marshal SMS message: %w", err)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		c.logger.Error("Failed to create SMS request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send SMS",
			zap.Error(err),
			zap.String("reference", msg.Reference),
			zap.Duration("duration", duration),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("SMS sent",
			zap.String("reference", msg.Reference),
			zap.Int("recipients", len(msg.Recipients)),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("SMS gateway returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.String("reference", msg.Reference),
		zap.Duration("duration", duration),
	)
	return nil
}

// NoOpSMSClient is used when no gateway is configured
type NoOpSMSClient struct{}

func NewNoOpSMSClient() SMSClient {
	return &NoOpSMSClient{}
}

func (c *NoOpSMSClient) Send(ctx context.Context, msg SMSMessage) error {
	return nil
}
