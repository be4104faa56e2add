package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/frostbyte/internal/config"
)

// Client delivers alert messages to an HTTP webhook.
type Client interface {
	Send(ctx context.Context, alert Alert) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.AlertsConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{httpClient: restyClient, url: cfg.WebhookURL}
}

// Alert is the JSON body posted to the webhook. Text makes the payload
// readable by chat webhooks that only render a text field.
type Alert struct {
	Text     string   `json:"text"`
	Date     string   `json:"date"`
	ReportID string   `json:"report_id"`
	Issues   []string `json:"issues"`
}

// apiError captures common error shapes returned by webhook receivers.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Send posts the alert.
func (c *APIClient) Send(ctx context.Context, alert Alert) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send webhook alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
