package webhook

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/procurement/internal/config"
	"github.com/mamadbah2/procurement/internal/domain/models"
)

// Client delivers outbound notifications to the configured webhook.
type Client interface {
	Post(ctx context.Context, n models.OutboundNotification) (*PostResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{
		httpClient: restyClient,
		url:        strings.TrimSpace(cfg.WebhookURL),
	}
}

// PostResponse is the optional acknowledgement body.
type PostResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Post sends one notification.
func (c *APIClient) Post(ctx context.Context, n models.OutboundNotification) (*PostResponse, error) {
	result := new(PostResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		SetResult(result).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("post notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return nil, fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return result, nil
}
