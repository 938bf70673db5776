package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts plain-text digests to a chat webhook (Slack-compatible payload).
type Client interface {
	SendDigest(ctx context.Context, text string) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook client pointed at the given URL.
func NewClient(webhookURL string) *WebhookClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// SendDigest delivers one text message to the webhook.
func (c *WebhookClient) SendDigest(ctx context.Context, text string) error {
	payload := map[string]any{"text": text}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("digest webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
