package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SlackWebhook posts messages to a Slack incoming webhook.
type SlackWebhook struct {
	webhookURL string
	http       *http.Client
}

func NewSlackWebhook(webhookURL string) *SlackWebhook {
	return &SlackWebhook{
		webhookURL: webhookURL,
		http:       http.DefaultClient,
	}
}

// Send posts one text message to the webhook.
func (s *SlackWebhook) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("post slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post slack webhook: slack returned %s", resp.Status)
	}

	return nil
}
