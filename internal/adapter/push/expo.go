// Package push delivers mobile push notifications through the Expo push
// service. Delivery is best effort: callers treat failures as advisory.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/PWDEJOB/pwde-job-api/internal/platform/errors"
)

type message struct {
	To       string            `json:"to"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Sound    string            `json:"sound"`
	Priority string            `json:"priority"`
	Data     map[string]string `json:"data,omitempty"`
}

type ExpoClient struct {
	url        string
	httpClient *http.Client
}

func NewExpoClient(url string, timeout time.Duration) *ExpoClient {
	return &ExpoClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send pushes a single notification to the given Expo push token.
func (c *ExpoClient) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(message{
		To:       token,
		Title:    title,
		Body:     body,
		Sound:    "default",
		Priority: "high",
		Data:     data,
	})
	if err != nil {
		return apperrors.InternalError("failed to marshal push message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return apperrors.InternalError("failed to build push request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.ExternalError("push delivery failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.ExternalError("push delivery rejected",
			fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, snippet))
	}
	return nil
}
