package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type httpDispatcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDispatcher builds a Dispatcher posting to the notification service
// with a bounded timeout.
func NewHTTPDispatcher(baseURL string, timeout time.Duration) Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpDispatcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (d *httpDispatcher) DispatchCreated(ctx context.Context, payload Payload) error {
	return d.post(ctx, "/notify/reserva", payload)
}

func (d *httpDispatcher) DispatchCancelled(ctx context.Context, payload Payload) error {
	return d.post(ctx, "/notify/cancelacion", payload)
}

func (d *httpDispatcher) post(ctx context.Context, path string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification: service returned %d for %s", resp.StatusCode, path)
	}
	return nil
}
