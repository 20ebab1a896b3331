package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type httpResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver builds a Resolver calling GET {baseURL}/me with a bounded
// timeout.
func NewHTTPResolver(baseURL string, timeout time.Duration) Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &httpResolver{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *httpResolver) Resolve(ctx context.Context, userID, token string) (UserInfo, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return UserInfo{}, ErrNoCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/me", nil)
	if err != nil {
		return UserInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		return UserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return UserInfo{}, fmt.Errorf("identity: user service returned %d", resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return UserInfo{}, fmt.Errorf("identity: decode response: %w", err)
	}
	if strings.TrimSpace(info.UserID) == "" {
		info.UserID = userID
	}
	return info, nil
}
