package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type CredentialState string

const (
	CredentialAuthorized  CredentialState = "authorized"
	CredentialRevoked     CredentialState = "revoked"
	CredentialNotFound    CredentialState = "not_found"
	CredentialTransferred CredentialState = "transferred"
)

var (
	_ CredentialChecker = (*HTTPCredentialChecker)(nil)
	_ CredentialChecker = (*StaticCredentialChecker)(nil)
)

// CredentialChecker asks the identity platform whether a previously signed in
// identity is still valid.
type CredentialChecker interface {
	CredentialState(ctx context.Context, userID string) (CredentialState, error)
}

type HTTPCredentialChecker struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPCredentialChecker(baseURL string, timeout time.Duration) *HTTPCredentialChecker {
	return &HTTPCredentialChecker{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *HTTPCredentialChecker) CredentialState(ctx context.Context, userID string) (CredentialState, error) {
	reqURL := c.baseURL + "/credential-state?user_id=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("new credential state request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("credential state request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("credential state request: unexpected status %d", resp.StatusCode)
	}

	var stateResp struct {
		State CredentialState `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stateResp); err != nil {
		return "", fmt.Errorf("decode credential state: %w", err)
	}
	return stateResp.State, nil
}
