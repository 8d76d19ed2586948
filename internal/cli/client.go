package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/bedgemon/internal/middleware"
	"github.com/2beens/bedgemon/internal/tracker"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the bedgemon service HTTP API.
type Client struct {
	baseURL    string
	secret     string
	userAgent  string
	httpClient *http.Client
}

type Response struct {
	StatusCode int
	Body       []byte
	FromCache  bool
}

func NewClient(baseURL, secret, version string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secret:    secret,
		userAgent: "bedgemonctl/" + version,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Do sends body as JSON (when not nil) and fails on any non 2xx response.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.secret != "" {
		req.Header.Set(middleware.AppSecretHeader, c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		FromCache:  resp.Header.Get(tracker.FromCacheHeader) == "true",
	}, nil
}
