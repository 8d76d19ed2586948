//go:build integration_test || all_tests

package test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/2beens/bedgemon/internal/middleware"

	"github.com/stretchr/testify/require"
)

type response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

func doRequest(ctx context.Context, t *testing.T, method, path, body string) response {
	t.Helper()

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AppSecretHeader, testAppSecret)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(respBytes),
	}
}

func signInAsDan(ctx context.Context, t *testing.T) {
	t.Helper()
	resp := doRequest(ctx, t, http.MethodPost, "/auth/signin", `{"userId":"u-dan","email":"`+testDanEmail+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
}
