//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSession() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doRequest(ctx, t, http.MethodPost, "/auth/signout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(ctx, t, http.MethodGet, "/templates", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(ctx, t, http.MethodPost, "/auth/signin", `{"userId":"u-sarah"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"pending":true}`, resp.Body)

	resp = doRequest(ctx, t, http.MethodPost, "/auth/profile", `{"profile":"sarah"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"profile":"sarah","pending":false}`, resp.Body)

	// the mapping is stored in redis, the next sign in needs no choice
	resp = doRequest(ctx, t, http.MethodPost, "/auth/signin", `{"userId":"u-sarah"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"profile":"sarah","pending":false}`, resp.Body)

	resp = doRequest(ctx, t, http.MethodPost, "/auth/signin", `{"userId":"u-dan","email":"DAN@example.com "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"profile":"dan","pending":false}`, resp.Body)

	resp = doRequest(ctx, t, http.MethodGet, "/auth/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"profile":"dan","pending":false}`, resp.Body)
}
