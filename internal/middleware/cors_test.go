package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name           string
		origin         string
		userAgent      string
		path           string
		expectCors     bool
		expectedStatus int
	}{
		{
			name:           "AllowedOrigin",
			origin:         "http://localhost:8080",
			path:           "/templates",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedOrigin",
			origin:         "https://www.notallowed.com",
			path:           "/templates",
			expectCors:     false,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "AppShellUserAgent",
			userAgent:      "Bedgemon/1.2 (iOS)",
			path:           "/workouts",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "AppShellUserAgentFromBrowserOrigin",
			origin:         "https://www.notallowed.com",
			userAgent:      "Bedgemon/1.2 (iOS)",
			path:           "/workouts",
			expectCors:     false,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "CliUserAgent",
			userAgent:      "bedgemonctl/dev",
			path:           "/draft",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotAllowedUserAgent",
			userAgent:      "UnknownAgent/1.0",
			path:           "/draft",
			expectCors:     false,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "RootAlwaysAllowed",
			userAgent:      "kube-probe/1.29",
			path:           "/",
			expectCors:     true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest("GET", tc.path, nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("User-Agent", tc.userAgent)

			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			handler := Cors()(nextHandler)

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Unexpected status code")
			if tc.expectCors {
				assert.Equal(t, tc.origin, rr.Header().Get("Access-Control-Allow-Origin"))
				assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
