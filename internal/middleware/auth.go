package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/2beens/bedgemon/internal/auth"
	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"
	"github.com/2beens/bedgemon/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const AppSecretHeader = "X-Bedgemon-Secret"

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type profileSource interface {
	CurrentProfile(ctx context.Context) (workout.Profile, error)
}

type AuthMiddlewareHandler struct {
	// bcrypt hash of the secret the app shell sends, no check when empty
	appSecretHash string
	profiles      profileSource

	// bcrypt is slow on purpose, remember secrets that already matched
	verifiedMutex   sync.RWMutex
	verifiedSecrets map[string]bool

	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(
	appSecretHash string,
	profiles profileSource,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		appSecretHash:   appSecretHash,
		profiles:        profiles,
		verifiedSecrets: map[string]bool{},
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,
		},
		allowedPathsPrefixes: []string{
			"/auth/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) secretIsValid(secret string) bool {
	if h.appSecretHash == "" {
		return true
	}
	if secret == "" {
		return false
	}

	h.verifiedMutex.RLock()
	verified := h.verifiedSecrets[secret]
	h.verifiedMutex.RUnlock()
	if verified {
		return true
	}

	if !pkg.CheckPasswordHash(secret, h.appSecretHash) {
		return false
	}

	h.verifiedMutex.Lock()
	h.verifiedSecrets[secret] = true
	h.verifiedMutex.Unlock()
	return true
}

// AuthCheck rejects requests without the app secret, and puts the signed in
// profile into the context of every request that needs one.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if r.URL.Path != "/" && !h.secretIsValid(r.Header.Get(AppSecretHeader)) {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Warnf("[invalid app secret] [auth middleware] unauthorized => %s from %s", r.URL.Path, reqIp)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-app-secret")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			profile, err := h.profiles.CurrentProfile(ctx)
			if err != nil {
				if errors.Is(err, auth.ErrNotSignedIn) {
					log.Tracef("[not signed in] [auth middleware] unauthorized => %s", r.URL.Path)
					http.Error(w, "not signed in", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "not-signed-in")
					return
				}
				log.Errorf("[failed profile check] => %s: %s", r.URL.Path, err)
				http.Error(w, "profile check failed", http.StatusInternalServerError)
				span.SetStatus(codes.Error, "profile-check-err")
				span.RecordError(err)
				return
			}

			span.SetAttributes(attribute.String("profile", profile.String()))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithProfile(r.Context(), profile)))
		})
	}
}
