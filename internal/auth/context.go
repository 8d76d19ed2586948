package auth

import (
	"context"
	"net/http"

	"github.com/2beens/bedgemon/internal/workout"
)

type profileCtxKey struct{}

func ContextWithProfile(ctx context.Context, profile workout.Profile) context.Context {
	return context.WithValue(ctx, profileCtxKey{}, profile)
}

// ProfileFromContext returns the signed in profile the auth middleware put
// into the request context.
func ProfileFromContext(ctx context.Context) (workout.Profile, bool) {
	profile, ok := ctx.Value(profileCtxKey{}).(workout.Profile)
	if !ok || !profile.IsValid() {
		return "", false
	}
	return profile, true
}

// RequestProfile returns the profile named by the "profile" query param,
// falling back to the signed in profile of the request.
func RequestProfile(r *http.Request) (workout.Profile, error) {
	if raw := r.URL.Query().Get("profile"); raw != "" {
		return workout.ParseProfile(raw)
	}
	profile, ok := ProfileFromContext(r.Context())
	if !ok {
		return "", ErrNotSignedIn
	}
	return profile, nil
}
