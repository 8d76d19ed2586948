package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/bedgemon/internal/auth"
	"github.com/2beens/bedgemon/internal/middleware"
	"github.com/2beens/bedgemon/internal/telemetry/metrics"
	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"
	"github.com/2beens/bedgemon/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// sign-in attempts per client address per minute
const signInRateLimit = 15

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc_test

type sessionResolver interface {
	SignIn(ctx context.Context, identity auth.Identity) (auth.Session, error)
	ChooseProfile(ctx context.Context, profile workout.Profile) (auth.Session, error)
	Session(ctx context.Context) (auth.Session, error)
	SignOut(ctx context.Context) error
}

type Handler struct {
	versionInfo string
	resolver    sessionResolver
}

func NewHandler(
	versionInfo string,
	resolver sessionResolver,
) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		resolver:    resolver,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	authSubrouter := mainRouter.PathPrefix("/auth").Subrouter()
	authSubrouter.HandleFunc("/profile", handler.handleChooseProfile).Methods("POST", "OPTIONS").Name("auth-profile")
	authSubrouter.HandleFunc("/session", handler.handleSession).Methods("GET").Name("auth-session")
	authSubrouter.HandleFunc("/signout", handler.handleSignOut).Methods("POST", "OPTIONS").Name("auth-signout")

	// rate limit the sign-in endpoint to prevent abuse
	signInRateLimited := middleware.RateLimit(rateLimiter, "signin", signInRateLimit, metricsManager)
	authSubrouter.Handle("/signin", signInRateLimited(http.HandlerFunc(handler.handleSignIn))).
		Methods("POST", "OPTIONS").Name("auth-signin")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.signin")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var identity auth.Identity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		log.Tracef("signin, unmarshal json params: %s", err)
		http.Error(w, "signin failed", http.StatusBadRequest)
		return
	}

	session, err := handler.resolver.SignIn(ctx, identity)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidIdentity) {
			http.Error(w, "error, user id empty", http.StatusBadRequest)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("signin failed for [%s]: %s", identity.UserID, err)
		http.Error(w, "signin failed", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Bool("pending", session.Pending))
	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) handleChooseProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.chooseProfile")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var req struct {
		Profile string `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "choose profile failed", http.StatusBadRequest)
		return
	}
	profile, err := workout.ParseProfile(req.Profile)
	if err != nil {
		http.Error(w, "error, invalid profile", http.StatusBadRequest)
		return
	}

	session, err := handler.resolver.ChooseProfile(ctx, profile)
	if err != nil {
		if errors.Is(err, auth.ErrNoPendingIdentity) {
			http.Error(w, "error, no sign-in waiting for a profile", http.StatusConflict)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("choose profile [%s] failed: %s", profile, err)
		http.Error(w, "choose profile failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.session")
	defer span.End()

	session, err := handler.resolver.Session(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get session failed: %s", err)
		http.Error(w, "get session failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.signout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := handler.resolver.SignOut(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("signout failed: %s", err)
		http.Error(w, "signout failed", http.StatusInternalServerError)
		return
	}

	log.Debugln("signout success")
	pkg.WriteTextResponseOK(w, "signed-out")
}
