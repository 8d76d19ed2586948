package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/2beens/bedgemon/internal/kvstore"
	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"
	"github.com/2beens/bedgemon/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	identityProfilesKey     = "identityProfiles"
	lastSignedInIdentityKey = "lastSignedInIdentity"
	pendingIdentityKey      = "pendingIdentity"
)

var (
	ErrInvalidIdentity   = errors.New("identity has no user id")
	ErrNoPendingIdentity = errors.New("no identity waiting for a profile")
	ErrNotSignedIn       = errors.New("not signed in")
)

// Identity is what the sign-in platform asserts about a user. Email is only
// present on the first sign-in with a given account.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

type Session struct {
	Profile workout.Profile `json:"profile,omitempty"`
	Pending bool            `json:"pending"`
}

func (s Session) SignedIn() bool {
	return s.Profile != ""
}

// Resolver maps sign-in identities to one of the two profiles. The mapping,
// the last signed in identity and the identity waiting for a profile choice
// are kept in the local key-value store.
type Resolver struct {
	store           kvstore.Store
	checker         CredentialChecker
	designatedEmail string

	mutex sync.Mutex
}

// NewResolver creates a resolver mapping designatedEmail to dan and every
// other email to sarah.
func NewResolver(store kvstore.Store, checker CredentialChecker, designatedEmail string) *Resolver {
	return &Resolver{
		store:           store,
		checker:         checker,
		designatedEmail: pkg.NormalizeEmail(designatedEmail),
	}
}

func (r *Resolver) ProfileForEmail(email string) workout.Profile {
	if r.designatedEmail != "" && pkg.NormalizeEmail(email) == r.designatedEmail {
		return workout.ProfileDan
	}
	return workout.ProfileSarah
}

// SignIn resolves the identity to a profile. An identity seen before always
// gets the same profile. An unknown identity without an email is kept as
// pending until ChooseProfile is called.
func (r *Resolver) SignIn(ctx context.Context, identity Identity) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.signin")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	identity.UserID = strings.TrimSpace(identity.UserID)
	identity.Email = strings.TrimSpace(identity.Email)
	if identity.UserID == "" {
		return Session{}, ErrInvalidIdentity
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	mapping, err := r.loadMapping(ctx)
	if err != nil {
		return Session{}, err
	}

	if profile, ok := mapping[identity.UserID]; ok {
		span.SetAttributes(attribute.String("profile", profile.String()))
		if err := r.commitSession(ctx, identity.UserID); err != nil {
			return Session{}, err
		}
		return Session{Profile: profile}, nil
	}

	if identity.Email == "" {
		span.SetAttributes(attribute.Bool("pending", true))
		if err := r.setPending(ctx, identity); err != nil {
			return Session{}, err
		}
		log.Debugf("auth, identity [%s] has no email, waiting for a profile choice", identity.UserID)
		return Session{Pending: true}, nil
	}

	profile := r.ProfileForEmail(identity.Email)
	mapping[identity.UserID] = profile
	if err := r.saveMapping(ctx, mapping); err != nil {
		return Session{}, err
	}
	if err := r.commitSession(ctx, identity.UserID); err != nil {
		return Session{}, err
	}
	span.SetAttributes(attribute.String("profile", profile.String()))
	log.Infof("auth, new identity [%s] mapped to %s", identity.UserID, profile)
	return Session{Profile: profile}, nil
}

// ChooseProfile binds the pending identity to the profile and signs it in.
func (r *Resolver) ChooseProfile(ctx context.Context, profile workout.Profile) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.choose_profile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("profile", profile.String()))

	if !profile.IsValid() {
		return Session{}, workout.ErrInvalidProfile
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	pending, err := r.pending(ctx)
	if err != nil {
		return Session{}, err
	}
	if pending == nil {
		return Session{}, ErrNoPendingIdentity
	}

	mapping, err := r.loadMapping(ctx)
	if err != nil {
		return Session{}, err
	}
	mapping[pending.UserID] = profile
	if err := r.saveMapping(ctx, mapping); err != nil {
		return Session{}, err
	}
	if err := r.commitSession(ctx, pending.UserID); err != nil {
		return Session{}, err
	}
	log.Infof("auth, identity [%s] bound to %s", pending.UserID, profile)
	return Session{Profile: profile}, nil
}

// RestoreSession re-validates the last signed in identity with the credential
// checker. Whenever the identity cannot be confirmed the session is reset,
// while the identity mapping is kept.
func (r *Resolver) RestoreSession(ctx context.Context) (_ Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.restore_session")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	lastID, err := r.lastSignedIn(ctx)
	if err != nil {
		return Session{}, err
	}
	if lastID == "" {
		if err := r.clearPending(ctx); err != nil {
			return Session{}, err
		}
		return Session{}, nil
	}

	state, checkErr := r.checker.CredentialState(ctx, lastID)
	if checkErr != nil {
		log.Warnf("auth, credential check for [%s] failed, resetting session: %s", lastID, checkErr)
		return Session{}, r.resetSession(ctx)
	}
	span.SetAttributes(attribute.String("credential-state", string(state)))

	if state != CredentialAuthorized {
		log.Infof("auth, credential of [%s] is %s, resetting session", lastID, state)
		return Session{}, r.resetSession(ctx)
	}

	mapping, err := r.loadMapping(ctx)
	if err != nil {
		return Session{}, err
	}
	profile, ok := mapping[lastID]
	if !ok {
		log.Warnf("auth, identity [%s] has no profile, resetting session", lastID)
		return Session{}, r.resetSession(ctx)
	}

	if err := r.clearPending(ctx); err != nil {
		return Session{}, err
	}
	log.Debugf("auth, session restored for %s", profile)
	return Session{Profile: profile}, nil
}

func (r *Resolver) SignOut(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.resetSession(ctx)
}

// Session reports the current state without contacting the credential checker.
func (r *Resolver) Session(ctx context.Context) (Session, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	pending, err := r.pending(ctx)
	if err != nil {
		return Session{}, err
	}
	if pending != nil {
		return Session{Pending: true}, nil
	}

	profile, err := r.currentProfile(ctx)
	if errors.Is(err, ErrNotSignedIn) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}
	return Session{Profile: profile}, nil
}

func (r *Resolver) CurrentProfile(ctx context.Context) (workout.Profile, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.currentProfile(ctx)
}

func (r *Resolver) currentProfile(ctx context.Context) (workout.Profile, error) {
	lastID, err := r.lastSignedIn(ctx)
	if err != nil {
		return "", err
	}
	if lastID == "" {
		return "", ErrNotSignedIn
	}
	mapping, err := r.loadMapping(ctx)
	if err != nil {
		return "", err
	}
	profile, ok := mapping[lastID]
	if !ok {
		return "", ErrNotSignedIn
	}
	return profile, nil
}

func (r *Resolver) commitSession(ctx context.Context, userID string) error {
	if err := r.store.Set(ctx, lastSignedInIdentityKey, []byte(userID)); err != nil {
		return fmt.Errorf("store last signed in identity: %w", err)
	}
	return r.clearPending(ctx)
}

func (r *Resolver) resetSession(ctx context.Context) error {
	if err := r.store.Delete(ctx, lastSignedInIdentityKey); err != nil {
		return fmt.Errorf("reset last signed in identity: %w", err)
	}
	return r.clearPending(ctx)
}

func (r *Resolver) lastSignedIn(ctx context.Context) (string, error) {
	data, err := r.store.Get(ctx, lastSignedInIdentityKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get last signed in identity: %w", err)
	}
	return string(data), nil
}

func (r *Resolver) setPending(ctx context.Context, identity Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal pending identity: %w", err)
	}
	// the previous session ends with a new sign-in attempt
	if err := r.store.Delete(ctx, lastSignedInIdentityKey); err != nil {
		return fmt.Errorf("reset last signed in identity: %w", err)
	}
	if err := r.store.Set(ctx, pendingIdentityKey, data); err != nil {
		return fmt.Errorf("store pending identity: %w", err)
	}
	return nil
}

func (r *Resolver) pending(ctx context.Context) (*Identity, error) {
	data, err := r.store.Get(ctx, pendingIdentityKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending identity: %w", err)
	}
	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil || identity.UserID == "" {
		log.Warnf("auth, dropping undecodable pending identity: %v", err)
		return nil, nil
	}
	return &identity, nil
}

func (r *Resolver) clearPending(ctx context.Context) error {
	if err := r.store.Delete(ctx, pendingIdentityKey); err != nil {
		return fmt.Errorf("clear pending identity: %w", err)
	}
	return nil
}

// loadMapping treats a missing or undecodable mapping as empty.
func (r *Resolver) loadMapping(ctx context.Context) (map[string]workout.Profile, error) {
	data, err := r.store.Get(ctx, identityProfilesKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return map[string]workout.Profile{}, nil
		}
		return nil, fmt.Errorf("get identity mapping: %w", err)
	}
	mapping := map[string]workout.Profile{}
	if err := json.Unmarshal(data, &mapping); err != nil {
		log.Warnf("auth, undecodable identity mapping, treating it as empty: %s", err)
		return map[string]workout.Profile{}, nil
	}
	return mapping, nil
}

func (r *Resolver) saveMapping(ctx context.Context, mapping map[string]workout.Profile) error {
	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("marshal identity mapping: %w", err)
	}
	if err := r.store.Set(ctx, identityProfilesKey, data); err != nil {
		return fmt.Errorf("store identity mapping: %w", err)
	}
	return nil
}
