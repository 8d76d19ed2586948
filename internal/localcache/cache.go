package localcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/bedgemon/internal/kvstore"
	"github.com/2beens/bedgemon/internal/workout"

	log "github.com/sirupsen/logrus"
)

var ErrNoDraft = errors.New("no draft")

const (
	templatesKey      = "templates"
	workoutDaysPrefix = "workoutDays::"
	draftPrefix       = "currentWorkout::"
)

func TemplatesKey() string {
	return templatesKey
}

func WorkoutDaysKey(profile workout.Profile) string {
	return workoutDaysPrefix + profile.String()
}

func DraftKey(profile workout.Profile) string {
	return draftPrefix + profile.String()
}

// Cache keeps the last known good snapshot of every collection, and the
// per-profile draft, as JSON blobs in the local key-value store.
type Cache struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Cache {
	return &Cache{
		store: store,
	}
}

func (c *Cache) Templates(ctx context.Context) ([]workout.Template, error) {
	return loadSnapshot[workout.Template](ctx, c.store, TemplatesKey())
}

func (c *Cache) SetTemplates(ctx context.Context, templates []workout.Template) error {
	return saveSnapshot(ctx, c.store, TemplatesKey(), templates)
}

func (c *Cache) WorkoutDays(ctx context.Context, profile workout.Profile) ([]workout.Day, error) {
	return loadSnapshot[workout.Day](ctx, c.store, WorkoutDaysKey(profile))
}

func (c *Cache) SetWorkoutDays(ctx context.Context, profile workout.Profile, days []workout.Day) error {
	return saveSnapshot(ctx, c.store, WorkoutDaysKey(profile), days)
}

// Draft returns ErrNoDraft when the profile has no draft, or when the stored
// draft cannot be decoded.
func (c *Cache) Draft(ctx context.Context, profile workout.Profile) (*workout.Day, error) {
	data, err := c.store.Get(ctx, DraftKey(profile))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var day workout.Day
	if err := json.Unmarshal(data, &day); err != nil {
		log.Warnf("local cache, undecodable draft for [%s], ignoring it: %s", profile, err)
		return nil, ErrNoDraft
	}
	return &day, nil
}

func (c *Cache) SetDraft(ctx context.Context, profile workout.Profile, day workout.Day) error {
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := c.store.Set(ctx, DraftKey(profile), data); err != nil {
		return fmt.Errorf("set draft: %w", err)
	}
	return nil
}

func (c *Cache) ClearDraft(ctx context.Context, profile workout.Profile) error {
	if err := c.store.Delete(ctx, DraftKey(profile)); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// loadSnapshot returns an empty snapshot when nothing was cached yet, or when
// the cached blob no longer decodes.
func loadSnapshot[T any](ctx context.Context, store kvstore.Store, key string) ([]T, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load snapshot [%s]: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warnf("local cache, undecodable snapshot [%s], treating it as empty: %s", key, err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveSnapshot[T any](ctx context.Context, store kvstore.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal snapshot [%s]: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save snapshot [%s]: %w", key, err)
	}
	return nil
}
