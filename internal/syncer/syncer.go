package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/bedgemon/internal/localcache"
	"github.com/2beens/bedgemon/internal/remote"
	"github.com/2beens/bedgemon/internal/telemetry/metrics"
	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

var ErrMissingOwner = errors.New("workout day has no owner")

const (
	collectionTemplates = "templates"
	collectionWorkouts  = "workouts"

	opSave   = "save"
	opDelete = "delete"
)

// LoadResult is what a read returns. FromCache is set when the remote store
// could not be reached and Items is the last known good snapshot.
type LoadResult[T any] struct {
	Items     []T
	FromCache bool
}

// Syncer keeps the local cache in step with the remote store. Reads go to
// the remote store first and degrade to the cache, writes go to the remote
// store first and are mirrored into the cache only when that succeeded.
type Syncer struct {
	remote         remote.RecordStore
	cache          *localcache.Cache
	loc            *time.Location
	metricsManager *metrics.Manager

	// cacheMutex serializes writes of cached snapshots, so a read-modify-write
	// after a remote write never loses a concurrent one.
	cacheMutex sync.Mutex
}

// New creates a Syncer. Workout days are grouped by calendar day in loc,
// time.Local when nil.
func New(
	remoteStore remote.RecordStore,
	cache *localcache.Cache,
	loc *time.Location,
	metricsManager *metrics.Manager,
) *Syncer {
	if loc == nil {
		loc = time.Local
	}
	return &Syncer{
		remote:         remoteStore,
		cache:          cache,
		loc:            loc,
		metricsManager: metricsManager,
	}
}

func (s *Syncer) Location() *time.Location {
	return s.loc
}

func (s *Syncer) LoadTemplates(ctx context.Context) (_ LoadResult[workout.Template], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.templates.load")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	templates, remoteErr := fetchAll(ctx, s.metricsManager, collectionTemplates, s.remote.QueryTemplates)
	if remoteErr == nil {
		workout.SortTemplates(templates)
		s.cacheMutex.Lock()
		err := s.cache.SetTemplates(ctx, templates)
		s.cacheMutex.Unlock()
		if err != nil {
			log.Errorf("syncer, refresh cached templates: %s", err)
		}
		return LoadResult[workout.Template]{Items: templates}, nil
	}

	log.Warnf("syncer, fetch templates failed, serving cached: %s", remoteErr)
	s.metricsManager.CounterCacheFallbacks.WithLabelValues(collectionTemplates).Inc()
	span.SetAttributes(attribute.Bool("from-cache", true))

	cached, err := s.cache.Templates(ctx)
	if err != nil {
		return LoadResult[workout.Template]{}, multierr.Combine(remoteErr, err)
	}
	workout.SortTemplates(cached)
	return LoadResult[workout.Template]{Items: cached, FromCache: true}, nil
}

func (s *Syncer) LoadWorkoutDays(ctx context.Context, profile workout.Profile) (_ LoadResult[workout.Day], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.workouts.load")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("profile", profile.String()))

	if !profile.IsValid() {
		return LoadResult[workout.Day]{}, workout.ErrInvalidProfile
	}

	query := func(ctx context.Context, cursor string) (remote.Page[workout.Day], error) {
		return s.remote.QueryWorkoutDays(ctx, profile, cursor)
	}
	days, remoteErr := fetchAll(ctx, s.metricsManager, collectionWorkouts, query)
	if remoteErr == nil {
		workout.SortDays(days, s.loc)
		s.cacheMutex.Lock()
		err := s.cache.SetWorkoutDays(ctx, profile, days)
		s.cacheMutex.Unlock()
		if err != nil {
			log.Errorf("syncer, refresh cached workout days [%s]: %s", profile, err)
		}
		return LoadResult[workout.Day]{Items: days}, nil
	}

	log.Warnf("syncer, fetch workout days [%s] failed, serving cached: %s", profile, remoteErr)
	s.metricsManager.CounterCacheFallbacks.WithLabelValues(collectionWorkouts).Inc()
	span.SetAttributes(attribute.Bool("from-cache", true))

	cached, err := s.cache.WorkoutDays(ctx, profile)
	if err != nil {
		return LoadResult[workout.Day]{}, multierr.Combine(remoteErr, err)
	}
	workout.SortDays(cached, s.loc)
	return LoadResult[workout.Day]{Items: cached, FromCache: true}, nil
}

// AddTemplate creates or, when the id already exists, replaces a template.
func (s *Syncer) AddTemplate(ctx context.Context, template workout.Template) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.templates.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", template.ID.String()))

	if err := template.Validate(); err != nil {
		return err
	}
	if template.Exercises == nil {
		template.Exercises = []workout.TemplateItem{}
	}

	err = s.remote.SaveTemplate(ctx, template)
	s.countWrite(remote.KindTemplate, opSave, err)
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}

	cacheErr := s.updateCachedTemplates(ctx, func(cached []workout.Template) []workout.Template {
		cached = upsert(cached, template, func(t workout.Template) uuid.UUID { return t.ID })
		workout.SortTemplates(cached)
		return cached
	})
	if cacheErr != nil {
		log.Errorf("syncer, template [%s] saved but cache not updated: %s", template.ID, cacheErr)
	}
	return nil
}

func (s *Syncer) DeleteTemplate(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.templates.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", id.String()))

	err = s.remote.DeleteTemplate(ctx, id)
	s.countWrite(remote.KindTemplate, opDelete, err)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	cacheErr := s.updateCachedTemplates(ctx, func(cached []workout.Template) []workout.Template {
		return without(cached, id, func(t workout.Template) uuid.UUID { return t.ID })
	})
	if cacheErr != nil {
		log.Errorf("syncer, template [%s] deleted but cache not updated: %s", id, cacheErr)
	}
	return nil
}

// AddWorkoutDay creates or replaces a workout day in its owner's history.
// The day must carry the profile that logged it.
func (s *Syncer) AddWorkoutDay(ctx context.Context, day workout.Day) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.workouts.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", day.ID.String()))

	if day.LoggedBy == nil {
		return ErrMissingOwner
	}
	profile := *day.LoggedBy
	if !profile.IsValid() {
		return workout.ErrInvalidProfile
	}
	span.SetAttributes(attribute.String("profile", profile.String()))
	if day.Exercises == nil {
		day.Exercises = []workout.ExerciseEntry{}
	}

	err = s.remote.SaveWorkoutDay(ctx, day)
	s.countWrite(remote.KindWorkoutDay, opSave, err)
	if err != nil {
		return fmt.Errorf("save workout day: %w", err)
	}

	cacheErr := s.updateCachedWorkoutDays(ctx, profile, func(cached []workout.Day) []workout.Day {
		cached = upsert(cached, day, func(d workout.Day) uuid.UUID { return d.ID })
		workout.SortDays(cached, s.loc)
		return cached
	})
	if cacheErr != nil {
		log.Errorf("syncer, workout day [%s] saved but cache not updated: %s", day.ID, cacheErr)
	}
	return nil
}

func (s *Syncer) DeleteWorkoutDay(ctx context.Context, id uuid.UUID, profile workout.Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.workouts.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("id", id.String()),
		attribute.String("profile", profile.String()),
	)

	if !profile.IsValid() {
		return workout.ErrInvalidProfile
	}

	err = s.remote.DeleteWorkoutDay(ctx, id)
	s.countWrite(remote.KindWorkoutDay, opDelete, err)
	if err != nil {
		return fmt.Errorf("delete workout day: %w", err)
	}

	cacheErr := s.updateCachedWorkoutDays(ctx, profile, func(cached []workout.Day) []workout.Day {
		return without(cached, id, func(d workout.Day) uuid.UUID { return d.ID })
	})
	if cacheErr != nil {
		log.Errorf("syncer, workout day [%s] deleted but cache not updated: %s", id, cacheErr)
	}
	return nil
}

func (s *Syncer) updateCachedTemplates(ctx context.Context, update func([]workout.Template) []workout.Template) error {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	cached, err := s.cache.Templates(ctx)
	if err != nil {
		return fmt.Errorf("read cached templates: %w", err)
	}
	return s.cache.SetTemplates(ctx, update(cached))
}

func (s *Syncer) updateCachedWorkoutDays(ctx context.Context, profile workout.Profile, update func([]workout.Day) []workout.Day) error {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	cached, err := s.cache.WorkoutDays(ctx, profile)
	if err != nil {
		return fmt.Errorf("read cached workout days: %w", err)
	}
	return s.cache.SetWorkoutDays(ctx, profile, update(cached))
}

// fetchAll follows the continuation cursor until the remote store reports
// there is nothing more. Any failing page fails the whole fetch.
func fetchAll[T any](
	ctx context.Context,
	metricsManager *metrics.Manager,
	collection string,
	query func(ctx context.Context, cursor string) (remote.Page[T], error),
) ([]T, error) {
	start := time.Now()
	defer func() {
		metricsManager.HistogramRemoteFetchDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	}()

	items := make([]T, 0)
	seen := make(map[string]bool)
	cursor := ""
	for {
		page, err := query(ctx, cursor)
		if err != nil {
			metricsManager.CounterRemoteFetches.WithLabelValues(collection, metrics.ResultFail).Inc()
			return nil, fmt.Errorf("fetch %s: %w", collection, err)
		}
		items = append(items, page.Items...)
		if page.Cursor == "" {
			break
		}
		if seen[page.Cursor] {
			metricsManager.CounterRemoteFetches.WithLabelValues(collection, metrics.ResultFail).Inc()
			return nil, fmt.Errorf("fetch %s: cursor did not advance", collection)
		}
		seen[page.Cursor] = true
		cursor = page.Cursor
	}

	metricsManager.CounterRemoteFetches.WithLabelValues(collection, metrics.ResultOK).Inc()
	return items, nil
}

func (s *Syncer) countWrite(kind, op string, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultFail
	}
	s.metricsManager.CounterRemoteWrites.WithLabelValues(kind, op, result).Inc()
}

func upsert[T any](items []T, item T, idOf func(T) uuid.UUID) []T {
	id := idOf(item)
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func without[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}
