package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/2beens/bedgemon/internal/localcache"
	"github.com/2beens/bedgemon/internal/syncer"
	"github.com/2beens/bedgemon/internal/telemetry/metrics"
	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrNoDraft          = localcache.ErrNoDraft
	ErrExerciseNotFound = errors.New("exercise not found in draft")
	ErrSetNotFound      = errors.New("set not found")
	ErrTemplateNotFound = errors.New("template not found")
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=draft_test

type workoutSyncer interface {
	LoadTemplates(ctx context.Context) (syncer.LoadResult[workout.Template], error)
	AddWorkoutDay(ctx context.Context, day workout.Day) error
}

type StartParams struct {
	// Date of the workout, now when zero.
	Date       time.Time
	TemplateID *uuid.UUID
}

// Service manages the in-progress workout of each profile. A profile has at
// most one draft. Edits only touch the draft slot, Finish commits the draft
// to the profile's history and empties the slot.
type Service struct {
	cache          *localcache.Cache
	syncer         workoutSyncer
	metricsManager *metrics.Manager
	now            func() time.Time

	// serializes read-modify-write cycles on the draft slots
	mutex sync.Mutex
}

func NewService(cache *localcache.Cache, syncer workoutSyncer, metricsManager *metrics.Manager) *Service {
	return &Service{
		cache:          cache,
		syncer:         syncer,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// Start begins a new draft, replacing any existing one. With a template
// id the draft is prefilled with the template's exercises.
func (s *Service) Start(ctx context.Context, profile workout.Profile, params StartParams) (_ workout.Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "draft.start")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("profile", profile.String()))

	if !profile.IsValid() {
		return workout.Day{}, workout.ErrInvalidProfile
	}

	exercises := []workout.ExerciseEntry{}
	if params.TemplateID != nil {
		span.SetAttributes(attribute.String("template-id", params.TemplateID.String()))
		template, err := s.findTemplate(ctx, *params.TemplateID)
		if err != nil {
			return workout.Day{}, err
		}
		exercises = template.ToExerciseEntries()
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	day := workout.NewDay(date, profile, exercises...)
	if err := s.cache.SetDraft(ctx, profile, day); err != nil {
		return workout.Day{}, err
	}
	log.Debugf("draft [%s] started for %s with %d exercises", day.ID, profile, len(exercises))
	return day, nil
}

func (s *Service) Current(ctx context.Context, profile workout.Profile) (workout.Day, error) {
	if !profile.IsValid() {
		return workout.Day{}, workout.ErrInvalidProfile
	}
	day, err := s.cache.Draft(ctx, profile)
	if err != nil {
		return workout.Day{}, err
	}
	return *day, nil
}

// Save replaces the date and exercises of the draft. The draft keeps its id
// and owner.
func (s *Service) Save(ctx context.Context, profile workout.Profile, edited workout.Day) (workout.Day, error) {
	return s.edit(ctx, "draft.save", profile, func(day *workout.Day) error {
		if !edited.Date.IsZero() {
			day.Date = edited.Date
		}
		day.Exercises = make([]workout.ExerciseEntry, 0, len(edited.Exercises))
		for _, exercise := range edited.Exercises {
			if exercise.ID == uuid.Nil {
				exercise.ID = uuid.New()
			}
			exercise.Sets = clamped(exercise.Sets)
			day.Exercises = append(day.Exercises, exercise)
		}
		return nil
	})
}

func (s *Service) AddExercise(ctx context.Context, profile workout.Profile, name string, sets ...workout.Set) (workout.Day, error) {
	return s.edit(ctx, "draft.exercise.add", profile, func(day *workout.Day) error {
		day.Exercises = append(day.Exercises, workout.NewExerciseEntry(strings.TrimSpace(name), clamped(sets)...))
		return nil
	})
}

// UpdateExercise replaces the exercise with the same id, or appends it when
// the draft has no such exercise. A blank name becomes the default name.
func (s *Service) UpdateExercise(ctx context.Context, profile workout.Profile, exercise workout.ExerciseEntry) (workout.Day, error) {
	return s.edit(ctx, "draft.exercise.update", profile, func(day *workout.Day) error {
		if exercise.ID == uuid.Nil {
			exercise.ID = uuid.New()
		}
		exercise.Name = exercise.DisplayName()
		exercise.Sets = clamped(exercise.Sets)
		for i := range day.Exercises {
			if day.Exercises[i].ID == exercise.ID {
				day.Exercises[i] = exercise
				return nil
			}
		}
		day.Exercises = append(day.Exercises, exercise)
		return nil
	})
}

func (s *Service) RemoveExercise(ctx context.Context, profile workout.Profile, exerciseID uuid.UUID) (workout.Day, error) {
	return s.edit(ctx, "draft.exercise.remove", profile, func(day *workout.Day) error {
		i := exerciseIndex(day, exerciseID)
		if i < 0 {
			return ErrExerciseNotFound
		}
		day.Exercises = append(day.Exercises[:i], day.Exercises[i+1:]...)
		return nil
	})
}

func (s *Service) AddSet(ctx context.Context, profile workout.Profile, exerciseID uuid.UUID, set workout.Set) (workout.Day, error) {
	return s.edit(ctx, "draft.set.add", profile, func(day *workout.Day) error {
		i := exerciseIndex(day, exerciseID)
		if i < 0 {
			return ErrExerciseNotFound
		}
		day.Exercises[i].Sets = append(day.Exercises[i].Sets, workout.NewSet(set.Reps, set.Weight))
		return nil
	})
}

func (s *Service) RemoveSet(ctx context.Context, profile workout.Profile, exerciseID uuid.UUID, setIndex int) (workout.Day, error) {
	return s.edit(ctx, "draft.set.remove", profile, func(day *workout.Day) error {
		i := exerciseIndex(day, exerciseID)
		if i < 0 {
			return ErrExerciseNotFound
		}
		sets := day.Exercises[i].Sets
		if setIndex < 0 || setIndex >= len(sets) {
			return ErrSetNotFound
		}
		day.Exercises[i].Sets = append(sets[:setIndex], sets[setIndex+1:]...)
		return nil
	})
}

// Finish commits the draft to the profile's history and clears the slot.
// Exercises without a name are dropped. When the commit fails the draft
// stays in place.
func (s *Service) Finish(ctx context.Context, profile workout.Profile) (_ workout.Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "draft.finish")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("profile", profile.String()))

	if !profile.IsValid() {
		return workout.Day{}, workout.ErrInvalidProfile
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	draft, err := s.cache.Draft(ctx, profile)
	if err != nil {
		return workout.Day{}, err
	}

	day := draft.WithoutBlankExercises()
	owner := profile
	day.LoggedBy = &owner

	if err := s.syncer.AddWorkoutDay(ctx, day); err != nil {
		return workout.Day{}, fmt.Errorf("commit draft: %w", err)
	}
	s.metricsManager.CounterFinishedWorkouts.WithLabelValues(profile.String()).Inc()

	if err := s.cache.ClearDraft(ctx, profile); err != nil {
		log.Errorf("draft [%s] committed but slot not cleared: %s", day.ID, err)
	}
	log.Debugf("draft [%s] finished by %s: %d exercises, %d sets", day.ID, profile, day.ExerciseCount(), day.TotalSets())
	return day, nil
}

func (s *Service) Discard(ctx context.Context, profile workout.Profile) error {
	if !profile.IsValid() {
		return workout.ErrInvalidProfile
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.cache.ClearDraft(ctx, profile)
}

func (s *Service) edit(ctx context.Context, spanName string, profile workout.Profile, apply func(day *workout.Day) error) (_ workout.Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, spanName)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("profile", profile.String()))

	if !profile.IsValid() {
		return workout.Day{}, workout.ErrInvalidProfile
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	day, err := s.cache.Draft(ctx, profile)
	if err != nil {
		return workout.Day{}, err
	}
	if err := apply(day); err != nil {
		return workout.Day{}, err
	}
	owner := profile
	day.LoggedBy = &owner
	if err := s.cache.SetDraft(ctx, profile, *day); err != nil {
		return workout.Day{}, err
	}
	return *day, nil
}

func (s *Service) findTemplate(ctx context.Context, id uuid.UUID) (workout.Template, error) {
	res, err := s.syncer.LoadTemplates(ctx)
	if err != nil {
		return workout.Template{}, fmt.Errorf("load templates: %w", err)
	}
	for _, template := range res.Items {
		if template.ID == id {
			return template, nil
		}
	}
	return workout.Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
}

func clamped(sets []workout.Set) []workout.Set {
	out := make([]workout.Set, 0, len(sets))
	for _, set := range sets {
		out = append(out, workout.NewSet(set.Reps, set.Weight))
	}
	return out
}

func exerciseIndex(day *workout.Day, id uuid.UUID) int {
	for i := range day.Exercises {
		if day.Exercises[i].ID == id {
			return i
		}
	}
	return -1
}
