package remote

import (
	"context"
	"errors"

	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
)

const (
	KindTemplate   = "template"
	KindWorkoutDay = "workout_day"
)

var ErrMalformedRecord = errors.New("malformed record")

// Page is one batch of a listing. An empty Cursor means there is nothing
// more to fetch; otherwise pass it back to get the next batch.
type Page[T any] struct {
	Items  []T
	Cursor string
}

// RecordStore is the shared remote database both profiles sync against.
// Saves are upserts keyed by the entity id, deletes of missing ids succeed.
type RecordStore interface {
	SaveTemplate(ctx context.Context, template workout.Template) error
	QueryTemplates(ctx context.Context, cursor string) (Page[workout.Template], error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	SaveWorkoutDay(ctx context.Context, day workout.Day) error
	QueryWorkoutDays(ctx context.Context, profile workout.Profile, cursor string) (Page[workout.Day], error)
	DeleteWorkoutDay(ctx context.Context, id uuid.UUID) error
}

var (
	_ RecordStore = (*PsqlStore)(nil)
	_ RecordStore = (*MemoryRecordStore)(nil)
)

// SkipRecorder gets notified about every listed record that could not be
// decoded and was left out of the page.
type SkipRecorder func(kind string)
