package remote

import (
	"context"
	"fmt"

	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultPageSize = 100

type PsqlStore struct {
	db       *pgxpool.Pool
	pageSize int
	onSkip   SkipRecorder
}

// NewPsqlStore creates a store listing pageSize records per query (DefaultPageSize
// when not positive). onSkip may be nil.
func NewPsqlStore(db *pgxpool.Pool, pageSize int, onSkip SkipRecorder) *PsqlStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if onSkip == nil {
		onSkip = func(string) {}
	}
	return &PsqlStore{
		db:       db,
		pageSize: pageSize,
		onSkip:   onSkip,
	}
}

func (s *PsqlStore) SaveTemplate(ctx context.Context, template workout.Template) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.templates.save")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", template.ID.String()))

	rec, err := encodeTemplate(template)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO exercise_collection_record (record_name, id, name, exercise_names_data, modified_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (record_name) DO UPDATE
		SET id = EXCLUDED.id,
		    name = EXCLUDED.name,
		    exercise_names_data = EXCLUDED.exercise_names_data,
		    modified_at = now()
	`,
		rec.RecordName, rec.ID, rec.Name, rec.ExerciseNamesData,
	)
	if err != nil {
		return fmt.Errorf("save template [%s]: %w", rec.RecordName, err)
	}
	return nil
}

func (s *PsqlStore) QueryTemplates(ctx context.Context, cursor string) (_ Page[workout.Template], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.templates.query")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	after, err := decodeCursor(cursor)
	if err != nil {
		return Page[workout.Template]{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT record_name, id, name, exercise_names_data
		FROM exercise_collection_record
		WHERE record_name > $1
		ORDER BY record_name
		LIMIT $2
	`, after, s.pageSize)
	if err != nil {
		return Page[workout.Template]{}, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	page := Page[workout.Template]{
		Items: make([]workout.Template, 0),
	}
	fetched, lastRecordName := 0, ""
	for rows.Next() {
		var rec templateRecord
		if err := rows.Scan(&rec.RecordName, &rec.ID, &rec.Name, &rec.ExerciseNamesData); err != nil {
			return Page[workout.Template]{}, fmt.Errorf("scan template: %w", err)
		}
		fetched++
		lastRecordName = rec.RecordName

		template, err := decodeTemplate(rec)
		if err != nil {
			log.Warnf("remote store, skipping template record: %s", err)
			s.onSkip(KindTemplate)
			continue
		}
		page.Items = append(page.Items, template)
	}
	if err := rows.Err(); err != nil {
		return Page[workout.Template]{}, fmt.Errorf("read templates: %w", err)
	}

	if fetched == s.pageSize {
		page.Cursor = encodeCursor(lastRecordName)
	}
	span.SetAttributes(attribute.Int("fetched", fetched))
	return page, nil
}

func (s *PsqlStore) DeleteTemplate(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.templates.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := s.db.Exec(ctx, `DELETE FROM exercise_collection_record WHERE record_name = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete template [%s]: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		log.Debugf("remote store, template [%s] already gone", id)
	}
	return nil
}

func (s *PsqlStore) SaveWorkoutDay(ctx context.Context, day workout.Day) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.workouts.save")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("id", day.ID.String()),
		attribute.String("logged-by", day.Owner().String()),
	)

	rec, err := encodeWorkoutDay(day)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO workout_day_record (record_name, id, date, exercises_data, logged_by, modified_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (record_name) DO UPDATE
		SET id = EXCLUDED.id,
		    date = EXCLUDED.date,
		    exercises_data = EXCLUDED.exercises_data,
		    logged_by = EXCLUDED.logged_by,
		    modified_at = now()
	`,
		rec.RecordName, rec.ID, rec.Date, rec.ExercisesData, rec.LoggedBy,
	)
	if err != nil {
		return fmt.Errorf("save workout day [%s]: %w", rec.RecordName, err)
	}
	return nil
}

func (s *PsqlStore) QueryWorkoutDays(ctx context.Context, profile workout.Profile, cursor string) (_ Page[workout.Day], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.workouts.query")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("profile", profile.String()))

	if !profile.IsValid() {
		return Page[workout.Day]{}, workout.ErrInvalidProfile
	}

	after, err := decodeCursor(cursor)
	if err != nil {
		return Page[workout.Day]{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT record_name, id, date, exercises_data, logged_by
		FROM workout_day_record
		WHERE logged_by = $1 AND record_name > $2
		ORDER BY record_name
		LIMIT $3
	`, profile.String(), after, s.pageSize)
	if err != nil {
		return Page[workout.Day]{}, fmt.Errorf("query workout days: %w", err)
	}
	defer rows.Close()

	page := Page[workout.Day]{
		Items: make([]workout.Day, 0),
	}
	fetched, lastRecordName := 0, ""
	for rows.Next() {
		var rec workoutDayRecord
		if err := rows.Scan(&rec.RecordName, &rec.ID, &rec.Date, &rec.ExercisesData, &rec.LoggedBy); err != nil {
			return Page[workout.Day]{}, fmt.Errorf("scan workout day: %w", err)
		}
		fetched++
		lastRecordName = rec.RecordName

		day, err := decodeWorkoutDay(rec)
		if err != nil {
			log.Warnf("remote store, skipping workout day record: %s", err)
			s.onSkip(KindWorkoutDay)
			continue
		}
		page.Items = append(page.Items, day)
	}
	if err := rows.Err(); err != nil {
		return Page[workout.Day]{}, fmt.Errorf("read workout days: %w", err)
	}

	if fetched == s.pageSize {
		page.Cursor = encodeCursor(lastRecordName)
	}
	span.SetAttributes(attribute.Int("fetched", fetched))
	return page, nil
}

func (s *PsqlStore) DeleteWorkoutDay(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.remote.workouts.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := s.db.Exec(ctx, `DELETE FROM workout_day_record WHERE record_name = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete workout day [%s]: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		log.Debugf("remote store, workout day [%s] already gone", id)
	}
	return nil
}
