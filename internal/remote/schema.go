package remote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS public.exercise_collection_record
(
    record_name         VARCHAR PRIMARY KEY,
    id                  VARCHAR,
    name                VARCHAR,
    exercise_names_data BYTEA,
    modified_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS public.workout_day_record
(
    record_name    VARCHAR PRIMARY KEY,
    id             VARCHAR,
    date           TIMESTAMPTZ,
    exercises_data BYTEA,
    logged_by      VARCHAR,
    modified_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_workout_day_record_logged_by
    ON public.workout_day_record (logged_by, record_name);
`

// Migrate creates the record tables when they do not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate remote schema: %w", err)
	}
	return nil
}
