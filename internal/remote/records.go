package remote

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
)

// templateRecord mirrors a row of exercise_collection_record. Every column
// except the record name may be null.
type templateRecord struct {
	RecordName        string
	ID                *string
	Name              *string
	ExerciseNamesData []byte
}

// workoutDayRecord mirrors a row of workout_day_record.
type workoutDayRecord struct {
	RecordName    string
	ID            *string
	Date          *time.Time
	ExercisesData []byte
	LoggedBy      *string
}

func encodeTemplate(template workout.Template) (templateRecord, error) {
	items := template.Exercises
	if items == nil {
		items = []workout.TemplateItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return templateRecord{}, fmt.Errorf("marshal template items: %w", err)
	}

	id := template.ID.String()
	name := template.Name
	return templateRecord{
		RecordName:        id,
		ID:                &id,
		Name:              &name,
		ExerciseNamesData: data,
	}, nil
}

func decodeTemplate(rec templateRecord) (workout.Template, error) {
	if rec.ID == nil {
		return workout.Template{}, fmt.Errorf("%w: template [%s] has no id", ErrMalformedRecord, rec.RecordName)
	}
	id, err := uuid.Parse(*rec.ID)
	if err != nil {
		return workout.Template{}, fmt.Errorf("%w: template [%s] id: %s", ErrMalformedRecord, rec.RecordName, err)
	}

	if rec.Name == nil {
		return workout.Template{}, fmt.Errorf("%w: template [%s] has no name", ErrMalformedRecord, rec.RecordName)
	}

	return workout.Template{
		ID:        id,
		Name:      *rec.Name,
		Exercises: decodeTemplateItems(id, rec.ExerciseNamesData),
	}, nil
}

// templateItemDecoders are tried in order, the first one that accepts the
// blob wins. A blob none of them accepts yields a template with no items.
var templateItemDecoders = []func(templateID uuid.UUID, data []byte) ([]workout.TemplateItem, bool){
	decodeStructuredItems,
	decodeLegacyItemNames,
}

func decodeTemplateItems(templateID uuid.UUID, data []byte) []workout.TemplateItem {
	if len(data) == 0 {
		return []workout.TemplateItem{}
	}
	for _, decode := range templateItemDecoders {
		if items, ok := decode(templateID, data); ok {
			return items
		}
	}
	return []workout.TemplateItem{}
}

func decodeStructuredItems(templateID uuid.UUID, data []byte) ([]workout.TemplateItem, bool) {
	var items []workout.TemplateItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = []workout.TemplateItem{}
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = workout.LegacyItemID(templateID, i, items[i].Name)
		}
	}
	return items, true
}

func decodeLegacyItemNames(templateID uuid.UUID, data []byte) ([]workout.TemplateItem, bool) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, false
	}
	return workout.NewTemplateFromNames(templateID, "", names).Exercises, true
}

func encodeWorkoutDay(day workout.Day) (workoutDayRecord, error) {
	exercises := day.Exercises
	if exercises == nil {
		exercises = []workout.ExerciseEntry{}
	}
	data, err := json.Marshal(exercises)
	if err != nil {
		return workoutDayRecord{}, fmt.Errorf("marshal workout exercises: %w", err)
	}

	id := day.ID.String()
	date := day.Date
	rec := workoutDayRecord{
		RecordName:    id,
		ID:            &id,
		Date:          &date,
		ExercisesData: data,
	}
	if day.LoggedBy != nil {
		loggedBy := day.LoggedBy.String()
		rec.LoggedBy = &loggedBy
	}
	return rec, nil
}

func decodeWorkoutDay(rec workoutDayRecord) (workout.Day, error) {
	if rec.ID == nil {
		return workout.Day{}, fmt.Errorf("%w: workout day [%s] has no id", ErrMalformedRecord, rec.RecordName)
	}
	id, err := uuid.Parse(*rec.ID)
	if err != nil {
		return workout.Day{}, fmt.Errorf("%w: workout day [%s] id: %s", ErrMalformedRecord, rec.RecordName, err)
	}
	if rec.Date == nil {
		return workout.Day{}, fmt.Errorf("%w: workout day [%s] has no date", ErrMalformedRecord, rec.RecordName)
	}

	exercises := []workout.ExerciseEntry{}
	if len(rec.ExercisesData) > 0 {
		if err := json.Unmarshal(rec.ExercisesData, &exercises); err != nil {
			return workout.Day{}, fmt.Errorf("%w: workout day [%s] exercises: %s", ErrMalformedRecord, rec.RecordName, err)
		}
		if exercises == nil {
			exercises = []workout.ExerciseEntry{}
		}
	}

	day := workout.Day{
		ID:        id,
		Date:      *rec.Date,
		Exercises: exercises,
	}
	if rec.LoggedBy != nil {
		// an unknown tag is kept out of the day rather than failing the record
		if profile, err := workout.ParseProfile(*rec.LoggedBy); err == nil {
			day.LoggedBy = &profile
		}
	}
	return day, nil
}

// Cursors are the last record name of the previous page, opaque to callers.
func encodeCursor(recordName string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(recordName))
}

func decodeCursor(cursor string) (string, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("invalid cursor: %w", err)
	}
	return string(raw), nil
}
