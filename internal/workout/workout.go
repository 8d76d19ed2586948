package workout

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultExerciseName = "Exercise"

// Set is a single set of an exercise. Reps and weight are never negative.
type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func NewSet(reps int, weight float64) Set {
	return Set{
		Reps:   max(0, reps),
		Weight: max(0, weight),
	}
}

// UnmarshalJSON clamps decoded values the same way NewSet does.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw struct {
		Reps   int     `json:"reps"`
		Weight float64 `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewSet(raw.Reps, raw.Weight)
	return nil
}

// ExerciseEntry is one exercise within a workout day.
type ExerciseEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Sets []Set     `json:"sets"`
}

func NewExerciseEntry(name string, sets ...Set) ExerciseEntry {
	if sets == nil {
		sets = []Set{}
	}
	return ExerciseEntry{
		ID:   uuid.New(),
		Name: name,
		Sets: sets,
	}
}

func (e ExerciseEntry) TotalSets() int {
	return len(e.Sets)
}

// DisplayName returns the trimmed name, or the default name when it is blank.
func (e ExerciseEntry) DisplayName() string {
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	return DefaultExerciseName
}

// Day is a full workout day. Days are stored in a shared collection and
// LoggedBy tells whose history the day belongs to.
type Day struct {
	ID        uuid.UUID       `json:"id"`
	Date      time.Time       `json:"date"`
	Exercises []ExerciseEntry `json:"exercises"`
	LoggedBy  *Profile        `json:"loggedBy,omitempty"`
}

func NewDay(date time.Time, loggedBy Profile, exercises ...ExerciseEntry) Day {
	if exercises == nil {
		exercises = []ExerciseEntry{}
	}
	owner := loggedBy
	return Day{
		ID:        uuid.New(),
		Date:      date,
		Exercises: exercises,
		LoggedBy:  &owner,
	}
}

func (d Day) ExerciseCount() int {
	return len(d.Exercises)
}

func (d Day) TotalSets() int {
	total := 0
	for _, e := range d.Exercises {
		total += e.TotalSets()
	}
	return total
}

// Owner returns the profile that logged the day, or an empty profile.
func (d Day) Owner() Profile {
	if d.LoggedBy == nil {
		return ""
	}
	return *d.LoggedBy
}

// WithoutBlankExercises returns a copy of the day keeping only exercises
// with a non blank name, names trimmed.
func (d Day) WithoutBlankExercises() Day {
	kept := make([]ExerciseEntry, 0, len(d.Exercises))
	for _, e := range d.Exercises {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		e.Name = name
		kept = append(kept, e)
	}
	d.Exercises = kept
	return d
}
