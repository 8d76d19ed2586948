package workout

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// MaxSetsPerExercise bounds how many sets a template item may pre-fill.
const MaxSetsPerExercise = 100

var ErrTooManySets = errors.New("too many sets")

// TemplateItem is one exercise blueprint of a template, with optional
// defaults used to pre-fill sets.
type TemplateItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SetsCount  *int      `json:"setsCount,omitempty"`
	RepsPerSet *int      `json:"repsPerSet,omitempty"`
	Weight     *float64  `json:"weight,omitempty"`
}

// Template is a named, reusable list of exercise blueprints (e.g. "Leg day").
// Templates are shared by both profiles.
type Template struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Exercises []TemplateItem `json:"exercises"`
}

func NewTemplate(name string, items ...TemplateItem) Template {
	if items == nil {
		items = []TemplateItem{}
	}
	return Template{
		ID:        uuid.New(),
		Name:      name,
		Exercises: items,
	}
}

// legacyItemNamespace seeds ids of items stored without one (legacy
// names-only format), so the same record always yields the same ids.
var legacyItemNamespace = uuid.MustParse("8c4b8f0e-3f0f-4c0e-9a52-5b1f1d1e7a10")

// LegacyItemID derives a stable id for the item at index of a template.
func LegacyItemID(templateID uuid.UUID, index int, name string) uuid.UUID {
	return uuid.NewSHA1(legacyItemNamespace, []byte(templateID.String()+"/"+strconv.Itoa(index)+"/"+name))
}

// NewTemplateFromNames builds a template in the legacy form: exercise names
// only, no set defaults.
func NewTemplateFromNames(id uuid.UUID, name string, exerciseNames []string) Template {
	items := make([]TemplateItem, 0, len(exerciseNames))
	for i, exName := range exerciseNames {
		items = append(items, TemplateItem{
			ID:   LegacyItemID(id, i, exName),
			Name: exName,
		})
	}
	return Template{
		ID:        id,
		Name:      name,
		Exercises: items,
	}
}

// Validate rejects a template with an item asking for more than
// MaxSetsPerExercise sets.
func (t Template) Validate() error {
	for _, item := range t.Exercises {
		if item.SetsCount != nil && *item.SetsCount > MaxSetsPerExercise {
			return fmt.Errorf("%w: %q asks for %d, max is %d", ErrTooManySets, item.Name, *item.SetsCount, MaxSetsPerExercise)
		}
	}
	return nil
}

// Expand turns a template item into an exercise entry. When SetsCount is
// positive, that many sets (at most MaxSetsPerExercise) are pre-filled with
// the item's reps and weight (0 when absent); otherwise the entry has no sets.
func (item TemplateItem) Expand() ExerciseEntry {
	sets := []Set{}
	if item.SetsCount != nil && *item.SetsCount > 0 {
		count := min(*item.SetsCount, MaxSetsPerExercise)
		reps := 0
		if item.RepsPerSet != nil {
			reps = *item.RepsPerSet
		}
		weight := 0.0
		if item.Weight != nil {
			weight = *item.Weight
		}
		sets = make([]Set, 0, count)
		for range count {
			sets = append(sets, NewSet(reps, weight))
		}
	}
	return NewExerciseEntry(item.Name, sets...)
}

// ToExerciseEntries converts the template into exercise entries for a new workout.
func (t Template) ToExerciseEntries() []ExerciseEntry {
	entries := make([]ExerciseEntry, 0, len(t.Exercises))
	for _, item := range t.Exercises {
		entries = append(entries, item.Expand())
	}
	return entries
}
