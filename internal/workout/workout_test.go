package workout

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestNewSet_ClampsNegatives(t *testing.T) {
	s := NewSet(-3, -12.5)
	assert.Equal(t, 0, s.Reps)
	assert.Equal(t, 0.0, s.Weight)

	s = NewSet(8, 42.5)
	assert.Equal(t, 8, s.Reps)
	assert.Equal(t, 42.5, s.Weight)
}

func TestSet_UnmarshalJSON_Clamps(t *testing.T) {
	var sets []Set
	require.NoError(t, json.Unmarshal([]byte(`[{"reps":-1,"weight":-20},{"reps":5,"weight":60}]`), &sets))
	require.Len(t, sets, 2)
	assert.Equal(t, Set{Reps: 0, Weight: 0}, sets[0])
	assert.Equal(t, Set{Reps: 5, Weight: 60}, sets[1])
}

func TestTemplateItem_Expand(t *testing.T) {
	item := TemplateItem{
		ID:         uuid.New(),
		Name:       "Squat",
		SetsCount:  intPtr(3),
		RepsPerSet: intPtr(10),
		Weight:     floatPtr(25),
	}
	entry := item.Expand()
	assert.Equal(t, "Squat", entry.Name)
	require.Len(t, entry.Sets, 3)
	for _, s := range entry.Sets {
		assert.Equal(t, Set{Reps: 10, Weight: 25}, s)
	}
	assert.NotEqual(t, uuid.Nil, entry.ID)
}

func TestTemplateItem_Expand_NoSetsCount(t *testing.T) {
	entry := TemplateItem{Name: "Plank", RepsPerSet: intPtr(1)}.Expand()
	assert.Equal(t, "Plank", entry.Name)
	assert.NotNil(t, entry.Sets)
	assert.Empty(t, entry.Sets)

	entry = TemplateItem{Name: "Plank", SetsCount: intPtr(0)}.Expand()
	assert.Empty(t, entry.Sets)
}

func TestTemplateItem_Expand_MissingRepsAndWeight(t *testing.T) {
	entry := TemplateItem{Name: "Row", SetsCount: intPtr(2)}.Expand()
	require.Len(t, entry.Sets, 2)
	assert.Equal(t, Set{}, entry.Sets[0])

	entry = TemplateItem{Name: "Row", SetsCount: intPtr(1), RepsPerSet: intPtr(-4), Weight: floatPtr(-1)}.Expand()
	require.Len(t, entry.Sets, 1)
	assert.Equal(t, Set{}, entry.Sets[0])
}

func TestTemplateItem_Expand_HugeSetsCountIsCapped(t *testing.T) {
	for _, count := range []int{MaxSetsPerExercise + 1, 1 << 33, 1 << 62} {
		item := TemplateItem{Name: "x", SetsCount: intPtr(count), RepsPerSet: intPtr(5)}
		var entry ExerciseEntry
		assert.NotPanics(t, func() { entry = item.Expand() })
		assert.Len(t, entry.Sets, MaxSetsPerExercise)
	}
}

func TestTemplate_Validate(t *testing.T) {
	ok := NewTemplate("Legs",
		TemplateItem{Name: "Squat", SetsCount: intPtr(MaxSetsPerExercise)},
		TemplateItem{Name: "Lunge"},
	)
	assert.NoError(t, ok.Validate())
	assert.NoError(t, NewTemplate("Empty").Validate())

	tooMany := NewTemplate("Legs", TemplateItem{Name: "Squat", SetsCount: intPtr(1 << 40)})
	assert.ErrorIs(t, tooMany.Validate(), ErrTooManySets)
}

func TestTemplate_ToExerciseEntries(t *testing.T) {
	tmpl := NewTemplate("Leg day",
		TemplateItem{ID: uuid.New(), Name: "Squat", SetsCount: intPtr(3), RepsPerSet: intPtr(5), Weight: floatPtr(100)},
		TemplateItem{ID: uuid.New(), Name: "Lunge"},
	)
	entries := tmpl.ToExerciseEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Squat", entries[0].Name)
	assert.Len(t, entries[0].Sets, 3)
	assert.Equal(t, "Lunge", entries[1].Name)
	assert.Empty(t, entries[1].Sets)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestNewTemplateFromNames_StableItemIDs(t *testing.T) {
	id := uuid.New()
	t1 := NewTemplateFromNames(id, "Push", []string{"Bench", "Dips"})
	t2 := NewTemplateFromNames(id, "Push", []string{"Bench", "Dips"})
	require.Len(t, t1.Exercises, 2)
	assert.Equal(t, t1, t2)
	assert.NotEqual(t, t1.Exercises[0].ID, t1.Exercises[1].ID)
	assert.Nil(t, t1.Exercises[0].SetsCount)
}

func TestDay_Counts(t *testing.T) {
	day := NewDay(time.Now(), ProfileDan,
		NewExerciseEntry("Bench", NewSet(5, 80), NewSet(5, 80)),
		NewExerciseEntry("Row", NewSet(8, 60)),
	)
	assert.Equal(t, 2, day.ExerciseCount())
	assert.Equal(t, 3, day.TotalSets())
	assert.Equal(t, ProfileDan, day.Owner())

	assert.Equal(t, Profile(""), Day{}.Owner())
}

func TestDay_WithoutBlankExercises(t *testing.T) {
	day := NewDay(time.Now(), ProfileSarah,
		NewExerciseEntry("  Deadlift "),
		NewExerciseEntry("   "),
		NewExerciseEntry(""),
	)
	cleaned := day.WithoutBlankExercises()
	require.Len(t, cleaned.Exercises, 1)
	assert.Equal(t, "Deadlift", cleaned.Exercises[0].Name)
	// original is untouched
	assert.Len(t, day.Exercises, 3)
}

func TestExerciseEntry_DisplayName(t *testing.T) {
	assert.Equal(t, "Curl", ExerciseEntry{Name: " Curl "}.DisplayName())
	assert.Equal(t, DefaultExerciseName, ExerciseEntry{Name: "  "}.DisplayName())
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile(" Dan ")
	require.NoError(t, err)
	assert.Equal(t, ProfileDan, p)

	p, err = ParseProfile("sarah")
	require.NoError(t, err)
	assert.Equal(t, ProfileSarah, p)

	_, err = ParseProfile("bob")
	assert.ErrorIs(t, err, ErrInvalidProfile)
	_, err = ParseProfile("")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestSortTemplates(t *testing.T) {
	templates := []Template{
		{Name: "push"},
		{Name: "Arms"},
		{Name: "legs"},
		{Name: "Back"},
	}
	SortTemplates(templates)
	names := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		names = append(names, tmpl.Name)
	}
	assert.Equal(t, []string{"Arms", "Back", "legs", "push"}, names)
}

func TestSortDays(t *testing.T) {
	loc := time.UTC
	morning := time.Date(2026, 3, 10, 7, 0, 0, 0, loc)
	evening := time.Date(2026, 3, 10, 19, 0, 0, 0, loc)
	older := time.Date(2026, 3, 1, 12, 0, 0, 0, loc)
	newest := time.Date(2026, 3, 12, 12, 0, 0, 0, loc)

	days := []Day{
		{ID: uuid.New(), Date: older},
		{ID: uuid.New(), Date: morning},
		{ID: uuid.New(), Date: newest},
		{ID: uuid.New(), Date: evening},
	}
	SortDays(days, loc)

	assert.Equal(t, newest, days[0].Date)
	// same calendar day keeps relative order
	assert.Equal(t, morning, days[1].Date)
	assert.Equal(t, evening, days[2].Date)
	assert.Equal(t, older, days[3].Date)
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	ts := time.Date(2026, 5, 1, 23, 30, 0, 0, time.UTC) // 01:30 on May 2nd in loc
	assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, loc), StartOfDay(ts, loc))
}
