package remote

import (
	"context"
	"sort"
	"sync"

	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MemoryRecordStore keeps records in process memory, encoded the same way
// PsqlStore stores them. Used when no database is configured, and in tests,
// where failures can be injected with FailReads and FailWrites.
type MemoryRecordStore struct {
	mutex       sync.Mutex
	pageSize    int
	templates   map[string]templateRecord
	workoutDays map[string]workoutDayRecord
	onSkip      SkipRecorder

	readErr    error
	writeErr   error
	queryCalls int
}

func NewMemoryRecordStore(pageSize int, onSkip SkipRecorder) *MemoryRecordStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if onSkip == nil {
		onSkip = func(string) {}
	}
	return &MemoryRecordStore{
		pageSize:    pageSize,
		templates:   make(map[string]templateRecord),
		workoutDays: make(map[string]workoutDayRecord),
		onSkip:      onSkip,
	}
}

// FailReads makes every query return err, nil restores normal behaviour.
func (s *MemoryRecordStore) FailReads(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.readErr = err
}

// FailWrites makes every save and delete return err, nil restores normal behaviour.
func (s *MemoryRecordStore) FailWrites(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.writeErr = err
}

func (s *MemoryRecordStore) QueryCalls() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.queryCalls
}

func (s *MemoryRecordStore) SaveTemplate(_ context.Context, template workout.Template) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}

	rec, err := encodeTemplate(template)
	if err != nil {
		return err
	}
	s.templates[rec.RecordName] = rec
	return nil
}

func (s *MemoryRecordStore) QueryTemplates(_ context.Context, cursor string) (Page[workout.Template], error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.queryCalls++
	if s.readErr != nil {
		return Page[workout.Template]{}, s.readErr
	}

	recordNames, next, err := s.pageOf(mapKeys(s.templates), cursor)
	if err != nil {
		return Page[workout.Template]{}, err
	}

	page := Page[workout.Template]{
		Items:  make([]workout.Template, 0, len(recordNames)),
		Cursor: next,
	}
	for _, recordName := range recordNames {
		template, err := decodeTemplate(s.templates[recordName])
		if err != nil {
			log.Warnf("memory record store, skipping template record: %s", err)
			s.onSkip(KindTemplate)
			continue
		}
		page.Items = append(page.Items, template)
	}
	return page, nil
}

func (s *MemoryRecordStore) DeleteTemplate(_ context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	delete(s.templates, id.String())
	return nil
}

func (s *MemoryRecordStore) SaveWorkoutDay(_ context.Context, day workout.Day) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}

	rec, err := encodeWorkoutDay(day)
	if err != nil {
		return err
	}
	s.workoutDays[rec.RecordName] = rec
	return nil
}

func (s *MemoryRecordStore) QueryWorkoutDays(_ context.Context, profile workout.Profile, cursor string) (Page[workout.Day], error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.queryCalls++
	if s.readErr != nil {
		return Page[workout.Day]{}, s.readErr
	}
	if !profile.IsValid() {
		return Page[workout.Day]{}, workout.ErrInvalidProfile
	}

	var tagged []string
	for recordName, rec := range s.workoutDays {
		if rec.LoggedBy != nil && *rec.LoggedBy == profile.String() {
			tagged = append(tagged, recordName)
		}
	}
	recordNames, next, err := s.pageOf(tagged, cursor)
	if err != nil {
		return Page[workout.Day]{}, err
	}

	page := Page[workout.Day]{
		Items:  make([]workout.Day, 0, len(recordNames)),
		Cursor: next,
	}
	for _, recordName := range recordNames {
		day, err := decodeWorkoutDay(s.workoutDays[recordName])
		if err != nil {
			log.Warnf("memory record store, skipping workout day record: %s", err)
			s.onSkip(KindWorkoutDay)
			continue
		}
		page.Items = append(page.Items, day)
	}
	return page, nil
}

func (s *MemoryRecordStore) DeleteWorkoutDay(_ context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	delete(s.workoutDays, id.String())
	return nil
}

// pageOf mirrors the keyset pagination of PsqlStore: record names sorted
// ascending, starting after the cursor.
func (s *MemoryRecordStore) pageOf(recordNames []string, cursor string) ([]string, string, error) {
	after, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	sort.Strings(recordNames)
	start := sort.SearchStrings(recordNames, after)
	for start < len(recordNames) && recordNames[start] <= after {
		start++
	}

	end := start + s.pageSize
	if end > len(recordNames) {
		end = len(recordNames)
	}
	batch := recordNames[start:end]

	next := ""
	if len(batch) == s.pageSize {
		next = encodeCursor(batch[len(batch)-1])
	}
	return batch, next, nil
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
