package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/bedgemon/internal/auth"
	"github.com/2beens/bedgemon/internal/workout"
	"github.com/2beens/bedgemon/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=draft_test

type draftService interface {
	Start(ctx context.Context, profile workout.Profile, params StartParams) (workout.Day, error)
	Current(ctx context.Context, profile workout.Profile) (workout.Day, error)
	Save(ctx context.Context, profile workout.Profile, edited workout.Day) (workout.Day, error)
	AddExercise(ctx context.Context, profile workout.Profile, name string, sets ...workout.Set) (workout.Day, error)
	UpdateExercise(ctx context.Context, profile workout.Profile, exercise workout.ExerciseEntry) (workout.Day, error)
	RemoveExercise(ctx context.Context, profile workout.Profile, exerciseID uuid.UUID) (workout.Day, error)
	AddSet(ctx context.Context, profile workout.Profile, exerciseID uuid.UUID, set workout.Set) (workout.Day, error)
	RemoveSet(ctx context.Context, profile workout.Profile, exerciseID uuid.UUID, setIndex int) (workout.Day, error)
	Finish(ctx context.Context, profile workout.Profile) (workout.Day, error)
	Discard(ctx context.Context, profile workout.Profile) error
}

type Handler struct {
	service draftService
}

func NewHandler(service draftService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	draftRouter := mainRouter.PathPrefix("/draft").Subrouter()
	draftRouter.HandleFunc("", handler.handleCurrent).Methods("GET").Name("draft-current")
	draftRouter.HandleFunc("", handler.handleSave).Methods("PUT").Name("draft-save")
	draftRouter.HandleFunc("", handler.handleDiscard).Methods("DELETE").Name("draft-discard")
	draftRouter.HandleFunc("/start", handler.handleStart).Methods("POST").Name("draft-start")
	draftRouter.HandleFunc("/finish", handler.handleFinish).Methods("POST").Name("draft-finish")
	draftRouter.HandleFunc("/exercises", handler.handleAddExercise).Methods("POST").Name("draft-exercise-add")
	draftRouter.HandleFunc("/exercises/{exid}", handler.handleUpdateExercise).Methods("PUT").Name("draft-exercise-update")
	draftRouter.HandleFunc("/exercises/{exid}", handler.handleRemoveExercise).Methods("DELETE").Name("draft-exercise-remove")
	draftRouter.HandleFunc("/exercises/{exid}/sets", handler.handleAddSet).Methods("POST").Name("draft-set-add")
	draftRouter.HandleFunc("/exercises/{exid}/sets/{idx}", handler.handleRemoveSet).Methods("DELETE").Name("draft-set-remove")
}

type startRequest struct {
	Date       *time.Time `json:"date,omitempty"`
	TemplateID *uuid.UUID `json:"templateId,omitempty"`
}

type addExerciseRequest struct {
	Name string        `json:"name"`
	Sets []workout.Set `json:"sets"`
}

func (handler *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}
	day, err := handler.service.Current(r.Context(), profile)
	handler.respond(w, "get draft", day, err)
}

func (handler *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}

	var req startRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid start params", http.StatusBadRequest)
			return
		}
	}

	params := StartParams{TemplateID: req.TemplateID}
	if req.Date != nil {
		params.Date = *req.Date
	}
	day, err := handler.service.Start(r.Context(), profile, params)
	handler.respond(w, "start draft", day, err)
}

func (handler *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}

	var edited workout.Day
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		http.Error(w, "invalid draft", http.StatusBadRequest)
		return
	}
	day, err := handler.service.Save(r.Context(), profile, edited)
	handler.respond(w, "save draft", day, err)
}

func (handler *Handler) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}

	var req addExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid exercise", http.StatusBadRequest)
		return
	}
	day, err := handler.service.AddExercise(r.Context(), profile, req.Name, req.Sets...)
	handler.respond(w, "add exercise", day, err)
}

func (handler *Handler) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}
	exerciseID, ok := pathExerciseID(w, r)
	if !ok {
		return
	}

	var exercise workout.ExerciseEntry
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		http.Error(w, "invalid exercise", http.StatusBadRequest)
		return
	}
	exercise.ID = exerciseID
	day, err := handler.service.UpdateExercise(r.Context(), profile, exercise)
	handler.respond(w, "update exercise", day, err)
}

func (handler *Handler) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}
	exerciseID, ok := pathExerciseID(w, r)
	if !ok {
		return
	}
	day, err := handler.service.RemoveExercise(r.Context(), profile, exerciseID)
	handler.respond(w, "remove exercise", day, err)
}

func (handler *Handler) handleAddSet(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}
	exerciseID, ok := pathExerciseID(w, r)
	if !ok {
		return
	}

	var set workout.Set
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		http.Error(w, "invalid set", http.StatusBadRequest)
		return
	}
	day, err := handler.service.AddSet(r.Context(), profile, exerciseID, set)
	handler.respond(w, "add set", day, err)
}

func (handler *Handler) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}
	exerciseID, ok := pathExerciseID(w, r)
	if !ok {
		return
	}

	setIndex, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil {
		http.Error(w, "error, set index must be a number", http.StatusBadRequest)
		return
	}
	day, err := handler.service.RemoveSet(r.Context(), profile, exerciseID, setIndex)
	handler.respond(w, "remove set", day, err)
}

func (handler *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}
	day, err := handler.service.Finish(r.Context(), profile)
	handler.respond(w, "finish draft", day, err)
}

func (handler *Handler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	profile, ok := requestProfile(w, r)
	if !ok {
		return
	}
	if err := handler.service.Discard(r.Context(), profile); err != nil {
		writeError(w, "discard draft", err)
		return
	}
	pkg.WriteTextResponseOK(w, "discarded")
}

func (handler *Handler) respond(w http.ResponseWriter, action string, day workout.Day, err error) {
	if err != nil {
		writeError(w, action, err)
		return
	}
	pkg.WriteJSON(w, day, http.StatusOK)
}

func requestProfile(w http.ResponseWriter, r *http.Request) (workout.Profile, bool) {
	profile, err := auth.RequestProfile(r)
	if err != nil {
		writeError(w, "resolve profile", err)
		return "", false
	}
	return profile, true
}

func pathExerciseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	exerciseID, err := uuid.Parse(mux.Vars(r)["exid"])
	if err != nil {
		http.Error(w, "error, invalid exercise id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return exerciseID, true
}

func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, workout.ErrInvalidProfile):
		http.Error(w, fmt.Sprintf("%s: %s", action, err), http.StatusBadRequest)
	case errors.Is(err, auth.ErrNotSignedIn):
		http.Error(w, "not signed in", http.StatusUnauthorized)
	case errors.Is(err, ErrNoDraft),
		errors.Is(err, ErrExerciseNotFound),
		errors.Is(err, ErrSetNotFound),
		errors.Is(err, ErrTemplateNotFound):
		http.Error(w, fmt.Sprintf("%s: %s", action, err), http.StatusNotFound)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, fmt.Sprintf("%s failed", action), http.StatusInternalServerError)
	}
}
