package tracker

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/bedgemon/internal/auth"
	"github.com/2beens/bedgemon/internal/syncer"
	"github.com/2beens/bedgemon/internal/workout"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// FromCacheHeader is set on list responses served from the local cache
// because the remote store could not be reached.
const FromCacheHeader = "X-Bedgemon-From-Cache"

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=tracker_test

type workoutSyncer interface {
	LoadTemplates(ctx context.Context) (syncer.LoadResult[workout.Template], error)
	AddTemplate(ctx context.Context, template workout.Template) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
	LoadWorkoutDays(ctx context.Context, profile workout.Profile) (syncer.LoadResult[workout.Day], error)
	AddWorkoutDay(ctx context.Context, day workout.Day) error
	DeleteWorkoutDay(ctx context.Context, id uuid.UUID, profile workout.Profile) error
}

type DeleteResponse struct {
	DeletedID uuid.UUID `json:"deletedId"`
}

type Handler struct {
	syncer workoutSyncer
}

func NewHandler(syncer workoutSyncer) *Handler {
	return &Handler{
		syncer: syncer,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	templatesRouter := mainRouter.PathPrefix("/templates").Subrouter()
	templatesRouter.HandleFunc("", handler.HandleListTemplates).Methods("GET").Name("templates-list")
	templatesRouter.HandleFunc("", handler.HandleAddTemplate).Methods("POST", "PUT").Name("templates-add")
	templatesRouter.HandleFunc("/{id}", handler.HandleDeleteTemplate).Methods("DELETE").Name("templates-delete")

	workoutsRouter := mainRouter.PathPrefix("/workouts").Subrouter()
	workoutsRouter.HandleFunc("", handler.HandleListWorkoutDays).Methods("GET").Name("workouts-list")
	workoutsRouter.HandleFunc("", handler.HandleAddWorkoutDay).Methods("POST", "PUT").Name("workouts-add")
	workoutsRouter.HandleFunc("/{id}", handler.HandleDeleteWorkoutDay).Methods("DELETE").Name("workouts-delete")
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "error, invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func markFromCache(w http.ResponseWriter, fromCache bool) {
	if fromCache {
		w.Header().Set(FromCacheHeader, "true")
	}
}

// writeError maps domain errors to client errors, anything else is a
// failed remote or cache operation.
func writeError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, workout.ErrInvalidProfile):
		http.Error(w, "error, invalid profile", http.StatusBadRequest)
	case errors.Is(err, workout.ErrTooManySets):
		http.Error(w, "error, too many sets", http.StatusBadRequest)
	case errors.Is(err, syncer.ErrMissingOwner):
		http.Error(w, "error, workout day has no owner", http.StatusBadRequest)
	case errors.Is(err, auth.ErrNotSignedIn):
		http.Error(w, "not signed in", http.StatusUnauthorized)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, "error, failed to "+action, http.StatusInternalServerError)
	}
}
