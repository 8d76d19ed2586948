package tracker

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/bedgemon/internal/auth"
	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"
	"github.com/2beens/bedgemon/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

func (handler *Handler) HandleListWorkoutDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	profile, err := auth.RequestProfile(r)
	if err != nil {
		writeError(w, "list workouts", err)
		return
	}
	span.SetAttributes(attribute.String("profile", profile.String()))

	res, err := handler.syncer.LoadWorkoutDays(ctx, profile)
	if err != nil {
		writeError(w, "list workouts", err)
		return
	}

	span.SetAttributes(attribute.Int("count", len(res.Items)), attribute.Bool("from-cache", res.FromCache))
	markFromCache(w, res.FromCache)
	pkg.WriteJSON(w, res.Items, http.StatusOK)
}

// HandleAddWorkoutDay saves a workout day, replacing the one with the same
// id. A day without an owner is logged by the requesting profile.
func (handler *Handler) HandleAddWorkoutDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	var day workout.Day
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		log.Tracef("add workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if day.LoggedBy == nil {
		if profile, err := auth.RequestProfile(r); err == nil {
			day.LoggedBy = &profile
		}
	}
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	if day.Exercises == nil {
		day.Exercises = []workout.ExerciseEntry{}
	}
	for i := range day.Exercises {
		if day.Exercises[i].ID == uuid.Nil {
			day.Exercises[i].ID = uuid.New()
		}
	}
	span.SetAttributes(attribute.String("id", day.ID.String()), attribute.String("profile", day.Owner().String()))

	if err := handler.syncer.AddWorkoutDay(ctx, day); err != nil {
		writeError(w, "add workout", err)
		return
	}

	log.Debugf("workout day saved: [%s] by %s, %d exercises", day.ID, day.Owner(), day.ExerciseCount())
	pkg.WriteJSON(w, day, http.StatusCreated)
}

func (handler *Handler) HandleDeleteWorkoutDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	profile, err := auth.RequestProfile(r)
	if err != nil {
		writeError(w, "delete workout", err)
		return
	}
	span.SetAttributes(attribute.String("id", id.String()), attribute.String("profile", profile.String()))

	if err := handler.syncer.DeleteWorkoutDay(ctx, id, profile); err != nil {
		writeError(w, "delete workout", err)
		return
	}

	pkg.WriteJSON(w, DeleteResponse{DeletedID: id}, http.StatusOK)
}
