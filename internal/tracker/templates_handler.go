package tracker

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/bedgemon/internal/telemetry/tracing"
	"github.com/2beens/bedgemon/internal/workout"
	"github.com/2beens/bedgemon/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

func (handler *Handler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	res, err := handler.syncer.LoadTemplates(ctx)
	if err != nil {
		writeError(w, "list templates", err)
		return
	}

	span.SetAttributes(attribute.Int("count", len(res.Items)), attribute.Bool("from-cache", res.FromCache))
	markFromCache(w, res.FromCache)
	pkg.WriteJSON(w, res.Items, http.StatusOK)
}

// HandleAddTemplate creates a template, or replaces the one with the same id.
func (handler *Handler) HandleAddTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.add")
	defer span.End()

	var template workout.Template
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		log.Tracef("add template, unmarshal json params: %s", err)
		http.Error(w, "add template failed", http.StatusBadRequest)
		return
	}

	if err := template.Validate(); err != nil {
		log.Tracef("add template: %s", err)
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	if template.Exercises == nil {
		template.Exercises = []workout.TemplateItem{}
	}
	for i := range template.Exercises {
		if template.Exercises[i].ID == uuid.Nil {
			template.Exercises[i].ID = uuid.New()
		}
	}
	span.SetAttributes(attribute.String("id", template.ID.String()))

	if err := handler.syncer.AddTemplate(ctx, template); err != nil {
		writeError(w, "add template", err)
		return
	}

	log.Debugf("template saved: [%s] %s", template.ID, template.Name)
	pkg.WriteJSON(w, template, http.StatusCreated)
}

func (handler *Handler) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.delete")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("id", id.String()))

	if err := handler.syncer.DeleteTemplate(ctx, id); err != nil {
		writeError(w, "delete template", err)
		return
	}

	pkg.WriteJSON(w, DeleteResponse{DeletedID: id}, http.StatusOK)
}
