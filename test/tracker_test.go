//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/bedgemon/internal/tracker"
	"github.com/2beens/bedgemon/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestTemplates() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signInAsDan(ctx, t)

	// more templates than fit on one remote page
	ids := map[string]bool{}
	for _, name := range []string{"Push", "pull", "Legs"} {
		resp := doRequest(ctx, t, http.MethodPost, "/templates",
			fmt.Sprintf(`{"name":%q,"exercises":[{"name":"%s 1","setsCount":3,"repsPerSet":10}]}`, name, name))
		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)

		var template workout.Template
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &template))
		ids[template.ID.String()] = true
	}

	resp := doRequest(ctx, t, http.MethodGet, "/templates", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(tracker.FromCacheHeader))

	var templates []workout.Template
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &templates))
	var names []string
	for _, template := range templates {
		if ids[template.ID.String()] {
			names = append(names, template.Name)
		}
	}
	assert.Equal(t, []string{"Legs", "pull", "Push"}, names)

	for id := range ids {
		resp = doRequest(ctx, t, http.MethodDelete, "/templates/"+id, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"deletedId":"`+id+`"}`, resp.Body)
	}

	resp = doRequest(ctx, t, http.MethodGet, "/templates", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &templates))
	for _, template := range templates {
		assert.False(t, ids[template.ID.String()])
	}
}

func (s *IntegrationTestSuite) TestDraftToHistory() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signInAsDan(ctx, t)

	resp := doRequest(ctx, t, http.MethodPost, "/draft/start?profile=sarah", `{"date":"2026-03-14T09:00:00Z"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	resp = doRequest(ctx, t, http.MethodPost, "/draft/exercises?profile=sarah", `{"name":"Squat","sets":[{"reps":5,"weight":60},{"reps":5,"weight":62.5}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	resp = doRequest(ctx, t, http.MethodPost, "/draft/exercises?profile=sarah", `{"name":"  "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	// dan's draft slot is untouched
	resp = doRequest(ctx, t, http.MethodGet, "/draft", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(ctx, t, http.MethodPost, "/draft/finish?profile=sarah", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	var finished workout.Day
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &finished))
	require.Len(t, finished.Exercises, 1)
	assert.Equal(t, workout.ProfileSarah, finished.Owner())

	resp = doRequest(ctx, t, http.MethodGet, "/draft?profile=sarah", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(ctx, t, http.MethodGet, "/workouts?profile=sarah", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var days []workout.Day
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &days))
	require.NotEmpty(t, days)
	assert.Equal(t, finished.ID, days[0].ID)
	assert.Equal(t, 2, days[0].TotalSets())

	resp = doRequest(ctx, t, http.MethodGet, "/workouts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &days))
	for _, day := range days {
		assert.NotEqual(t, finished.ID, day.ID)
	}

	resp = doRequest(ctx, t, http.MethodDelete, "/workouts/"+finished.ID.String()+"?profile=sarah", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
