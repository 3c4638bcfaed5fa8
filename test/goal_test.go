package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacek/fitplan/internal/fitness/goals"
)

func (s *IntegrationTestSuite) TestGoal() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.doLogin(ctx)

	s.Run("no active goal yet", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "GET", "/goal/active", token, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("invalid days per week rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/goal", token, map[string]any{
			"type":                   "build_muscle",
			"daysPerWeek":            9,
			"sessionDurationMinutes": 60,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("invalid goal type rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/goal", token, map[string]any{
			"type":                   "get_shredded",
			"daysPerWeek":            4,
			"sessionDurationMinutes": 60,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	var firstGoalID int
	s.Run("create goal", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/goal", token, map[string]any{
			"type":                   "lose_weight",
			"targetWeightKg":         78.0,
			"daysPerWeek":            3,
			"sessionDurationMinutes": 45,
			"equipment":              []string{"dumbbells"},
			"focusAreas":             []string{"core"},
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var goal goals.Goal
		require.NoError(t, json.Unmarshal(respBytes, &goal))
		assert.True(t, goal.Active)
		assert.Equal(t, goals.TypeLoseWeight, goal.Type)
		firstGoalID = goal.ID
	})

	s.Run("new goal supersedes the previous one", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/goal", token, map[string]any{
			"type":                   "build_muscle",
			"daysPerWeek":            4,
			"sessionDurationMinutes": 60,
			"equipment":              []string{"barbell", "dumbbells"},
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		resp, err = s.httpClient.Do(s.request(ctx, "GET", "/goal/active", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var activeGoal goals.Goal
		require.NoError(t, json.Unmarshal(respBytes, &activeGoal))
		assert.Equal(t, goals.TypeBuildMuscle, activeGoal.Type)
		assert.NotEqual(t, firstGoalID, activeGoal.ID)

		// the superseded goal is kept, just no longer active
		var inactiveCount int
		require.NoError(t, s.db.QueryRow(
			ctx,
			`SELECT COUNT(*) FROM goal WHERE user_id = $1 AND NOT active;`,
			testUserID,
		).Scan(&inactiveCount))
		assert.Equal(t, 1, inactiveCount)
	})
}
