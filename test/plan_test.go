package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacek/fitplan/internal/fitness/plans"
)

func (s *IntegrationTestSuite) TestPlan() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.doLogin(ctx)

	planPayload := func(name string, week int) map[string]any {
		return map[string]any{
			"name":       name,
			"weekNumber": week,
			"days": []map[string]any{{
				"name":   "Push Day",
				"focus":  "chest and triceps",
				"warmup": "5 min rowing",
				"exercises": []map[string]any{{
					"name":     "Bench Press",
					"sets":     4,
					"reps":     "8-12",
					"rest_sec": 120,
				}},
				"cooldown": "stretching",
			}},
		}
	}

	s.Run("no active plan yet", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "GET", "/plan/active", token, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("plan without days rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/plan/apply", token, map[string]any{
			"name": "Empty Plan",
			"days": []map[string]any{},
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("apply plan", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/plan/apply", token, planPayload("Base Block", 1)))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var plan plans.Plan
		require.NoError(t, json.Unmarshal(respBytes, &plan))
		assert.True(t, plan.Active)
		assert.Equal(t, "Base Block", plan.Name)
		require.Len(t, plan.Days, 1)
		assert.Equal(t, "Bench Press", plan.Days[0].Exercises[0].Name)
	})

	s.Run("new plan supersedes, timeline is chronological", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/plan/apply", token, planPayload("Volume Block", 2)))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		resp, err = s.httpClient.Do(s.request(ctx, "GET", "/plan/active", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())

		var activePlan plans.Plan
		require.NoError(t, json.Unmarshal(respBytes, &activePlan))
		assert.Equal(t, "Volume Block", activePlan.Name)

		resp, err = s.httpClient.Do(s.request(ctx, "GET", "/plan/timeline", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err = io.ReadAll(resp.Body)
		require.NoError(t, err)

		var timeline plans.TimelineResponse
		require.NoError(t, json.Unmarshal(respBytes, &timeline))
		require.Equal(t, 2, timeline.Total)
		assert.Equal(t, "Base Block", timeline.Plans[0].Name)
		assert.Equal(t, "Volume Block", timeline.Plans[1].Name)
		assert.False(t, timeline.Plans[0].Active)
		assert.True(t, timeline.Plans[1].Active)
	})

	s.Run("timeline keeps the oldest plans once over the limit", func() {
		for week := 3; week <= 14; week++ {
			resp, err := s.httpClient.Do(s.request(
				ctx, "POST", "/plan/apply", token,
				planPayload(fmt.Sprintf("Block %02d", week), week),
			))
			require.NoError(t, err)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
			require.NoError(t, resp.Body.Close())
		}

		resp, err := s.httpClient.Do(s.request(ctx, "GET", "/plan/timeline", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var timeline plans.TimelineResponse
		require.NoError(t, json.Unmarshal(respBytes, &timeline))
		require.Equal(t, plans.TimelineLimit, timeline.Total)
		assert.Equal(t, "Base Block", timeline.Plans[0].Name)
		assert.Equal(t, "Block 12", timeline.Plans[len(timeline.Plans)-1].Name)
		// the two newest blocks fall outside the window
		for _, plan := range timeline.Plans {
			assert.NotEqual(t, "Block 13", plan.Name)
			assert.NotEqual(t, "Block 14", plan.Name)
			assert.False(t, plan.Active)
		}
	})
}
