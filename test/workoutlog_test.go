package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacek/fitplan/internal/fitness/workoutlog"
)

func (s *IntegrationTestSuite) TestWorkoutLog() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.doLogin(ctx)

	s.Run("entry without exercises rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/workoutlog", token, map[string]any{
			"dayLabel":  "Push Day",
			"exercises": []map[string]any{},
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("difficulty out of range rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/workoutlog", token, map[string]any{
			"dayLabel":         "Push Day",
			"difficultyRating": 9,
			"exercises": []map[string]any{{
				"name": "Bench Press",
				"sets": []map[string]any{{"weight_kg": 80, "reps": 10, "completed": true}},
			}},
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("add entries with mixed value types", func() {
		// numeric fields as numbers
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/workoutlog", token, map[string]any{
			"dayLabel":         "Push Day",
			"durationMinutes":  62,
			"difficultyRating": 4,
			"notes":            "bench felt heavy",
			"exercises": []map[string]any{{
				"name": "Bench Press",
				"sets": []map[string]any{{"weight_kg": 80, "reps": 10, "completed": true}},
			}},
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		// numeric fields as strings, the way some older clients sent them
		resp, err = s.httpClient.Do(s.request(ctx, "POST", "/workoutlog", token, map[string]any{
			"dayLabel":         "Pull Day",
			"durationMinutes":  "55",
			"difficultyRating": "3",
			"exercises": []map[string]any{{
				"name": "Deadlift",
				"sets": []map[string]any{{"weight_kg": "120.5", "reps": "5", "completed": true}},
			}},
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("list returns both entries, raw values preserved", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "GET", "/workoutlog", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp workoutlog.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		require.Equal(t, 2, listResp.Total)

		assert.Equal(t, "Push Day", listResp.Entries[0].DayLabel)
		assert.Equal(t, float64(62), listResp.Entries[0].DurationMinutes)
		assert.Equal(t, "Pull Day", listResp.Entries[1].DayLabel)
		assert.Equal(t, "55", listResp.Entries[1].DurationMinutes)
	})
}
