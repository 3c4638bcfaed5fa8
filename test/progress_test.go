package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacek/fitplan/internal/fitness/progress"
)

func (s *IntegrationTestSuite) TestProgressSummary() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.doLogin(ctx)

	fetchSummary := func() progress.Summary {
		resp, err := s.httpClient.Do(s.request(ctx, "GET", "/progress/summary", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var summary progress.Summary
		require.NoError(t, json.Unmarshal(respBytes, &summary))
		return summary
	}

	summary := fetchSummary()
	assert.Equal(t, 2, summary.LookbackMonths)

	// body metrics recorded by an earlier test in the suite
	assert.Equal(t, 2, summary.BodyMetricSummary.EntryCount)
	require.NotNil(t, summary.BodyMetricSummary.Latest)
	require.NotNil(t, summary.BodyMetricSummary.Latest.WeightKg)
	assert.Equal(t, 83.1, *summary.BodyMetricSummary.Latest.WeightKg)
	require.NotNil(t, summary.BodyMetricSummary.Changes)
	require.NotNil(t, summary.BodyMetricSummary.Changes.WeightKg)
	assert.Equal(t, -1.1, *summary.BodyMetricSummary.Changes.WeightKg)

	// no workouts logged yet at this point in the suite
	assert.Equal(t, 0, summary.WorkoutSummary.TotalWorkouts)
	require.NotNil(t, summary.WorkoutSummary.AdherenceRatio)
	assert.Equal(t, 0.0, *summary.WorkoutSummary.AdherenceRatio)
	assert.Equal(t, "unknown", summary.WorkoutSummary.DifficultyTrend)

	// second read comes from the cache and matches
	cached := fetchSummary()
	assert.Equal(t, summary, cached)
}
