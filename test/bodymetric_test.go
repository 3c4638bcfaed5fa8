package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacek/fitplan/internal/fitness/bodymetrics"
)

func (s *IntegrationTestSuite) TestBodyMetric() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.doLogin(ctx)

	s.Run("entry without measurable values rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/bodymetrics", token, map[string]any{
			"weight_kg": "not a number",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("add entries", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/bodymetrics", token, map[string]any{
			"weight_kg": 84.2,
			"waist_cm":  92,
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		// values as strings, the way some older clients sent them
		resp, err = s.httpClient.Do(s.request(ctx, "POST", "/bodymetrics", token, map[string]any{
			"weight_kg": "83.1",
			"waist_cm":  "90.5",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("list returns both entries", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "GET", "/bodymetrics", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp bodymetrics.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		require.Equal(t, 2, listResp.Total)
		assert.Equal(t, 84.2, listResp.Entries[0].WeightKg)
		assert.Equal(t, "83.1", listResp.Entries[1].WeightKg)
	})
}
