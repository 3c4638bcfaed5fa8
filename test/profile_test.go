package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacek/fitplan/internal/fitness/profiles"
)

func (s *IntegrationTestSuite) TestProfile() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.doLogin(ctx)

	s.Run("get without saved profile returns defaults", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "GET", "/profile", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var profile profiles.Profile
		require.NoError(t, json.Unmarshal(respBytes, &profile))
		assert.Equal(t, "intermediate", profile.ExperienceLevel)
		assert.Nil(t, profile.HeightCm)
	})

	s.Run("invalid experience level rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "PUT", "/profile", token, map[string]any{
			"experienceLevel": "olympian",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	s.Run("update then get", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "PUT", "/profile", token, map[string]any{
			"experienceLevel": "advanced",
			"heightCm":        184.5,
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		resp, err = s.httpClient.Do(s.request(ctx, "GET", "/profile", token, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var profile profiles.Profile
		require.NoError(t, json.Unmarshal(respBytes, &profile))
		assert.Equal(t, "advanced", profile.ExperienceLevel)
		require.NotNil(t, profile.HeightCm)
		assert.Equal(t, 184.5, *profile.HeightCm)
	})
}
