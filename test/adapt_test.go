package test

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs before the goal and plan tests, so the user has neither yet.
func (s *IntegrationTestSuite) TestAdaptWithoutActivePlan() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	token := s.doLogin(ctx)

	resp, err := s.httpClient.Do(s.request(ctx, "POST", "/plan/adapt", token, map[string]any{
		"feedback": "more legs please",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "an active goal and active plan are required", strings.TrimSpace(string(respBytes)))

	s.Run("unauthenticated request rejected", func() {
		resp, err := s.httpClient.Do(s.request(ctx, "POST", "/plan/adapt", "bad-token", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}
