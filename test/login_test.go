package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacek/fitplan/internal/auth"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cases := map[string]struct {
		loginReq           loginRequest
		expectedStatusCode int
		assertFunc         func(resp *http.Response)
	}{
		"good creds": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: testPassword,
			},
			expectedStatusCode: http.StatusOK,
			assertFunc: func(resp *http.Response) {
				respBytes, err := io.ReadAll(resp.Body)
				require.NoError(t, err)

				var loginResp auth.LoginResponse
				require.NoError(t, json.Unmarshal(respBytes, &loginResp))
				assert.NotEmpty(t, loginResp.Token)
			},
		},
		"good creds, then logout": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: testPassword,
			},
			expectedStatusCode: http.StatusOK,
			assertFunc: func(resp *http.Response) {
				respBytes, err := io.ReadAll(resp.Body)
				require.NoError(t, err)

				var loginResp auth.LoginResponse
				require.NoError(t, json.Unmarshal(respBytes, &loginResp))
				assert.NotEmpty(t, loginResp.Token)

				req := s.request(ctx, "GET", "/a/logout", loginResp.Token, nil)
				logoutResp, err := s.httpClient.Do(req)
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, logoutResp.StatusCode)
				assert.NoError(t, logoutResp.Body.Close())
			},
		},
		"bad password": {
			loginReq: loginRequest{
				Username: testUsername,
				Password: "bad-password",
			},
			expectedStatusCode: http.StatusBadRequest,
			assertFunc: func(resp *http.Response) {
				respBytes, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, "login failed", strings.TrimSpace(string(respBytes)))
			},
		},
		"bad username": {
			loginReq: loginRequest{
				Username: "bad-username",
				Password: testPassword,
			},
			expectedStatusCode: http.StatusBadRequest,
			assertFunc: func(resp *http.Response) {
				respBytes, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, "login failed", strings.TrimSpace(string(respBytes)))
			},
		},
	}

	for tn, tc := range cases {
		s.Run(tn, func() {
			loginReqJson, err := json.Marshal(tc.loginReq)
			require.NoError(t, err)

			req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)
			require.Equal(t, tc.expectedStatusCode, resp.StatusCode)
			defer resp.Body.Close()

			tc.assertFunc(resp)
		})
	}

	s.Run("rate limiting", func() {
		// simulate login requests brute force attack
		loginReqJson, err := json.Marshal(loginRequest{
			Username: "brute-force-user",
			Password: "brute-force-pass",
		})
		require.NoError(t, err)

		// config allows 10 login attempts per minute, so after the 10th attempt we should get 429
		// but first, do a redis cleanup
		require.NoError(t, s.redisDataCleanup(ctx))

		for i := 1; i <= 15; i++ {
			req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)

			if i <= 10 {
				require.Equal(t, http.StatusBadRequest, resp.StatusCode, "iteration: %d", i)
				assert.Empty(t, resp.Header.Get("Retry-After"), "iteration: %d", i)
			} else {
				require.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "iteration: %d", i)
				retryAfter, err := strconv.ParseFloat(resp.Header.Get("Retry-After"), 64)
				require.NoError(t, err, "iteration: %d", i)
				assert.True(t, retryAfter > 0, "iteration: %d", i)
			}

			assert.NoError(t, resp.Body.Close())
		}

		require.NoError(t, s.redisDataCleanup(ctx))
	})
}
