package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionChecker resolves a session token to the user it belongs to.
type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// UserID returns the ID of the logged in user owning the token, or an
// empty string when the token is unknown or the session expired.
func (sc *SessionChecker) UserID(ctx context.Context, token string) (string, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := sc.redisClient.Get(ctx, sessionKey)
	if errors.Is(cmd.Err(), redis.Nil) {
		return "", nil
	}
	if err := cmd.Err(); err != nil {
		return "", err
	}

	userID, createdAt, err := parseSessionValue(cmd.Val())
	if err != nil {
		return "", err
	}

	if time.Since(createdAt) > sc.ttl {
		return "", nil
	}

	return userID, nil
}
