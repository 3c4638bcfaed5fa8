package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/mkovacek/fitplan/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitplan-session||"
	tokensSetKey     = "fitplan-sessions"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type usersRepo interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Service creates and destroys login sessions. A session maps a random
// token to the user ID it was issued for, kept in redis as
// "<userID>||<createdAtUnix>" so the checker can enforce the TTL.
type Service struct {
	users       usersRepo
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	users usersRepo,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:          users,
		redisClient:    redisClient,
		ttl:            ttl,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (as *Service) Login(ctx context.Context, username, password string, createdAt time.Time) (string, error) {
	user, err := as.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal := fmt.Sprintf("%s||%d", user.ID, createdAt.Unix())
	if err := as.redisClient.Set(ctx, sessionKey, sessionVal, 0).Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := as.redisClient.Get(ctx, sessionKey)
	if errors.Is(cmd.Err(), redis.Nil) {
		return false, nil
	}
	if err := cmd.Err(); err != nil {
		return false, err
	}

	if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return true, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	var cleaned int
	for _, token := range cmd.Val() {
		sessionKey := sessionKeyPrefix + token
		getCmd := as.redisClient.Get(ctx, sessionKey)
		if errors.Is(getCmd.Err(), redis.Nil) {
			if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
				log.Errorf("auth service, scan and clean, remove dangling token: %s", err)
			}
			cleaned++
			continue
		}
		if err := getCmd.Err(); err != nil {
			log.Errorf("auth service, scan and clean, get session: %s", err)
			continue
		}

		_, createdAt, err := parseSessionValue(getCmd.Val())
		if err != nil {
			log.Errorf("auth service, scan and clean, parse session: %s", err)
			continue
		}

		if time.Since(createdAt) <= as.ttl {
			continue
		}

		if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
			log.Errorf("auth service, scan and clean, del session: %s", err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, scan and clean, srem token: %s", err)
			continue
		}
		cleaned++
	}

	if cleaned > 0 {
		log.Debugf("auth service, scan and clean: %d sessions removed", cleaned)
	}
}

func parseSessionValue(val string) (userID string, createdAt time.Time, err error) {
	parts := strings.Split(val, "||")
	if len(parts) != 2 {
		return "", time.Time{}, fmt.Errorf("malformed session value [%s]", val)
	}

	createdAtUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed session timestamp [%s]", val)
	}

	return parts[0], time.Unix(createdAtUnix, 0), nil
}
