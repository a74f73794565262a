package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"donelist/models"
)

const sessionTimeout = 5 * time.Second

// OpenRedisPool initializes the Redis connection pool used for session
// lookups.
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis: %v", err)
	}

	return client
}

// SessionStore reads the session hashes the auth service keeps in Redis
// under "session:<token>". Issuing sessions is the auth service's job;
// this side only resolves tokens to user ids and refreshes activity.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

// UserIDFromToken resolves a session token to the owning user id.
func (s *SessionStore) UserIDFromToken(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()

	userID, err := s.client.HGet(ctx, sessionKey(token), "user_id").Result()
	if err != nil || userID == "" {
		return "", fmt.Errorf("session not found")
	}
	return userID, nil
}

// Touch updates the session's last activity timestamp.
func (s *SessionStore) Touch(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()

	return s.client.HSet(ctx, sessionKey(token), "last_activity", time.Now().Format(time.RFC3339)).Err()
}

// StoreSession writes a session hash with a TTL. The auth service owns
// this normally; it lives here for test fixtures and local setups.
func (s *SessionStore) StoreSession(ctx context.Context, session models.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()

	fields := map[string]any{
		"user_id":       session.UserID,
		"created_at":    session.CreatedAt,
		"expires_at":    session.ExpiresAt,
		"last_activity": session.LastActivity,
	}

	key := sessionKey(session.SessionToken)
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, ttl).Err()
}
