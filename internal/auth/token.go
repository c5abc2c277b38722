package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenInvalid is returned when a login token is unknown, expired, or has
// already been redeemed.
var ErrTokenInvalid = errors.New("login token invalid or expired")

// TokenStore persists single-use login tokens. A token can be redeemed at
// most once; redemption consumes it atomically.
type TokenStore interface {
	Save(ctx context.Context, token, email string, ttl time.Duration) error
	Redeem(ctx context.Context, token string) (string, error)
}

// NewLoginToken generates a cryptographically random, URL-safe login token.
func NewLoginToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate login token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RedisTokenStore stores login tokens in Redis. Only a SHA-256 digest of the
// token is ever written, so a leaked Redis dump does not yield usable tokens.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed token store.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "admin_login_token:" + hex.EncodeToString(sum[:])
}

// Save stores the token with the given TTL.
func (s *RedisTokenStore) Save(ctx context.Context, token, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKey(token), email, ttl).Err(); err != nil {
		return fmt.Errorf("store login token: %w", err)
	}
	return nil
}

// Redeem consumes the token and returns the email it was issued for. GETDEL
// guarantees single use even under concurrent redemption attempts.
func (s *RedisTokenStore) Redeem(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("redeem login token: %w", err)
	}
	return email, nil
}
