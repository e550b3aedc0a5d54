package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenManager issues and resolves opaque bearer tokens backed by Redis.
// Each login gets its own token; logout or TTL expiry invalidates it.
type TokenManager struct {
	client *redis.Client
	ttl    time.Duration
}

type tokenPayload struct {
	UserID int64  `json:"user_id"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(client *redis.Client, ttl time.Duration) *TokenManager {
	return &TokenManager{client: client, ttl: ttl}
}

// Issue creates a fresh token for the given identity.
func (tm *TokenManager) Issue(ctx context.Context, userID int64, phone, role string) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(tokenPayload{UserID: userID, Phone: phone, Role: role})
	if err != nil {
		return "", err
	}
	if err := tm.client.Set(ctx, tm.key(token), data, tm.ttl).Err(); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// Resolve looks a token up and refreshes its TTL on hit.
func (tm *TokenManager) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrTokenExpired
	}
	data, err := tm.client.Get(ctx, tm.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}
	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	_ = tm.client.Expire(ctx, tm.key(token), tm.ttl).Err()
	return &Identity{
		UserID: payload.UserID,
		Phone:  payload.Phone,
		Role:   payload.Role,
		Token:  token,
	}, nil
}

// Revoke deletes a token so the session can no longer be used.
func (tm *TokenManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := tm.client.Del(ctx, tm.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// TTL exposes the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// FromRequest extracts the bearer token from the Authorization header.
func FromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func (tm *TokenManager) key(token string) string {
	return "token:" + token
}
