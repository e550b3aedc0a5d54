package quotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned for unknown or expired flow sessions.
var ErrSessionNotFound = errors.New("quotation session not found")

// SessionStore keeps in-progress flow sessions in Redis. Sessions that are
// never completed expire with the TTL; nothing is persisted for them.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create starts a fresh session for an agent in the LINE_SELECTION state.
func (st *SessionStore) Create(ctx context.Context, agentID int64) (*FlowSession, error) {
	now := time.Now().UTC()
	sess := &FlowSession{
		ID:        uuid.NewString(),
		AgentID:   agentID,
		State:     StateLineSelection,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by id.
func (st *SessionStore) Get(ctx context.Context, id string) (*FlowSession, error) {
	data, err := st.client.Get(ctx, st.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess FlowSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Save writes a session back and refreshes its TTL.
func (st *SessionStore) Save(ctx context.Context, sess *FlowSession) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := st.client.Set(ctx, st.key(sess.ID), data, st.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Delete drops a session, used once the flow has completed.
func (st *SessionStore) Delete(ctx context.Context, id string) error {
	if err := st.client.Del(ctx, st.key(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (st *SessionStore) key(id string) string {
	return "quotation:session:" + id
}
