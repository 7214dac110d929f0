// Package sessionstore keeps assistant sessions in Redis between chat jobs.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"enrollment-workers/internal/assistant"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chat:session:"

// Key is the Redis key holding a session.
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

type Store struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func New(rdb redis.Cmdable, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Load returns the stored session. found is false when the key is absent or
// has expired.
func (s *Store) Load(ctx context.Context, sessionID string) (sess assistant.Session, found bool, err error) {
	raw, err := s.rdb.Get(ctx, Key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return assistant.Session{}, false, nil
	}
	if err != nil {
		return assistant.Session{}, false, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if err := json.Unmarshal(raw, &sess); err != nil {
		return assistant.Session{}, false, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return sess, true, nil
}

// Save writes the session and restarts its TTL.
func (s *Store) Save(ctx context.Context, sess assistant.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.rdb.Set(ctx, Key(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete reports whether a session existed.
func (s *Store) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Del(ctx, Key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return n > 0, nil
}
