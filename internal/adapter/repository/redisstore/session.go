package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"verification-platform/internal/domain/session"
)

const keyPrefix = "session:"

var errDuplicateID = errors.New("session id already in use")

// SessionStore keeps each session as JSON under session:<id>, expiring
// together with the session itself.
type SessionStore struct {
	rdb *redis.Client
	now func() time.Time
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb, now: func() time.Time { return time.Now().UTC() }}
}

func key(id string) string { return keyPrefix + id }

func (s *SessionStore) ttl(sess *session.Session) (time.Duration, error) {
	d := sess.Remaining(s.now())
	if d <= 0 {
		return 0, session.ErrExpired
	}
	return d, nil
}

func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	ttl, err := s.ttl(sess)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, key(sess.ID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return errDuplicateID
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	v, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess session.Session
	if err := json.Unmarshal(v, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if sess.Expired(s.now()) {
		return nil, session.ErrExpired
	}
	return &sess, nil
}

// Save overwrites the stored session. It never revives a session that has
// already been evicted.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	ttl, err := s.ttl(sess)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := s.rdb.SetXX(ctx, key(sess.ID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if !ok {
		return session.ErrNotFound
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return session.ErrNotFound
	}
	return nil
}
