package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "prizzys-backend/internal/domain/session"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ domain.Store = (*RedisStore)(nil)

func sessionKey(id string) string      { return "session:" + id }
func eventChannel(userID string) string { return "session-events:" + userID }

// RedisStore keeps sessions as JSON values expiring with the token and fans
// session events out over one pub/sub channel per user.
type RedisStore struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisStore(rdb *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, log: log}
}

func (s *RedisStore) Create(ctx context.Context, sess domain.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(sess.ID), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	v, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var out domain.Session
	if err := json.Unmarshal(v, &out); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &out, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *RedisStore) Publish(ctx context.Context, ev domain.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, eventChannel(ev.UserID), payload).Err()
}

func (s *RedisStore) Subscribe(ctx context.Context, userID string) (<-chan domain.Event, error) {
	ps := s.rdb.Subscribe(ctx, eventChannel(userID))
	// wait for the subscription to be confirmed so no event published after return is lost
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	out := make(chan domain.Event)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.Event
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					s.log.Warn("session: dropping malformed event", zap.String("channel", m.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
