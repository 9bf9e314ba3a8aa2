package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps one JSON record per user under "session:<username>".
// Keys expire after ttl without a touch, so Redis drops abandoned sessions
// on its own; DeleteIdle only catches what has not expired yet.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

type sessionRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      int       `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (s *RedisStore) Save(ctx context.Context, session ports.Session) error {
	return s.write(ctx, session)
}

func (s *RedisStore) Get(ctx context.Context, username string) (ports.Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+username).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Session{}, errs.NewObjectNotFoundError("session", username)
	}
	if err != nil {
		return ports.Session{}, errs.NewStorageError("get session", err)
	}
	return decode(raw)
}

// Touch rewrites the record. A concurrent Delete between the read and the
// write is preserved: SET XX only updates an existing key.
func (s *RedisStore) Touch(ctx context.Context, username string, at time.Time) error {
	session, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if !at.After(session.LastSeen) {
		return s.rdb.Expire(ctx, keyPrefix+username, s.ttl).Err()
	}
	session.LastSeen = at

	raw, err := encode(session)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetXX(ctx, keyPrefix+username, raw, s.ttl).Result()
	if err != nil {
		return errs.NewStorageError("touch session", err)
	}
	if !ok {
		return errs.NewObjectNotFoundError("session", username)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, username string) error {
	if err := s.rdb.Del(ctx, keyPrefix+username).Err(); err != nil {
		return errs.NewStorageError("delete session", err)
	}
	return nil
}

func (s *RedisStore) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	removed := 0
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return removed, errs.NewStorageError("scan sessions", err)
		}
		session, err := decode(raw)
		if err != nil || session.LastSeen.Before(before) {
			if err = s.rdb.Del(ctx, key).Err(); err != nil {
				return removed, errs.NewStorageError("delete idle session", err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, errs.NewStorageError("scan sessions", err)
	}
	return removed, nil
}

func (s *RedisStore) write(ctx context.Context, session ports.Session) error {
	raw, err := encode(session)
	if err != nil {
		return err
	}
	if err = s.rdb.Set(ctx, keyPrefix+session.Username, raw, s.ttl).Err(); err != nil {
		return errs.NewStorageError("save session", err)
	}
	return nil
}

func encode(session ports.Session) ([]byte, error) {
	raw, err := json.Marshal(sessionRecord{
		ID:        session.ID.String(),
		Username:  session.Username,
		Role:      int(session.Role),
		CreatedAt: session.CreatedAt,
		LastSeen:  session.LastSeen,
	})
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("session", err)
	}
	return raw, nil
}

func decode(raw []byte) (ports.Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ports.Session{}, errs.NewStorageError("decode session", err)
	}
	id, err := kernel.UUIDFromString(rec.ID)
	if err != nil {
		return ports.Session{}, errs.NewStorageError("decode session id", err)
	}
	return ports.Session{
		ID:        id,
		Username:  rec.Username,
		Role:      user.Role(rec.Role),
		CreatedAt: rec.CreatedAt,
		LastSeen:  rec.LastSeen,
	}, nil
}
