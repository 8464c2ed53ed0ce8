package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "storefront:session:"

// RedisSessionStore keeps each session as a hash that expires with the session.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisSessionStore) Save(ctx context.Context, sess Session) error {
	key := redisSessionPrefix + sess.ID

	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			"user_id", strconv.FormatInt(sess.UserID, 10),
			"issued_at", sess.IssuedAt.UTC().Format(time.RFC3339Nano),
			"expires_at", sess.ExpiresAt.UTC().Format(time.RFC3339Nano),
		)
		p.ExpireAt(ctx, key, sess.ExpiresAt)
		return nil
	})
	return err
}

func (s *RedisSessionStore) Lookup(ctx context.Context, id string) (Session, bool, error) {
	data, err := s.rdb.HGetAll(ctx, redisSessionPrefix+id).Result()
	if err != nil {
		return Session{}, false, err
	}
	if len(data) == 0 {
		return Session{}, false, nil
	}

	userID, err := strconv.ParseInt(data["user_id"], 10, 64)
	if err != nil {
		return Session{}, false, nil
	}
	exp, err := time.Parse(time.RFC3339Nano, data["expires_at"])
	if err != nil || !time.Now().Before(exp) {
		return Session{}, false, nil
	}

	issued, _ := time.Parse(time.RFC3339Nano, data["issued_at"])

	return Session{ID: id, UserID: userID, IssuedAt: issued, ExpiresAt: exp}, true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisSessionPrefix+id).Err()
}
