package redis

import (
	"context"
	"errors"
	"strings"

	"petcare-web/internal/session"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "petcare:session:"

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient crea el cliente go-redis.
func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// Ping prueba la conexión.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// SessionStore guarda cada sesión como un hash petcare:session:<sid>.
// Sin TTL: el estado sólo se borra en logout o con token ilegible.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func hashKey(sid string) string { return keyPrefix + sid }

func (s *SessionStore) Get(ctx context.Context, sid string, key session.Key) (string, bool, error) {
	if strings.TrimSpace(sid) == "" {
		return "", false, session.ErrInvalidSessionID
	}
	v, err := s.client.HGet(ctx, hashKey(sid), string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SessionStore) Set(ctx context.Context, sid string, key session.Key, value string) error {
	if strings.TrimSpace(sid) == "" {
		return session.ErrInvalidSessionID
	}
	return s.client.HSet(ctx, hashKey(sid), string(key), value).Err()
}

func (s *SessionStore) Delete(ctx context.Context, sid string, keys ...session.Key) error {
	if len(keys) == 0 {
		return nil
	}
	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, string(k))
	}
	return s.client.HDel(ctx, hashKey(sid), fields...).Err()
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, hashKey(sid)).Err()
}
