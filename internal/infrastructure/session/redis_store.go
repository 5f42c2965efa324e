package session

import (
	"context"
	"encoding/json"
	"fmt"

	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisStore resolves bearer tokens into callers. Sessions are written by the
// identity service as JSON under "sevabazar:session:<token>".
type RedisStore struct {
	client *redis.Client
}

var _ interfaces.ISessionStore = (*RedisStore)(nil)

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, token string) (entities.Caller, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return entities.Caller{}, nil
	}
	if err != nil {
		return entities.Caller{}, fmt.Errorf("session lookup: %w", err)
	}

	var caller entities.Caller
	if err := json.Unmarshal([]byte(raw), &caller); err != nil {
		return entities.Caller{}, fmt.Errorf("session decode: %w", err)
	}
	return caller, nil
}

func sessionKey(token string) string {
	return fmt.Sprintf("sevabazar:session:%s", token)
}
