package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"littlestars/internal/models"
)

const redisTimeout = 5 * time.Second

// RedisKVStore keeps each namespace in one Redis hash. It backs
// DATABASE_TYPE=redis.
type RedisKVStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

type redisEntry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OpenRedis connects to the server at url and checks that it answers
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisKVStore creates a store whose keys all start with prefix
func NewRedisKVStore(client *redis.Client, prefix string) *RedisKVStore {
	return &RedisKVStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisKVStore) hashKey(namespace string) string {
	return s.prefix + "kv:" + namespace
}

func (s *RedisKVStore) Get(namespace, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := s.client.HGet(ctx, s.hashKey(namespace), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get entry: %w", err)
	}

	var e redisEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return "", false, fmt.Errorf("failed to decode entry: %w", err)
	}
	return e.Value, true, nil
}

func (s *RedisKVStore) Set(namespace, key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := json.Marshal(redisEntry{Value: value, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	if err := s.client.HSet(ctx, s.hashKey(namespace), key, data).Err(); err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}
	return nil
}

func (s *RedisKVStore) Delete(namespace, key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.HDel(ctx, s.hashKey(namespace), key).Err(); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

func (s *RedisKVStore) Keys(namespace string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	keys, err := s.client.HKeys(ctx, s.hashKey(namespace)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisKVStore) ListAll() ([]models.KVEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	hashes, err := s.hashes(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.KVEntry
	for _, hash := range hashes {
		fields, err := s.client.HGetAll(ctx, hash).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", hash, err)
		}
		namespace := strings.TrimPrefix(hash, s.prefix+"kv:")
		for key, raw := range fields {
			var e redisEntry
			if err := json.Unmarshal([]byte(raw), &e); err != nil {
				return nil, fmt.Errorf("failed to decode %s/%s: %w", namespace, key, err)
			}
			out = append(out, models.KVEntry{Namespace: namespace, Key: key, Value: e.Value, UpdatedAt: e.UpdatedAt})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func (s *RedisKVStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	hashes, err := s.hashes(ctx)
	if err != nil {
		return err
	}
	if len(hashes) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, hashes...).Err(); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

// hashes lists every namespace hash under the prefix
func (s *RedisKVStore) hashes(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"kv:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan namespaces: %w", err)
	}
	return keys, nil
}
