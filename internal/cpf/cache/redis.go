package cache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"credito/pkg/platform/sentinel"
)

const (
	keyPrefix     = "cpf:valid:"
	clearScanSize = 500
)

// Redis is a shared cache. Keys are keyed BLAKE2b-256 digests of the
// digits, so raw CPFs are never written to Redis.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration

	mu     sync.Mutex
	hasher hash.Hash
}

// NewRedis creates a Redis-backed cache. secret keys the digest; secrets
// longer than 64 bytes are compressed first.
func NewRedis(client redis.UniversalClient, ttl time.Duration, secret []byte) (*Redis, error) {
	if len(secret) == 0 {
		return nil, errors.New("redis cache: empty key secret")
	}
	if len(secret) > blake2b.Size {
		sum := blake2b.Sum512(secret)
		secret = sum[:]
	}
	h, err := blake2b.New256(secret)
	if err != nil {
		return nil, fmt.Errorf("redis cache: init hasher: %w", err)
	}
	return &Redis{client: client, ttl: ttl, hasher: h}, nil
}

// Key returns the Redis key for digits.
func (r *Redis) Key(digits string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasher.Reset()
	_, _ = r.hasher.Write([]byte(digits))
	return keyPrefix + hex.EncodeToString(r.hasher.Sum(nil))
}

func (r *Redis) Get(ctx context.Context, digits string) (bool, error) {
	val, err := r.client.Get(ctx, r.Key(digits)).Result()
	if errors.Is(err, redis.Nil) {
		return false, sentinel.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	switch val {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		// unreadable entries count as misses and get overwritten
		return false, sentinel.ErrNotFound
	}
}

func (r *Redis) Set(ctx context.Context, digits string, valid bool) error {
	val := "0"
	if valid {
		val = "1"
	}
	if err := r.client.Set(ctx, r.Key(digits), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Clear removes every key under the cache prefix.
func (r *Redis) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, keyPrefix+"*", clearScanSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis unlink: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
