package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheSearch stores an encoded search result under its query key
func (s *Store) CacheSearch(ctx context.Context, key string, results any, ttl time.Duration) error {
	data, err := encode(results)
	if err != nil {
		return fmt.Errorf("failed to encode search results: %w", err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache search: %w", err)
	}
	return nil
}

// GetCachedSearch decodes a cached search result into out.
// It returns false on a cache miss.
func (s *Store) GetCachedSearch(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // Cache miss
		}
		return false, fmt.Errorf("failed to get cached search: %w", err)
	}
	if err := decode(data, out); err != nil {
		return false, fmt.Errorf("failed to decode cached search: %w", err)
	}
	return true, nil
}

// FlushSearchCache removes all cached searches
func (s *Store) FlushSearchCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixSearchCache+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush search cache: %w", err)
	}
	return nil
}
