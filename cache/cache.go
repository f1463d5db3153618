// Package cache memoizes whole-scan results in Redis so repeated requests
// for the same report URL don't re-fetch the page.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "rankscraper:scan:"

// New creates a Redis client for the given address.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
}

// Memoize caches fn's result in Redis under the scan key prefix. Cache
// failures are invisible to the caller: a miss or a broken entry just means
// fn runs.
func Memoize[T any](client *redis.Client, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var result T
	ctx := context.Background()

	cachedData, err := client.Get(ctx, keyPrefix+key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(cachedData, &result); jsonErr == nil {
			return result, nil
		}
	}

	result, err = fn()
	if err != nil {
		return result, err
	}

	cacheData, _ := json.Marshal(result)
	client.Set(ctx, keyPrefix+key, cacheData, ttl)

	return result, nil
}
