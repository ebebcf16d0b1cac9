package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindtrack/stress-api/internal/api/metrics"
	"github.com/mindtrack/stress-api/internal/core/domain"
)

const cacheTTL = time.Hour

// ResultCache caches upstream prediction bodies keyed by the questionnaire
// inputs, so identical submissions within the TTL skip the ML service.
// Key format: prediction:<sha256 of the canonical input JSON>
type ResultCache struct {
	client *redis.Client
}

// NewResultCache creates a ResultCache wrapping the given Redis client.
func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{client: client}
}

// Get returns the cached body for in, or nil on a miss.
func (c *ResultCache) Get(ctx context.Context, in domain.QuestionnaireInput) (json.RawMessage, error) {
	key, err := cacheKey(in)
	if err != nil {
		return nil, err
	}

	body, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.PredictionCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	metrics.PredictionCacheTotal.WithLabelValues("hit").Inc()
	return body, nil
}

// Set stores the upstream body for in (expires after cacheTTL).
func (c *ResultCache) Set(ctx context.Context, in domain.QuestionnaireInput, body json.RawMessage) error {
	key, err := cacheKey(in)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, []byte(body), cacheTTL).Err()
}

func cacheKey(in domain.QuestionnaireInput) (string, error) {
	// Marshaling a struct yields deterministic field order, so the hash is
	// stable for equal inputs.
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return "prediction:" + hex.EncodeToString(sum[:]), nil
}
