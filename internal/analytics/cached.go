package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/senura-medagoda/UniMate-sub005/internal/cache"
	"github.com/senura-medagoda/UniMate-sub005/internal/model"
)

// OrderSource supplies the working set to aggregate over.
type OrderSource interface {
	FindAll(ctx context.Context) ([]*model.Order, error)
}

// CachedSummarizer caches summaries per window for a short TTL; the admin
// dashboard polls the same windows repeatedly. The cache is advisory:
// any cache failure falls through to a fresh computation.
type CachedSummarizer struct {
	src   OrderSource
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedSummarizer(src OrderSource, c cache.Cache, ttl time.Duration) *CachedSummarizer {
	return &CachedSummarizer{src: src, cache: c, ttl: ttl}
}

func (c *CachedSummarizer) Summarize(ctx context.Context, w Window) (Summary, error) {
	key := c.cache.GenerateKey("summary", w.CacheKey())

	if raw, err := c.cache.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "summary cache read failed", "key", key, "error", err)
	} else if raw != "" {
		var s Summary
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			return s, nil
		}
	}

	orders, err := c.src.FindAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	s := Summarize(orders, w)

	if b, err := json.Marshal(s); err == nil {
		if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
			slog.WarnContext(ctx, "summary cache write failed", "key", key, "error", err)
		}
	}
	return s, nil
}
