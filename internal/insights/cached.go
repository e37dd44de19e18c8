package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/entity"
)

const cacheKeyPrefix = "gratuDiary_insights_"

type cachedSummary struct {
	ExpiresAt time.Time       `json:"expiresAt"`
	Insights  entity.Insights `json:"insights"`
}

// Cached remembers successful summaries keyed by the entries they were
// produced from. Failures are never cached.
type Cached struct {
	next  SummaryProvider
	store storage.KVStore
	ttl   time.Duration
	clock func() time.Time
}

func NewCached(next SummaryProvider, store storage.KVStore, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		store: store,
		ttl:   ttl,
		clock: time.Now,
	}
}

func (c *Cached) Summarize(ctx context.Context, entries []SummaryInput) (*entity.Insights, error) {
	key, err := fingerprint(entries)
	if err != nil {
		return c.next.Summarize(ctx, entries)
	}
	if hit, ok := c.lookup(ctx, key); ok {
		return hit, nil
	}
	res, err := c.next.Summarize(ctx, entries)
	if err != nil {
		return nil, err
	}
	raw, err := sonic.Marshal(cachedSummary{
		ExpiresAt: c.clock().Add(c.ttl),
		Insights:  *res,
	})
	if err == nil {
		err = c.store.Set(ctx, key, raw)
	}
	if err != nil {
		slog.Warn("caching insights failed", slog.String("error", err.Error()))
	}
	return res, nil
}

func (c *Cached) lookup(ctx context.Context, key string) (*entity.Insights, bool) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, errorvalues.ErrKeyNotFound) {
			slog.Warn("reading insights cache failed", slog.String("error", err.Error()))
		}
		return nil, false
	}
	var cs cachedSummary
	if err := sonic.Unmarshal(raw, &cs); err != nil {
		return nil, false
	}
	if !c.clock().Before(cs.ExpiresAt) {
		return nil, false
	}
	return &cs.Insights, true
}

func fingerprint(entries []SummaryInput) (string, error) {
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
