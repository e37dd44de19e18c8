package insights

import (
	"context"
	"time"

	"github.com/limbo/gratudiary/internal/storage"
)

// NewDefault builds the Gemini provider with successful summaries cached
// in store. Without an API key it returns Unavailable.
func NewDefault(ctx context.Context, apiKey, model string, store storage.KVStore, ttl time.Duration) (SummaryProvider, error) {
	if apiKey == "" {
		return Unavailable{}, nil
	}
	gemini, err := NewGemini(ctx, apiKey, model)
	if err != nil {
		return Unavailable{}, err
	}
	if store == nil || ttl <= 0 {
		return gemini, nil
	}
	return NewCached(gemini, store, ttl), nil
}
