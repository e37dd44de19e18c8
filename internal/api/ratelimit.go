package api

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterOptions configures auth throttling. Zero fields take defaults.
type LimiterOptions struct {
	// Attempts refilled per minute for every key
	PerMinute int
	Burst     int
	// How often idle keys are looked for
	CleanupInterval time.Duration
	// Keys unused for this long are forgotten
	IdleTTL time.Duration
}

func (o LimiterOptions) withDefaults() LimiterOptions {
	if o.PerMinute <= 0 {
		o.PerMinute = 10
	}
	if o.Burst <= 0 {
		o.Burst = 5
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = time.Minute
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = 10 * time.Minute
	}
	return o
}

// LimiterStore keeps one token bucket per email or client address.
type LimiterStore struct {
	opts     LimiterOptions
	limit    rate.Limit
	mu       sync.Mutex
	buckets  map[string]*bucket
	stopCh   chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiterStore(opts LimiterOptions) *LimiterStore {
	opts = opts.withDefaults()
	s := &LimiterStore{
		opts:    opts,
		limit:   rate.Every(time.Minute / time.Duration(opts.PerMinute)),
		buckets: make(map[string]*bucket),
		stopCh:  make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *LimiterStore) sweep() {
	ticker := time.NewTicker(s.opts.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.forgetIdle(now.Add(-s.opts.IdleTTL))
		case <-s.stopCh:
			return
		}
	}
}

func (s *LimiterStore) forgetIdle(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, b := range s.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(s.buckets, key)
		}
	}
}

// Stop ends the sweeping goroutine. Safe to call more than once.
func (s *LimiterStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Len reports how many keys are tracked.
func (s *LimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *LimiterStore) bucketFor(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.limit, s.opts.Burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Allow spends one attempt for key. When none is left it reports how
// long to wait, rounded up to whole seconds, and spends nothing.
func (s *LimiterStore) Allow(key string) (bool, time.Duration) {
	now := time.Now()
	r := s.bucketFor(key, now).ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, time.Duration(math.Ceil(delay.Seconds())) * time.Second
}
