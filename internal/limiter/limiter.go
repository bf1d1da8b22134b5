package limiter

import (
	"sync"
	"time"
)

// Limiter decides whether a client may make another request
// Implementations exist for a single process (memory) and for a fleet (redis)
type Limiter interface {
	// Allow reports whether a request from key (usually a client IP) fits its quota
	Allow(key string) bool

	// Close releases connections held by the limiter
	Close() error
}

// Quota is a number of requests per window, e.g. 10 per second
type Quota struct {
	Limit  int
	Window time.Duration
}

// Rate returns the quota as tokens per second
func (q Quota) Rate() float64 {
	if q.Window <= 0 {
		return float64(q.Limit)
	}
	return float64(q.Limit) / q.Window.Seconds()
}

// normalize fills zero values so a misconfigured quota still limits
func (q Quota) normalize() Quota {
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Window <= 0 {
		q.Window = time.Second
	}
	return q
}

// bucket is a token bucket for one client
// Tokens refill continuously at the quota rate up to Limit, so a client can
// burst a full window's worth and then continues at the average rate
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory
type MemoryLimiter struct {
	quota   Quota
	idleTTL time.Duration
	now     func() time.Time

	mu          sync.Mutex
	buckets     map[string]*bucket
	lastCleanup time.Time
}

// NewMemoryLimiter creates an in-memory limiter for the given quota
func NewMemoryLimiter(quota Quota) *MemoryLimiter {
	return newMemoryLimiter(quota, time.Now)
}

func newMemoryLimiter(quota Quota, now func() time.Time) *MemoryLimiter {
	quota = quota.normalize()
	idle := 5 * time.Minute
	if quota.Window > idle {
		idle = quota.Window
	}
	return &MemoryLimiter{
		quota:       quota,
		idleTTL:     idle,
		now:         now,
		buckets:     make(map[string]*bucket),
		lastCleanup: now(),
	}
}

// Allow takes one token from the key's bucket
func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanup(now)

	capacity := float64(l.quota.Limit)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, lastSeen: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastSeen).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * l.quota.Rate()
		if b.tokens > capacity {
			b.tokens = capacity
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Len returns the number of tracked clients
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// cleanup drops buckets idle for longer than idleTTL; caller holds mu
func (l *MemoryLimiter) cleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.idleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastCleanup = now
}

// Close is a no-op for the memory limiter
func (l *MemoryLimiter) Close() error {
	return nil
}
