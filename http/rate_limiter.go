package http

import (
	"sync"
	"time"
)

const (
	bucketIdleThreshold = 1 * time.Hour
	sweepInterval       = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter grants each client key at most capacity requests per window.
// A bucket refills completely once window has elapsed since its last refill.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	buckets  map[string]*clientBucket
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(capacity, window, time.Now)
	go rl.sweepLoop()
	return rl
}

func newRateLimiter(capacity int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		capacity: capacity,
		window:   window,
		buckets:  make(map[string]*clientBucket),
		now:      now,
		stop:     make(chan struct{}),
	}
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// sweep forgets clients that have been idle for bucketIdleThreshold.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > bucketIdleThreshold {
			delete(rl.buckets, key)
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = &clientBucket{tokens: rl.capacity, lastRefill: now}
		rl.buckets[key] = bucket
	} else if now.Sub(bucket.lastRefill) >= rl.window {
		bucket.tokens = rl.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}
