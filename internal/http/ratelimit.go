package http

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	mutationBudgetPerMinute = 60
	limiterSweepInterval    = 5 * time.Minute
	limiterEntryTTL         = 10 * time.Minute
)

// mutationLimiter throttles write requests per client IP. Reads are never
// throttled so dashboard polling stays cheap.
type mutationLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientWindow
	done     chan struct{}
	stopOnce sync.Once
}

type clientWindow struct {
	windowStart time.Time
	count       int
}

func newMutationLimiter() *mutationLimiter {
	ml := &mutationLimiter{
		clients: make(map[string]*clientWindow),
		done:    make(chan struct{}),
	}
	go ml.sweepLoop()
	return ml
}

func (ml *mutationLimiter) sweepLoop() {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ml.evictIdle()
		case <-ml.done:
			return
		}
	}
}

// evictIdle drops windows for clients that have gone quiet.
func (ml *mutationLimiter) evictIdle() {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	cutoff := time.Now().Add(-limiterEntryTTL)
	for ip, w := range ml.clients {
		if w.windowStart.Before(cutoff) {
			delete(ml.clients, ip)
		}
	}
}

func (ml *mutationLimiter) stop() {
	ml.stopOnce.Do(func() { close(ml.done) })
}

// allow reports whether a mutation from clientIP fits the per-minute budget.
func (ml *mutationLimiter) allow(clientIP string, metrics *securityMetrics) bool {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := time.Now()
	w, ok := ml.clients[clientIP]
	if !ok || now.Sub(w.windowStart) > time.Minute {
		ml.clients[clientIP] = &clientWindow{windowStart: now, count: 1}
		return true
	}

	w.count++
	if w.count > mutationBudgetPerMinute {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}
	return true
}
