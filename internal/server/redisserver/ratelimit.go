package redisserver

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/pkg/cmap"
)

const (
	limiterSweepInterval = time.Minute
	limiterIdleTTL       = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	limit    rate.Limit
	burst    int
	visitors *cmap.Map[string, *visitor]
	now      func() time.Time
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	if burst <= 0 {
		burst = int(math.Max(1, math.Ceil(perSecond)))
	}
	return &rateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		visitors: cmap.New[string, *visitor](),
		now:      time.Now,
	}
}

// allow reports whether one more command from ip fits in its bucket.
func (rl *rateLimiter) allow(ip string) bool {
	v := rl.visitors.Update(ip, func(v *visitor, exists bool) *visitor {
		if exists {
			return v
		}
		return &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	})
	now := rl.now()
	v.lastSeen.Store(now.UnixNano())
	return v.limiter.AllowN(now, 1)
}

// sweep forgets clients not seen for idle and returns how many were removed.
func (rl *rateLimiter) sweep(idle time.Duration) int {
	cutoff := rl.now().Add(-idle).UnixNano()
	var stale []string
	rl.visitors.Range(func(ip string, v *visitor) bool {
		if v.lastSeen.Load() < cutoff {
			stale = append(stale, ip)
		}
		return true
	})
	for _, ip := range stale {
		rl.visitors.Delete(ip)
	}
	return len(stale)
}

func (rl *rateLimiter) run(ctx context.Context, every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rl.sweep(idle)
		}
	}
}
