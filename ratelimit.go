package routedoc

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit filter.
type RateLimitConfig struct {
	Rate            float64                      // requests per second
	Burst           int                          // max burst
	KeyFunc         func(r *http.Request) string // default: remote IP
	CleanupInterval time.Duration                // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration                // remove limiters idle longer than this (default: 5m)
}

// RateLimit returns a before filter that applies per-key rate limiting.
// Limited requests halt with 429 and a Retry-After header.
//
//	ep.BeforeAll(routedoc.RateLimit(routedoc.RateLimitConfig{Rate: 10, Burst: 20}))
func RateLimit(cfg RateLimitConfig) Filter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = remoteHost
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}

	retryAfter := "1"
	if cfg.Rate > 0 {
		retryAfter = strconv.FormatFloat(math.Max(1, math.Ceil(1/cfg.Rate)), 'f', 0, 64)
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return func(w http.ResponseWriter, r *http.Request) error {
		key := cfg.KeyFunc(r)

		mu.Lock()
		now := time.Now()

		if now.Sub(lastCleanup) >= cleanupInterval {
			for k, e := range limiters {
				if now.Sub(e.lastSeen) > maxIdle {
					delete(limiters, k)
				}
			}
			lastCleanup = now
		}

		entry, ok := limiters[key]
		if !ok {
			entry = &limiterEntry{
				limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
			}
			limiters[key] = entry
		}
		entry.lastSeen = now
		mu.Unlock()

		if !entry.limiter.Allow() {
			w.Header().Set("Retry-After", retryAfter)
			return Halt(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		}
		return nil
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}
