package videos

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

func corsMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")

			if strings.ToUpper(r.Method) == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type rateInfo struct {
	count   int
	resetAt time.Time
}

// rateLimiter is a fixed-window per-IP limiter. It protects the upstream quota,
// which is shared by every caller of the proxy.
type rateLimiter struct {
	mu          sync.Mutex
	rps         int
	window      time.Duration
	data        map[string]*rateInfo
	lastCleanup time.Time
	now         func() time.Time
}

func newRateLimiter(rps int) *rateLimiter {
	return &rateLimiter{
		rps:    rps,
		window: time.Second,
		data:   map[string]*rateInfo{},
		now:    time.Now,
	}
}

func (rl *rateLimiter) allow(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastCleanup) > time.Minute {
		for k, ri := range rl.data {
			if now.After(ri.resetAt) {
				delete(rl.data, k)
			}
		}
		rl.lastCleanup = now
	}

	ri, ok := rl.data[ip]
	if !ok || now.After(ri.resetAt) {
		ri = &rateInfo{resetAt: now.Add(rl.window)}
		rl.data[ip] = ri
	}
	ri.count++
	if ri.count > rl.rps {
		return false, ri.resetAt.Sub(now)
	}
	return true, 0
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.allow(clientIP(r))
		if !ok {
			secs := int(wait.Seconds())
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
