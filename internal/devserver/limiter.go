package devserver

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter limits login attempts per client IP with a token bucket per IP
type LoginLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter allows perSecond sustained attempts and burst immediate ones per IP
func NewLoginLimiter(perSecond float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(perSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(5 * time.Minute),
	}
}

// Allow reports whether another attempt from ip may proceed
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.cleanupAt) {
		l.cleanup(now)
		l.cleanupAt = now.Add(5 * time.Minute)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}

	entry.lastSeen = now
	return entry.limiter.Allow()
}

// cleanup drops limiters idle for 10 minutes. Must be called with mu held.
func (l *LoginLimiter) cleanup(now time.Time) {
	cutoff := now.Add(-10 * time.Minute)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// Active returns the number of tracked IPs
func (l *LoginLimiter) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
