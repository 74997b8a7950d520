package application

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitEntry is the counter of one identifier inside a window.
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter is a fixed-window limiter keyed by an identifier such as the
// client IP. It guards the brochure mail form.
type RateLimiter struct {
	limits map[string]*RateLimitEntry
	mu     sync.RWMutex
	window time.Duration
	limit  int
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// NewRateLimiter allows limit requests per window and identifier.
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		limits: make(map[string]*RateLimitEntry),
		window: window,
		limit:  limit,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow records one request for identifier and reports whether it fits
// the window. The error says when to retry.
func (rl *RateLimiter) Allow(identifier string) (bool, error) {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.limits[identifier]

	if !exists || now.After(entry.ResetTime) {
		rl.limits[identifier] = &RateLimitEntry{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return true, nil
	}

	if entry.Count >= rl.limit {
		wait := entry.ResetTime.Sub(now)
		return false, fmt.Errorf("too many requests, try again in %v", wait.Round(time.Second))
	}

	entry.Count++
	return true, nil
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.limits {
		if now.After(entry.ResetTime) {
			delete(rl.limits, key)
		}
	}
}
