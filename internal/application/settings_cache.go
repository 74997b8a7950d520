package application

import (
	"sync"
	"time"
)

type settingsCacheEntry struct {
	value     string
	timestamp time.Time
}

// SettingsCache keeps small site settings (the logo URL) in memory so each
// page render does not hit the table store.
type SettingsCache struct {
	cache map[string]settingsCacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

func NewSettingsCache(ttl time.Duration) *SettingsCache {
	return &SettingsCache{
		cache: make(map[string]settingsCacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a value that has not expired.
func (sc *SettingsCache) Get(key string) (string, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	entry, ok := sc.cache[key]
	if !ok || sc.now().Sub(entry.timestamp) > sc.ttl {
		return "", false
	}
	return entry.value, true
}

func (sc *SettingsCache) Set(key, value string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.cache[key] = settingsCacheEntry{value: value, timestamp: sc.now()}
}

func (sc *SettingsCache) Invalidate(key string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	delete(sc.cache, key)
}
