package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsCache(t *testing.T) {
	now := time.Now()
	sc := NewSettingsCache(time.Minute)
	sc.now = func() time.Time { return now }

	_, ok := sc.Get("logo_url")
	assert.False(t, ok)

	sc.Set("logo_url", "https://cdn.test/site-assets/logo.png")
	v, ok := sc.Get("logo_url")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.test/site-assets/logo.png", v)

	now = now.Add(2 * time.Minute)
	_, ok = sc.Get("logo_url")
	assert.False(t, ok, "expired")

	sc.Set("logo_url", "")
	v, ok = sc.Get("logo_url")
	assert.True(t, ok, "empty values are cached too")
	assert.Equal(t, "", v)

	sc.Invalidate("logo_url")
	_, ok = sc.Get("logo_url")
	assert.False(t, ok, "invalidated")
}
