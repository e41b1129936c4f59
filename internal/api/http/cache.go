package http

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sonify-dev/sonify/internal/domain/listening"
	"github.com/sonify-dev/sonify/internal/infra/spotify"
)

// cacheEntry represents one cached upstream result.
type cacheEntry struct {
	value    any
	storedAt time.Time
}

// CachedSource wraps a Source with a short-lived in-memory cache so repeated
// dashboard page views don't refetch identical upstream data. A TTL of zero
// disables caching entirely.
type CachedSource struct {
	next Source
	ttl  time.Duration

	// Mutex for cache access
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

// NewCachedSource creates a caching wrapper around next.
func NewCachedSource(next Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

func (c *CachedSource) RecentlyPlayed(ctx context.Context, limit int) ([]listening.RawHistoryItem, error) {
	key := fmt.Sprintf("recent:%d", limit)
	return cached(c, key, func() ([]listening.RawHistoryItem, error) {
		return c.next.RecentlyPlayed(ctx, limit)
	})
}

func (c *CachedSource) TopTracks(ctx context.Context, limit int, timeRange spotify.TimeRange) ([]listening.TrackSummary, error) {
	key := fmt.Sprintf("top-tracks:%d:%s", limit, timeRange)
	return cached(c, key, func() ([]listening.TrackSummary, error) {
		return c.next.TopTracks(ctx, limit, timeRange)
	})
}

func (c *CachedSource) TopArtists(ctx context.Context, limit int, timeRange spotify.TimeRange) ([]listening.ArtistSummary, error) {
	key := fmt.Sprintf("top-artists:%d:%s", limit, timeRange)
	return cached(c, key, func() ([]listening.ArtistSummary, error) {
		return c.next.TopArtists(ctx, limit, timeRange)
	})
}

func (c *CachedSource) AudioFeatures(ctx context.Context, tracks []listening.TrackSummary) ([]*listening.AudioFeatureVector, error) {
	ids := make([]string, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, t.ID)
	}
	key := "features:" + strings.Join(ids, ",")
	return cached(c, key, func() ([]*listening.AudioFeatureVector, error) {
		return c.next.AudioFeatures(ctx, tracks)
	})
}

func (c *CachedSource) Playlists(ctx context.Context, limit int) ([]listening.PlaylistSummary, error) {
	key := fmt.Sprintf("playlists:%d", limit)
	return cached(c, key, func() ([]listening.PlaylistSummary, error) {
		return c.next.Playlists(ctx, limit)
	})
}

func (c *CachedSource) CurrentUser(ctx context.Context) (*spotify.UserProfile, error) {
	return cached(c, "user", func() (*spotify.UserProfile, error) {
		return c.next.CurrentUser(ctx)
	})
}

// cached returns the fresh cache entry for key, or fetches and stores one.
// Errors are never cached.
func cached[T any](c *CachedSource, key string, fetch func() (T, error)) (T, error) {
	if c.ttl <= 0 {
		return fetch()
	}

	if v, ok := c.lookup(key); ok {
		return v.(T), nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.store(key, v)
	return v, nil
}

func (c *CachedSource) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.storedAt) > c.ttl {
		return nil, false
	}
	return entry.value, true
}

func (c *CachedSource) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Sweep stale entries so keys don't accumulate as the track set drifts.
	for k, entry := range c.entries {
		if time.Since(entry.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	c.entries[key] = &cacheEntry{value: value, storedAt: time.Now()}
}
