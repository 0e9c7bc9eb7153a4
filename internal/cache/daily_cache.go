// Package cache holds generated daily content.
package cache

import (
	"context"
	"log/slog"
	"safespace/internal/model"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DateLayout is the ISO date used in daily keys
const DateLayout = "2006-01-02"

// Producer generates content on a cache miss. It cannot fail; degraded
// output is still content.
type Producer func(ctx context.Context) model.DailyContent

// Validator reports whether content read from the store is usable for a key.
// Rejected content counts as a miss and is overwritten.
type Validator func(content model.DailyContent) bool

type entry struct {
	day     string
	content model.DailyContent
}

// DailyCache memoizes one DailyContent per daily key. Concurrent misses on
// the same key share a single producer call. Entries written on an earlier
// day are dropped when the first entry of a new day is stored.
type DailyCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	now   func() time.Time
	loc   *time.Location
	store ContentStore
}

// Option configures a DailyCache
type Option func(*DailyCache)

// WithClock injects the time source
func WithClock(now func() time.Time) Option {
	return func(c *DailyCache) { c.now = now }
}

// WithLocation sets the zone whose calendar date forms the key
func WithLocation(loc *time.Location) Option {
	return func(c *DailyCache) { c.loc = loc }
}

// WithStore adds a shared tier consulted before the producer
func WithStore(store ContentStore) Option {
	return func(c *DailyCache) { c.store = store }
}

// NewDailyCache creates an empty daily cache
func NewDailyCache(opts ...Option) *DailyCache {
	c := &DailyCache{
		entries: make(map[string]entry),
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today returns the current calendar date as YYYY-MM-DD
func (c *DailyCache) Today() string {
	return c.now().In(c.loc).Format(DateLayout)
}

// Key builds the daily key for a prefix: "2024-05-01" or "scenario-2024-05-01"
func (c *DailyCache) Key(prefix string) string {
	if prefix == "" {
		return c.Today()
	}
	return prefix + "-" + c.Today()
}

// GetOrGenerate returns the content stored under key, producing it on a miss.
func (c *DailyCache) GetOrGenerate(ctx context.Context, key string, produce Producer) model.DailyContent {
	return c.GetOrGenerateChecked(ctx, key, produce, nil)
}

// GetOrGenerateChecked is GetOrGenerate with stored content checked by
// valid. A nil valid accepts anything that decodes.
func (c *DailyCache) GetOrGenerateChecked(ctx context.Context, key string, produce Producer, valid Validator) model.DailyContent {
	if content, ok := c.lookup(key); ok {
		slog.Debug("Daily cache hit", "component", "cache", "key", key)
		return cloneContent(content)
	}

	v, _, shared := c.group.Do(key, func() (interface{}, error) {
		if content, ok := c.lookup(key); ok {
			return content, nil
		}

		// One caller going away must not cancel the generation others wait on.
		genCtx := context.WithoutCancel(ctx)

		if content, ok := c.fromStore(genCtx, key, valid); ok {
			c.remember(key, content)
			return content, nil
		}

		slog.Debug("Daily cache miss", "component", "cache", "key", key)
		content := produce(genCtx)
		c.remember(key, content)
		c.toStore(genCtx, key, content)
		return content, nil
	})
	if shared {
		slog.Debug("Daily cache shared generation", "component", "cache", "key", key)
	}

	return cloneContent(v.(model.DailyContent))
}

// Len returns the number of in-memory entries
func (c *DailyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *DailyCache) lookup(key string) (model.DailyContent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.content, ok
}

func (c *DailyCache) remember(key string, content model.DailyContent) {
	today := c.Today()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		return
	}
	for k, e := range c.entries {
		if e.day != today {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{day: today, content: content}
}

// cloneContent keeps stored entries immutable from the caller's side
func cloneContent(content model.DailyContent) model.DailyContent {
	content.Questions = slices.Clone(content.Questions)
	return content
}

func (c *DailyCache) fromStore(ctx context.Context, key string, valid Validator) (model.DailyContent, bool) {
	if c.store == nil {
		return model.DailyContent{}, false
	}
	content, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Warn("Daily content store read failed", "component", "cache", "key", key, "error", err)
		return model.DailyContent{}, false
	}
	if content == nil {
		return model.DailyContent{}, false
	}
	if valid != nil && !valid(*content) {
		slog.Warn("Daily content store entry rejected", "component", "cache", "key", key)
		return model.DailyContent{}, false
	}
	return *content, true
}

func (c *DailyCache) toStore(ctx context.Context, key string, content model.DailyContent) {
	if c.store == nil || content.Fallback {
		return
	}
	if err := c.store.Set(ctx, key, &content); err != nil {
		slog.Warn("Daily content store write failed", "component", "cache", "key", key, "error", err)
	}
}
