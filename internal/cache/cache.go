// Package cache memoizes pipeline results keyed by the content of the record
// sequence and the run parameters. Entries are evicted least recently used.
package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Alias1177/PanelPredictor/internal/model"
)

// Key identifies one pipeline run
type Key struct {
	Records  uint64
	Window   int
	Lookback int
}

// KeyFor hashes the msgpack encoding of records
func KeyFor(records []model.DrawRecord, window, lookback int) (Key, error) {
	b, err := msgpack.Marshal(records)
	if err != nil {
		return Key{}, fmt.Errorf("encode records: %w", err)
	}
	return Key{Records: xxhash.Sum64(b), Window: window, Lookback: lookback}, nil
}

// Cache is a bounded LRU of results. Cached values are shared between
// callers and must not be modified.
type Cache[V any] struct {
	entries *lru.Cache[Key, V]
	logger  zerolog.Logger

	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions prometheus.Counter
}

// New creates a cache holding at most size entries. Counters are registered
// with reg when it is not nil.
func New[V any](size int, reg prometheus.Registerer) (*Cache[V], error) {
	c := &Cache[V]{
		logger: log.With().Str("component", "cache").Logger(),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "panelpredictor",
			Name:      "cache_hits_total",
			Help:      "Total number of result cache hits",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "panelpredictor",
			Name:      "cache_misses_total",
			Help:      "Total number of result cache misses",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "panelpredictor",
			Name:      "cache_evictions_total",
			Help:      "Total number of results evicted from the cache",
		}),
	}

	entries, err := lru.NewWithEvict[Key, V](size, func(k Key, _ V) {
		c.evictions.Inc()
		c.logger.Debug().Uint64("records", k.Records).Int("window", k.Window).Msg("Evicted cached result")
	})
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	c.entries = entries

	if reg != nil {
		for _, m := range []prometheus.Collector{c.hits, c.misses, c.evictions} {
			if err := reg.Register(m); err != nil {
				return nil, fmt.Errorf("register cache metrics: %w", err)
			}
		}
	}
	return c, nil
}

// Get returns the cached value for k
func (c *Cache[V]) Get(k Key) (V, bool) {
	v, ok := c.entries.Get(k)
	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return v, ok
}

// Add stores v under k
func (c *Cache[V]) Add(k Key, v V) {
	c.entries.Add(k, v)
}

// Len returns the number of cached entries
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}
