// Package cache provides the in-process entity caches used by the service
// layer. Each entity kind gets its own Store so category and course snapshots
// never share a keyspace.
//
// This is a correctness-oriented invalidation cache, not a performance-bounded
// one: entries carry no TTL and the store has no size limit. They live until
// an explicit Evict, which the services issue on delete and on relationship
// driven invalidation (a renamed category evicts its courses).
package cache

import "github.com/puzpuzpuz/xsync/v3"

// Store maps entity ids to their last-known snapshot. All methods are safe
// for concurrent use; a Get racing a Put may observe either snapshot.
//
// Values are stored by value, so callers get an independent copy and can
// mutate the result without poisoning the cache.
type Store[V any] struct {
	m *xsync.MapOf[int64, V]
}

// NewStore returns an empty Store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{m: xsync.NewMapOf[int64, V]()}
}

// Get returns the cached snapshot for id, if present.
func (s *Store[V]) Get(id int64) (V, bool) {
	return s.m.Load(id)
}

// Put records v as the current snapshot for id, replacing any prior entry.
func (s *Store[V]) Put(id int64, v V) {
	s.m.Store(id, v)
}

// Evict drops the entry for id. Evicting an absent id is a no-op.
func (s *Store[V]) Evict(id int64) {
	s.m.Delete(id)
}

// Len reports the number of cached entries.
func (s *Store[V]) Len() int {
	return s.m.Size()
}
