package world

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ColumnStore holds the loaded columns and an eviction cache of recently
// unloaded ones. A key is in at most one of the two.
type ColumnStore struct {
	loaded map[ColumnKey]*Column

	// unbounded cache, used when no limit is set
	cache map[ColumnKey]*Column
	// bounded cache, discarding the least recently unloaded column
	lru *lru.Cache[ColumnKey, *Column]
	// columns discarded by the bounded cache during the current call
	dropped []*Column
	// set while the store itself removes a cache entry
	removing bool

	sorted []ColumnKey
}

// NewColumnStore creates a store whose cache keeps at most limit columns
// (0 for no bound).
func NewColumnStore(limit int) *ColumnStore {
	s := &ColumnStore{loaded: make(map[ColumnKey]*Column)}
	if limit <= 0 {
		s.cache = make(map[ColumnKey]*Column)
		return s
	}
	// only fails for a non-positive size
	s.lru, _ = lru.NewWithEvict(limit, func(_ ColumnKey, col *Column) {
		if !s.removing {
			s.dropped = append(s.dropped, col)
		}
	})
	return s
}

// Loaded returns a loaded column.
func (s *ColumnStore) Loaded(key ColumnKey) (*Column, bool) {
	col, ok := s.loaded[key]
	return col, ok
}

// Cached reports whether key sits in the eviction cache.
func (s *ColumnStore) Cached(key ColumnKey) bool {
	if s.lru != nil {
		return s.lru.Contains(key)
	}
	_, ok := s.cache[key]
	return ok
}

// takeCached removes key from the cache without counting it as dropped.
func (s *ColumnStore) takeCached(key ColumnKey) (*Column, bool) {
	if s.lru == nil {
		col, ok := s.cache[key]
		delete(s.cache, key)
		return col, ok
	}
	col, ok := s.lru.Peek(key)
	if ok {
		s.removing = true
		s.lru.Remove(key)
		s.removing = false
	}
	return col, ok
}

// Restore moves a cached column back into the loaded set.
func (s *ColumnStore) Restore(key ColumnKey) (*Column, bool) {
	col, ok := s.takeCached(key)
	if !ok {
		return nil, false
	}
	col.loaded = true
	s.loaded[key] = col
	s.sorted = nil
	return col, true
}

// Install adds a freshly built column to the loaded set.
func (s *ColumnStore) Install(col *Column) {
	key := col.Key()
	s.takeCached(key)
	col.loaded = true
	s.loaded[key] = col
	s.sorted = nil
}

// Unload moves a loaded column into the cache. When the cache bound is
// exceeded the least recently unloaded columns are discarded and returned.
func (s *ColumnStore) Unload(key ColumnKey) (dropped []*Column) {
	col, ok := s.loaded[key]
	if !ok {
		return nil
	}
	delete(s.loaded, key)
	s.sorted = nil
	col.loaded = false
	if s.lru == nil {
		s.cache[key] = col
		return nil
	}
	s.lru.Add(key, col)
	dropped, s.dropped = s.dropped, nil
	return dropped
}

// LoadedCount returns the number of loaded columns.
func (s *ColumnStore) LoadedCount() int { return len(s.loaded) }

// CachedCount returns the number of cached columns.
func (s *ColumnStore) CachedCount() int {
	if s.lru != nil {
		return s.lru.Len()
	}
	return len(s.cache)
}

// LoadedKeys returns the loaded keys sorted by X then Z. The slice is shared
// and must not be modified.
func (s *ColumnStore) LoadedKeys() []ColumnKey {
	if s.sorted != nil {
		return s.sorted
	}
	keys := make([]ColumnKey, 0, len(s.loaded))
	for k := range s.loaded {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Z < keys[j].Z
	})
	s.sorted = keys
	return keys
}

// EachLoaded calls fn for each loaded column in key order.
func (s *ColumnStore) EachLoaded(fn func(col *Column)) {
	for _, k := range s.LoadedKeys() {
		fn(s.loaded[k])
	}
}
