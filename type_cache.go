package simplex

import (
	"reflect"
	"sync"
)

// TypeCache provides thread-safe memoization of metadata derived from a Go
// type, such as its Shape. The factory runs at most once per type, even
// under concurrent access; its error is cached along with its result.
type TypeCache[C any] struct {
	cache sync.Map // map[reflect.Type]*CacheEntry[C]
}

// CacheEntry holds the cached data for a specific type
type CacheEntry[C any] struct {
	once sync.Once
	data C
	err  error
}

// NewTypeCache creates a new thread-safe type cache
func NewTypeCache[C any]() *TypeCache[C] {
	return &TypeCache[C]{}
}

// GetOrCreate returns the cached data for t, calling factory to build it if
// no entry exists yet.
func (tc *TypeCache[C]) GetOrCreate(t reflect.Type, factory func() (C, error)) (C, error) {
	v, _ := tc.cache.LoadOrStore(t, &CacheEntry[C]{})
	entry := v.(*CacheEntry[C])

	entry.once.Do(func() {
		entry.data, entry.err = factory()
	})

	return entry.data, entry.err
}
