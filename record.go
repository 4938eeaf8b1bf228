package simplex

import (
	"fmt"
	"sort"
)

// Pair is a single named value of a Record. Key is usually a string; other
// key types are kept so that the engine can reject them.
type Pair struct {
	Key   any
	Value any
}

// Record is an ordered mapping from field name to raw value. It is the view
// every source is turned into before hydration.
type Record []Pair

// RecordOf builds a Record from a map, with keys in lexical order.
func RecordOf(m map[string]any) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := make(Record, 0, len(keys))
	for _, k := range keys {
		r = append(r, Pair{Key: k, Value: m[k]})
	}
	return r
}

// Get returns the value of the first pair with the given key.
func (r Record) Get(key string) (any, bool) {
	for _, p := range r {
		if k, ok := p.Key.(string); ok && k == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of the first pair with the given key, or appends
// a new pair.
func (r Record) Set(key string, value any) Record {
	for i, p := range r {
		if k, ok := p.Key.(string); ok && k == key {
			r[i].Value = value
			return r
		}
	}
	return append(r, Pair{Key: key, Value: value})
}

// Keys returns the keys in order.
func (r Record) Keys() []any {
	keys := make([]any, len(r))
	for i, p := range r {
		keys[i] = p.Key
	}
	return keys
}

// Map converts the record to a map. It fails on the first non-string key.
// Later pairs overwrite earlier ones with the same key.
func (r Record) Map() (map[string]any, error) {
	m := make(map[string]any, len(r))
	for _, p := range r {
		k, ok := p.Key.(string)
		if !ok {
			return nil, &NonStringKeyError{Key: p.Key}
		}
		m[k] = p.Value
	}
	return m, nil
}

// sortPairs orders the pairs of a record built from a Go map: string keys
// first in lexical order, then every other key by its printed form.
func sortPairs(r Record) {
	sort.SliceStable(r, func(i, j int) bool {
		si, iok := r[i].Key.(string)
		sj, jok := r[j].Key.(string)
		switch {
		case iok && jok:
			return si < sj
		case iok != jok:
			return iok
		default:
			return fmt.Sprint(r[i].Key) < fmt.Sprint(r[j].Key)
		}
	})
}
