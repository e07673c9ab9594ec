package columnar

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// internPool deduplicates the repeated strings that dominate the
// OTLP hot path (service names, metric names, attribute keys): the same
// handful of strings recur across thousands of rows, so caching the
// canonical instance keeps the buffer's varchar columns from holding one
// Go string header + backing array per row for values that are, in
// practice, a small closed set.
type internPool struct {
	cache *lru.Cache[string, string]
}

const internPoolSize = 4096

func newInternPool() *internPool {
	cache, err := lru.New[string, string](internPoolSize)
	if err != nil {
		// Only returns an error for a non-positive size, which internPoolSize
		// never is.
		panic(err)
	}
	return &internPool{cache: cache}
}

// intern returns the canonical instance of s, adding it to the pool if not
// already present.
func (p *internPool) intern(s string) string {
	if canonical, ok := p.cache.Get(s); ok {
		return canonical
	}
	p.cache.Add(s, s)
	return s
}
