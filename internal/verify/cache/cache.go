package cache

import (
	"sync"

	"github.com/statutecheck/statutecheck/internal/verify"
)

// InMemory caches verification results by statute-set fingerprint. The
// cache is an optimization only: a miss recomputes and must produce the
// same answer, and errors are never cached. The lock is held across the
// compute so concurrent callers of one key compute at most once.
type InMemory struct {
	mu    sync.RWMutex
	max   int
	items map[string]*verify.Result
}

func NewInMemory(max int) *InMemory {
	if max <= 0 {
		max = 256
	}
	return &InMemory{
		max:   max,
		items: make(map[string]*verify.Result, max),
	}
}

func (c *InMemory) GetOrCompute(fingerprint string, fn func() (*verify.Result, error)) (*verify.Result, error) {
	c.mu.RLock()
	if v, ok := c.items[fingerprint]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.items[fingerprint]; ok {
		return v, nil
	}

	r, err := fn()
	if err != nil {
		return nil, err
	}

	if len(c.items) < c.max {
		c.items[fingerprint] = r
	}

	return r, nil
}

// Invalidate drops one entry.
func (c *InMemory) Invalidate(fingerprint string) {
	c.mu.Lock()
	delete(c.items, fingerprint)
	c.mu.Unlock()
}

// Len reports the number of cached results.
func (c *InMemory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
