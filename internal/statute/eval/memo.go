package eval

import (
	"sync"

	"github.com/statutecheck/statutecheck/internal/statute"
)

// Memo wraps Evaluate with a bounded cache keyed by condition identity
// and context fingerprint. Enabling it requires referential
// transparency: a hit never differs from a cold evaluation. Errors are
// never cached.
type Memo struct {
	mu    sync.RWMutex
	max   int
	items map[string]bool
}

func NewMemo(max int) *Memo {
	if max <= 0 {
		max = 1024
	}
	return &Memo{
		max:   max,
		items: make(map[string]bool, max),
	}
}

func (m *Memo) Evaluate(c statute.Condition, ctx Context) (bool, error) {
	key := statute.ConditionFingerprint(c) + "|" + ctx.Fingerprint()

	m.mu.RLock()
	if v, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return v, nil
	}
	m.mu.RUnlock()

	out, err := Evaluate(c, ctx)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	if len(m.items) < m.max {
		m.items[key] = out
	}
	m.mu.Unlock()

	return out, nil
}

// Len reports the number of cached entries.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Reset drops every cached entry.
func (m *Memo) Reset() {
	m.mu.Lock()
	m.items = make(map[string]bool, m.max)
	m.mu.Unlock()
}
