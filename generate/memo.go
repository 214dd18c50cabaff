package generate

import "sync"

// Memo keeps one generated snapshot per key. Snapshots are shared between
// callers and goroutines and must be treated as read-only.
type Memo[T any] struct {
	mu    sync.Mutex
	items map[string]*memoEntry[T]
}

type memoEntry[T any] struct {
	once  sync.Once
	value []T
}

// NewMemo creates an empty Memo.
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{items: make(map[string]*memoEntry[T])}
}

// Get returns the snapshot for key, building it with fn on first use.
// Concurrent first callers wait for a single build.
func (m *Memo[T]) Get(key string, fn func() []T) []T {
	m.mu.Lock()
	e, ok := m.items[key]
	if !ok {
		e = new(memoEntry[T])
		m.items[key] = e
	}
	m.mu.Unlock()

	e.once.Do(func() { e.value = fn() })
	return e.value
}

// Len reports how many snapshots have been requested.
func (m *Memo[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
