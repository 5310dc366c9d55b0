package cache

import (
	"context"
	"sync"

	"credito/pkg/platform/sentinel"
)

// Memory is an in-process cache. When maxEntries is positive and reached,
// the map is dropped and refilled; entries are cheap to recompute.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]bool
	maxEntries int
}

// NewMemory creates an in-memory cache. maxEntries <= 0 means unbounded.
func NewMemory(maxEntries int) *Memory {
	return &Memory{entries: make(map[string]bool), maxEntries: maxEntries}
}

func (m *Memory) Get(_ context.Context, digits string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	valid, ok := m.entries[digits]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	return valid, nil
}

func (m *Memory) Set(_ context.Context, digits string, valid bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[digits]; !ok && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.entries = make(map[string]bool, m.maxEntries)
	}
	m.entries[digits] = valid
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]bool)
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
