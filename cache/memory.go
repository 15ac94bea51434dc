package cache

import (
	"path"
	"sync"
	"time"
)

// Memory is a process-local Cache. It backs tests and serves as the degraded
// mode when Redis is unreachable at startup.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.Delete(key)
		return "", false
	}
	return entry.value, true
}

func (m *Memory) Set(key, value string, ttl time.Duration) {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *Memory) DeletePattern(pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if ok, err := path.Match(pattern, key); err == nil && ok {
			delete(m.entries, key)
		}
	}
}
