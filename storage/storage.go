// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"errors"
	"sync"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrUnavailable   = errors.New("storage unavailable")
)

// Storage is a string key/value store with localStorage semantics.
// GetItem reports found=false, with a nil error, for an absent key.
type Storage interface {
	GetItem(key string) (value string, found bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Memory keeps items in process memory. A positive Quota caps the total
// size of stored keys and values in bytes.
type Memory struct {
	Quota int

	mu    sync.RWMutex
	items map[string]string
	down  bool
}

// NewMemory returns an empty store with no quota.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// GetItem returns the value stored under key.
func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.down {
		return "", false, ErrUnavailable
	}
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem stores value under key, failing with ErrQuotaExceeded when it does not fit.
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return ErrUnavailable
	}
	if m.items == nil {
		m.items = make(map[string]string)
	}
	if m.Quota > 0 {
		used := 0
		for k, v := range m.items {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used+len(key)+len(value) > m.Quota {
			return ErrQuotaExceeded
		}
	}
	m.items[key] = value
	return nil
}

// RemoveItem deletes key. Missing keys are not an error.
func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return ErrUnavailable
	}
	delete(m.items, key)
	return nil
}

// SetUnavailable makes every call fail with ErrUnavailable until reset.
func (m *Memory) SetUnavailable(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.down = down
}

// Len returns the number of stored items.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

type prefixed struct {
	base   Storage
	prefix string
}

// WithPrefix namespaces every key of base under prefix.
func WithPrefix(base Storage, prefix string) Storage {
	return &prefixed{base: base, prefix: prefix}
}

func (p *prefixed) GetItem(key string) (string, bool, error) {
	return p.base.GetItem(p.prefix + key)
}

func (p *prefixed) SetItem(key, value string) error {
	return p.base.SetItem(p.prefix+key, value)
}

func (p *prefixed) RemoveItem(key string) error {
	return p.base.RemoveItem(p.prefix + key)
}
