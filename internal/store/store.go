// Package store persists the deck as a single opaque record.
//
// A slot holds one named blob. Reads report whether the slot is present and
// writes replace the whole record.
package store

import (
	"context"
	"fmt"
	"sync"
)

// DefaultSlot is the name of the slot the deck is saved in.
const DefaultSlot = "deck"

// Slot is a single named, whole-record byte store.
type Slot interface {
	// Load returns the stored record and whether one was present.
	Load(ctx context.Context) ([]byte, bool, error)
	// Save replaces the stored record.
	Save(ctx context.Context, data []byte) error
	// Clear removes the stored record. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
	// Close releases any resources held by the slot.
	Close() error
}

// Open returns the slot for a backend ("file" or "sqlite") rooted at path.
func Open(backend, path string) (Slot, error) {
	switch backend {
	case "", BackendFile:
		slot, err := NewFileSlot(path, DefaultSlot)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case BackendSQLite:
		slot, err := OpenSQLiteSlot(path, DefaultSlot)
		if err != nil {
			return nil, err
		}
		return slot, nil
	default:
		return nil, fmt.Errorf("unknown state backend: %s", backend)
	}
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// MemorySlot keeps the record in memory.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	ok   bool
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Load returns a copy of the stored record.
func (m *MemorySlot) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

// Save replaces the stored record with a copy of data.
func (m *MemorySlot) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.ok = true
	return nil
}

// Clear empties the slot.
func (m *MemorySlot) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	m.ok = false
	return nil
}

// Close is a no-op.
func (m *MemorySlot) Close() error {
	return nil
}
