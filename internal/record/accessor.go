package record

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by accessors when no record has the given ID.
var ErrNotFound = errors.New("record not found")

// Accessor is the host boundary: it loads records by identifier and writes
// updated copies back. The core never mutates host state directly.
type Accessor interface {
	Load(id string) (Record, error)
	Save(r Record) error
}

// Memory is an in-memory Accessor used by tests and dry runs.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
	saves   int

	// FailSave makes Save fail for the listed IDs.
	FailSave map[string]error
}

var _ Accessor = (*Memory)(nil)

// NewMemory returns a Memory holding copies of records.
func NewMemory(records ...Record) *Memory {
	m := &Memory{records: make(map[string]Record, len(records))}
	for _, r := range records {
		m.records[r.ID] = r.Clone()
	}
	return m
}

func (m *Memory) Load(id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return Record{}, fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	return r.Clone(), nil
}

func (m *Memory) Save(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailSave[r.ID]; err != nil {
		return err
	}
	if _, ok := m.records[r.ID]; !ok {
		return fmt.Errorf("save %s: %w", r.ID, ErrNotFound)
	}
	m.records[r.ID] = r.Clone()
	m.saves++
	return nil
}

// Saves returns the number of successful Save calls.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
