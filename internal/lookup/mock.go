// internal/lookup/mock.go
package lookup

import "sync"

// Mock is an in-memory Persister for tests.
type Mock struct {
	mu    sync.Mutex
	table Table
	saves int

	// LoadErr and SaveErr, when set, are returned by LoadAll and SaveAll.
	LoadErr error
	SaveErr error
}

var _ Persister = (*Mock)(nil)

// NewMock returns a Mock preloaded with t.
func NewMock(t Table) *Mock {
	return &Mock{table: t.Clone()}
}

func (m *Mock) LoadAll() (Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return Table{}, m.LoadErr
	}
	return m.table.Clone(), nil
}

func (m *Mock) SaveAll(t Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.table = t.Clone()
	m.saves++
	return nil
}

// Saved returns the last saved table.
func (m *Mock) Saved() Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Clone()
}

// Saves returns the number of successful SaveAll calls.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
