// Package store owns the list of completed measurements: identity
// assignment, lookup, deletion and export to the supported interchange
// formats.
package store

import (
	"time"

	"mprcore/pkg/measurement"
)

// Store holds completed measurements in creation order. IDs come from a
// monotonically increasing counter starting at 0 and are never reused,
// even after deletion or Clear. The store is owned by a single goroutine
// and is never mutated concurrently.
type Store struct {
	measurements []measurement.Measurement
	nextID       int64

	// now is the timestamp source, replaceable in tests.
	now func() time.Time
}

// NewStore creates an empty measurement store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Create assigns the next ID and the creation timestamp, appends the
// record and returns it. Records are immutable once created.
func (s *Store) Create(m measurement.Measurement) measurement.Measurement {
	m.ID = s.nextID
	s.nextID++
	m.CreatedAt = s.now()

	s.measurements = append(s.measurements, m)
	return m
}

// List returns all measurements in creation order. The returned slice is
// a copy; mutating it does not affect the store.
func (s *Store) List() []measurement.Measurement {
	out := make([]measurement.Measurement, len(s.measurements))
	copy(out, s.measurements)
	return out
}

// Len returns the number of stored measurements.
func (s *Store) Len() int {
	return len(s.measurements)
}

// Get returns the measurement with the given ID, or nil if it does not
// exist.
func (s *Store) Get(id int64) *measurement.Measurement {
	for i := range s.measurements {
		if s.measurements[i].ID == id {
			m := s.measurements[i]
			return &m
		}
	}
	return nil
}

// Delete removes the measurement with the given ID. Returns false and
// leaves the store unchanged when the ID does not exist; the freed ID is
// never reassigned.
func (s *Store) Delete(id int64) bool {
	for i := range s.measurements {
		if s.measurements[i].ID == id {
			s.measurements = append(s.measurements[:i], s.measurements[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all measurements. The ID counter keeps advancing so IDs
// stay unique across the whole session.
func (s *Store) Clear() {
	s.measurements = nil
}
