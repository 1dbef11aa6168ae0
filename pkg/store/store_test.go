package store

import (
	"testing"

	"mprcore/pkg/geometry"
	"mprcore/pkg/measurement"
)

func sampleMeasurement(t measurement.Type, value float64, unit string) measurement.Measurement {
	return measurement.Measurement{
		Type:   t,
		Points: []geometry.Point3D{{X: 1, Y: 2, Z: 3}},
		Value:  value,
		Unit:   unit,
	}
}

// TestCreateAssignsMonotonicIDs verifies ID assignment starting at 0
func TestCreateAssignsMonotonicIDs(t *testing.T) {
	s := NewStore()

	m0 := s.Create(sampleMeasurement(measurement.Distance, 5, "mm"))
	m1 := s.Create(sampleMeasurement(measurement.Angle, 90, "degrees"))

	if m0.ID != 0 || m1.ID != 1 {
		t.Errorf("Expected IDs 0 and 1, got %d and %d", m0.ID, m1.ID)
	}
	if m0.CreatedAt.IsZero() || m1.CreatedAt.IsZero() {
		t.Error("Create must assign a timestamp")
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 measurements, got %d", s.Len())
	}
}

// TestIDsNeverReused verifies deleted and cleared IDs are not recycled
func TestIDsNeverReused(t *testing.T) {
	s := NewStore()

	m0 := s.Create(sampleMeasurement(measurement.Distance, 5, "mm"))
	if !s.Delete(m0.ID) {
		t.Fatal("Delete of existing measurement must succeed")
	}

	m1 := s.Create(sampleMeasurement(measurement.Distance, 7, "mm"))
	if m1.ID != 1 {
		t.Errorf("Expected ID 1 after delete, got %d", m1.ID)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("Clear must remove all measurements")
	}

	m2 := s.Create(sampleMeasurement(measurement.Area, 16, "mm²"))
	if m2.ID != 2 {
		t.Errorf("Expected ID 2 after clear, got %d", m2.ID)
	}
}

// TestGet verifies lookup by ID
func TestGet(t *testing.T) {
	s := NewStore()
	created := s.Create(sampleMeasurement(measurement.Hounsfield, 42, "HU"))

	got := s.Get(created.ID)
	if got == nil {
		t.Fatal("Expected to find the created measurement")
	}
	if got.Value != 42 || got.Type != measurement.Hounsfield {
		t.Errorf("Unexpected measurement: %+v", got)
	}

	if s.Get(999) != nil {
		t.Error("Expected nil for a nonexistent ID")
	}
}

// TestDeleteNonexistent verifies a failed delete is harmless
func TestDeleteNonexistent(t *testing.T) {
	s := NewStore()
	s.Create(sampleMeasurement(measurement.Distance, 5, "mm"))

	if s.Delete(999) {
		t.Error("Delete of a nonexistent ID must return false")
	}
	if s.Len() != 1 {
		t.Error("Failed delete must leave the store unchanged")
	}

	// Idempotence: a second failed delete behaves the same
	if s.Delete(999) {
		t.Error("Repeated failed delete must still return false")
	}
}

// TestListIsACopy verifies callers cannot mutate the store through List
func TestListIsACopy(t *testing.T) {
	s := NewStore()
	s.Create(sampleMeasurement(measurement.Distance, 5, "mm"))

	list := s.List()
	list[0].Value = -1

	if s.Get(0).Value != 5 {
		t.Error("Mutating the listed slice must not affect the store")
	}
}
