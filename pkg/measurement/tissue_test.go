package measurement

import "testing"

// TestClassifyTissue verifies the fixed, ordered density thresholds,
// including the half-open boundaries.
func TestClassifyTissue(t *testing.T) {
	tests := []struct {
		hu       float64
		expected string
	}{
		{-1000, "Air"},
		{-100.01, "Air"},
		{-100, "Fat"}, // lower bound is inclusive
		{-75, "Fat"},
		{-50, "Fluid"},
		{-0.01, "Fluid"},
		{0, "Soft Tissue"},
		{40, "Soft Tissue"},
		{50, "Dense Tissue"},
		{99.99, "Dense Tissue"},
		{100, "Bone"},
		{399.99, "Bone"},
		{400, "Metal"},
		{3000, "Metal"},
	}

	for _, tt := range tests {
		if got := ClassifyTissue(tt.hu); got != tt.expected {
			t.Errorf("ClassifyTissue(%v): expected %q, got %q", tt.hu, tt.expected, got)
		}
	}
}
