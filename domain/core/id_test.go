package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"run-123", RunID("run-123"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestHashCells_SeparatesCells(t *testing.T) {
	a := HashCells([][]string{{"a", "bc"}})
	b := HashCells([][]string{{"ab", "c"}})
	if a.Equals(b) {
		t.Fatalf("expected different hashes for differently split cells")
	}
	if !HashCells([][]string{{"x"}}).Equals(HashCells([][]string{{"x"}})) {
		t.Fatalf("expected identical input to hash identically")
	}
	if len(a.Short()) != 12 {
		t.Errorf("Short() length = %d, want 12", len(a.Short()))
	}
}

func TestErrorTaxonomy(t *testing.T) {
	if !IsModelFitError(ErrRankDeficient) || !IsModelFitError(NewModelFitError("Anxiety", ErrSingular)) {
		t.Error("rank and singular errors should be model fit errors")
	}
	if !IsDataLoadError(NewMissingColumnError("Stress")) {
		t.Error("missing column should be a data load error")
	}
	if IsSummaryFormatError(NewRowShapeError("a b", 2)) {
		t.Error("row shape errors are not summary format errors")
	}
	if !IsRowShapeError(NewRowShapeError("a b", 2)) {
		t.Error("expected row shape error")
	}
}
