package identity

import (
	"testing"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/engine/enginetest"
)

func TestNextOrdinalName(t *testing.T) {
	var s State
	if got := s.NextOrdinalName(); got != "Sketch1" {
		t.Errorf("first ordinal name = %q, want Sketch1", got)
	}
	if got := s.NextOrdinalName(); got != "Sketch2" {
		t.Errorf("second ordinal name = %q, want Sketch2", got)
	}
	s.ResetDocument()
	if got := s.NextOrdinalName(); got != "Sketch1" {
		t.Errorf("ordinal name after reset = %q, want Sketch1", got)
	}
}

func TestLatestProfileReverseScan(t *testing.T) {
	fake := enginetest.New()
	if _, ok := LatestProfile(fake); ok {
		t.Fatal("a fresh document has no profile container")
	}

	fake.AddNamed("Sketch1", engine.KindSketch, ProfileTypeName)
	fake.AddNamed("Plane4", engine.KindPlane, "RefPlane")
	fake.AddNamed("Sketch2", engine.KindSketch, ProfileTypeName)

	name, ok := LatestProfile(fake)
	if !ok || name != "Sketch2" {
		t.Errorf("LatestProfile = %q, %v; want Sketch2 (newest wins)", name, ok)
	}
}

func TestCurrentSketchNamePrefersMemory(t *testing.T) {
	fake := enginetest.New()
	fake.AddNamed("Sketch1", engine.KindSketch, ProfileTypeName)

	state := &State{Remembered: "Sketch7"}
	r := NewResolver(state)
	if got := r.CurrentSketchName(fake); got != "Sketch7" {
		t.Errorf("CurrentSketchName = %q, want the remembered Sketch7", got)
	}
}

func TestCurrentSketchNameHistoryFallback(t *testing.T) {
	fake := enginetest.New()
	fake.AddNamed("Sketch3", engine.KindSketch, ProfileTypeName)

	r := NewResolver(&State{})
	if got := r.CurrentSketchName(fake); got != "Sketch3" {
		t.Errorf("CurrentSketchName = %q, want Sketch3 from the history", got)
	}
}

func TestCurrentSketchNameFixedFallback(t *testing.T) {
	fake := enginetest.New()
	r := NewResolver(&State{})
	if got := r.CurrentSketchName(fake); got != FallbackSketchName {
		t.Errorf("CurrentSketchName = %q, want %q", got, FallbackSketchName)
	}
}

func TestReverifyCorrectsMemory(t *testing.T) {
	fake := enginetest.New()
	fake.AddNamed("Sketch2", engine.KindSketch, ProfileTypeName)

	state := &State{Remembered: "Sketch9"}
	r := NewResolver(state)
	if got := r.Reverify(fake); got != "Sketch2" {
		t.Errorf("Reverify = %q, want the history's Sketch2", got)
	}
	if state.Remembered != "Sketch2" {
		t.Errorf("Remembered = %q, want corrected to Sketch2", state.Remembered)
	}
}

func TestReverifyKeepsMemoryWhenHistoryIsEmpty(t *testing.T) {
	fake := enginetest.New()
	state := &State{Remembered: "Sketch1"}
	r := NewResolver(state)
	if got := r.Reverify(fake); got != "Sketch1" {
		t.Errorf("Reverify = %q, want the remembered Sketch1", got)
	}

	empty := NewResolver(&State{})
	if got := empty.Reverify(fake); got != FallbackSketchName {
		t.Errorf("Reverify with no memory = %q, want %q", got, FallbackSketchName)
	}
}
