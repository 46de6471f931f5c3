package selection

import (
	"errors"
	"strings"
	"testing"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/engine/enginetest"
	"github.com/parametriclabs/swmcp/internal/faults"
	"github.com/parametriclabs/swmcp/internal/geom"
	"github.com/parametriclabs/swmcp/internal/locator"
)

func TestClearEmptiesEngineAndEntries(t *testing.T) {
	fake := enginetest.New()
	s := New(fake, nil)

	if err := s.Add(locator.ByName(engine.KindPlane, "Front"), engine.MarkNone, false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", s.Count())
	}
	if len(fake.Selected()) != 0 {
		t.Errorf("engine selection not empty after Clear: %v", fake.Selected())
	}
}

func TestFailedAddClearsEngineKeepsEntries(t *testing.T) {
	fake := enginetest.New()
	fake.AddEntity(engine.KindEdge, geom.Point3D{X: 0.01})
	s := New(fake, nil)

	if err := s.Add(locator.ByPoint(engine.KindEdge, geom.Point3D{X: 0.01}), engine.MarkProfile, false); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := s.Add(locator.ByPoint(engine.KindEdge, geom.Point3D{X: 0.5}), engine.MarkProfile, true)
	var fault *faults.Fault
	if !errors.As(err, &fault) {
		t.Fatalf("missed pick should return a fault, got %v", err)
	}

	// The engine must not carry a partial selection into the next command,
	// but the entry list keeps the successful adds for diagnostics.
	if got := fake.Selected(); len(got) != 0 {
		t.Errorf("engine selection should be cleared after a failed add: %v", got)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (the successful add)", s.Count())
	}
}

func TestFailedAddKeepsFaultWhenCleanupFails(t *testing.T) {
	fake := enginetest.New()
	s := New(fake, nil)

	if err := s.Add(locator.ByName(engine.KindPlane, "Front"), engine.MarkNone, false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	fake.FailClear = true
	err := s.Add(locator.ByPoint(engine.KindEdge, geom.Point3D{X: 0.5}), engine.MarkProfile, true)
	if err == nil {
		t.Fatal("Add should fail on the missed pick")
	}

	// Even when the post-failure cleanup errors too, the pick fault stays
	// inspectable so the agent keeps its correction context.
	var fault *faults.Fault
	if !errors.As(err, &fault) {
		t.Fatalf("fault lost behind cleanup error: %v", err)
	}
	if fault.Code != faults.CodeLocatorNotFound {
		t.Errorf("Code = %q, want %q", fault.Code, faults.CodeLocatorNotFound)
	}
	if !strings.Contains(err.Error(), "cleanup") {
		t.Errorf("error should mention the failed cleanup: %v", err)
	}
}

func TestAddAllAppendFlags(t *testing.T) {
	fake := enginetest.New()
	s := New(fake, nil)

	locs := []locator.Locator{
		locator.ByName(engine.KindPlane, "Front"),
		locator.ByName(engine.KindPlane, "Top"),
		locator.ByName(engine.KindPlane, "Right"),
	}
	if err := s.AddAll(locs, engine.MarkProfile, false); err != nil {
		t.Fatalf("AddAll failed: %v", err)
	}
	log := fake.SelectionLog
	if len(log) != 3 {
		t.Fatalf("selection log has %d entries, want 3", len(log))
	}
	if log[0].Append {
		t.Error("first add should replace, not append")
	}
	for i := 1; i < len(log); i++ {
		if !log[i].Append {
			t.Errorf("add %d should append", i)
		}
	}
	if got := fake.Selected(); len(got) != 3 {
		t.Errorf("engine selection has %d entries, want 3", len(got))
	}
}

func TestAddAllAppendFirst(t *testing.T) {
	fake := enginetest.New()
	s := New(fake, nil)

	if err := s.Add(locator.ByName(engine.KindPlane, "Front"), engine.MarkPath, false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	locs := []locator.Locator{
		locator.ByName(engine.KindPlane, "Top"),
		locator.ByName(engine.KindPlane, "Right"),
	}
	if err := s.AddAll(locs, engine.MarkProfile, true); err != nil {
		t.Fatalf("AddAll failed: %v", err)
	}
	// appendFirst preserves the earlier role-tagged pick.
	if got := fake.Selected(); len(got) != 3 {
		t.Errorf("engine selection has %d entries, want 3", len(got))
	}
	if s.Count() != 3 {
		t.Errorf("Count() = %d, want 3", s.Count())
	}
}

func TestAddAllStopsAtFirstMiss(t *testing.T) {
	fake := enginetest.New()
	s := New(fake, nil)

	locs := []locator.Locator{
		locator.ByName(engine.KindPlane, "Front"),
		locator.ByName(engine.KindPlane, "Nope"),
		locator.ByName(engine.KindPlane, "Right"),
	}
	if err := s.AddAll(locs, engine.MarkProfile, false); err == nil {
		t.Fatal("AddAll should fail on the missing plane")
	}
	// Only the picks before the miss were replayed.
	if len(fake.SelectionLog) != 1 {
		t.Errorf("selection log has %d entries, want 1", len(fake.SelectionLog))
	}
}
