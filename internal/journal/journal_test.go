package journal

import (
	"testing"
	"time"
)

func init() {
	// Freeze time for deterministic timestamps.
	timeNow = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}
}

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestOpenRegistersRun(t *testing.T) {
	j := openTestJournal(t)
	if j.Run() == "" {
		t.Error("an open journal should have a run id")
	}
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	if err := j.Record("extrude", "ok", 120*time.Millisecond, "Boss-Extrude1"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := j.Record("fillet", "LOCATOR_NOT_FOUND", 15*time.Millisecond, "no EDGE near (100.0, 0.0, 0.0) mm"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Command != "fillet" || entries[1].Command != "extrude" {
		t.Errorf("order = %s, %s; want fillet, extrude", entries[0].Command, entries[1].Command)
	}
	e := entries[0]
	if e.Outcome != "LOCATOR_NOT_FOUND" {
		t.Errorf("Outcome = %q", e.Outcome)
	}
	if e.Elapsed != 15*time.Millisecond {
		t.Errorf("Elapsed = %v, want 15ms", e.Elapsed)
	}
	if e.Run != j.Run() {
		t.Errorf("Run = %q, want %q", e.Run, j.Run())
	}
	if !e.At.Equal(timeNow()) {
		t.Errorf("At = %v, want the frozen clock", e.At)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		if err := j.Record("sketch_circle", "ok", 0, ""); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	entries, err := j.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Recent(3) returned %d entries", len(entries))
	}
}

func TestNilJournalIsInert(t *testing.T) {
	var j *Journal
	if got := j.Run(); got != "" {
		t.Errorf("nil Run() = %q, want empty", got)
	}
	if err := j.Record("extrude", "ok", 0, ""); err != nil {
		t.Errorf("nil Record should no-op, got %v", err)
	}
	entries, err := j.Recent(10)
	if err != nil || entries != nil {
		t.Errorf("nil Recent = %v, %v; want nil, nil", entries, err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("nil Close should no-op, got %v", err)
	}
}
