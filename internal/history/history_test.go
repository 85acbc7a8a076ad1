package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openStore(t)

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	records := []*Record{
		{RunID: "run-1", Component: "echo", State: StateCompleted, InputFile: "a.json", OutputFile: "a-out.json", StartedAt: base, Duration: 20 * time.Millisecond},
		{RunID: "run-2", Component: "train", State: StateFailed, InputFile: "b.json", OutputFile: "", StartedAt: base.Add(time.Minute), Duration: time.Second, Error: "boom"},
	}
	for _, r := range records {
		if err := s.Append(r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Newest first.
	if got[0].RunID != "run-2" || got[1].RunID != "run-1" {
		t.Errorf("unexpected order: %s, %s", got[0].RunID, got[1].RunID)
	}
	if got[0].State != StateFailed || got[0].Error != "boom" {
		t.Errorf("failed record not round-tripped: %+v", got[0])
	}
	if !got[1].StartedAt.Equal(base) {
		t.Errorf("started_at = %v, want %v", got[1].StartedAt, base)
	}
	if got[1].Duration != 20*time.Millisecond {
		t.Errorf("duration = %v", got[1].Duration)
	}
}

func TestRecentLimit(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 5; i++ {
		r := &Record{RunID: "r", Component: "c", State: StateCompleted, StartedAt: time.Now().Add(time.Duration(i) * time.Second)}
		if err := s.Append(r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.Recent(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 records, got %d", len(got))
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Errorf("count = %d, want 5", n)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.Append(&Record{RunID: "r", Component: "c", State: StateCompleted, StartedAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	n, err := s2.Count()
	if err != nil || n != 1 {
		t.Errorf("count after reopen = %d (%v), want 1", n, err)
	}
}
