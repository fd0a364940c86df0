// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGet(t *testing.T) {
	s := openTestStore(t)

	started := time.Now()
	id, err := s.Add(Run{
		StartedAt: started,
		Command:   "llm chat",
		Raw:       "| A | B |",
		Formatted: "┌───┐",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Command != "llm chat" {
		t.Errorf("command = %q", got.Command)
	}
	if got.StartedAt.UnixNano() != started.UnixNano() {
		t.Errorf("started_at = %v, want %v", got.StartedAt, started)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Now()
	for i := 0; i < 3; i++ {
		_, err := s.Add(Run{
			StartedAt: base.Add(time.Duration(i) * time.Second),
			Command:   "cmd",
			Raw:       "r",
			Formatted: "f",
		})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	runs, err := s.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Error("runs not newest first")
	}
}

func TestSearchEscapesWildcards(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Add(Run{StartedAt: time.Now(), Command: "grep 100%", Raw: "", Formatted: "all done"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(Run{StartedAt: time.Now(), Command: "other", Raw: "", Formatted: "100 results"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	runs, err := s.Search("100%", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(runs) != 1 || runs[0].Command != "grep 100%" {
		t.Errorf("Search(100%%) = %+v, want only the literal match", runs)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(999); err == nil {
		t.Error("expected error for missing run")
	}
}
