// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/history_refresh_test.go
// Summary: History-refresh engine round-trip and invariant tests
// (component C, spec.md §8).

package adapter

import "testing"

// TestIdempotentRefreshProducesIdenticalByteStreams checks spec.md §8's
// "idempotent refresh" round-trip: two consecutive refresh_screen calls
// (each a reset_history=true refresh over the same strip) must emit
// identical backend byte streams.
func TestIdempotentRefreshProducesIdenticalByteStreams(t *testing.T) {
	a, b, hist := newTestAdapterWithHistory(t, 24, 80, V5)
	hist.Append([]rune("first paragraph of the story, telling the player where they are."), true)
	hist.Append([]rune("a second paragraph follows, a little longer than the first one was."), true)
	hist.Append([]rune("a third and final paragraph closes things out."), true)

	// Three short paragraphs cannot fill 24 rows, so each refresh reaches
	// the front of the history and reports false.
	round := func() []string {
		b.trace = nil
		if a.RefreshScreen() {
			t.Fatalf("refresh_screen returned true, want false: three paragraphs cannot fill 24 rows")
		}
		a.flushAllWindows()
		return append([]string(nil), b.trace...)
	}

	first := round()
	second := round()

	if len(first) != len(second) {
		t.Fatalf("byte streams differ in length: %d vs %d\nfirst:  %v\nsecond: %v", len(first), len(second), first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("byte streams diverge at call %d: %q vs %q", i, first[i], second[i])
		}
	}
}

// TestRefreshResetsBookkeepingOnExit locks spec.md §8 invariant 4: after any
// Refresh call, both margins are 0 and the skip/fill counters are back to
// -1, regardless of which of the four cases fired internally.
func TestRefreshResetsBookkeepingOnExit(t *testing.T) {
	a, _, hist := newTestAdapterWithHistory(t, 10, 40, V5)
	for i := 0; i < 5; i++ {
		hist.Append([]rune("a short paragraph of story text."), true)
	}

	w := a.windows.main()
	// Five one-line paragraphs cannot fill ten rows, so the refresh reaches
	// the front of the history and reports false.
	if a.Refresh(1, w.ysize, true) {
		t.Fatalf("refresh returned true, want false: five one-line paragraphs cannot fill ten rows")
	}
	if w.uppermargin != 0 || w.lowermargin != 0 {
		t.Fatalf("margins not reset after refresh: upper=%d lower=%d", w.uppermargin, w.lowermargin)
	}
	if w.linesToSkip != -1 || w.remainingLinesToFill != -1 {
		t.Fatalf("counters not reset after refresh: linesToSkip=%d remainingLinesToFill=%d", w.linesToSkip, w.remainingLinesToFill)
	}
}

// TestRefreshOfZeroHeightWindowIsNoOp covers the spec.md §8 boundary
// behaviour: "window height 0 => refresh is a no-op returning false."
func TestRefreshOfZeroHeightWindowIsNoOp(t *testing.T) {
	a, b, _ := newTestAdapterWithHistory(t, 24, 80, V5)
	b.trace = nil
	if a.Refresh(1, 0, true) {
		t.Fatalf("refresh of a zero-height strip returned true, want false")
	}
	if len(b.trace) != 0 {
		t.Fatalf("refresh of a zero-height strip touched the backend: %v", b.trace)
	}
}

// TestRefreshOutsideWindowIsGeometryViolation exercises the fatal path:
// a strip extending past window 0's bottom row is a geometry violation
// (spec.md §7), surfaced through Adapter.LastError.
func TestRefreshOutsideWindowIsGeometryViolation(t *testing.T) {
	a, _, _ := newTestAdapterWithHistory(t, 10, 40, V5)
	w := a.windows.main()
	if a.Refresh(1, w.ysize+5, true) {
		t.Fatalf("refresh of an out-of-bounds strip returned true, want false")
	}
	if a.LastError() == nil {
		t.Fatalf("LastError() is nil after a geometry violation")
	}
}
