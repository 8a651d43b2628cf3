// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/event_test.go
// Summary: Event dispatch / resize round-trip and invariant tests
// (component G, spec.md §8).

package adapter

import "testing"

// TestResizeIsIdempotent locks spec.md §8's "resize commutativity":
// resize(w,h); resize(w,h) must land on the same geometry as resize(w,h)
// alone.
func TestResizeIsIdempotent(t *testing.T) {
	snapshot := func(a *Adapter) (int, int, int, int, int, int) {
		main := a.windows.main()
		upper := a.windows.get(UpperWindow)
		return a.screenHeight, a.screenWidth, main.ysize, main.ypos, upper.ysize, upper.xsize
	}

	a1, b1 := newTestAdapter(t, 24, 80, V5)
	a1.SplitWindow(3)
	b1.resize(30, 100)
	if r := a1.HandleResize(); !r.IsOK() {
		t.Fatalf("HandleResize: %v", r)
	}
	once := snapshot(a1)

	a2, b2 := newTestAdapter(t, 24, 80, V5)
	a2.SplitWindow(3)
	b2.resize(30, 100)
	if r := a2.HandleResize(); !r.IsOK() {
		t.Fatalf("HandleResize (first): %v", r)
	}
	if r := a2.HandleResize(); !r.IsOK() {
		t.Fatalf("HandleResize (second): %v", r)
	}
	twice := snapshot(a2)

	if once != twice {
		t.Fatalf("resize(w,h) twice diverged from resize(w,h) once: %v vs %v", twice, once)
	}
}

// TestHandleResizeRejectsNonPositiveScreenSize covers the geometry-violation
// path a WINCH with a degenerate reported size would hit.
func TestHandleResizeRejectsNonPositiveScreenSize(t *testing.T) {
	a, b := newTestAdapter(t, 24, 80, V5)
	b.resize(0, 80)
	r := a.HandleResize()
	if r.Kind != ResultGeometryViolation {
		t.Fatalf("HandleResize with height=0 = %v, want geometry_violation", r.Kind)
	}
}

// TestReturnToLiveViewRestoresCursorAndScrollback locks spec.md §8
// invariant 5: scrollback_top_line > ysize iff the hardware cursor is
// hidden. Leaving scroll-back must restore both together.
func TestReturnToLiveViewRestoresCursorAndScrollback(t *testing.T) {
	a, b, hist := newTestAdapterWithHistory(t, 10, 40, V5)
	// Scrolling back by half a screen (5 rows) needs history depth up to
	// bHi=15 lines before the strip can be filled without hitting the
	// front of the log; seed comfortably more than that, one line each.
	for i := 0; i < 20; i++ {
		hist.Append([]rune("a short paragraph of story text."), true)
	}
	w := a.windows.main()

	a.scrollBack(w, scrollBackward)
	if w.scrollbackTopLine <= w.ysize {
		t.Fatalf("scrollBack did not move scrollback_top_line: %d (ysize=%d)", w.scrollbackTopLine, w.ysize)
	}

	a.returnToLiveView(w)
	if w.scrollbackTopLine != w.ysize {
		t.Fatalf("returnToLiveView left scrollback_top_line=%d, want %d (live)", w.scrollbackTopLine, w.ysize)
	}
	if !b.cursorVisible {
		t.Fatalf("returnToLiveView did not restore hardware cursor visibility, violating invariant 5")
	}
}
