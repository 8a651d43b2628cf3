// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/status_test.go
// Summary: Status-line formatter tests (component E, spec.md §4.E, §8
// scenario 1).

package adapter

import (
	"strings"
	"testing"
)

func TestDrawStatusRendersRoomAndScoreTurns(t *testing.T) {
	a, b := newTestAdapter(t, 24, 80, V3)

	if r := a.DrawStatus("Kitchen", ScoreAndTurn, 5, 10); !r.IsOK() {
		t.Fatalf("DrawStatus: %v", r)
	}

	row := b.rowText(0)
	if !strings.HasPrefix(row, " Kitchen") {
		t.Fatalf("status row = %q, want it to start with \" Kitchen\"", row)
	}
	if !strings.Contains(row, "Score: 5") || !strings.Contains(row, "Turns: 10") {
		t.Fatalf("status row = %q, want it to contain \"Score: 5\" and \"Turns: 10\"", row)
	}
}

func TestDrawStatusIsNoOpAboveV3(t *testing.T) {
	a, b := newTestAdapter(t, 24, 80, V5)
	b.trace = nil

	if r := a.DrawStatus("Kitchen", ScoreAndTurn, 5, 10); !r.IsOK() {
		t.Fatalf("DrawStatus: %v", r)
	}
	if len(b.trace) != 0 {
		t.Fatalf("DrawStatus touched the backend above V3: %v", b.trace)
	}
}

func TestDrawStatusTimeModeShowsClock(t *testing.T) {
	a, b := newTestAdapter(t, 24, 80, V3)

	if r := a.DrawStatus("Cave", StatusTime, 9, 5); !r.IsOK() {
		t.Fatalf("DrawStatus: %v", r)
	}
	row := b.rowText(0)
	if !strings.Contains(row, "09:05") {
		t.Fatalf("status row = %q, want it to contain the clock \"09:05\"", row)
	}
}
