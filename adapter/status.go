// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/status.go
// Summary: Status-line formatter (component E, spec.md §4.E), V <= 3 only.
// The status line occupies the fixed top row reserved by newWindowSet for
// V3; it is painted directly rather than through the window-target routine
// since it is never word-wrapped and always fully rewritten.

package adapter

import "fmt"

// DrawStatus implements show_status: erases the status row and repaints
// the room name plus the score/turns or time group, right-aligned, in
// reverse video. A no-op above V3, which has no status line.
func (a *Adapter) DrawStatus(room string, mode StatusMode, p1, p2 int) Result {
	if a.version > V3 || a.windows == nil || !a.windows.hasStatusLine {
		return OK
	}
	a.statusRoom, a.statusMode, a.statusP1, a.statusP2, a.statusSet = room, mode, p1, p2, true
	return a.redrawStatus(nil)
}

// redrawStatus repaints the last-set status line, used both by DrawStatus
// and by a post-resize refresh_screen (spec.md §4.G). Its w parameter is
// unused by V3 geometry but kept so callers iterating window 1 can pass it
// through uniformly; status.go owns the fixed row itself.
func (a *Adapter) redrawStatus(_ *window) Result {
	if !a.statusSet || !a.windows.hasStatusLine {
		return OK
	}
	width := a.screenWidth
	if width <= 0 {
		return OK
	}
	const row = 1

	savedStyle, savedFg, savedBg := a.lastStyle, a.lastFg, a.lastBg
	a.backend.SetTextStyle(ReverseVideo)
	a.backend.SetColor(a.windows.main().outputFg, a.windows.main().outputBg)
	a.styleValid = false
	a.backend.ClearArea(1, row, width, 1)

	var rightRunes []rune
	var rightCol int
	if a.statusMode == StatusTime {
		rightRunes = []rune(fmt.Sprintf("%02d:%02d", a.statusP1, a.statusP2))
		rightCol = width - 5
	} else {
		scoreLabel, turnsLabel := "Score", "Turns"
		if a.localizer != nil {
			scoreLabel, turnsLabel = a.localizer.ScoreLabel(), a.localizer.TurnsLabel()
		}
		rightRunes = []rune(fmt.Sprintf("%s: %d  %s: %d ", scoreLabel, a.statusP1, turnsLabel, a.statusP2))
		rightCol = width - len(rightRunes) + 1
	}
	if rightCol < 1 {
		rightCol = 1
		if len(rightRunes) > width {
			rightRunes = rightRunes[len(rightRunes)-width:]
		}
	}

	room := []rune(" " + a.statusRoom)
	maxRoom := rightCol - 1
	if maxRoom < 0 {
		maxRoom = 0
	}
	if len(room) > maxRoom {
		room = room[:maxRoom]
	}

	a.backend.GotoYX(row, 1)
	a.backend.Output(room)
	a.backend.GotoYX(row, rightCol)
	a.backend.Output(rightRunes)
	a.backend.UpdateScreen()

	a.backend.SetTextStyle(savedStyle)
	a.backend.SetColor(savedFg, savedBg)
	a.lastStyle, a.lastFg, a.lastBg, a.styleValid = savedStyle, savedFg, savedBg, true
	return OK
}
