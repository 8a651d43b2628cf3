// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/history_refresh.go
// Summary: History-refresh engine (component C, spec.md §4.C) -- repaints a
// rectangular strip of window 0 by replaying paragraphs from the output
// history, classifying every call into one of four positional cases
// relative to the strip's buffer-line bounds.

package adapter

import "math"

// Refresh repaints the strip [yRefreshTop .. yRefreshTop+ySize-1] of window
// 0 from the output history. resetHistory=true starts a fresh history
// cursor at the tail (chsl=0); false continues from wherever the existing
// cursor left off. Returns false if the strip couldn't be fully filled
// because history's front edge was reached, or on a geometry/consistency
// failure (spec.md §4.C, §7).
func (a *Adapter) Refresh(yRefreshTop, ySize int, resetHistory bool) bool {
	w := a.windows.main()
	if ySize <= 0 {
		return false
	}
	if yRefreshTop < 1 || yRefreshTop+ySize-1 > w.ysize {
		a.fail(geometryViolation("refresh: strip [%d..%d] outside window 0 (ysize=%d)",
			yRefreshTop, yRefreshTop+ySize-1, w.ysize))
		return false
	}

	if resetHistory {
		if a.historyCursor != nil {
			a.historyCursor.Destroy()
		}
		a.historyCursor = a.history.NewCursor()
		a.currentHistoryScreenLine = 0
		a.currentHistoryHitTop = false
	} else if a.historyCursor == nil {
		a.historyCursor = a.history.NewCursor()
	}

	ok := a.refreshStrip(w, yRefreshTop, ySize)
	w.resetRefreshBookkeeping()
	return ok
}

// refreshStrip classifies the call and dispatches to one of the four cases
// of spec.md §4.C.
func (a *Adapter) refreshStrip(w *window, yRefreshTop, ySize int) bool {
	if ySize <= 0 {
		return true
	}
	chsl := a.currentHistoryScreenLine
	bLo := w.scrollbackTopLine - (yRefreshTop - 1) - ySize
	bHi := w.scrollbackTopLine - (yRefreshTop - 1)

	switch {
	case chsl < bLo:
		return a.refreshCase0(w, yRefreshTop, ySize)
	case chsl == bLo:
		return a.refreshCase1(w, yRefreshTop, ySize)
	case chsl < bHi:
		return a.refreshCase2(w, yRefreshTop, ySize, bLo, bHi)
	default:
		return a.refreshCase3(w, yRefreshTop, ySize, bHi)
	}
}

// refreshCase0 (chsl below B_lo): the next rewindable paragraph must be
// measured, without emitting, before we know how far up it brings chsl.
func (a *Adapter) refreshCase0(w *window, yRefreshTop, ySize int) bool {
	w.linesToSkip = math.MaxInt32
	hit := a.historyCursor.RewindParagraph()
	if hit < 0 {
		w.linesToSkip = -1
		a.fail(historyInconsistent("history refresh case 0: rewind_paragraph inconsistency"))
		return false
	}
	result := a.historyCursor.RepeatParagraphs(1, nil, true)
	a.currentHistoryScreenLine += result.LinesEmitted
	w.linesToSkip = -1

	if hit == 1 {
		a.currentHistoryHitTop = true
		return false
	}
	return a.refreshStrip(w, yRefreshTop, ySize)
}

// refreshCase1 (chsl == B_lo): place the cursor at the bottom of the strip,
// protect the rest with margins, and replay one paragraph for real -- it
// grows upward as its internal newlines scroll only the protected region.
func (a *Adapter) refreshCase1(w *window, yRefreshTop, ySize int) bool {
	wasZero := a.currentHistoryScreenLine == 0

	w.ycursorpos = yRefreshTop + ySize - 1
	w.xcursorpos = 1 + w.leftmargin
	w.lowermargin = w.ysize - (yRefreshTop + ySize - 1)
	w.uppermargin = yRefreshTop - 1
	w.clampCursor()

	hit := a.historyCursor.RewindParagraph()
	if hit < 0 {
		w.resetRefreshBookkeeping()
		a.fail(historyInconsistent("history refresh case 1: rewind_paragraph inconsistency"))
		return false
	}

	result := a.historyCursor.RepeatParagraphs(1, func(r rune) {
		a.emitHistoryRune(w, r)
	}, false)
	lines := result.LinesEmitted
	if wasZero && result.NewlineTerminated {
		a.emitHistoryRune(w, '\n')
		lines++
	}
	a.currentHistoryScreenLine += lines
	w.resetRefreshBookkeeping()

	if hit == 1 {
		a.currentHistoryHitTop = true
		return false
	}

	remaining := ySize - lines
	if remaining <= 0 {
		return true
	}
	return a.refreshStrip(w, yRefreshTop, remaining)
}

// refreshCase2 (B_lo < chsl < B_hi): the history cursor already sits inside
// the strip. Fill the lower portion by continuing to replay paragraphs
// (our HistoryCursor contract only walks toward older text, so this
// implementation advances chsl monotonically rather than the reference
// algorithm's rewind-then-restore; see DESIGN.md) and recurse on whatever
// upper sub-strip is left once B_hi is reached.
func (a *Adapter) refreshCase2(w *window, yRefreshTop, ySize, bLo, bHi int) bool {
	w.remainingLinesToFill = a.currentHistoryScreenLine - bLo

	for w.remainingLinesToFill > 0 {
		hit := a.historyCursor.RewindParagraph()
		if hit < 0 {
			w.resetRefreshBookkeeping()
			a.fail(historyInconsistent("history refresh case 2: rewind_paragraph inconsistency"))
			return false
		}
		result := a.historyCursor.RepeatParagraphs(1, func(r rune) {
			a.emitHistoryRune(w, r)
		}, false)
		a.currentHistoryScreenLine += result.LinesEmitted
		if hit == 1 {
			a.currentHistoryHitTop = true
			w.resetRefreshBookkeeping()
			return false
		}
	}
	w.resetRefreshBookkeeping()

	upperSize := bHi - a.currentHistoryScreenLine
	if upperSize <= 0 {
		return true
	}
	return a.refreshStrip(w, yRefreshTop, upperSize)
}

// refreshCase3 (chsl >= B_hi): part of the desired content is already above
// chsl in the buffer -- skip the rows already displayed and fill the rest
// of the strip forward.
func (a *Adapter) refreshCase3(w *window, yRefreshTop, ySize, bHi int) bool {
	skip := a.currentHistoryScreenLine - (w.scrollbackTopLine - yRefreshTop + 1)
	if skip < 0 {
		skip = 0
	}
	w.linesToSkip = skip
	w.remainingLinesToFill = ySize

	for w.remainingLinesToFill > 0 {
		hit := a.historyCursor.RewindParagraph()
		if hit < 0 {
			w.resetRefreshBookkeeping()
			a.fail(historyInconsistent("history refresh case 3: rewind_paragraph inconsistency"))
			return false
		}
		result := a.historyCursor.RepeatParagraphs(1, func(r rune) {
			a.emitHistoryRune(w, r)
		}, false)
		a.currentHistoryScreenLine += result.LinesEmitted
		if hit == 1 {
			a.currentHistoryHitTop = true
			w.resetRefreshBookkeeping()
			return false
		}
	}
	w.resetRefreshBookkeeping()
	return true
}

// emitHistoryRune feeds one replayed rune through the same output pipeline
// live text uses, so wrapping, scrolling, and the skip/fill counters all
// apply uniformly (spec.md §4.C's "replay it for real").
func (a *Adapter) emitHistoryRune(w *window, r rune) {
	if w.buffering && w.wrapper != nil {
		w.wrapper.Wrap([]rune{r})
	} else {
		a.windowTarget(w.id, []rune{r}, false)
	}
}

// RefreshScreen implements the full resequence of spec.md §5's WINCH
// handling: erase window 0, replay its full history, then let the caller
// (component G) redraw the status line and upper window from their own
// state.
func (a *Adapter) RefreshScreen() bool {
	main := a.windows.main()
	a.eraseOneWindow(main)
	a.backend.ClearArea(main.xpos, main.ypos, main.xsize, main.ysize)
	return a.Refresh(1, main.ysize, true)
}
