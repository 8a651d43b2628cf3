// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/output.go
// Summary: Output pipeline (component B, spec.md §4.B) -- funnels output
// through the wrapper for buffered windows, applies margins, scroll-on-
// overflow, and [MORE] pagination for the rest.

package adapter

import (
	"github.com/chrender/monoscreen/config"
	"github.com/chrender/monoscreen/wrap"
)

// bindWrapper creates and attaches w's wrapper sink, tagging every emitted
// line with the owning window id via closure capture (spec.md §9's
// "opaque context value ... explicit table lookup inside the sink", here
// realised as a per-window closure rather than a shared table).
func (a *Adapter) bindWrapper(w *window) {
	id := w.id
	hyphenate := !a.config.GetBool(config.KeyDisableHyphenation, false)
	w.wrapper = wrap.New(w.contentWidth(), func(text []rune, endsLine bool) {
		a.windowTarget(id, text, endsLine)
	}, hyphenate)
}

// ZUCSOutput implements z_ucs_output: write to the active window
// (spec.md §4.B, §6).
func (a *Adapter) ZUCSOutput(text []rune) Result {
	if a.windows == nil {
		return geometryViolation("z_ucs_output: not linked to a story")
	}
	a.destroyHistoryCursor()

	w := a.windows.get(a.activeWindow)
	if w == nil {
		return geometryViolation("z_ucs_output: no such window %d", a.activeWindow)
	}
	if w.buffering && w.wrapper != nil {
		w.wrapper.Wrap(text)
		return OK
	}
	return a.windowTarget(a.activeWindow, text, false)
}

func (a *Adapter) flushWindow(w *window) {
	if w.buffering && w.wrapper != nil {
		w.wrapper.Flush()
	}
}

func (a *Adapter) flushAllWindows() {
	if a.windows == nil {
		return
	}
	for _, w := range a.windows.windows {
		a.flushWindow(w)
	}
}

// windowTarget is the routine of spec.md §4.B "Window target routine": it
// receives a run of characters destined for one window (either directly,
// for a non-buffering window, or one already-wrapped line at a time from
// that window's Wrapper) and performs the per-line cursor/margin/scroll/
// [MORE] bookkeeping.
func (a *Adapter) windowTarget(id WindowID, text []rune, forcedBoundary bool) Result {
	w := a.windows.get(id)
	if w == nil {
		return geometryViolation("windowTarget: unknown window %d", id)
	}

	remaining := text
	for {
		// Step 1: clamp cursor if it would fall in the lower margin.
		if w.inLowerMargin() {
			w.ycursorpos = w.ysize - w.lowermargin
			w.clampCursor()
		}

		// Step 2: reconcile backend style/colour with the window's
		// output style/colour, pushing only on diff.
		a.pushStyleColor(w)

		// Step 3: space remaining on this line.
		space := w.xsize - w.rightmargin - (w.xcursorpos - 1)
		if space < 0 {
			space = 0
		}

		// Step 4: find the next newline within the run.
		nlIdx := -1
		for i, r := range remaining {
			if r == '\n' {
				nlIdx = i
				break
			}
		}

		var slice []rune
		consumedNL := false
		filled := false
		switch {
		case nlIdx >= 0 && nlIdx <= space:
			slice = remaining[:nlIdx]
			remaining = remaining[nlIdx+1:]
			consumedNL = true
		case len(remaining) <= space:
			slice = remaining
			remaining = nil
		default:
			slice = remaining[:space]
			remaining = remaining[space:]
			filled = true
		}

		// Step 5: emit the slice, unless a refresh dry-run/skip is live.
		suppressed := w.linesToSkip > 0
		if !suppressed && len(slice) > 0 {
			a.emit(w, slice)
		}
		w.xcursorpos += len(slice)
		w.clampCursor()

		// Step 6: line boundary handling.
		boundary := consumedNL || (filled && w.wrapping)
		if boundary {
			a.advanceLine(w)
		} else if filled && !w.wrapping {
			// A non-wrapping window has no way to keep going once its
			// row is full; the remainder is dropped.
			remaining = nil
		}

		if len(remaining) == 0 {
			if forcedBoundary && !boundary {
				a.advanceLine(w)
			}
			break
		}
	}
	return OK
}

func (a *Adapter) emit(w *window, slice []rune) {
	a.backend.GotoYX(w.ypos+w.ycursorpos-1, w.xpos+w.xcursorpos-1)
	a.backend.Output(slice)
	if w.id == UpperWindow {
		a.recordUpperCells(w, slice)
	}
}

// recordUpperCells mirrors window 1's output into upperBuf so a resize can
// redraw it from scratch with the right style/colour runs (spec.md §4.G).
func (a *Adapter) recordUpperCells(w *window, slice []rune) {
	row := w.ycursorpos - 1
	for len(a.upperBuf) <= row {
		a.upperBuf = append(a.upperBuf, nil)
	}
	line := a.upperBuf[row]
	startCol := w.xcursorpos - 1
	for len(line) < startCol+len(slice) {
		line = append(line, upperCell{r: ' '})
	}
	for i, r := range slice {
		line[startCol+i] = upperCell{r: r, style: w.outputStyle, fg: w.outputFg, bg: w.outputBg}
	}
	a.upperBuf[row] = line
}

func (a *Adapter) pushStyleColor(w *window) {
	if !a.styleValid || a.lastStyle != w.outputStyle {
		a.backend.SetTextStyle(w.outputStyle)
		a.lastStyle = w.outputStyle
	}
	if !a.styleValid || a.lastFg != w.outputFg || a.lastBg != w.outputBg {
		a.backend.SetColor(w.outputFg, w.outputBg)
		a.lastFg, a.lastBg = w.outputFg, w.outputBg
	}
	a.styleValid = true
}

// advanceLine performs the bookkeeping common to every line boundary:
// scroll-or-descend, reset the horizontal cursor, service the refresh
// skip/fill counters, and fire [MORE] when due (spec.md §4.B step 6-7).
func (a *Adapter) advanceLine(w *window) {
	lastRow := w.ysize - w.lowermargin
	if w.wrapping && w.ycursorpos >= lastRow {
		a.scrollWindow(w)
	} else {
		w.ycursorpos++
	}
	w.xcursorpos = 1 + w.leftmargin
	w.clampCursor()

	if w.linesToSkip > 0 {
		w.linesToSkip--
	}
	if w.remainingLinesToFill != -1 {
		w.remainingLinesToFill--
	}
	w.consecutiveLinesOutput++

	if w.wrapping && !a.disableMorePrompt &&
		w.consecutiveLinesOutput >= w.ysize-1 &&
		w.remainingLinesToFill == -1 && w.linesToSkip <= 0 {
		a.showMorePrompt(w)
	}
}

// scrollWindow shifts the writable region (between the upper and lower
// margins) up by one row via a backend copy-area, then clears the new
// bottom line, per spec.md §4.B.
func (a *Adapter) scrollWindow(w *window) {
	topRel := w.uppermargin + 1
	bottomRel := w.ysize - w.lowermargin
	if bottomRel <= topRel {
		a.backend.ClearArea(w.xpos, w.ypos+bottomRel-1, w.xsize, 1)
		return
	}
	count := bottomRel - topRel
	srcY := w.ypos + topRel
	dstY := w.ypos + topRel - 1
	a.backend.CopyArea(dstY, w.xpos, srcY, w.xpos, count, w.xsize)
	a.backend.ClearArea(w.xpos, w.ypos+bottomRel-1, w.xsize, 1)
}

// showMorePrompt implements spec.md §4.B step 7: flush every other
// buffered window, show the localised prompt, wait for a keystroke
// (ignoring TIMEOUT, breaking on resize), then clear the prompt.
func (a *Adapter) showMorePrompt(w *window) {
	for otherID, other := range a.windows.windows {
		if otherID == w.id {
			continue
		}
		a.flushWindow(other)
	}

	row := w.ypos + w.ycursorpos - 1
	a.backend.GotoYX(row, w.xpos)
	a.backend.SetTextStyle(ReverseVideo)
	a.styleValid = false
	if a.localizer != nil {
		a.backend.Output([]rune(a.localizer.MorePrompt()))
	}
	a.backend.UpdateScreen()

	for {
		ev := a.backend.GetNextEvent(0)
		if ev.Kind == EventTimeout {
			continue
		}
		if ev.Kind == EventResize {
			a.pendingResize = true
		}
		break
	}

	a.backend.GotoYX(row, w.xpos)
	a.backend.ClearToEOL()
	w.consecutiveLinesOutput = 0
}
