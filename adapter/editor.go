// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/editor.go
// Summary: Input line editor (component D, spec.md §4.D) -- preloaded text,
// cursor motion, command-history recall, horizontal scroll, timed input,
// and scroll-back while editing.

package adapter

import "github.com/chrender/monoscreen/zscii"

// ReadLine implements read_line: edits dest in place and returns the
// number of characters read, -1 if verify_routine aborted the read, or -2
// on ESC when returnOnEscape is set.
func (a *Adapter) ReadLine(dest []rune, maxLen int, tenthSeconds int, verify VerifyRoutine, preloadedCount int, returnOnEscape bool, disableCmdHistory bool) int {
	a.flushAllWindows()
	for _, win := range a.windows.windows {
		win.consecutiveLinesOutput = 0
	}

	w := a.windows.main()
	if w.xcursorpos-1 >= w.xsize-w.rightmargin {
		a.windowTarget(w.id, []rune{'\n'}, false)
	}
	if a.pendingResize {
		a.handleResize()
	}

	preloaded := preloadedCount
	if preloaded > len(dest) {
		preloaded = len(dest)
	}
	if preloaded > maxLen {
		preloaded = maxLen
	}
	buf := append([]rune(nil), dest[:preloaded]...)

	displayWidth := w.xsize - (w.xcursorpos - 1 - preloaded) - w.rightmargin
	if displayWidth < 1 {
		displayWidth = 1
	}
	ed := &lineEditor{
		a:            a,
		w:            w,
		buf:          buf,
		cursor:       len(buf),
		inputX:       w.xcursorpos - preloaded,
		inputY:       w.ycursorpos,
		displayWidth: displayWidth,
		maxLen:       maxLen,
	}
	ed.ensureScroll()

	timeoutMillis := 0
	if tenthSeconds > 0 && a.backend.IsTimedInputAvailable() {
		timeoutMillis = 100
	}
	elapsedTenths := 0
	historyIndex := 0

	ed.render()

	for {
		ev := a.backend.GetNextEvent(timeoutMillis)

		if w.scrollbackTopLine > w.ysize && ev.Kind != EventPageUp && ev.Kind != EventPageDown && ev.Kind != EventTimeout {
			a.returnToLiveView(w)
			ed.hideCursor = false
			ed.render()
		}
		if ev.Kind != EventTimeout {
			a.destroyHistoryCursor()
		}

		switch ev.Kind {
		case EventTimeout:
			elapsedTenths++
			if verify != nil && elapsedTenths >= tenthSeconds {
				result, terminate := verify()
				if terminate || result != 0 {
					return -1
				}
				a.flushAllWindows()
				ed.render()
				elapsedTenths = 0
			}

		case EventPageUp:
			a.scrollBack(w, scrollBackward)
			ed.hideCursor = w.scrollbackTopLine > w.ysize
			ed.render()

		case EventPageDown:
			a.scrollBack(w, scrollForward)
			ed.hideCursor = w.scrollbackTopLine > w.ysize
			ed.render()

		case EventInput:
			ed.insert(ev.Rune)

		case EventBackspace:
			ed.backspace()

		case EventDeleteChar:
			ed.deleteForward()

		case EventCursorLeft:
			ed.moveLeft()

		case EventCursorRight:
			ed.moveRight()

		case EventCursorUp:
			if !disableCmdHistory {
				historyIndex++
				ed.recall(a.cmdHistory, historyIndex)
			}

		case EventCursorDown:
			if !disableCmdHistory && historyIndex > 0 {
				historyIndex--
				ed.recall(a.cmdHistory, historyIndex)
			}

		case EventHome:
			ed.moveHome()

		case EventEnd:
			ed.moveEnd()

		case EventRefresh:
			a.RefreshScreen()
			ed.render()

		case EventResize, EventTreatAsResize:
			a.handleResize()
			w = a.windows.main()
			ed.w = w
			ed.render()

		case EventNewline:
			return ed.finish(dest, a, !disableCmdHistory)

		case EventEscape:
			if returnOnEscape {
				ed.clear()
				return -2
			}

		case EventError:
			ed.clear()
			return -1
		}
	}
}

// ReadChar implements read_char with the reduced key mapping of spec.md
// §4.D: no editor state, cursor/backspace/delete produce distinguished
// Z-SCII codes.
func (a *Adapter) ReadChar(tenthSeconds int, verify VerifyRoutine) int {
	a.flushAllWindows()
	timeoutMillis := 0
	if tenthSeconds > 0 && a.backend.IsTimedInputAvailable() {
		timeoutMillis = 100
	}
	elapsed := 0

	for {
		ev := a.backend.GetNextEvent(timeoutMillis)
		if ev.Kind != EventTimeout {
			a.destroyHistoryCursor()
		}

		switch ev.Kind {
		case EventTimeout:
			elapsed++
			if verify != nil && elapsed >= tenthSeconds {
				result, terminate := verify()
				if terminate || result != 0 {
					return -1
				}
				a.flushAllWindows()
				elapsed = 0
			}
		case EventInput:
			if code, ok := zscii.ToZSCII(ev.Rune); ok {
				return int(code)
			}
		case EventCursorLeft:
			return int(zscii.CursorLeft)
		case EventCursorRight:
			return int(zscii.CursorRight)
		case EventCursorUp:
			return int(zscii.CursorUp)
		case EventCursorDown:
			return int(zscii.CursorDown)
		case EventBackspace:
			return int(zscii.Delete)
		case EventDeleteChar:
			return int(zscii.DeleteChar)
		case EventNewline:
			return int(zscii.Newline)
		case EventResize, EventTreatAsResize:
			a.handleResize()
		case EventError:
			return -1
		}
	}
}

// returnToLiveView drops out of scroll-back mode, per spec.md §4.D: "before
// any non-scrolling key is processed, if scroll-back is active, return to
// live view."
func (a *Adapter) returnToLiveView(w *window) {
	if w.scrollbackTopLine <= w.ysize {
		return
	}
	w.scrollbackTopLine = w.ysize
	a.backend.ClearArea(w.xpos, w.ypos, w.xsize, w.ysize)
	a.currentHistoryScreenLine = 0
	a.Refresh(1, w.ysize, true)
	a.backend.SetCursorVisibility(true)
}

// scrollBack moves scrollback_top_line by half a screen in dir's direction,
// reusing the still-valid half via a backend copy-area and refreshing only
// the newly exposed strip (spec.md §4.C "Clearing before refresh").
func (a *Adapter) scrollBack(w *window, dir scrollDirection) {
	half := (w.ysize + 1) / 2
	newTop := w.scrollbackTopLine - int(dir)*half
	if newTop < w.ysize {
		newTop = w.ysize
	}
	if newTop == w.scrollbackTopLine {
		return
	}
	prevTop := w.scrollbackTopLine
	shift := prevTop - newTop
	if shift < 0 {
		shift = -shift
	}
	if shift > w.ysize {
		shift = w.ysize
	}

	if dir == scrollBackward {
		if shift < w.ysize {
			a.backend.CopyArea(w.ypos+shift, w.xpos, w.ypos, w.xpos, w.ysize-shift, w.xsize)
		}
		a.backend.ClearArea(w.xpos, w.ypos, w.xsize, shift)
		w.scrollbackTopLine = newTop
		if !a.Refresh(1, shift, true) {
			w.scrollbackTopLine = prevTop
			a.backend.ClearArea(w.xpos, w.ypos, w.xsize, w.ysize)
			a.Refresh(1, w.ysize, true)
		}
		return
	}

	if shift < w.ysize {
		a.backend.CopyArea(w.ypos, w.xpos, w.ypos+shift, w.xpos, w.ysize-shift, w.xsize)
	}
	a.backend.ClearArea(w.xpos, w.ypos+w.ysize-shift, w.xsize, shift)
	w.scrollbackTopLine = newTop
	if !a.Refresh(w.ysize-shift+1, shift, true) {
		w.scrollbackTopLine = prevTop
		a.backend.ClearArea(w.xpos, w.ypos, w.xsize, w.ysize)
		a.Refresh(1, w.ysize, true)
	}
}

// lineEditor holds state that exists only for the duration of one ReadLine
// call (spec.md §3's "Input-editor state exists only inside one call").
type lineEditor struct {
	a *Adapter
	w *window

	buf    []rune
	cursor int
	scroll int
	maxLen int

	inputX, inputY int
	displayWidth   int
	hideCursor     bool
}

func (e *lineEditor) ensureScroll() {
	if e.cursor < e.scroll {
		e.scroll = e.cursor
	} else if e.cursor >= e.scroll+e.displayWidth {
		e.scroll = e.cursor - e.displayWidth + 1
	}
	if e.scroll < 0 {
		e.scroll = 0
	}
}

func (e *lineEditor) render() {
	if e.hideCursor {
		e.a.backend.SetCursorVisibility(false)
		e.a.backend.UpdateScreen()
		return
	}
	end := e.scroll + e.displayWidth
	if end > len(e.buf) {
		end = len(e.buf)
	}
	visible := e.buf[e.scroll:end]

	line := make([]rune, e.displayWidth)
	for i := range line {
		line[i] = ' '
	}
	copy(line, visible)

	e.a.backend.GotoYX(e.inputY, e.inputX)
	e.a.backend.Output(line)
	e.a.backend.GotoYX(e.inputY, e.inputX+(e.cursor-e.scroll))
	e.a.backend.SetCursorVisibility(true)
	e.a.backend.UpdateScreen()
}

func (e *lineEditor) insert(r rune) {
	if len(e.buf) >= e.maxLen {
		return
	}
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
	e.ensureScroll()
	e.render()
}

func (e *lineEditor) backspace() {
	if e.cursor == 0 {
		return
	}
	copy(e.buf[e.cursor-1:], e.buf[e.cursor:])
	e.buf = e.buf[:len(e.buf)-1]
	e.cursor--
	e.ensureScroll()
	e.render()
}

func (e *lineEditor) deleteForward() {
	if e.cursor >= len(e.buf) {
		return
	}
	copy(e.buf[e.cursor:], e.buf[e.cursor+1:])
	e.buf = e.buf[:len(e.buf)-1]
	e.render()
}

func (e *lineEditor) moveLeft() {
	if e.cursor == 0 {
		return
	}
	e.cursor--
	e.ensureScroll()
	e.render()
}

func (e *lineEditor) moveRight() {
	if e.cursor >= len(e.buf) {
		return
	}
	e.cursor++
	e.ensureScroll()
	e.render()
}

func (e *lineEditor) moveHome() {
	e.cursor = 0
	e.ensureScroll()
	e.render()
}

func (e *lineEditor) moveEnd() {
	e.cursor = len(e.buf)
	e.ensureScroll()
	e.render()
}

func (e *lineEditor) recall(history CommandHistory, index int) {
	if history == nil {
		return
	}
	if index == 0 {
		e.buf = e.buf[:0]
	} else if line, ok := history.At(index); ok {
		e.buf = append([]rune(nil), line...)
	} else {
		return
	}
	e.cursor = len(e.buf)
	e.ensureScroll()
	e.render()
}

// clear wipes the input strip from input-start to end-of-line, per
// spec.md §4.D "On exit: clear from input-start to EOL."
func (e *lineEditor) clear() {
	e.a.backend.GotoYX(e.inputY, e.inputX)
	blank := make([]rune, e.w.xsize-e.inputX+1)
	for i := range blank {
		blank[i] = ' '
	}
	e.a.backend.Output(blank)
}

// finish clears the input strip, translates the edited buffer back to
// Z-SCII into dest, records it in command history, and returns its length.
func (e *lineEditor) finish(dest []rune, a *Adapter, recordHistory bool) int {
	e.clear()
	if recordHistory && len(e.buf) > 0 {
		a.cmdHistory.Record(append([]rune(nil), e.buf...))
	}
	encoded := zscii.EncodeBuffer(e.buf)
	n := len(encoded)
	if n > len(dest) {
		n = len(dest)
	}
	for i := 0; i < n; i++ {
		dest[i] = rune(encoded[i])
	}
	return n
}
