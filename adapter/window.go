// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/window.go
// Summary: Window registry -- geometry, cursor, margins, style/colour per
// Z-Machine window (spec.md §3, §4.A).

package adapter

// window is one Z-Machine window's adapter-tracked state.
type window struct {
	id WindowID

	// Position, 1-based, and size in cells.
	ypos, xpos   int
	ysize, xsize int

	// Cursor, 1-based, clamped to [1, size] on both axes.
	ycursorpos, xcursorpos int

	leftmargin, rightmargin int

	// Style/colour actually pushed to the backend vs. the one queued for
	// the next character written (spec.md §3): buffered windows apply the
	// queued value only when the wrapper's metadata callback fires.
	outputStyle  TextStyle
	outputFg     Color
	outputBg     Color
	bufferedStyle TextStyle
	bufferedFg    Color
	bufferedBg    Color

	wrapping  bool
	buffering bool
	wrapper   Wrapper

	consecutiveLinesOutput int

	// Transient refresh bookkeeping (spec.md §3, §4.C). uppermargin and
	// lowermargin are the number of rows protected above/below the strip
	// currently being refreshed; both are zero outside of a refresh call.
	uppermargin, lowermargin int
	linesToSkip              int // -1 when inactive
	remainingLinesToFill     int // -1 when inactive

	scrollbackTopLine int
}

func newWindow(id WindowID) *window {
	return &window{
		id:                   id,
		ycursorpos:           1,
		xcursorpos:           1,
		outputStyle:          Roman,
		bufferedStyle:        Roman,
		linesToSkip:          -1,
		remainingLinesToFill: -1,
	}
}

// clampCursor enforces invariant 1: 1 <= cursor <= size on both axes
// (spec.md §3, §8 invariant 1).
func (w *window) clampCursor() {
	if w.ysize < 1 {
		w.ysize = 1
	}
	if w.xsize < 1 {
		w.xsize = 1
	}
	if w.ycursorpos < 1 {
		w.ycursorpos = 1
	} else if w.ycursorpos > w.ysize {
		w.ycursorpos = w.ysize
	}
	if w.xcursorpos < 1 {
		w.xcursorpos = 1
	} else if w.xcursorpos > w.xsize {
		w.xcursorpos = w.xsize
	}
}

// contentWidth is the wrapper's width: xsize minus both margins.
func (w *window) contentWidth() int {
	cw := w.xsize - w.leftmargin - w.rightmargin
	if cw < 0 {
		return 0
	}
	return cw
}

// enforceMarginInvariant forces both margins to zero when they would
// consume the whole line, per spec.md §3's invariant and §8's boundary
// behaviour ("zero-width content column ... both margins forced to 0").
func (w *window) enforceMarginInvariant() {
	if !w.wrapping {
		return
	}
	if w.leftmargin+w.rightmargin >= w.xsize {
		w.leftmargin = 0
		w.rightmargin = 0
	}
}

// inLowerMargin reports whether the cursor row falls in the protected
// lower-margin band during a refresh (spec.md §4.B step 1).
func (w *window) inLowerMargin() bool {
	if w.lowermargin <= 0 {
		return false
	}
	return w.ycursorpos > w.ysize-w.lowermargin
}

// resetRefreshBookkeeping clears the transient refresh fields, per spec.md
// §8 invariant 4: "On exit from refresh, both upper and lower margin are 0
// and remaining_lines_to_fill = -1, lines_to_skip = -1."
func (w *window) resetRefreshBookkeeping() {
	w.uppermargin = 0
	w.lowermargin = 0
	w.linesToSkip = -1
	w.remainingLinesToFill = -1
}

// windowSet owns every active Z-Machine window and the version-selected
// layout rules of spec.md §3.
type windowSet struct {
	version       Version
	hasStatusLine bool
	windows       map[WindowID]*window
	upperHeight   int // current split size (window 1's row count)
}

func newWindowSet(version Version, screenHeight, screenWidth int, marginLeft, marginRight int) *windowSet {
	ws := &windowSet{version: version, windows: make(map[WindowID]*window)}

	main := newWindow(MainWindow)
	main.ypos, main.xpos = 1, 1
	main.ysize, main.xsize = screenHeight, screenWidth
	main.wrapping = true
	main.buffering = true
	main.scrollbackTopLine = main.ysize

	switch version {
	case V1, V2:
		// Single window, no status line, no upper window.
	case V3:
		ws.hasStatusLine = true
		main.ypos = 2
		main.ysize = screenHeight - 1
		upper := newWindow(UpperWindow)
		upper.ypos, upper.xpos = 2, 1
		upper.ysize, upper.xsize = 0, screenWidth
		ws.windows[UpperWindow] = upper
	case V4, V5, V7, V8:
		upper := newWindow(UpperWindow)
		upper.ypos, upper.xpos = 1, 1
		upper.ysize, upper.xsize = 0, screenWidth
		ws.windows[UpperWindow] = upper
	case V6:
		for id := WindowID(1); id < 8; id++ {
			w := newWindow(id)
			w.xsize, w.ysize = screenWidth, screenHeight
			w.buffering = true
			ws.windows[id] = w
		}
	}

	if version != V6 {
		main.leftmargin = marginLeft
		main.rightmargin = marginRight
		main.enforceMarginInvariant()
	}
	main.scrollbackTopLine = main.ysize
	ws.windows[MainWindow] = main
	return ws
}

func (ws *windowSet) get(id WindowID) *window {
	return ws.windows[id]
}

func (ws *windowSet) main() *window {
	return ws.windows[MainWindow]
}

// splitWindow implements split_window(nlines) for V != 6: window 1 becomes
// nlines tall at the top, window 0 shrinks to fill the remainder below it
// (and below the status line, if any), per spec.md §4.A/§6.
func (ws *windowSet) splitWindow(nlines, screenHeight int) {
	if ws.version == V6 {
		return
	}
	upper := ws.windows[UpperWindow]
	if upper == nil {
		return
	}
	if nlines < 0 {
		nlines = 0
	}
	if nlines > screenHeight {
		nlines = screenHeight
	}
	ws.upperHeight = nlines
	upper.ysize = nlines
	upper.clampCursor()

	main := ws.main()
	topOffset := 0
	if ws.hasStatusLine {
		topOffset = 1
	}
	main.ypos = topOffset + nlines + 1
	main.ysize = screenHeight - nlines - topOffset
	if main.ysize < 0 {
		main.ysize = 0
	}
	main.clampCursor()
}
