// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/event.go
// Summary: Event dispatch / resize (component G, spec.md §4.G).

package adapter

// HandleResize re-initialises geometry from the backend's reported screen
// size and performs a full refresh_screen. Called directly by the
// interpreter loop on a WINCH observed outside of read_line/read_char, and
// internally whenever the editor or read_char sees EventResize.
func (a *Adapter) HandleResize() Result {
	return a.handleResize()
}

func (a *Adapter) handleResize() Result {
	if a.windows == nil {
		return OK
	}
	h, w := a.backend.ScreenSize()
	if h <= 0 || w <= 0 {
		return geometryViolation("resize: non-positive screen size %dx%d", w, h)
	}
	a.screenHeight, a.screenWidth = h, w
	a.pendingResize = false

	topOffset := 0
	if a.windows.hasStatusLine {
		topOffset = 1
	}
	upperHeight := a.windows.upperHeight
	if upper, ok := a.windows.windows[UpperWindow]; ok {
		upper.xpos = 1
		upper.xsize = w
		if upper.ysize > h {
			upper.ysize = h
		}
		upper.clampCursor()
		upperHeight = upper.ysize
	}

	main := a.windows.main()
	main.xpos, main.ypos = 1, topOffset+upperHeight+1
	main.xsize = w
	main.ysize = h - topOffset - upperHeight
	if main.ysize < 0 {
		main.ysize = 0
	}
	main.enforceMarginInvariant()
	main.clampCursor()
	main.scrollbackTopLine = main.ysize
	if main.wrapper != nil {
		main.wrapper.AdjustLineLength(main.contentWidth())
	}

	a.refreshScreenFull()
	return OK
}

// refreshScreenFull implements spec.md §4.G's full resequence: erase
// window 0, replay its history, redraw the V<=3 status line, then redraw
// the upper window from its content buffer with correct style/colour runs.
func (a *Adapter) refreshScreenFull() {
	a.RefreshScreen()
	if upper, ok := a.windows.windows[UpperWindow]; ok {
		a.redrawStatus(upper)
		a.redrawUpperWindow(upper)
	}
	a.backend.UpdateScreen()
}

func (a *Adapter) redrawUpperWindow(w *window) {
	for row := 0; row < len(a.upperBuf) && row < w.ysize; row++ {
		line := a.upperBuf[row]
		col := 0
		for col < len(line) && col < w.xsize {
			runStart := col
			style, fg, bg := line[col].style, line[col].fg, line[col].bg
			for col < len(line) && col < w.xsize &&
				line[col].style == style && line[col].fg == fg && line[col].bg == bg {
				col++
			}
			text := make([]rune, col-runStart)
			for i := range text {
				text[i] = line[runStart+i].r
			}
			a.backend.SetTextStyle(style)
			a.backend.SetColor(fg, bg)
			a.backend.GotoYX(w.ypos+row, w.xpos+runStart)
			a.backend.Output(text)
		}
	}
	a.styleValid = false
}
