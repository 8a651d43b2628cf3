// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/adapter.go
// Summary: Adapter is the single process-wide value owning every piece of
// state named in spec.md §3 and §9's "no global singletons" design note.
// All public entry points of spec.md §6 are methods on it.

package adapter

import (
	"github.com/chrender/monoscreen/config"
)

// Adapter mediates between the interpreter core and one display Backend.
// It is not safe for concurrent use from more than one goroutine: spec.md
// §5 mandates a single-threaded, event-driven model, mutated only by the
// thread running the interpreter loop.
type Adapter struct {
	backend    Backend
	history    HistoryStore
	cmdHistory CommandHistory
	localizer  Localizer
	config     *config.Store

	windows      *windowSet
	activeWindow WindowID
	version      Version

	screenHeight, screenWidth int

	disableMorePrompt bool

	// History cursor state, process-wide per spec.md §3.
	historyCursor            HistoryCursor
	currentHistoryScreenLine int
	currentHistoryHitTop     bool

	// Last status line rendered, kept only so a resize can repaint it.
	statusRoom string
	statusMode StatusMode
	statusP1   int
	statusP2   int
	statusSet  bool

	// Upper-window content buffer, kept so a resize can redraw window 1
	// from scratch (spec.md §4.G), addressed [row][col].
	upperBuf [][]upperCell

	pendingResize bool

	terminated     bool
	terminateError error

	// Mirrors what has actually been pushed to the backend, so output.go's
	// per-line style/colour reconciliation only calls the backend on diff.
	lastStyle  TextStyle
	lastFg     Color
	lastBg     Color
	styleValid bool
}

type upperCell struct {
	r     rune
	style TextStyle
	fg, bg Color
}

// New constructs an Adapter. Collaborators are supplied by the interpreter
// session per spec.md §6's "expected from the interpreter core"/"expected
// from the display backend" contracts.
func New(backend Backend, history HistoryStore, cmdHistory CommandHistory, localizer Localizer, cfg *config.Store) *Adapter {
	return &Adapter{
		backend:                  backend,
		history:                  history,
		cmdHistory:               cmdHistory,
		localizer:                localizer,
		config:                   cfg,
		currentHistoryScreenLine: -1,
	}
}

// LinkInterfaceToStory initialises all windows from the backend-reported
// screen dimensions (spec.md §4.A).
func (a *Adapter) LinkInterfaceToStory(info StoryInfo) Result {
	h, w := a.backend.ScreenSize()
	if h <= 0 || w <= 0 {
		return geometryViolation("link_interface_to_story: non-positive screen size %dx%d", w, h)
	}
	a.version = info.Version
	a.screenHeight, a.screenWidth = h, w

	left := a.config.GetInt(config.KeyLeftMargin, 0)
	right := a.config.GetInt(config.KeyRightMargin, 0)
	a.windows = newWindowSet(a.version, h, w, left, right)
	a.activeWindow = MainWindow
	a.currentHistoryScreenLine = -1

	for _, win := range a.windows.windows {
		win.outputFg = a.backend.DefaultForeground()
		win.outputBg = a.backend.DefaultBackground()
		win.bufferedFg = win.outputFg
		win.bufferedBg = win.outputBg
		if win.buffering {
			a.bindWrapper(win)
		}
	}

	a.pushStyleColor(a.windows.main())
	a.backend.GotoYX(a.windows.main().ypos, a.windows.main().xpos)
	return OK
}

// ResetInterface clears every window and reinitialises geometry, without
// discarding the history/command-history collaborators.
func (a *Adapter) ResetInterface() Result {
	if a.windows == nil {
		return geometryViolation("reset_interface: not linked to a story")
	}
	a.backend.ClearArea(1, 1, a.screenWidth, a.screenHeight)
	return a.LinkInterfaceToStory(StoryInfo{Version: a.version})
}

// CloseInterface releases the wrappers and window storage regardless of
// prior errors. It does not close the backend: the Backend interface has no
// close operation, so the caller closes it. If errMsg is non-empty it is
// shown; otherwise the localised "Press any key to quit" prompt is shown
// and a keypress awaited, per spec.md §7's "user-visible failures" rule.
func (a *Adapter) CloseInterface(errMsg string) int {
	defer func() {
		if a.windows != nil {
			for _, w := range a.windows.windows {
				if w.wrapper != nil {
					w.wrapper.Destroy()
				}
			}
		}
		a.windows = nil
	}()

	if a.destroyHistoryCursor(); errMsg != "" {
		a.backend.Output([]rune(errMsg))
		a.backend.UpdateScreen()
	} else if a.localizer != nil {
		a.backend.Output([]rune(a.localizer.PressAnyKeyToQuit()))
		a.backend.UpdateScreen()
		a.backend.GetNextEvent(0)
	}
	return 0
}

// SetFont is a no-op: proportional/graphics fonts are a non-goal
// (spec.md §1 "Non-goals").
func (a *Adapter) SetFont(int) {}

// SetTextStyle sets the style used for subsequent output on the active
// window. For a buffered window the change does not reach the backend
// immediately; it is queued and pushed through the wrapper's metadata
// callback so it lands at the correct horizontal position (spec.md §4.B).
func (a *Adapter) SetTextStyle(style TextStyle) {
	w := a.windows.get(a.activeWindow)
	if w == nil {
		return
	}
	w.bufferedStyle = style
	if w.buffering && w.wrapper != nil {
		id := a.activeWindow
		w.wrapper.InsertMetadata(func(ctx uint32, arg uint32) {
			a.applyStyleMetadata(WindowID(ctx), TextStyle(arg))
		}, uint32(id), uint32(style))
	} else {
		w.outputStyle = style
	}
}

// SetColour sets fg/bg for windowOrMinus1 (-1 means the active window),
// queued through the wrapper the same way as SetTextStyle when buffered.
func (a *Adapter) SetColour(fg, bg Color, windowOrMinus1 int) {
	id := a.activeWindow
	if windowOrMinus1 >= 0 {
		id = WindowID(windowOrMinus1)
	}
	w := a.windows.get(id)
	if w == nil {
		return
	}
	if fg == ColorCurrent {
		fg = w.bufferedFg
	}
	if bg == ColorCurrent {
		bg = w.bufferedBg
	}
	w.bufferedFg, w.bufferedBg = fg, bg
	if w.buffering && w.wrapper != nil {
		packed := uint32(fg)<<16 | uint32(bg)
		w.wrapper.InsertMetadata(func(ctx uint32, arg uint32) {
			a.applyColorMetadata(WindowID(ctx), Color(arg>>16), Color(arg&0xffff))
		}, uint32(id), packed)
	} else {
		w.outputFg, w.outputBg = fg, bg
	}
}

func (a *Adapter) applyStyleMetadata(id WindowID, style TextStyle) {
	if w := a.windows.get(id); w != nil {
		w.outputStyle = style
	}
}

func (a *Adapter) applyColorMetadata(id WindowID, fg, bg Color) {
	if w := a.windows.get(id); w != nil {
		w.outputFg, w.outputBg = fg, bg
	}
}

// SetWindow sets the active window for subsequent z_ucs_output calls.
func (a *Adapter) SetWindow(id WindowID) {
	if w := a.windows.get(id); w != nil {
		a.activeWindow = id
		if id == UpperWindow {
			w.ycursorpos, w.xcursorpos = 1, 1
		}
	}
}

// SplitWindow implements split_window(nlines), spec.md §4.A/§6.
func (a *Adapter) SplitWindow(nlines int) {
	a.windows.splitWindow(nlines, a.screenHeight)
	main := a.windows.main()
	if main.wrapper != nil {
		main.wrapper.AdjustLineLength(main.contentWidth())
	}
}

// EraseWindow implements erase_window(n); n == -1 clears the whole screen.
func (a *Adapter) EraseWindow(id int) {
	if id == -1 {
		for _, w := range a.windows.windows {
			a.eraseOneWindow(w)
		}
		a.backend.ClearArea(1, 1, a.screenWidth, a.screenHeight)
		return
	}
	w := a.windows.get(WindowID(id))
	if w == nil {
		return
	}
	a.eraseOneWindow(w)
	a.backend.ClearArea(w.xpos, w.ypos, w.xsize, w.ysize)
}

func (a *Adapter) eraseOneWindow(w *window) {
	w.ycursorpos, w.xcursorpos = 1, 1
	w.consecutiveLinesOutput = 0
	if w.id == UpperWindow {
		a.upperBuf = nil
	}
}

// SetCursor implements set_cursor(line, col, window), spec.md §6.
func (a *Adapter) SetCursor(line, col int, id WindowID) {
	w := a.windows.get(id)
	if w == nil {
		return
	}
	w.ycursorpos, w.xcursorpos = line, col
	w.clampCursor()
}

func (a *Adapter) GetCursorRow() int {
	if w := a.windows.get(a.activeWindow); w != nil {
		return w.ycursorpos
	}
	return 1
}

func (a *Adapter) GetCursorColumn() int {
	if w := a.windows.get(a.activeWindow); w != nil {
		return w.xcursorpos
	}
	return 1
}

// InputMustBeRepeatedByStory always returns true: the adapter does not
// echo input itself outside of the line editor (spec.md §6).
func (a *Adapter) InputMustBeRepeatedByStory() bool { return true }

// GameWasRestoredAndHistoryModified invalidates any live history cursor,
// since a restore can rewrite the paragraphs a cursor was addressing.
func (a *Adapter) GameWasRestoredAndHistoryModified() {
	a.destroyHistoryCursor()
}

// fail records a fatal Result so callers that only report success/failure
// as a bool (the history-refresh engine) still surface the reason through
// LastError.
func (a *Adapter) fail(r Result) {
	if r.Fatal() {
		a.terminated = true
		a.terminateError = r.Err
	}
}

// LastError reports the diagnostic behind the most recent fatal Result, if
// any (spec.md §7's "localised function-call-aborted diagnostic").
func (a *Adapter) LastError() error {
	return a.terminateError
}

func (a *Adapter) destroyHistoryCursor() {
	if a.historyCursor != nil {
		a.historyCursor.Destroy()
		a.historyCursor = nil
	}
	a.currentHistoryScreenLine = -1
	a.currentHistoryHitTop = false
}
