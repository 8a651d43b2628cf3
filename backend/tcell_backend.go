// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: backend/tcell_backend.go
// Summary: The reference monospace display driver (spec.md §6's Backend
// contract) over github.com/gdamore/tcell/v2, grounded on the teacher's
// texel/screen.go event loop and style cache.

package backend

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/chrender/monoscreen/adapter"
	"github.com/chrender/monoscreen/internal/logging"
)

type styleKey struct {
	fg, bg                tcell.Color
	bold, italic, reverse bool
}

// Tcell implements adapter.Backend over a real terminal via tcell.
type Tcell struct {
	screen     tcell.Screen
	styleCache map[styleKey]tcell.Style

	textStyle adapter.TextStyle
	fg, bg    adapter.Color
	style     tcell.Style

	cx, cy int // 0-based, mirrors the last GotoYX call

	defaultFg, defaultBg adapter.Color

	events  chan tcell.Event
	sigwinc chan os.Signal
}

// New initialises tcell and starts the background event pump. Close must
// be called to restore the terminal.
func New() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	b := &Tcell{
		screen:     screen,
		styleCache: make(map[styleKey]tcell.Style),
		fg:         adapter.ColorDefault,
		bg:         adapter.ColorDefault,
		defaultFg:  adapter.ColorDefault,
		defaultBg:  adapter.ColorDefault,
		events:     make(chan tcell.Event, 16),
		sigwinc:    make(chan os.Signal, 1),
	}
	signal.Notify(b.sigwinc, syscall.SIGWINCH)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				logging.Debugf("tcell: PollEvent returned nil, stopping pump")
				return
			}
			b.events <- ev
		}
	}()

	return b, nil
}

// Close restores the terminal. Safe to call once.
func (b *Tcell) Close() {
	signal.Stop(b.sigwinc)
	b.screen.Fini()
}

func (b *Tcell) ScreenSize() (height, width int) {
	w, h := b.screen.Size()
	return h, w
}

func (b *Tcell) DefaultForeground() adapter.Color { return b.defaultFg }
func (b *Tcell) DefaultBackground() adapter.Color { return b.defaultBg }

// SetDefaultColors overrides the colours link_interface_to_story seeds new
// windows with. The caller queries the real host defaults (e.g. via the
// terminal's OSC 10/11 reply) before the adapter is linked; tcell itself has
// no notion of "the terminal's actual default colour", only ColorDefault.
func (b *Tcell) SetDefaultColors(fg, bg adapter.Color) {
	b.defaultFg, b.defaultBg = fg, bg
}
func (b *Tcell) IsColorAvailable() bool           { return b.screen.Colors() > 2 }
func (b *Tcell) IsBoldAvailable() bool            { return true }
func (b *Tcell) IsItalicAvailable() bool          { return true }
func (b *Tcell) IsTimedInputAvailable() bool      { return true }
func (b *Tcell) InterfaceName() string            { return "tcell" }

func (b *Tcell) GotoYX(row, col int) {
	b.cy, b.cx = row-1, col-1
}

func (b *Tcell) Output(text []rune) {
	for _, r := range text {
		b.screen.SetContent(b.cx, b.cy, r, nil, b.style)
		b.cx++
	}
}

func (b *Tcell) SetTextStyle(style adapter.TextStyle) {
	b.textStyle = style
	b.style = b.resolveStyle()
}

func (b *Tcell) SetColor(fg, bg adapter.Color) {
	b.fg, b.bg = fg, bg
	b.style = b.resolveStyle()
}

// resolveStyle mirrors the teacher's getStyle cache keyed on the resolved
// tcell attributes, avoiding rebuilding a tcell.Style on every call.
func (b *Tcell) resolveStyle() tcell.Style {
	key := styleKey{
		fg:      mapColor(b.fg),
		bg:      mapColor(b.bg),
		bold:    b.textStyle&adapter.Bold != 0,
		italic:  b.textStyle&adapter.Italic != 0,
		reverse: b.textStyle&adapter.ReverseVideo != 0,
	}
	if st, ok := b.styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(key.fg).Background(key.bg)
	if key.bold {
		st = st.Bold(true)
	}
	if key.italic {
		st = st.Italic(true)
	}
	if key.reverse {
		st = st.Reverse(true)
	}
	b.styleCache[key] = st
	return st
}

func (b *Tcell) ClearArea(x, y, w, h int) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			b.screen.SetContent(x-1+col, y-1+row, ' ', nil, b.style)
		}
	}
}

func (b *Tcell) ClearToEOL() {
	w, _ := b.screen.Size()
	for col := b.cx; col < w; col++ {
		b.screen.SetContent(col, b.cy, ' ', nil, b.style)
	}
}

func (b *Tcell) CopyArea(dstY, dstX, srcY, srcX, h, w int) {
	type cell struct {
		r     rune
		comb  []rune
		style tcell.Style
	}
	saved := make([]cell, 0, h*w)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			r, comb, style, _ := b.screen.GetContent(srcX-1+col, srcY-1+row)
			saved = append(saved, cell{r, comb, style})
		}
	}
	i := 0
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := saved[i]
			b.screen.SetContent(dstX-1+col, dstY-1+row, c.r, c.comb, c.style)
			i++
		}
	}
}

func (b *Tcell) SetCursorVisibility(visible bool) {
	if visible {
		b.screen.ShowCursor(b.cx, b.cy)
	} else {
		b.screen.HideCursor()
	}
}

func (b *Tcell) UpdateScreen() { b.screen.Show() }
func (b *Tcell) RedrawFromScratch() { b.screen.Sync() }

// GetNextEvent blocks for up to timeoutMillis (indefinitely if 0) for the
// next keyboard/resize event, draining the background PollEvent pump.
func (b *Tcell) GetNextEvent(timeoutMillis int) adapter.InputEvent {
	var timeout <-chan time.Time
	if timeoutMillis > 0 {
		timeout = time.After(time.Duration(timeoutMillis) * time.Millisecond)
	}
	select {
	case <-b.sigwinc:
		return adapter.InputEvent{Kind: adapter.EventResize}
	case ev := <-b.events:
		return translate(ev)
	case <-timeout:
		return adapter.InputEvent{Kind: adapter.EventTimeout}
	}
}

func translate(ev tcell.Event) adapter.InputEvent {
	switch e := ev.(type) {
	case *tcell.EventResize:
		return adapter.InputEvent{Kind: adapter.EventResize}
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEnter:
			return adapter.InputEvent{Kind: adapter.EventNewline}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return adapter.InputEvent{Kind: adapter.EventBackspace}
		case tcell.KeyDelete:
			return adapter.InputEvent{Kind: adapter.EventDeleteChar}
		case tcell.KeyLeft:
			return adapter.InputEvent{Kind: adapter.EventCursorLeft}
		case tcell.KeyRight:
			return adapter.InputEvent{Kind: adapter.EventCursorRight}
		case tcell.KeyUp:
			return adapter.InputEvent{Kind: adapter.EventCursorUp}
		case tcell.KeyDown:
			return adapter.InputEvent{Kind: adapter.EventCursorDown}
		case tcell.KeyPgUp:
			return adapter.InputEvent{Kind: adapter.EventPageUp}
		case tcell.KeyPgDn:
			return adapter.InputEvent{Kind: adapter.EventPageDown}
		case tcell.KeyCtrlA, tcell.KeyHome:
			return adapter.InputEvent{Kind: adapter.EventHome}
		case tcell.KeyCtrlE, tcell.KeyEnd:
			return adapter.InputEvent{Kind: adapter.EventEnd}
		case tcell.KeyCtrlL:
			return adapter.InputEvent{Kind: adapter.EventRefresh}
		case tcell.KeyCtrlR:
			return adapter.InputEvent{Kind: adapter.EventTreatAsResize}
		case tcell.KeyEscape:
			return adapter.InputEvent{Kind: adapter.EventEscape}
		case tcell.KeyRune:
			return adapter.InputEvent{Kind: adapter.EventInput, Rune: e.Rune()}
		default:
			return adapter.InputEvent{Kind: adapter.EventNone}
		}
	default:
		return adapter.InputEvent{Kind: adapter.EventNone}
	}
}

// mapColor translates the adapter's eleven named colours onto tcell's
// standard ANSI set; Current/Default both fall back to the terminal's own
// default pair.
func mapColor(c adapter.Color) tcell.Color {
	switch c {
	case adapter.ColorBlack:
		return tcell.ColorBlack
	case adapter.ColorRed:
		return tcell.ColorMaroon
	case adapter.ColorGreen:
		return tcell.ColorGreen
	case adapter.ColorYellow:
		return tcell.ColorOlive
	case adapter.ColorBlue:
		return tcell.ColorNavy
	case adapter.ColorMagenta:
		return tcell.ColorPurple
	case adapter.ColorCyan:
		return tcell.ColorTeal
	case adapter.ColorWhite:
		return tcell.ColorSilver
	case adapter.ColorLightGrey:
		return tcell.ColorSilver
	case adapter.ColorMediumGrey:
		return tcell.ColorGray
	case adapter.ColorDarkGrey:
		return tcell.ColorGray
	default: // ColorCurrent, ColorDefault
		return tcell.ColorDefault
	}
}

// PromptForFilename shows a modal prompt on the bottom screen row and reads
// a line of input, independent of any adapter window. Escape cancels.
func (b *Tcell) PromptForFilename(purpose string, suggested string) (string, bool) {
	w, h := b.screen.Size()
	row := h - 1
	buf := []rune(suggested)

	redraw := func() {
		prompt := []rune(fmt.Sprintf("%s: %s", purpose, string(buf)))
		for col := 0; col < w; col++ {
			b.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
		for i, r := range prompt {
			if i >= w {
				break
			}
			b.screen.SetContent(i, row, r, nil, tcell.StyleDefault)
		}
		b.screen.ShowCursor(min(len(prompt), w-1), row)
		b.screen.Show()
	}
	redraw()

	for {
		ev := b.GetNextEvent(0)
		switch ev.Kind {
		case adapter.EventNewline:
			return string(buf), true
		case adapter.EventEscape:
			return "", false
		case adapter.EventBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case adapter.EventInput:
			buf = append(buf, ev.Rune)
		case adapter.EventResize:
			w, h = b.screen.Size()
			row = h - 1
		}
		redraw()
	}
}

// No configuration keys of its own; everything is owned by the adapter.
func (b *Tcell) ParseConfigParameter(key, value string) int { return -1 }
func (b *Tcell) GetConfigValue(key string) (string, bool)   { return "", false }
func (b *Tcell) GetConfigOptionNames() []string              { return nil }
