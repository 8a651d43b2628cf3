// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/fake_backend_test.go
// Summary: A fake Backend, built the way the teacher builds its stub
// collaborators (see devshell.stubApp): an in-memory grid plus a call trace
// instead of a real terminal, so the round-trip properties of spec.md §8
// are directly testable.

package adapter

import (
	"fmt"
	"testing"

	"github.com/chrender/monoscreen/cmdhistory"
	"github.com/chrender/monoscreen/config"
	"github.com/chrender/monoscreen/history"
	"github.com/chrender/monoscreen/localize"
)

type fakeBackend struct {
	height, width int
	grid          [][]rune

	cy, cx int // 0-based, mirrors the last GotoYX call

	style  TextStyle
	fg, bg Color

	defaultFg, defaultBg                                Color
	colorAvailable, boldAvailable, italicAvailable, timedInputAvailable bool

	cursorVisible bool

	events []InputEvent // consumed front-to-back by GetNextEvent

	trace []string // human-readable call log, for round-trip comparisons

	promptName string
	promptOK   bool
}

func newFakeBackend(h, w int) *fakeBackend {
	b := &fakeBackend{
		colorAvailable:      true,
		boldAvailable:       true,
		italicAvailable:     true,
		timedInputAvailable: true,
		defaultFg:           ColorDefault,
		defaultBg:           ColorDefault,
	}
	b.resize(h, w)
	return b
}

func (b *fakeBackend) resize(h, w int) {
	b.height, b.width = h, w
	b.grid = make([][]rune, h)
	for i := range b.grid {
		row := make([]rune, w)
		for j := range row {
			row[j] = ' '
		}
		b.grid[i] = row
	}
}

func (b *fakeBackend) ScreenSize() (int, int)      { return b.height, b.width }
func (b *fakeBackend) DefaultForeground() Color    { return b.defaultFg }
func (b *fakeBackend) DefaultBackground() Color    { return b.defaultBg }
func (b *fakeBackend) IsColorAvailable() bool      { return b.colorAvailable }
func (b *fakeBackend) IsBoldAvailable() bool       { return b.boldAvailable }
func (b *fakeBackend) IsItalicAvailable() bool     { return b.italicAvailable }
func (b *fakeBackend) IsTimedInputAvailable() bool { return b.timedInputAvailable }
func (b *fakeBackend) InterfaceName() string       { return "fake" }

func (b *fakeBackend) GotoYX(row, col int) {
	b.cy, b.cx = row-1, col-1
	b.trace = append(b.trace, fmt.Sprintf("goto(%d,%d)", row, col))
}

func (b *fakeBackend) Output(text []rune) {
	for _, r := range text {
		if b.cy >= 0 && b.cy < len(b.grid) && b.cx >= 0 && b.cx < b.width {
			b.grid[b.cy][b.cx] = r
		}
		b.cx++
	}
	b.trace = append(b.trace, fmt.Sprintf("output(%q)", string(text)))
}

func (b *fakeBackend) SetTextStyle(style TextStyle) {
	b.style = style
	b.trace = append(b.trace, fmt.Sprintf("style(%d)", style))
}

func (b *fakeBackend) SetColor(fg, bg Color) {
	b.fg, b.bg = fg, bg
	b.trace = append(b.trace, fmt.Sprintf("color(%d,%d)", fg, bg))
}

func (b *fakeBackend) ClearArea(x, y, w, h int) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			ry, rx := y-1+row, x-1+col
			if ry >= 0 && ry < len(b.grid) && rx >= 0 && rx < b.width {
				b.grid[ry][rx] = ' '
			}
		}
	}
	b.trace = append(b.trace, fmt.Sprintf("clear(%d,%d,%d,%d)", x, y, w, h))
}

func (b *fakeBackend) ClearToEOL() {
	for col := b.cx; col < b.width; col++ {
		if b.cy >= 0 && b.cy < len(b.grid) {
			b.grid[b.cy][col] = ' '
		}
	}
	b.trace = append(b.trace, "clearToEOL")
}

func (b *fakeBackend) CopyArea(dstY, dstX, srcY, srcX, h, w int) {
	saved := make([][]rune, h)
	for row := 0; row < h; row++ {
		saved[row] = b.rowSlice(srcY-1+row, srcX-1, w)
	}
	for row := 0; row < h; row++ {
		b.setRowSlice(dstY-1+row, dstX-1, saved[row])
	}
	b.trace = append(b.trace, fmt.Sprintf("copy(%d,%d,%d,%d,%d,%d)", dstY, dstX, srcY, srcX, h, w))
}

func (b *fakeBackend) rowSlice(row, col, w int) []rune {
	out := make([]rune, w)
	for i := range out {
		out[i] = ' '
	}
	if row < 0 || row >= len(b.grid) {
		return out
	}
	for i := 0; i < w; i++ {
		c := col + i
		if c >= 0 && c < b.width {
			out[i] = b.grid[row][c]
		}
	}
	return out
}

func (b *fakeBackend) setRowSlice(row, col int, vals []rune) {
	if row < 0 || row >= len(b.grid) {
		return
	}
	for i, r := range vals {
		c := col + i
		if c >= 0 && c < b.width {
			b.grid[row][c] = r
		}
	}
}

func (b *fakeBackend) SetCursorVisibility(visible bool) {
	b.cursorVisible = visible
	b.trace = append(b.trace, fmt.Sprintf("cursorVisible(%v)", visible))
}

func (b *fakeBackend) UpdateScreen()      { b.trace = append(b.trace, "update") }
func (b *fakeBackend) RedrawFromScratch() { b.trace = append(b.trace, "redraw") }

func (b *fakeBackend) GetNextEvent(timeoutMillis int) InputEvent {
	if len(b.events) == 0 {
		return InputEvent{Kind: EventTimeout}
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev
}

func (b *fakeBackend) PromptForFilename(purpose, suggested string) (string, bool) {
	return b.promptName, b.promptOK
}

func (b *fakeBackend) ParseConfigParameter(key, value string) int { return -1 }
func (b *fakeBackend) GetConfigValue(key string) (string, bool)   { return "", false }
func (b *fakeBackend) GetConfigOptionNames() []string              { return nil }

// push queues events for GetNextEvent to hand back in order.
func (b *fakeBackend) push(evs ...InputEvent) { b.events = append(b.events, evs...) }

// rowText returns row y (0-based), trailing spaces trimmed, for assertions.
func (b *fakeBackend) rowText(y int) string {
	if y < 0 || y >= len(b.grid) {
		return ""
	}
	s := string(b.grid[y])
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

// newTestAdapter builds a fully linked Adapter over a fakeBackend and the
// reference in-memory collaborators, the way cmd/zdemo wires the real ones.
func newTestAdapter(t *testing.T, h, w int, version Version) (*Adapter, *fakeBackend) {
	t.Helper()
	a, b, _ := newTestAdapterWithHistory(t, h, w, version)
	return a, b
}

// newTestAdapterWithHistory is like newTestAdapter but also hands back the
// concrete history.Store, for tests that need to seed paragraphs directly
// (the adapter itself never writes to its own history, per spec.md §6).
func newTestAdapterWithHistory(t *testing.T, h, w int, version Version) (*Adapter, *fakeBackend, *history.Store) {
	t.Helper()
	b := newFakeBackend(h, w)
	cat, err := localize.New()
	if err != nil {
		t.Fatalf("localize.New: %v", err)
	}
	hist := history.New()
	a := New(b, hist, cmdhistory.New(10), cat, config.New())
	if r := a.LinkInterfaceToStory(StoryInfo{Version: version}); !r.IsOK() {
		t.Fatalf("LinkInterfaceToStory: %v", r)
	}
	return a, b, hist
}
