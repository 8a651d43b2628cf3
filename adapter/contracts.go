// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/contracts.go
// Summary: Interfaces for the external collaborators named in spec.md §6.
// Concrete implementations live in sibling packages (wrap, history,
// cmdhistory, localize, backend, zscii); the adapter only depends on these
// interfaces so any of them can be swapped for a test double.

package adapter

// EventKind enumerates the events get_next_event can report (spec.md §6).
type EventKind int

const (
	EventNone EventKind = iota
	EventInput
	EventTimeout
	EventResize
	EventCursorLeft
	EventCursorRight
	EventCursorUp
	EventCursorDown
	EventPageUp
	EventPageDown
	EventHome
	EventEnd
	EventRefresh
	EventTreatAsResize
	EventBackspace
	EventDeleteChar
	EventEscape
	EventNewline
	EventError
)

// InputEvent is what the backend's get_next_event call reports.
type InputEvent struct {
	Kind EventKind
	Rune rune // populated for EventInput
	Err  error
}

// Backend is the downward contract of spec.md §6: the primitives an
// arbitrary monospace display driver must provide. Coordinates are 1-based
// (row, col) to match the Z-Machine's own convention, per spec.md §3.
type Backend interface {
	// Queries.
	ScreenSize() (height, width int)
	DefaultForeground() Color
	DefaultBackground() Color
	IsColorAvailable() bool
	IsBoldAvailable() bool
	IsItalicAvailable() bool
	IsTimedInputAvailable() bool
	InterfaceName() string

	// Actions.
	GotoYX(row, col int)
	Output(text []rune)
	SetTextStyle(style TextStyle)
	SetColor(fg, bg Color)
	ClearArea(x, y, w, h int)
	ClearToEOL()
	CopyArea(dstY, dstX, srcY, srcX, h, w int)
	SetCursorVisibility(visible bool)
	UpdateScreen()
	RedrawFromScratch()

	// GetNextEvent blocks (up to timeoutMillis, or indefinitely if 0) for
	// the next keyboard or resize event.
	GetNextEvent(timeoutMillis int) InputEvent

	// PromptForFilename asks the user for a filename out-of-band from the
	// story's own windows (e.g. a native file dialog or a modal prompt
	// line), per spec.md §6's downward contract. ok is false if the
	// prompt was cancelled.
	PromptForFilename(purpose string, suggested string) (name string, ok bool)

	// Backend-owned configuration keys, forwarded from spec.md §4.F/§6.
	ParseConfigParameter(key, value string) int
	GetConfigValue(key string) (string, bool)
	GetConfigOptionNames() []string
}

// HistoryRepeatResult is returned by HistoryStore.RepeatParagraphs, folding
// the "newline-terminated" flag mentioned in spec.md §6 into the result.
type HistoryRepeatResult struct {
	LinesEmitted      int
	NewlineTerminated bool
	HitFront          bool
}

// HistoryStore is the paragraph-addressable output history the interpreter
// core owns (spec.md §3, §6). The adapter never writes to it directly --
// only the interpreter appends paragraphs as it emits text -- but the
// screen adapter reads it back for refresh/scroll-back.
type HistoryStore interface {
	// NewCursor returns a cursor positioned at the tail of the log.
	NewCursor() HistoryCursor
}

// HistoryCursor walks the output history backwards from the tail.
type HistoryCursor interface {
	// RewindParagraph moves the cursor back by one paragraph. It returns
	// 1 if this rewind reached the oldest recorded paragraph (front hit),
	// 0 on an ordinary rewind, and a negative value on a store
	// inconsistency (spec.md §7).
	RewindParagraph() int
	// RepeatParagraphs replays up to n paragraphs starting at the
	// cursor's current position, feeding each rune to sink. If dryRun is
	// true no runes are sent to sink; only the line count is measured
	// (used by history-refresh Case 0, spec.md §4.C).
	RepeatParagraphs(n int, sink func(r rune), dryRun bool) HistoryRepeatResult
	// IsAtFrontIndex reports whether the cursor is already at the oldest
	// recorded paragraph.
	IsAtFrontIndex() bool
	// Destroy releases the cursor. Safe to call multiple times.
	Destroy()
}

// Wrapper is the word-wrapper library contract of spec.md §6: it owns
// hyphenation and line-breaking, and calls back into the adapter's window
// target routine one physical line/metadata event at a time.
type Wrapper interface {
	// Wrap feeds more logical text into the wrapper.
	Wrap(text []rune)
	// Flush forces out any buffered partial line, e.g. before a
	// cursor-positioning operation (spec.md §4.B).
	Flush()
	// InsertMetadata schedules cb(ctx, arg) to fire at the exact
	// character position (in wrap order) where it was inserted, used for
	// style/colour changes queued mid-buffer (spec.md §4.B, §5).
	InsertMetadata(cb func(ctx uint32, arg uint32), ctx uint32, arg uint32)
	// SetLineIndex seeds the wrapper's notion of "how far across the
	// current physical line" output already is, used when resuming after
	// a mid-line style push.
	SetLineIndex(n int)
	// AdjustLineLength changes the wrap width, e.g. after a resize or a
	// margin change.
	AdjustLineLength(n int)
	// Destroy releases wrapper resources.
	Destroy()
}

// CommandHistory is the previous-input recall store (spec.md §4.D, §6).
// Index 0 means "not currently recalling" (the freshly typed line).
type CommandHistory interface {
	// Record appends a submitted input line.
	Record(line []rune)
	// At returns the line at the given recall index (1 = most recent),
	// or ok=false past the oldest recorded entry.
	At(index int) (line []rune, ok bool)
	// Len returns how many entries are recorded.
	Len() int
}

// Localizer resolves the small set of user-visible strings the adapter
// itself emits (spec.md §6, §7): the [MORE] prompt, the quit prompt, and
// the fatal-error diagnostic.
type Localizer interface {
	MorePrompt() string
	PressAnyKeyToQuit() string
	FunctionCallAborted() string
	ScoreLabel() string
	TurnsLabel() string
}

// StoryInfo is what link_interface_to_story receives from the interpreter
// about the story being run (spec.md §6).
type StoryInfo struct {
	Version Version
}

// VerifyRoutine is the interpreter callback read_line invokes once timed
// input reaches its interval (spec.md §4.D). A non-zero return, or
// terminate=true, ends input immediately.
type VerifyRoutine func() (result int, terminate bool)
