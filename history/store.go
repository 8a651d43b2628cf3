// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/store.go
// Summary: In-memory paragraph-addressable output history (spec.md §6's
// "Output-history store" contract), grounded on the teacher's small
// slice-backed InMemoryBufferStore shape (texel/buffer_store.go).

package history

import (
	"sync"

	"github.com/chrender/monoscreen/adapter"
)

// Store is the interpreter-owned log of everything written to window 0.
// The screen adapter only ever reads it back through a Cursor; paragraphs
// are appended by whatever drives the interpreter loop.
type Store struct {
	mu         sync.Mutex
	paragraphs [][]rune
	terminated []bool
}

// New returns an empty output history.
func New() *Store {
	return &Store{}
}

// Append records one paragraph. newlineTerminated marks whether the
// paragraph ended with an explicit newline, per spec.md §6.
func (s *Store) Append(text []rune, newlineTerminated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paragraphs = append(s.paragraphs, append([]rune(nil), text...))
	s.terminated = append(s.terminated, newlineTerminated)
}

// NewCursor returns a cursor positioned at the tail of the log.
func (s *Store) NewCursor() adapter.HistoryCursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &cursor{store: s, pos: len(s.paragraphs)}
}

// cursor walks the history backwards from wherever it was created.
type cursor struct {
	store *Store
	pos   int // index of the paragraph the last rewind landed on; len(paragraphs) before any rewind
}

func (c *cursor) RewindParagraph() int {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if c.pos <= 0 {
		return -1
	}
	c.pos--
	if c.pos == 0 {
		return 1
	}
	return 0
}

// RepeatParagraphs replays up to n paragraphs starting at the cursor's
// current position without moving it. The paragraph's own newline count
// stands in for the line count a real wrapper would measure; the adapter
// owns the actual window-width-sensitive wrap.
func (c *cursor) RepeatParagraphs(n int, sink func(r rune), dryRun bool) adapter.HistoryRepeatResult {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	var result adapter.HistoryRepeatResult
	idx := c.pos
	for i := 0; i < n && idx < len(c.store.paragraphs); i++ {
		p := c.store.paragraphs[idx]
		lines := 1
		for _, r := range p {
			if !dryRun && sink != nil {
				sink(r)
			}
			if r == '\n' {
				lines++
			}
		}
		result.LinesEmitted += lines
		result.NewlineTerminated = c.store.terminated[idx]
		idx++
	}
	result.HitFront = idx >= len(c.store.paragraphs)
	return result
}

func (c *cursor) IsAtFrontIndex() bool {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.pos <= 0
}

func (c *cursor) Destroy() {}
