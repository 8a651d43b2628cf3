// Package wrap implements the word-wrapper library spec.md §6 treats as an
// external collaborator: it owns line-breaking and (optional) hyphenation,
// and reports completed physical lines back through a callback, splitting
// around any metadata markers so a style/colour change queued mid-buffer
// takes effect at the exact character where the wrapper emits it
// (spec.md §4.B, §5).
package wrap

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// LineFunc receives one contiguous run of a physical line. endsLine is true
// when this run completes the line (explicit newline or a forced wrap
// point); false means more text for the same line will follow after a
// metadata callback fires.
type LineFunc func(text []rune, endsLine bool)

type metaEntry struct {
	pos int
	cb  func(ctx, arg uint32)
	ctx uint32
	arg uint32
}

// Wrapper greedily wraps text at whitespace to fit a fixed column width.
// Column width is measured with go-runewidth rather than rune count, so
// wide (CJK) and zero-width (combining) runes don't throw off the column
// math; breaks that can't land on whitespace are snapped back to the
// nearest grapheme-cluster boundary via uniseg so a forced or hyphenated
// break never splits a base rune from its combining marks.
type Wrapper struct {
	width     int
	hyphenate bool
	onLine    LineFunc

	buf       []rune
	widths    []int // parallel to buf: display width of buf[i]
	pending   int   // sum of widths, i.e. the display width of buf
	bufStart  int // absolute stream position of buf[0]
	total     int // absolute stream position of the next appended rune
	lineIndex int // columns already consumed on the current line

	metas []metaEntry

	destroyed bool
}

// New creates a Wrapper of the given content width. sink is invoked for
// every completed or partially-flushed line. hyphenate enables a forced
// hyphen break for a single word that cannot fit within width.
func New(width int, sink LineFunc, hyphenate bool) *Wrapper {
	if width < 1 {
		width = 1
	}
	return &Wrapper{width: width, onLine: sink, hyphenate: hyphenate}
}

// Wrap feeds more logical text into the wrapper. Embedded '\n' runes force
// a line boundary the same as a forced wrap point.
func (w *Wrapper) Wrap(text []rune) {
	if w.destroyed {
		return
	}
	for _, r := range text {
		if r == '\n' {
			w.flush(len(w.buf), true)
			continue
		}
		width := runewidth.RuneWidth(r)
		w.buf = append(w.buf, r)
		w.widths = append(w.widths, width)
		w.pending += width
		w.total++
		if w.pending+w.lineIndex > w.width {
			w.breakLine()
		}
	}
}

// Flush forces out any buffered partial line without counting it as a
// completed line (spec.md §4.B: "flushes before any cursor-positioning
// op"). The wrapper's line-index resets to zero afterward.
func (w *Wrapper) Flush() {
	if w.destroyed || len(w.buf) == 0 {
		return
	}
	w.flush(len(w.buf), false)
	w.lineIndex = 0
}

// InsertMetadata schedules cb(ctx, arg) to fire once the wrapper's output
// reaches the exact stream position where InsertMetadata was called.
func (w *Wrapper) InsertMetadata(cb func(ctx uint32, arg uint32), ctx uint32, arg uint32) {
	if w.destroyed {
		return
	}
	w.metas = append(w.metas, metaEntry{pos: w.total, cb: cb, ctx: ctx, arg: arg})
}

// SetLineIndex tells the wrapper how many columns are already consumed on
// the physical line it is about to continue filling, e.g. after resuming
// output mid-line following a style push.
func (w *Wrapper) SetLineIndex(n int) {
	if n < 0 {
		n = 0
	}
	w.lineIndex = n
}

// AdjustLineLength changes the wrap width, e.g. after a resize or margin
// change. Already-buffered text is not retroactively rejustified.
func (w *Wrapper) AdjustLineLength(n int) {
	if n < 1 {
		n = 1
	}
	w.width = n
}

func (w *Wrapper) Destroy() {
	w.destroyed = true
	w.buf = nil
	w.widths = nil
	w.pending = 0
	w.metas = nil
}

// breakLine finds a wrap point within the current buffer and flushes up to
// it, honouring hyphenation when no whitespace break exists.
func (w *Wrapper) breakLine() {
	limit := w.width - w.lineIndex
	if limit < 1 {
		limit = 1
	}
	cutoff := widthCutoff(w.widths, limit)
	if cutoff > len(w.buf) {
		cutoff = len(w.buf)
	}

	breakAt := -1
	for i := cutoff - 1; i >= 0; i-- {
		if w.buf[i] == ' ' {
			breakAt = i
			break
		}
	}

	if breakAt >= 0 {
		w.flush(breakAt, true)
		w.dropLeadingSpace()
		w.lineIndex = 0
		return
	}

	safeCutoff := snapToGraphemeBoundary(w.buf, cutoff)
	if safeCutoff < 1 {
		safeCutoff = 1
	}

	if w.hyphenate && safeCutoff > 1 && len(w.buf) > safeCutoff {
		w.flushWithHyphen(safeCutoff - 1)
		w.lineIndex = 0
		return
	}

	w.flush(safeCutoff, true)
	w.lineIndex = 0
}

// widthCutoff returns the largest rune count whose cumulative display width
// does not exceed limit.
func widthCutoff(widths []int, limit int) int {
	sum := 0
	for i, width := range widths {
		if sum+width > limit {
			return i
		}
		sum += width
	}
	return len(widths)
}

// snapToGraphemeBoundary pulls cutoff back to the nearest preceding
// grapheme-cluster boundary in buf, so a forced break never separates a
// base rune from a combining mark that follows it.
func snapToGraphemeBoundary(buf []rune, cutoff int) int {
	if cutoff <= 0 || cutoff >= len(buf) {
		return cutoff
	}
	window := cutoff + 4
	if window > len(buf) {
		window = len(buf)
	}
	boundaries := graphemeBoundaries(buf[:window])
	for i := cutoff; i >= 0; i-- {
		if boundaries[i] {
			return i
		}
	}
	return cutoff
}

// graphemeBoundaries reports, for each rune index 0..len(buf), whether that
// index starts a new grapheme cluster.
func graphemeBoundaries(buf []rune) []bool {
	boundaries := make([]bool, len(buf)+1)
	boundaries[0] = true
	if len(buf) == 0 {
		return boundaries
	}
	boundaries[len(buf)] = true
	g := uniseg.NewGraphemes(string(buf))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		if pos <= len(buf) {
			boundaries[pos] = true
		}
	}
	return boundaries
}

// dropLeadingSpace discards the whitespace rune breakLine broke on, without
// counting it against the next line's width.
func (w *Wrapper) dropLeadingSpace() {
	if len(w.buf) == 0 {
		return
	}
	w.pending -= w.widths[0]
	w.buf = w.buf[1:]
	w.widths = w.widths[1:]
	w.bufStart++
}

// flush emits buf[:k], splitting around any metadata markers that fall
// inside the flushed range, then trims buf.
func (w *Wrapper) flush(k int, endsLine bool) {
	if k > len(w.buf) {
		k = len(w.buf)
	}
	chunk := w.buf[:k]
	segStart := 0
	pos := w.bufStart

	for len(w.metas) > 0 && w.metas[0].pos < pos+len(chunk) {
		m := w.metas[0]
		cut := m.pos - pos
		if cut < segStart {
			cut = segStart
		}
		if cut > segStart {
			w.onLine(chunk[segStart:cut], false)
		}
		m.cb(m.ctx, m.arg)
		segStart = cut
		w.metas = w.metas[1:]
	}
	if segStart < len(chunk) || segStart == 0 {
		w.onLine(chunk[segStart:], endsLine)
	} else if endsLine {
		w.onLine(nil, true)
	}

	w.trimFront(k)
}

// flushWithHyphen is like flush but appends a visual hyphen to the emitted
// chunk without consuming an extra source rune.
func (w *Wrapper) flushWithHyphen(k int) {
	if k > len(w.buf) {
		k = len(w.buf)
	}
	segStart := 0
	pos := w.bufStart
	body := w.buf[:k]

	for len(w.metas) > 0 && w.metas[0].pos < pos+len(body) {
		m := w.metas[0]
		cut := m.pos - pos
		if cut < segStart {
			cut = segStart
		}
		if cut > segStart {
			w.onLine(body[segStart:cut], false)
		}
		m.cb(m.ctx, m.arg)
		segStart = cut
		w.metas = w.metas[1:]
	}
	if segStart < len(body) {
		w.onLine(append(append([]rune(nil), body[segStart:]...), '-'), true)
	} else {
		w.onLine([]rune{'-'}, true)
	}

	w.trimFront(k)
}

// trimFront drops the first k runes of buf/widths and keeps pending in sync.
func (w *Wrapper) trimFront(k int) {
	if k > len(w.buf) {
		k = len(w.buf)
	}
	for _, width := range w.widths[:k] {
		w.pending -= width
	}
	w.buf = append([]rune(nil), w.buf[k:]...)
	w.widths = append([]int(nil), w.widths[k:]...)
	w.bufStart += k
}
