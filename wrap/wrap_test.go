package wrap

import "testing"

func TestWrapBreaksAtWhitespace(t *testing.T) {
	var lines []string
	var cur []rune
	w := New(10, func(text []rune, endsLine bool) {
		cur = append(cur, text...)
		if endsLine {
			lines = append(lines, string(cur))
			cur = nil
		}
	}, false)

	w.Wrap([]rune("the quick brown fox jumps"))
	w.Flush()

	if len(lines) == 0 {
		t.Fatalf("expected at least one wrapped line")
	}
	for _, l := range lines {
		if len([]rune(l)) > 10 {
			t.Fatalf("line %q exceeds width 10", l)
		}
	}
}

func TestExplicitNewlineForcesBoundary(t *testing.T) {
	var lines []string
	var cur []rune
	w := New(40, func(text []rune, endsLine bool) {
		cur = append(cur, text...)
		if endsLine {
			lines = append(lines, string(cur))
			cur = nil
		}
	}, false)

	w.Wrap([]rune("first\nsecond\n"))
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Fatalf("lines = %#v, want [first second]", lines)
	}
}

func TestMetadataFiresAtExactPosition(t *testing.T) {
	var out []rune
	var events []string
	w := New(80, func(text []rune, endsLine bool) {
		out = append(out, text...)
	}, false)

	w.Wrap([]rune("AB"))
	w.InsertMetadata(func(ctx, arg uint32) {
		events = append(events, "meta")
	}, 1, 2)
	w.Wrap([]rune("CD"))
	w.Flush()

	if string(out) != "ABCD" {
		t.Fatalf("out = %q, want ABCD", out)
	}
	if len(events) != 1 {
		t.Fatalf("expected metadata callback to fire once, got %d", len(events))
	}
}

func TestHyphenationOnLongWord(t *testing.T) {
	var lines []string
	var cur []rune
	w := New(5, func(text []rune, endsLine bool) {
		cur = append(cur, text...)
		if endsLine {
			lines = append(lines, string(cur))
			cur = nil
		}
	}, true)

	w.Wrap([]rune("supercalifragilistic"))
	w.Flush()

	if len(lines) < 2 {
		t.Fatalf("expected the long word to be split across multiple lines, got %#v", lines)
	}
	if lines[0][len(lines[0])-1] != '-' {
		t.Fatalf("expected first hyphenated segment to end in '-', got %q", lines[0])
	}
}

func TestAdjustLineLength(t *testing.T) {
	w := New(80, func(text []rune, endsLine bool) {}, false)
	w.AdjustLineLength(10)
	if w.width != 10 {
		t.Fatalf("width = %d, want 10", w.width)
	}
}
