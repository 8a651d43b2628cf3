package history

import "testing"

func TestRewindAndRepeatParagraphs(t *testing.T) {
	s := New()
	s.Append([]rune("first paragraph"), true)
	s.Append([]rune("second paragraph"), true)

	cur := s.NewCursor()
	hit := cur.RewindParagraph()
	if hit != 0 {
		t.Fatalf("first rewind hit = %d, want 0", hit)
	}

	var out []rune
	result := cur.RepeatParagraphs(1, func(r rune) { out = append(out, r) }, false)
	if string(out) != "second paragraph" {
		t.Fatalf("replayed %q, want %q", string(out), "second paragraph")
	}
	if !result.NewlineTerminated {
		t.Fatalf("expected newline-terminated result")
	}
}

func TestRewindHitsFront(t *testing.T) {
	s := New()
	s.Append([]rune("only paragraph"), false)

	cur := s.NewCursor()
	if hit := cur.RewindParagraph(); hit != 1 {
		t.Fatalf("rewind hit = %d, want 1 (front)", hit)
	}
	if !cur.IsAtFrontIndex() {
		t.Fatalf("expected cursor to report front index")
	}
	if hit := cur.RewindParagraph(); hit != -1 {
		t.Fatalf("rewind past front should report -1, got %d", hit)
	}
}

func TestDryRunProducesNoOutput(t *testing.T) {
	s := New()
	s.Append([]rune("some text"), true)

	cur := s.NewCursor()
	cur.RewindParagraph()
	var out []rune
	cur.RepeatParagraphs(1, func(r rune) { out = append(out, r) }, true)
	if len(out) != 0 {
		t.Fatalf("dry run emitted %q, want nothing", string(out))
	}
}
