package cmdhistory

import "testing"

func TestRecordAndRecallOrder(t *testing.T) {
	s := New(10)
	s.Record([]rune("first"))
	s.Record([]rune("second"))
	s.Record([]rune("third"))

	if line, ok := s.At(1); !ok || string(line) != "third" {
		t.Fatalf("At(1) = %q, %v, want third", string(line), ok)
	}
	if line, ok := s.At(3); !ok || string(line) != "first" {
		t.Fatalf("At(3) = %q, %v, want first", string(line), ok)
	}
	if _, ok := s.At(4); ok {
		t.Fatalf("At(4) should miss")
	}
}

func TestCapacityDropsOldest(t *testing.T) {
	s := New(2)
	s.Record([]rune("a"))
	s.Record([]rune("b"))
	s.Record([]rune("c"))

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if line, _ := s.At(2); string(line) != "b" {
		t.Fatalf("At(2) = %q, want b", string(line))
	}
}
