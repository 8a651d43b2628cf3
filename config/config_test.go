// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "testing"

func TestParseMargins(t *testing.T) {
	s := New()
	if err := s.Parse(KeyLeftMargin, "4"); err != nil {
		t.Fatalf("Parse left-margin: %v", err)
	}
	if got := s.GetInt(KeyLeftMargin, -1); got != 4 {
		t.Fatalf("GetInt left-margin = %d, want 4", got)
	}
	if err := s.Parse(KeyRightMargin, "not-a-number"); err == nil {
		t.Fatalf("expected error parsing non-numeric margin")
	}
}

func TestParseBooleanKeys(t *testing.T) {
	s := New()
	if err := s.Parse(KeyDisableHyphenation, ""); err != nil {
		t.Fatalf("Parse disable-hyphenation with empty value: %v", err)
	}
	if !s.GetBool(KeyDisableHyphenation, false) {
		t.Fatalf("expected disable-hyphenation true after bare flag")
	}
	if err := s.Parse(KeyDisableColor, "false"); err != nil {
		t.Fatalf("Parse disable-color: %v", err)
	}
	if s.GetBool(KeyDisableColor, true) {
		t.Fatalf("expected disable-color false")
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	s := New()
	if err := s.Parse("font-mode", "3"); err == nil {
		t.Fatalf("expected unknown key to be rejected by the adapter's own store")
	}
}

func TestOptionNamesStableOrder(t *testing.T) {
	names := OptionNames()
	want := []string{KeyLeftMargin, KeyRightMargin, KeyDisableHyphenation, KeyEnableColor, KeyDisableColor}
	if len(names) != len(want) {
		t.Fatalf("OptionNames length = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("OptionNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestColorDisabled(t *testing.T) {
	s := New()
	if s.ColorDisabled() {
		t.Fatalf("colour should be enabled by default")
	}
	_ = s.Parse(KeyDisableColor, "true")
	if !s.ColorDisabled() {
		t.Fatalf("expected colour disabled after disable-color=true")
	}
	_ = s.Parse(KeyEnableColor, "true")
	if s.ColorDisabled() {
		t.Fatalf("expected enable-color to override disable-color")
	}
}

func TestHomeExpansion(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := expandHome("$(HOME)/saves"); got != "/home/tester/saves" {
		t.Fatalf("expandHome = %q, want %q", got, "/home/tester/saves")
	}
	s := New()
	// A value without $(HOME) passes through Parse unchanged.
	if err := s.Parse(KeyLeftMargin, "2"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}
