// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: localize/localize.go
// Summary: The small set of user-visible strings the adapter itself emits
// (spec.md §6, §7), embedded the same way the teacher embeds its default
// configuration (defaults/embedded.go).

package localize

import (
	"embed"
	"encoding/json"
)

//go:embed catalogue.json
var catalogueFS embed.FS

type strings struct {
	MorePrompt          string `json:"more_prompt"`
	PressAnyKeyToQuit   string `json:"press_any_key_to_quit"`
	FunctionCallAborted string `json:"function_call_aborted"`
	ScoreLabel          string `json:"score_label"`
	TurnsLabel          string `json:"turns_label"`
}

// Catalogue implements adapter.Localizer from an embedded JSON catalogue.
type Catalogue struct {
	s strings
}

// New loads the embedded catalogue.
func New() (*Catalogue, error) {
	data, err := catalogueFS.ReadFile("catalogue.json")
	if err != nil {
		return nil, err
	}
	var s strings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &Catalogue{s: s}, nil
}

func (c *Catalogue) MorePrompt() string          { return c.s.MorePrompt }
func (c *Catalogue) PressAnyKeyToQuit() string   { return c.s.PressAnyKeyToQuit }
func (c *Catalogue) FunctionCallAborted() string { return c.s.FunctionCallAborted }
func (c *Catalogue) ScoreLabel() string          { return c.s.ScoreLabel }
func (c *Catalogue) TurnsLabel() string          { return c.s.TurnsLabel }
