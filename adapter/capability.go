// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/capability.go
// Summary: Capability queries and configuration forwarding (component F,
// spec.md §4.F).

package adapter

import (
	"fmt"
	"strings"

	"github.com/chrender/monoscreen/config"
)

// Fixed capability truths, per spec.md §4.F.
func (a *Adapter) HasStatusLine() bool       { return a.version <= V3 }
func (a *Adapter) HasSplitWindow() bool      { return true }
func (a *Adapter) SupportsPictures() bool    { return false }
func (a *Adapter) SupportsVariablePitch() bool { return false }

// Backend-delegated capabilities.
func (a *Adapter) SupportsBold() bool        { return a.backend.IsBoldAvailable() }
func (a *Adapter) SupportsItalic() bool      { return a.backend.IsItalicAvailable() }
func (a *Adapter) SupportsTimedInput() bool  { return a.backend.IsTimedInputAvailable() }
func (a *Adapter) InterfaceName() string     { return a.backend.InterfaceName() }

// SupportsColor is masked off when disable-color config is set, regardless
// of what the backend itself reports (spec.md §4.F).
func (a *Adapter) SupportsColor() bool {
	if a.config.ColorDisabled() {
		return false
	}
	return a.backend.IsColorAvailable()
}

// SetConfigurationValue implements set_configuration_value: adapter-owned
// keys are parsed and applied locally, everything else is forwarded to the
// backend (spec.md §4.F, §6).
func (a *Adapter) SetConfigurationValue(key, value string) Result {
	if config.Owns(key) {
		if err := a.config.Parse(key, value); err != nil {
			return configError(err)
		}
		a.applyConfigChange(key)
		return OK
	}
	if code := a.backend.ParseConfigParameter(key, value); code != 0 {
		return backendError("backend rejected config key %q", key)
	}
	return OK
}

// applyConfigChange propagates a just-parsed adapter config key into live
// window/wrapper state.
func (a *Adapter) applyConfigChange(key string) {
	if a.windows == nil {
		return
	}
	switch key {
	case config.KeyLeftMargin, config.KeyRightMargin:
		left := a.config.GetInt(config.KeyLeftMargin, 0)
		right := a.config.GetInt(config.KeyRightMargin, 0)
		main := a.windows.main()
		main.leftmargin, main.rightmargin = left, right
		main.enforceMarginInvariant()
		if main.wrapper != nil {
			main.wrapper.AdjustLineLength(main.contentWidth())
		}
	}
}

// GetConfigValue answers get_config_value, checking adapter-owned keys
// before forwarding to the backend.
func (a *Adapter) GetConfigValue(key string) (string, bool) {
	if config.Owns(key) {
		return a.config.Get(key)
	}
	return a.backend.GetConfigValue(key)
}

// GetConfigOptionNames returns the adapter's own keys followed by the
// backend's, per spec.md §4.F.
func (a *Adapter) GetConfigOptionNames() []string {
	names := append([]string(nil), config.OptionNames()...)
	return append(names, a.backend.GetConfigOptionNames()...)
}

// OutputInterfaceInfo implements output_interface_info (spec.md §6): a
// diagnostic dump of the backend's identity, reported capabilities, and
// the adapter's current configuration, written to the active window the
// same way any other z_ucs_output text would be.
func (a *Adapter) OutputInterfaceInfo() Result {
	lines := []string{
		fmt.Sprintf("interface: %s", a.backend.InterfaceName()),
		fmt.Sprintf("screen: %dx%d", a.screenWidth, a.screenHeight),
		fmt.Sprintf("color=%v bold=%v italic=%v timed-input=%v",
			a.SupportsColor(), a.SupportsBold(), a.SupportsItalic(), a.SupportsTimedInput()),
	}
	lines = append(lines, a.config.Dump()...)
	return a.ZUCSOutput([]rune(strings.Join(lines, "\n") + "\n"))
}

// PromptForFilename implements prompt_for_filename: forwarded straight to
// the backend, per spec.md §6's "forwarded" note.
func (a *Adapter) PromptForFilename(purpose, suggested string) (string, bool) {
	return a.backend.PromptForFilename(purpose, suggested)
}
