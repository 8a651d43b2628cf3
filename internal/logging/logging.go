// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/logging/logging.go
// Summary: Package-wide debug logger, discarded by default, toggled the
// same way the teacher's internal/runtime/server/logging.go toggles its
// debugLog between io.Discard and os.Stderr.

package logging

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "monoscreen: ", log.LstdFlags)

// SetVerbose toggles debug logging. Disabled by default, so running
// against a real backend never writes diagnostic output to the terminal
// it is also drawing to.
func SetVerbose(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}

// Debugf logs a formatted diagnostic line when verbose logging is enabled.
func Debugf(format string, args ...any) {
	debugLog.Printf(format, args...)
}
