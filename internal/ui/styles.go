// Package ui colors CLI output by post lifecycle state.
package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI256 color codes for post lifecycle states and chrome.
const (
	colorDraft     = 245 // gray
	colorScheduled = 74  // blue
	colorPublished = 114 // green
	colorArchived  = 240 // dark gray
	colorAccent    = 74  // blue
	colorMuted     = 245 // medium gray
)

var noColor bool

// RenderStatus returns s colored by lifecycle state.
func RenderStatus(status string) string {
	if noColor {
		return status
	}
	var code int
	switch status {
	case "draft":
		code = colorDraft
	case "scheduled":
		code = colorScheduled
	case "published":
		code = colorPublished
	case "archived":
		code = colorArchived
	default:
		return status
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, status)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

// ShouldUseColor reports whether stdout gets ANSI colors. NO_COLOR wins over
// everything, CLICOLOR_FORCE=1 wins over the TTY check, CLICOLOR=0 opts out,
// and otherwise color follows terminal detection.
func ShouldUseColor() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case envIs("CLICOLOR_FORCE", "1"):
		return true
	case envIs("CLICOLOR", "0"):
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func envIs(key, value string) bool {
	return strings.TrimSpace(os.Getenv(key)) == value
}
