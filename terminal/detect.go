package terminal

import (
	"os"
	"strings"
)

// ColorCapability is the detected terminal color depth
type ColorCapability uint8

const (
	CapMono ColorCapability = iota
	CapAnsi16
	CapAnsi256
	CapTrueColor
)

// DetectColorCapability determines terminal color capability from environment
func DetectColorCapability() ColorCapability {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return CapTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return CapTrueColor
	}

	term := os.Getenv("TERM")
	switch {
	case strings.Contains(term, "truecolor"),
		strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return CapTrueColor
	case strings.Contains(term, "256"):
		return CapAnsi256
	case term == "dumb" || term == "":
		return CapMono
	default:
		return CapAnsi16
	}
}

// InsideMux reports whether the process runs under a terminal multiplexer.
// Multiplexers buffer output themselves, which changes pacing behavior.
func InsideMux() bool {
	return os.Getenv("TMUX") != "" ||
		os.Getenv("ZELLIJ") != "" ||
		os.Getenv("STY") != ""
}

// InsideTmux reports tmux specifically, for post-exit history cleanup
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}
