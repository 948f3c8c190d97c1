package console

import (
	"fmt"
	"regexp"
)

// ANSI escape codes used by the console.
const (
	Reset = "\033[0m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

var ansiSequence = regexp.MustCompile("\033\\[[0-9;]*m")

// StripANSI removes all SGR escape sequences from s.
func StripANSI(s string) string {
	return ansiSequence.ReplaceAllString(s, "")
}
