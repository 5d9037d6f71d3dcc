// Package cli provides the colour and table helpers used by the mistconv
// command.
package cli

import (
	"os"
	"strings"
)

// colorEnabled is false when NO_COLOR env var is set (per no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

// ANSI SGR codes
const (
	sgrBold   = "1"
	sgrDim    = "2"
	sgrRed    = "31"
	sgrGreen  = "32"
	sgrYellow = "33"
)

// paint wraps s in the SGR code. Returns s unchanged when NO_COLOR is set.
func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Green marks success.
func Green(s string) string { return paint(sgrGreen, s) }

// Yellow marks warnings.
func Yellow(s string) string { return paint(sgrYellow, s) }

// Red marks failures.
func Red(s string) string { return paint(sgrRed, s) }

func Bold(s string) string { return paint(sgrBold, s) }

func Dim(s string) string { return paint(sgrDim, s) }

// DotPad pads name with dots to the given width.
// Example: DotPad("sw1.txt", 20) → "sw1.txt ............"
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	dots := width - len(name) - 1
	return name + " " + strings.Repeat(".", dots)
}

// Status renders a stage outcome: green "ok", or red "failed".
func Status(ok bool) string {
	if ok {
		return Green("ok")
	}
	return Red("failed")
}

// Level colours an event level name.
func Level(level string) string {
	switch level {
	case "warning":
		return Yellow(level)
	case "error", "critical":
		return Red(level)
	case "debug":
		return Dim(level)
	}
	return level
}
