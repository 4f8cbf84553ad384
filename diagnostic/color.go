// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses the value of the color setting.  The empty string is
// ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q: expected auto, always or never", s)
}

// palette holds the ANSI escape sequences for diagnostic output.
type palette struct {
	bold     string
	boldRed  string
	boldBlue string
	boldCyan string
	reset    string
}

var ansiPalette = palette{
	bold:     "\033[1m",
	boldRed:  "\033[1;31m",
	boldBlue: "\033[1;34m",
	boldCyan: "\033[1;36m",
	reset:    "\033[0m",
}

var noPalette = palette{}

// choosePalette selects the color palette for mode when writing to w.
func choosePalette(mode ColorMode, w io.Writer) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return noPalette
	default:
		if os.Getenv("NO_COLOR") != "" {
			return noPalette
		}
		if !IsTerminal(w) {
			return noPalette
		}
		return ansiPalette
	}
}

// IsTerminal reports whether w is a file connected to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
