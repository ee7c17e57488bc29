package benchman

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// colorScheme defines the colors used for the headers of a report.
type colorScheme struct {
	label *color.Color
	tag   *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	scheme := &colorScheme{
		label: color.New(color.FgBlue),
		tag:   color.New(color.FgYellow),
	}
	if enabled {
		scheme.label.EnableColor()
		scheme.tag.EnableColor()
	} else {
		scheme.label.DisableColor()
		scheme.tag.DisableColor()
	}
	return scheme
}

func plainColorScheme() *colorScheme {
	return newColorScheme(false)
}

// colorSchemeFor enables colors only when w is a terminal.
func colorSchemeFor(w io.Writer) *colorScheme {
	f, ok := w.(*os.File)
	if !ok {
		return plainColorScheme()
	}
	return newColorScheme(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
