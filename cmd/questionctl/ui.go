package main

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	typeColor    = color.New(color.FgYellow)
	mutedColor   = color.New(color.Faint)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// startSpinner shows progress on stderr while waiting on a provider. It is a
// no-op when colors are off, which covers pipes.
func startSpinner(w io.Writer, message string) func() {
	if color.NoColor || w != os.Stderr {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
