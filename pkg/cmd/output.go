package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.Bold, color.FgCyan)
	evenColor    = color.New(color.FgGreen)
	oddColor     = color.New(color.FgRed)
)

func printModelHeading(w io.Writer, path string, results int, noun string) {
	headingColor.Fprintf(w, "%s", path)
	fmt.Fprintf(w, " (%s %s)\n", humanize.Comma(int64(results)), english.PluralWord(results, noun, ""))
}

func printStates(w io.Writer, label string, c *color.Color, states []string) {
	c.Fprintf(w, "  %s", label)
	if len(states) == 0 {
		fmt.Fprintln(w, ": -")
		return
	}
	fmt.Fprintf(w, ": %s\n", strings.Join(states, ", "))
}
