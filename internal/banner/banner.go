package banner

import (
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// Print writes the start-up banner to w.
func Print(w io.Writer) {
	myFigure := figure.NewFigure("PHISHGUARD", "doom", true)
	_, _ = color.New(color.FgRed).Fprintln(w, myFigure.String())

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
	_, _ = green.Fprintln(w, "    Heuristic URL phishing risk scanner")
	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
}
