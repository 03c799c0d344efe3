// pv-columns - Column catalog listing
//
// Prints the X-axis and Y-axis column choices with keys and units.
// Grouped X columns show the mono/poly fields they resolve to.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/pv-columns ./cmd/pv-columns

package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/KI7MT/ki7mt-pv-lab/internal/solar"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

func printColumns(w *tabwriter.Writer, title string, cols []solar.Column) {
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "  NAME\tKEY\tUNIT\tRESOLVES TO\n")
	for _, c := range cols {
		unit, _ := solar.Unit(c)
		resolves := "-"
		if c.IsGrouped() {
			resolves = fmt.Sprintf("%s / %s", solar.Resolve(c, solar.PMono), solar.Resolve(c, solar.PPoly))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", c, c.Key(), unit, resolves)
	}
	fmt.Fprintln(w)
}

func main() {
	xOnly := flag.Bool("x", false, "List X-axis columns only")
	yOnly := flag.Bool("y", false, "List Y-axis columns only")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pv-columns v%s - Column Catalog\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if !*yOnly {
		printColumns(w, "X-axis columns:", solar.XColumns())
	}
	if !*xOnly {
		printColumns(w, "Y-axis columns:", solar.YColumns())
	}
	w.Flush()
}
