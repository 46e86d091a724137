package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"solparse/diag"
	"solparse/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: solparse <file.sol>")
		os.Exit(1)
	}

	start := time.Now()
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	reporter := diag.NewReporter(path, string(source))
	p := parser.New(path, string(source), parser.Config{ErrorRecovery: true, Reporter: reporter})

	unit, err := p.ParseUnit()
	duration := time.Since(start)

	fmt.Print(reporter.Render())

	if err != nil || reporter.HasErrors() {
		color.Red("parse failed after %s", formatDuration(duration))
		os.Exit(1)
	}

	fmt.Println(unit.String())
	color.Green("parsed %s in %s", path, formatDuration(duration))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1e6)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1e3)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
