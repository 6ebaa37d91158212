package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/polyderiv/compose"
	"github.com/sarchlab/polyderiv/layout"
	"github.com/sarchlab/polyderiv/verify"
)

const maxSteps = 10_000_000

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	l := layout.Default()
	if path := os.Getenv("POLYDERIV_LAYOUT_YAML"); path != "" {
		var err error
		l, err = layout.LoadFromYAML(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load layout: %v\n", err)
			atexit.Exit(2)
		}
	}

	program := compose.NewBuilder().
		WithLayout(l).
		Build("Derivative").
		Generate()

	tape := verify.LoadTapeInfoFromLayout(l)
	scenarios := append(verify.DefaultScenarios(),
		verify.RandomScenarios(1, 50, verify.MaxCoefficients)...)

	report := verify.GenerateReport(program, tape, scenarios, maxSteps)
	report.WriteReport(os.Stdout)

	if os.Getenv("POLYDERIV_DUMP") != "" {
		pp.Println(report.Stats)
		pp.Println(report.LintIssues)
	}

	if path := os.Getenv("POLYDERIV_REPORT"); path != "" {
		if err := report.SaveReportToFile(path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			atexit.Exit(2)
		}
		fmt.Printf("Report saved to %s\n", path)
	}

	if !report.OK() {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
