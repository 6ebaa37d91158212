package main

import (
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/polyderiv/compose"
	"github.com/sarchlab/polyderiv/core"
	"github.com/sarchlab/polyderiv/layout"
	"github.com/sarchlab/polyderiv/util"
	"github.com/sarchlab/polyderiv/verify"
)

func loadLayout() *layout.Layout {
	path := os.Getenv("POLYDERIV_LAYOUT_YAML")
	if path == "" {
		return layout.Default()
	}

	l, err := layout.LoadFromYAML(path)
	if err != nil {
		panic(err)
	}
	return l
}

func Derivative() {
	l := loadLayout()
	fmt.Println(l.Table())

	composer := compose.NewBuilder().
		WithLayout(l).
		Build("Derivative")
	program := composer.Generate()

	outPath := os.Getenv("POLYDERIV_OUTPUT")
	if outPath == "" {
		outPath = "derivative.bf"
	}
	if err := os.WriteFile(outPath, []byte(composer.Text()), 0o644); err != nil {
		panic(err)
	}

	stats := program.Stats()
	fmt.Printf("program: %d instructions, max loop depth %d, written to %s\n",
		stats.Length, stats.MaxDepth, outPath)

	input := os.Getenv("POLYDERIV_INPUT")
	if input == "" {
		input = "1 5 0 3\n"
	}
	expected, err := verify.ReferenceDerivative(input)
	if err != nil {
		panic(err)
	}

	engine := sim.NewSerialEngine()

	machine := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithTapeSize(l.Size()).
		Build("Machine")

	// Serves the akita monitoring page while the machine runs.
	if os.Getenv("POLYDERIV_MONITOR") != "" {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(machine)
		monitor.StartServer()
	}

	if err := machine.MapProgram(program); err != nil {
		panic(err)
	}

	console := core.NewBufferConsole([]byte(input))
	machine.Attach(console)
	machine.Start()
	engine.Run()

	core.PrintState(os.Stdout, machine, l.Size())

	if err := machine.Err(); err != nil {
		fmt.Printf("❌ machine stopped: %v\n", err)
		return
	}

	totalCycles := float64(engine.CurrentTime() * 1e9)
	fmt.Printf("input:    %q\n", input)
	fmt.Printf("output:   %q\n", console.String())
	fmt.Printf("expected: %q\n", expected)
	fmt.Printf("steps: %d, cycles: %.0f\n", machine.Steps(), totalCycles)

	if console.String() == expected {
		fmt.Println("✅ output matches expected derivative")
	} else {
		fmt.Println("❌ output mismatches expected derivative")
	}
}

func main() {
	f, err := os.Create("derivative.json.log")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	// Everything goes to the JSON log; warnings also reach the terminal.
	handler := slogmulti.Fanout(
		slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: util.LevelTrace,
		}),
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}),
	)

	slog.SetDefault(slog.New(handler))
	Derivative()

	atexit.Exit(0)
}
