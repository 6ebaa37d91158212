package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/polyderiv/isa"
)

// Execute runs p on a fresh machine driven by a serial engine and returns
// the output. Output produced before an error is kept.
func Execute(b Builder, p isa.Program, input []byte) (string, *Machine, error) {
	engine := sim.NewSerialEngine()
	m := b.WithEngine(engine).Build("Machine")

	if err := m.MapProgram(p); err != nil {
		return "", m, err
	}

	console := NewBufferConsole(input)
	m.Attach(console)
	m.Start()
	engine.Run()

	return console.String(), m, m.Err()
}
