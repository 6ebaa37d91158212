// Package core models the tape machine as an akita ticking component.
//
// A Machine executes a fixed number of instructions per cycle until the
// program runs off its end, hits an error or exhausts its step budget. I/O
// goes through a Console.
package core

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/polyderiv/isa"
	"github.com/sarchlab/polyderiv/util"
)

// Machine is a tape machine driven by an akita engine.
type Machine struct {
	*sim.TickingComponent

	state machineState
	emu   instEmulator

	tapeSize     int
	maxSteps     int
	instsPerTick int
}

// MapProgram loads a program and resets the tape, the cursor and the step
// count.
func (m *Machine) MapProgram(p isa.Program) error {
	jumps, err := p.MatchBrackets()
	if err != nil {
		return fmt.Errorf("failed to map program on %s: %w", m.Name(), err)
	}

	m.state.Code = append(isa.Program(nil), p...)
	m.state.Jumps = jumps
	m.state.reset(m.tapeSize)

	util.Trace("Machine",
		"Behavior", "MapProgram",
		"Name", m.Name(),
		"Length", len(p),
	)

	return nil
}

// Attach connects the console the program reads from and writes to.
func (m *Machine) Attach(c Console) {
	m.emu.console = c
}

// Start schedules the first cycle. The engine must be run afterwards.
func (m *Machine) Start() {
	m.TickNow()
}

// Tick runs up to instsPerTick instructions.
func (m *Machine) Tick() (madeProgress bool) {
	if m.state.Halted {
		return false
	}

	for i := 0; i < m.instsPerTick; i++ {
		if m.state.PC >= len(m.state.Code) {
			m.halt(nil)
			return true
		}

		if m.state.Steps >= m.maxSteps {
			m.halt(fmt.Errorf("%w: %d steps", ErrStepLimit, m.maxSteps))
			return true
		}

		if err := m.emu.RunInst(&m.state); err != nil {
			m.halt(err)
			return true
		}
	}

	return true
}

func (m *Machine) halt(err error) {
	m.state.Halted = true
	m.state.Err = err

	if err != nil {
		slog.Warn("Machine halted with error",
			"Name", m.Name(),
			"Time", float64(m.Engine.CurrentTime()*1e9),
			"PC", m.state.PC,
			"Steps", m.state.Steps,
			"Error", err,
		)
		return
	}

	util.Trace("Machine",
		"Behavior", "Halt",
		"Name", m.Name(),
		"Time", float64(m.Engine.CurrentTime()*1e9),
		"Steps", m.state.Steps,
	)
}

// Halted reports whether the program has stopped.
func (m *Machine) Halted() bool {
	return m.state.Halted
}

// Err returns the error that stopped the program, if any.
func (m *Machine) Err() error {
	return m.state.Err
}

// Steps returns the number of instructions executed.
func (m *Machine) Steps() int {
	return m.state.Steps
}

// Pointer returns the cursor position.
func (m *Machine) Pointer() int {
	return m.state.Ptr
}

// Cell returns the value of one tape cell.
func (m *Machine) Cell(offset int) byte {
	if offset < 0 || offset >= len(m.state.Tape) {
		panic(fmt.Sprintf("Invalid cell %d on a tape of %d cells", offset, len(m.state.Tape)))
	}
	return m.state.Tape[offset]
}
