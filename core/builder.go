package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

const (
	// DefaultTapeSize is the number of cells of a machine's tape.
	DefaultTapeSize = 30000

	// DefaultMaxSteps bounds the number of instructions one program may run.
	DefaultMaxSteps = 50_000_000
)

// Builder can create new machines.
type Builder struct {
	engine       sim.Engine
	freq         sim.Freq
	tapeSize     int
	maxSteps     int
	instsPerTick int
}

// NewBuilder returns a builder with the default tape and step budget,
// executing one instruction per cycle.
func NewBuilder() Builder {
	return Builder{
		freq:         1 * sim.GHz,
		tapeSize:     DefaultTapeSize,
		maxSteps:     DefaultMaxSteps,
		instsPerTick: 1,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithTapeSize sets the number of tape cells.
func (b Builder) WithTapeSize(cells int) Builder {
	if cells < 1 {
		panic("Need at least 1 tape cell")
	}
	b.tapeSize = cells
	return b
}

// WithMaxSteps sets the step budget of one run.
func (b Builder) WithMaxSteps(steps int) Builder {
	if steps < 1 {
		panic("Need a positive step budget")
	}
	b.maxSteps = steps
	return b
}

// WithInstsPerTick sets how many instructions execute in one cycle.
func (b Builder) WithInstsPerTick(n int) Builder {
	if n < 1 {
		panic("Need at least 1 instruction per tick")
	}
	b.instsPerTick = n
	return b
}

// Build creates a machine.
func (b Builder) Build(name string) *Machine {
	m := &Machine{
		tapeSize:     b.tapeSize,
		maxSteps:     b.maxSteps,
		instsPerTick: b.instsPerTick,
	}

	m.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, m)
	m.state.reset(b.tapeSize)

	return m
}
