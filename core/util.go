package core

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

// StateCellsPerRow is the number of tape cells in one row of PrintState.
const StateCellsPerRow = 8

// PrintState writes the first n tape cells, the cursor and the program
// counter of m as tables.
func PrintState(w io.Writer, m *Machine, n int) {
	state := &m.state
	if n > len(state.Tape) {
		n = len(state.Tape)
	}

	fmt.Fprintf(w, "==============State@%s==============\n", m.Name())

	regTable := table.NewWriter()
	regTable.SetTitle("Machine")
	regTable.AppendHeader(table.Row{"PC", "Ptr", "Steps", "Halted"})
	regTable.AppendRow(table.Row{state.PC, state.Ptr, state.Steps, state.Halted})
	fmt.Fprintln(w, regTable.Render())
	fmt.Fprintln(w)

	tapeTable := table.NewWriter()
	tapeTable.SetTitle(fmt.Sprintf("Tape (first %d cells)", n))

	header := table.Row{"Cells"}
	for col := 0; col < StateCellsPerRow; col++ {
		header = append(header, fmt.Sprintf("+%d", col))
	}
	tapeTable.AppendHeader(header)

	for base := 0; base < n; base += StateCellsPerRow {
		row := table.Row{fmt.Sprintf("%d-%d", base, base+StateCellsPerRow-1)}
		for col := 0; col < StateCellsPerRow; col++ {
			offset := base + col
			switch {
			case offset >= n:
				row = append(row, "")
			case offset == state.Ptr:
				row = append(row, fmt.Sprintf("[%d]", state.Tape[offset]))
			default:
				row = append(row, state.Tape[offset])
			}
		}
		tapeTable.AppendRow(row)
	}

	fmt.Fprintln(w, tapeTable.Render())
	fmt.Fprintln(w, "================================================")
}

// LogState writes a debug checkpoint of the machine state.
func LogState(m *Machine, n int) {
	state := &m.state
	if n > len(state.Tape) {
		n = len(state.Tape)
	}

	slog.Debug("StateCheckpoint",
		"Name", m.Name(),
		"PC", state.PC,
		"Ptr", state.Ptr,
		"Steps", state.Steps,
		"Halted", state.Halted,
		"Tape", state.Tape[:n],
	)
}
