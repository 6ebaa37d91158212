package macro

import (
	"fmt"

	"github.com/sarchlab/polyderiv/isa"
	"github.com/sarchlab/polyderiv/layout"
	"github.com/sarchlab/polyderiv/util"
)

// DivScratch holds the scratch cells of DivMod10.
type DivScratch struct {
	Counter int // counts down from 10 to the next quotient step
	Temp    int // parks Counter during its zero test
	Flag    int // set when Counter reaches zero
}

// Workspace names the cells PrintDecimal uses.
type Workspace struct {
	Hundreds int
	Tens     int
	Ones     int
	Printed  int // set once a digit has been printed
	Else     int // branch flag of the tens digit
	Quotient int // value / 10 between the two divisions
	Scratch  DivScratch
}

// Cells lists every cell of the workspace.
func (w Workspace) Cells() []int {
	return []int{
		w.Hundreds, w.Tens, w.Ones, w.Printed, w.Else, w.Quotient,
		w.Scratch.Counter, w.Scratch.Temp, w.Scratch.Flag,
	}
}

// WorkspaceFrom assigns the decimal workspace cells of l in offset order.
func WorkspaceFrom(l *layout.Layout) Workspace {
	ws := l.Workspace()
	if len(ws) < layout.WorkspaceSlots {
		panic(fmt.Sprintf("layout %s has %d workspace slots, need %d",
			l.Name(), len(ws), layout.WorkspaceSlots))
	}

	return Workspace{
		Hundreds: ws[0].Offset,
		Tens:     ws[1].Offset,
		Ones:     ws[2].Offset,
		Printed:  ws[3].Offset,
		Else:     ws[4].Offset,
		Quotient: ws[5].Offset,
		Scratch: DivScratch{
			Counter: ws[6].Offset,
			Temp:    ws[7].Offset,
			Flag:    ws[8].Offset,
		},
	}
}

// DivMod10 adds n/10 to q and leaves n%10 in r. n is consumed. r must be
// zero on entry; q may hold a running total.
//
// Each unit taken from n is added to r while the counter steps down from
// 10. When the counter reaches zero, r holds exactly 10, so r is cleared,
// the counter is reset and q is incremented.
func DivMod10(e Emitter, n, q, r int, s DivScratch) {
	util.Trace("Macro", "Name", "DivMod10", "N", n, "Q", q, "R", r)

	AddConst(e, s.Counter, 10)
	e.Loop(n, func() {
		AddConst(e, n, -1)
		AddConst(e, r, 1)
		AddConst(e, s.Counter, -1)

		// Flag = (Counter == 0), keeping Counter.
		AddConst(e, s.Flag, 1)
		e.Loop(s.Counter, func() {
			AddConst(e, s.Flag, -1)
			Move(e, s.Counter, s.Temp)
		})
		Move(e, s.Temp, s.Counter)

		e.Loop(s.Flag, func() {
			AddConst(e, s.Flag, -1)
			AddConst(e, s.Counter, 10)
			Zero(e, r)
			AddConst(e, q, 1)
		})
	})
	Zero(e, s.Counter)
}

// PrintDecimal writes value (0 to 255) in decimal without leading zeros.
// Zero prints as a single "0". value is consumed; every workspace cell must
// be zero on entry and is zero on exit.
func PrintDecimal(e Emitter, value int, w Workspace) {
	util.Trace("Macro", "Name", "PrintDecimal", "Value", value)

	DivMod10(e, value, w.Quotient, w.Ones, w.Scratch)
	DivMod10(e, w.Quotient, w.Hundreds, w.Tens, w.Scratch)

	// A nonzero hundreds digit starts printing.
	e.Loop(w.Hundreds, func() {
		AddConst(e, w.Printed, 1)
		printDigit(e, w.Hundreds)
	})

	// Tens: printed when printing has started, or when nonzero.
	AddConst(e, w.Else, 1)
	e.Loop(w.Printed, func() {
		AddConst(e, w.Printed, -1)
		AddConst(e, w.Else, -1)
		printDigit(e, w.Tens)
	})
	e.Loop(w.Else, func() {
		AddConst(e, w.Else, -1)
		e.Loop(w.Tens, func() {
			printDigit(e, w.Tens)
		})
	})

	// Ones: always printed.
	printDigit(e, w.Ones)
}

// printDigit writes the digit in c as ASCII and clears c.
func printDigit(e Emitter, c int) {
	AddConst(e, c, '0')
	e.EmitAt(c, isa.Out)
	Zero(e, c)
}
