// Package macro builds arithmetic and control operations out of primitive
// tape machine instructions.
//
// Every macro only appends instructions through an Emitter. Cells are plain
// offsets. Unless a macro says otherwise, the scratch cells it is given must
// be zero on entry and are zero again on exit, because the machine has no
// stack and all temporaries are shared cells.
package macro

import (
	"github.com/sarchlab/polyderiv/isa"
	"github.com/sarchlab/polyderiv/util"
)

// Emitter is the cursor-tracked instruction sink the macros write to.
type Emitter interface {
	Goto(offset int)
	Emit(op isa.Opcode)
	EmitAt(offset int, op isa.Opcode)
	Repeat(offset int, op isa.Opcode, n int)
	Loop(offset int, body func())
}

// Zero clears c.
func Zero(e Emitter, c int) {
	e.Loop(c, func() {
		e.EmitAt(c, isa.Dec)
	})
}

// AddConst adds k to c. A negative k decrements. The result wraps mod 256.
func AddConst(e Emitter, c, k int) {
	if k >= 0 {
		e.Repeat(c, isa.Inc, k)
	} else {
		e.Repeat(c, isa.Dec, -k)
	}
}

// Set clears c and then adds k.
func Set(e Emitter, c, k int) {
	Zero(e, c)
	AddConst(e, c, k)
}

// Move adds src to dst and clears src.
func Move(e Emitter, src, dst int) {
	util.Trace("Macro", "Name", "Move", "Src", src, "Dst", dst)

	e.Loop(src, func() {
		e.EmitAt(src, isa.Dec)
		e.EmitAt(dst, isa.Inc)
	})
}

// Copy adds src to dst and leaves src unchanged. tmp is scratch.
func Copy(e Emitter, src, dst, tmp int) {
	util.Trace("Macro", "Name", "Copy", "Src", src, "Dst", dst, "Tmp", tmp)

	e.Loop(src, func() {
		e.EmitAt(src, isa.Dec)
		e.EmitAt(dst, isa.Inc)
		e.EmitAt(tmp, isa.Inc)
	})
	Move(e, tmp, src)
}

// Multiply adds a*b to product. a is consumed, b is preserved and tmp is
// scratch. Products above 255 wrap.
func Multiply(e Emitter, a, b, product, tmp int) {
	util.Trace("Macro", "Name", "Multiply", "A", a, "B", b, "Product", product)

	e.Loop(a, func() {
		e.EmitAt(a, isa.Dec)
		Copy(e, b, product, tmp)
	})
}

// If runs body once when cond is nonzero. cond is cleared either way, so
// body must not rely on it.
func If(e Emitter, cond int, body func()) {
	e.Loop(cond, func() {
		if body != nil {
			body()
		}
		Zero(e, cond)
	})
}

// IfElse runs then when cond is nonzero and otherwise runs els. cond is
// cleared and flag is scratch.
func IfElse(e Emitter, cond, flag int, then, els func()) {
	AddConst(e, flag, 1)
	e.Loop(cond, func() {
		AddConst(e, flag, -1)
		if then != nil {
			then()
		}
		Zero(e, cond)
	})
	e.Loop(flag, func() {
		AddConst(e, flag, -1)
		if els != nil {
			els()
		}
	})
}

// IfZero runs body once when cond is zero. cond is cleared and flag is
// scratch.
func IfZero(e Emitter, cond, flag int, body func()) {
	IfElse(e, cond, flag, nil, body)
}

// PrintChar writes the byte ch using tmp, which is left at zero.
func PrintChar(e Emitter, ch byte, tmp int) {
	AddConst(e, tmp, int(ch))
	e.EmitAt(tmp, isa.Out)
	AddConst(e, tmp, -int(ch))
}

// ReadDigit reads one character into c and converts an ASCII digit to its
// value. c must be zero.
func ReadDigit(e Emitter, c int) {
	e.EmitAt(c, isa.In)
	AddConst(e, c, -'0')
}

// ReadSeparator reads one character and sets flag to 1 if it is a space,
// meaning another coefficient follows, or leaves it 0 for a newline or end
// of input. flag must be zero; tmp is scratch.
func ReadSeparator(e Emitter, flag, tmp int) {
	e.EmitAt(tmp, isa.In)
	AddConst(e, tmp, -' ')
	AddConst(e, flag, 1)
	e.Loop(tmp, func() {
		AddConst(e, flag, -1)
		Zero(e, tmp)
	})
}
