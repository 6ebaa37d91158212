// Package compose assembles the derivative program out of macros.
//
// The generated program reads single-digit polynomial coefficients, low
// degree first, separated by spaces and ended by a newline or end of input.
// It prints the coefficients of the derivative in decimal, separated by
// spaces, followed by a newline. A constant polynomial prints "0".
package compose

import (
	"log/slog"

	"github.com/sarchlab/polyderiv/emit"
	"github.com/sarchlab/polyderiv/isa"
	"github.com/sarchlab/polyderiv/layout"
	"github.com/sarchlab/polyderiv/macro"
	"github.com/sarchlab/polyderiv/util"
)

// DefaultLineWidth is the wrap width of the text form.
const DefaultLineWidth = 80

// Composer generates the derivative program for one layout.
type Composer struct {
	name            string
	layout          *layout.Layout
	trailingNewline bool
	lineWidth       int
}

// Builder can create composers.
type Builder struct {
	layout          *layout.Layout
	trailingNewline bool
	lineWidth       int
}

// NewBuilder returns a builder with the default layout, a trailing newline
// and the default line width.
func NewBuilder() Builder {
	return Builder{
		trailingNewline: true,
		lineWidth:       DefaultLineWidth,
	}
}

// WithLayout sets the cell layout the program runs on.
func (b Builder) WithLayout(l *layout.Layout) Builder {
	b.layout = l
	return b
}

// WithTrailingNewline sets whether the program ends its output with a
// newline.
func (b Builder) WithTrailingNewline(on bool) Builder {
	b.trailingNewline = on
	return b
}

// WithLineWidth sets the wrap width of Text. Zero or less disables
// wrapping.
func (b Builder) WithLineWidth(width int) Builder {
	b.lineWidth = width
	return b
}

// Build creates a composer.
func (b Builder) Build(name string) *Composer {
	l := b.layout
	if l == nil {
		l = layout.Default()
	}

	return &Composer{
		name:            name,
		layout:          l,
		trailingNewline: b.trailingNewline,
		lineWidth:       b.lineWidth,
	}
}

// Name returns the name of the composer.
func (c *Composer) Name() string {
	return c.name
}

// Layout returns the layout the program is generated for.
func (c *Composer) Layout() *layout.Layout {
	return c.layout
}

// Generate emits the derivative program. Every call starts from a fresh
// emitter, so the result is the same on every call.
func (c *Composer) Generate() isa.Program {
	l := c.layout
	var (
		loop    = l.Offset(layout.RoleLoopFlag)
		sepTemp = l.Offset(layout.RoleSeparatorTemp)
		coeff   = l.Offset(layout.RoleCoefficient)
		degree  = l.Offset(layout.RoleDegree)
		product = l.Offset(layout.RoleProduct)
		scratch = l.Offset(layout.RoleScratch)
		sepFlag = l.Offset(layout.RoleSeparatorFlag)
		ws      = macro.WorkspaceFrom(l)
	)

	e := emit.New()

	// The constant term does not survive differentiation.
	macro.ReadDigit(e, coeff)
	macro.Zero(e, coeff)

	macro.ReadSeparator(e, loop, sepTemp)
	macro.AddConst(e, degree, 1)

	// Constant-only input still prints a value.
	macro.Copy(e, loop, sepTemp, sepFlag)
	macro.IfZero(e, sepTemp, sepFlag, func() {
		macro.PrintChar(e, '0', sepTemp)
	})

	e.Loop(loop, func() {
		macro.AddConst(e, loop, -1)

		macro.ReadDigit(e, coeff)
		macro.Multiply(e, coeff, degree, product, scratch)
		macro.ReadSeparator(e, loop, sepTemp)
		macro.PrintDecimal(e, product, ws)

		// Separators go between values only.
		macro.Copy(e, loop, sepTemp, sepFlag)
		macro.If(e, sepTemp, func() {
			macro.PrintChar(e, ' ', sepFlag)
		})

		macro.AddConst(e, degree, 1)
	})

	if c.trailingNewline {
		macro.PrintChar(e, '\n', sepTemp)
	}

	p := e.Program()
	util.Trace("Compose",
		"Name", c.name,
		"Layout", l.Name(),
		"Length", len(p),
	)

	return p
}

// Text returns the generated program in its wrapped text form.
func (c *Composer) Text() string {
	return c.Generate().Format(c.lineWidth)
}

// Generate emits the derivative program on the default layout.
func Generate() isa.Program {
	c := NewBuilder().Build("Derivative")
	p := c.Generate()

	slog.Debug("Generated derivative program",
		"Layout", c.layout.Name(),
		"Length", len(p),
	)

	return p
}
