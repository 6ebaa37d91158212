// Package verify provides debugging and validation tools for generated tape
// machine programs.
//
// This package implements the stages a generated program goes through
// before anyone trusts it:
//
// 1. Static Lint (lint.go): structural and layout checks without running code
//   - STRUCT checks: every loop bracket has a partner
//   - LAYOUT checks: each loop body leaves the cursor where it found it, and
//     the cursor never leaves the reserved region of the cell layout
//
// 2. Functional Simulator (funcsim.go): a plain fetch-execute interpreter
//   - Wrapping 8-bit cells on a fixed-size tape, EOF reads as 0
//   - Step limit, so a program that hangs fails instead of blocking
//   - Cells can be preloaded and snapshotted, which is how single macros
//     are checked in isolation
//
// 3. Scratch neutrality (neutral.go): diff two tape snapshots, ignoring the
// cells a macro declares as outputs.
//
// 4. Harness (harness.go): the derivative scenarios, a reference power-rule
// implementation and a runner.
//
// # Usage Example
//
//	program := compose.Generate()
//	tape := verify.LoadTapeInfoFromLayout(layout.Default())
//
//	issues := verify.RunLint(program, tape)
//	for _, issue := range issues {
//	    log.Printf("[%s] pos=%d cell=%d: %s", issue.Type, issue.Pos, issue.Cell, issue.Message)
//	}
//
//	fs := verify.NewFunctionalSimulator(program, tape)
//	if err := fs.Run([]byte("1 5 0 3\n"), 1_000_000); err != nil {
//	    panic(err)
//	}
//	fmt.Print(fs.Output()) // 5 0 9
//
// # Limitations
//
// - The lint cursor walk assumes loops exit at their entry offset, which is
//   what the emitter guarantees. A loop that violates it is reported, and
//   the walk continues from the entry offset.
// - Overflow is not detected: cells wrap, as on the target machine.
package verify

import (
	"errors"

	"github.com/sarchlab/polyderiv/layout"
)

// DefaultTapeCells is the tape length of the reference interpreter.
const DefaultTapeCells = 30000

var (
	// ErrStepLimit is returned when a program does not halt within the
	// step budget.
	ErrStepLimit = errors.New("step limit exceeded")

	// ErrCursorUnderflow is returned when the cursor moves left of cell 0.
	ErrCursorUnderflow = errors.New("cursor moved below cell 0")

	// ErrCursorOverflow is returned when the cursor moves past the tape end.
	ErrCursorOverflow = errors.New("cursor moved past the end of the tape")
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct  IssueType = "STRUCT"  // unmatched loop bracket
	IssueLayout  IssueType = "LAYOUT"  // cursor outside the layout or loop not cursor-neutral
	IssueScratch IssueType = "SCRATCH" // cell changed that is not a declared output
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT, LAYOUT or SCRATCH
	Pos     int                    // Instruction index (-1 if not applicable)
	Cell    int                    // Tape offset (-1 if not applicable)
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}

// TapeInfo describes the tape a program runs on.
type TapeInfo struct {
	Cells    int // Physical tape length
	Reserved int // Cells reserved by the layout; 0 disables the layout check
}

// LoadTapeInfoFromLayout creates a TapeInfo for programs generated against
// l, on a tape of the default length.
func LoadTapeInfoFromLayout(l *layout.Layout) *TapeInfo {
	return &TapeInfo{
		Cells:    DefaultTapeCells,
		Reserved: l.Size(),
	}
}
