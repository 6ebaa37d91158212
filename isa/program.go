package isa

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnmatchedBracket is wrapped by every BracketError.
var ErrUnmatchedBracket = errors.New("unmatched bracket")

// BracketError reports a loop bracket without a partner.
type BracketError struct {
	Pos int    // index of the bracket in the program
	Op  Opcode // LoopOpen or LoopClose
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("unmatched %s at position %d", e.Op.Symbol(), e.Pos)
}

func (e *BracketError) Unwrap() error {
	return ErrUnmatchedBracket
}

// Program is an ordered sequence of instructions.
type Program []Opcode

// Parse extracts the instructions from a program text. Bytes that are not
// instruction symbols are ignored.
func Parse(text string) Program {
	p := make(Program, 0, len(text))
	for i := 0; i < len(text); i++ {
		op := Opcode(text[i])
		if op.Valid() {
			p = append(p, op)
		}
	}
	return p
}

// String renders the program as one line of symbols.
func (p Program) String() string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, op := range p {
		sb.WriteByte(byte(op))
	}
	return sb.String()
}

// Format renders the program wrapped at width symbols per line. A width of
// zero or less gives a single line. The result always ends with a newline.
func (p Program) Format(width int) string {
	text := p.String()
	if width <= 0 {
		return text + "\n"
	}

	var sb strings.Builder
	for len(text) > width {
		sb.WriteString(text[:width])
		sb.WriteByte('\n')
		text = text[width:]
	}
	sb.WriteString(text)
	sb.WriteByte('\n')
	return sb.String()
}

// MatchBrackets pairs every LoopOpen with its LoopClose. The returned slice
// maps each bracket index to its partner index; other entries are -1.
func (p Program) MatchBrackets() ([]int, error) {
	jumps := make([]int, len(p))
	var stack []int

	for i, op := range p {
		jumps[i] = -1
		switch op {
		case LoopOpen:
			stack = append(stack, i)
		case LoopClose:
			if len(stack) == 0 {
				return nil, &BracketError{Pos: i, Op: LoopClose}
			}
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jumps[i] = j
			jumps[j] = i
		}
	}

	if len(stack) > 0 {
		return nil, &BracketError{Pos: stack[len(stack)-1], Op: LoopOpen}
	}

	return jumps, nil
}

// Stats summarizes a program.
type Stats struct {
	Length   int
	Counts   map[Opcode]int
	MaxDepth int
}

// Stats counts the instructions of the program and its deepest loop nesting.
func (p Program) Stats() Stats {
	s := Stats{
		Length: len(p),
		Counts: make(map[Opcode]int, len(Opcodes)),
	}

	depth := 0
	for _, op := range p {
		s.Counts[op]++
		switch op {
		case LoopOpen:
			depth++
			if depth > s.MaxDepth {
				s.MaxDepth = depth
			}
		case LoopClose:
			depth--
		}
	}

	return s
}
