package core

import "bytes"

// Console is the machine's byte-oriented I/O device.
type Console interface {
	// Input returns the next input byte. ok is false once the input is
	// exhausted.
	Input() (b byte, ok bool)

	// Output receives one byte written by the program.
	Output(b byte)
}

// BufferConsole serves input from a byte slice and collects output in
// memory.
type BufferConsole struct {
	in  []byte
	pos int
	out bytes.Buffer
}

// NewBufferConsole creates a console that feeds input to the program.
func NewBufferConsole(input []byte) *BufferConsole {
	return &BufferConsole{in: input}
}

// Input implements Console.
func (c *BufferConsole) Input() (byte, bool) {
	if c.pos >= len(c.in) {
		return 0, false
	}
	b := c.in[c.pos]
	c.pos++
	return b, true
}

// Output implements Console.
func (c *BufferConsole) Output(b byte) {
	c.out.WriteByte(b)
}

// String returns everything written so far.
func (c *BufferConsole) String() string {
	return c.out.String()
}
