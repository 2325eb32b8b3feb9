package cpu

import (
	"iter"
)

// Line is a single program byte and the source line it came from.
type Line struct {
	LineNo int    // Source line number, starting at 1.
	Addr   int    // Memory address of the byte.
	Text   string // Source text, without comment.
	Value  uint8  // Byte value.
}

// Program is a loaded LS-8 program, placed from address 0.
type Program struct {
	Lines []Line
}

// Len returns the size of the program in bytes.
func (prog *Program) Len() int {
	return len(prog.Lines)
}

// Debug returns the source line for the byte at addr.
func (prog *Program) Debug(addr int) (line Line, ok bool) {
	if addr < 0 || addr >= len(prog.Lines) {
		return
	}

	line = prog.Lines[addr]
	ok = true
	return
}

// Binary returns the program bytes.
func (prog *Program) Binary() (bins []uint8) {
	for _, value := range prog.Bytes() {
		bins = append(bins, value)
	}

	return
}

// Bytes iterates over the program bytes by address.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Addr, line.Value) {
				return
			}
		}
	}
}
