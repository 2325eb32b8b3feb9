package io

import (
	"fmt"
	"io"
	"strconv"
)

const (
	HALT_MESSAGE = "Halting CPU" // Halt notification line.
)

// Tape is a Console that writes to byte streams.
// Prints and the halt notification go to Output, trace lines go to Debug,
// or to Output if Debug is nil.
type Tape struct {
	Output io.Writer
	Debug  io.Writer

	Lines int // Lines written to Output.
}

var _ Console = (*Tape)(nil)

// writeLine writes text and a newline to out.
func (tc *Tape) writeLine(out io.Writer, text string) (err error) {
	if out == nil {
		err = ErrConsoleMissing
		return
	}

	_, err = io.WriteString(out, text+"\n")
	return
}

// Print writes the decimal value on a line.
func (tc *Tape) Print(value uint8) (err error) {
	err = tc.writeLine(tc.Output, strconv.Itoa(int(value)))
	if err == nil {
		tc.Lines++
	}
	return
}

// PrintChar writes the value as a raw byte.
func (tc *Tape) PrintChar(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrConsoleMissing
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err == nil && value == '\n' {
		tc.Lines++
	}
	return
}

// Halt writes the halt notification line.
func (tc *Tape) Halt() (err error) {
	err = tc.writeLine(tc.Output, HALT_MESSAGE)
	if err == nil {
		tc.Lines++
	}
	return
}

// Trace writes a diagnostic line.
func (tc *Tape) Trace(line string) (err error) {
	out := tc.Debug
	if out == nil {
		out = tc.Output
	}

	err = tc.writeLine(out, line)
	if err != nil {
		err = fmt.Errorf("trace: %w", err)
	}
	return
}
