// Package io provides the output collaborators for the LS-8 CPU.
// The CPU prints register values, halt notifications and trace lines
// through a Console; Tape is a Console over plain byte streams.
package io

// Console defines the interface for the LS-8 output device.
type Console interface {
	// Print writes a value as a decimal number on its own line.
	Print(value uint8) error
	// PrintChar writes a value as a single character.
	PrintChar(value uint8) error
	// Halt writes the halt notification.
	Halt() error
	// Trace writes a single diagnostic line.
	Trace(line string) error
}
