// Package cpu implements the LS-8 microprocessor and its program loader.
//
// The CPU consists of a program counter (PC), eight 8-bit general-purpose
// registers (r0-r7), a byte addressable memory, and an ALU. Each cycle the
// CPU fetches the opcode at the PC, looks it up in a dispatch Table, reads
// the operand bytes the instruction declares, and runs its handler. The
// PC then advances past the instruction, unless the handler halted the CPU.
//
// An instruction either completes, or fails without modifying any register
// or memory cell. Opcodes with no handler either halt the CPU with an
// ErrOpcode, or are skipped one byte at a time, as selected by the Policy.
//
// The loader reads the LS-8 text format: one binary byte per line, with
// '#' comments, and $(...) compile-time expressions.
package cpu
