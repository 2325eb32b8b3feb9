package cpu

import (
	"iter"
	"maps"
	"slices"
)

// Table is the instruction dispatch table, mapping opcodes to handlers.
// Once frozen, it can no longer be modified.
type Table struct {
	entries map[Opcode]Instruction
	frozen  bool
}

// NewTable creates a dispatch table with the given instructions registered.
func NewTable(insts ...Instruction) (table *Table, err error) {
	table = &Table{
		entries: make(map[Opcode]Instruction, len(insts)),
	}

	for _, inst := range insts {
		err = table.Register(inst)
		if err != nil {
			table = nil
			return
		}
	}

	return
}

// DefaultTable returns a frozen table of the LS-8 instruction set.
func DefaultTable() (table *Table) {
	table, err := NewTable(slices.Collect(Isa())...)
	if err != nil {
		panic("isa: " + err.Error())
	}

	table.Freeze()

	return
}

// Register binds an instruction to its opcode.
func (table *Table) Register(inst Instruction) (err error) {
	switch {
	case table.frozen:
		err = ErrTableFrozen
		return
	case inst.Exec == nil:
		err = ErrHandlerMissing
		return
	}

	if table.entries == nil {
		table.entries = make(map[Opcode]Instruction)
	}

	_, ok := table.entries[inst.Opcode]
	if ok {
		err = ErrOpcodeDuplicate
		return
	}

	table.entries[inst.Opcode] = inst

	return
}

// Freeze prevents further registration.
func (table *Table) Freeze() {
	table.frozen = true
}

// Frozen returns true if the table can no longer be modified.
func (table *Table) Frozen() bool {
	return table.frozen
}

// Lookup returns the instruction bound to op.
func (table *Table) Lookup(op Opcode) (inst Instruction, err error) {
	inst, ok := table.entries[op]
	if !ok {
		err = ErrOpcode{Opcode: op, Pc: -1}
	}

	return
}

// Len returns the number of registered instructions.
func (table *Table) Len() int {
	return len(table.entries)
}

// All returns the registered instructions, in opcode order.
func (table *Table) All() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, op := range slices.Sorted(maps.Keys(table.entries)) {
			if !yield(table.entries[op]) {
				return
			}
		}
	}
}
