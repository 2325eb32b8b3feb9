package cpu

const (
	REGISTER_COUNT = 8 // Number of general purpose registers.
	REGISTER_WIDTH = 8 // Register width, in bits.
)

// Registers is the general purpose register bank.
type Registers [REGISTER_COUNT]uint8

// Valid returns true if index names a register.
func (regs *Registers) Valid(index int) bool {
	return index >= 0 && index < len(regs)
}

// Get returns the value of register index.
func (regs *Registers) Get(index int) (value uint8, err error) {
	if !regs.Valid(index) {
		err = ErrRegister(index)
		return
	}

	value = regs[index]
	return
}

// Set updates register index to value.
func (regs *Registers) Set(index int, value uint8) (err error) {
	if !regs.Valid(index) {
		err = ErrRegister(index)
		return
	}

	regs[index] = value
	return
}

// Reset zeros all registers.
func (regs *Registers) Reset() {
	clear(regs[:])
}
