package cpu

const (
	MEMORY_SIZE = 256 // Default memory capacity, in bytes.
)

// Memory is a fixed size, byte addressable RAM.
type Memory struct {
	cells []uint8
}

// NewMemory creates a zeroed memory of size bytes.
func NewMemory(size int) (mem *Memory) {
	if size <= 0 {
		size = MEMORY_SIZE
	}

	mem = &Memory{cells: make([]uint8, size)}

	return
}

// Len returns the capacity of the memory.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Valid returns true if addr is inside [0, Len()).
func (mem *Memory) Valid(addr int) bool {
	return addr >= 0 && addr < len(mem.cells)
}

// Read returns the byte at addr.
func (mem *Memory) Read(addr int) (value uint8, err error) {
	if !mem.Valid(addr) {
		err = ErrAddress(addr)
		return
	}

	value = mem.cells[addr]
	return
}

// Write stores value at addr.
func (mem *Memory) Write(addr int, value uint8) (err error) {
	if !mem.Valid(addr) {
		err = ErrAddress(addr)
		return
	}

	mem.cells[addr] = value
	return
}

// Load copies data into memory starting at addr. Nothing is written
// unless all of data fits.
func (mem *Memory) Load(addr int, data []uint8) (err error) {
	if len(data) == 0 {
		return
	}

	if !mem.Valid(addr) {
		err = ErrAddress(addr)
		return
	}

	end := addr + len(data) - 1
	if !mem.Valid(end) {
		err = ErrAddress(end)
		return
	}

	copy(mem.cells[addr:], data)
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.cells)
}
