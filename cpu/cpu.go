package cpu

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"os"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Console is the CPU output device.
type Console io.Console

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Tracing bool // Set to send a trace line to the console every cycle.

	Memory   *Memory   // Program and data memory.
	Register Registers // Register bank.
	Pc       int       // Program counter.
	State    State     // Run state.

	Policy   Policy  // Unknown opcode policy.
	MaxTicks int     // Cycle limit for Run, 0 for none.
	Console  Console // Output device.

	Ticks int // Cycles since reset.

	table *Table
}

// NewCpu creates a new CPU with size bytes of memory and the LS-8
// instruction set.
func NewCpu(size int) (cpu *Cpu) {
	cpu = NewCpuWithTable(size, DefaultTable())

	return
}

// NewCpuWithTable creates a new CPU with size bytes of memory that
// dispatches through table. The table is frozen.
func NewCpuWithTable(size int, table *Table) (cpu *Cpu) {
	table.Freeze()

	cpu = &Cpu{
		Memory:  NewMemory(size),
		Console: &io.Tape{Output: os.Stdout},
		table:   table,
	}

	return
}

// Table returns the dispatch table of the CPU.
func (cpu *Cpu) Table() *Table {
	return cpu.table
}

// Defines returns the names the loader may use in $(...) expressions.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%d", cpu.Memory.Len()),
	}

	for n := range cpu.Register {
		defines[fmt.Sprintf("R%d", n)] = fmt.Sprintf("%d", n)
	}

	for inst := range cpu.table.All() {
		defines[inst.Name] = fmt.Sprintf("0b%08b", uint8(inst.Opcode))
	}

	return maps.All(defines)
}

// Reset the CPU state.
// - Clears the registers and program counter.
// - Zeros the tick counter.
// - Halts the CPU.
// Memory is left intact.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.State = STATE_HALTED
}

// Load places program in memory at address 0.
func (cpu *Cpu) Load(program []uint8) (err error) {
	if len(program) > cpu.Memory.Len() {
		err = errors.Join(ErrProgramSize, ErrAddress(len(program)-1))
		return
	}

	err = cpu.Memory.Load(0, program)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}

	return
}

// Halt stops the CPU at the end of the current cycle.
func (cpu *Cpu) Halt() {
	cpu.State = STATE_HALTED
}

// Running returns true while the CPU is executing.
func (cpu *Cpu) Running() bool {
	return cpu.State == STATE_RUNNING
}

// fetch reads the opcode at the program counter and its operands.
func (cpu *Cpu) fetch() (op Opcode, inst Instruction, operands []uint8, err error) {
	value, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	op = Opcode(value)

	inst, err = cpu.table.Lookup(op)
	if err != nil {
		err = ErrOpcode{Opcode: op, Pc: cpu.Pc}
		return
	}

	operands = make([]uint8, inst.Operands)
	for n := range operands {
		operands[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			err = &ErrInstruction{Opcode: op, Pc: cpu.Pc, Err: err}
			return
		}
	}

	return
}

// Tick executes a single fetch-decode-execute cycle.
// The instruction either completes, or fails without modifying any
// register or memory. Any error halts the CPU.
func (cpu *Cpu) Tick() (err error) {
	defer func() {
		if err != nil {
			cpu.Halt()
		}
	}()

	cpu.State = STATE_RUNNING

	if cpu.Tracing {
		err = cpu.Console.Trace(cpu.Trace())
		if err != nil {
			return
		}
	}

	pc := cpu.Pc
	op, inst, operands, err := cpu.fetch()
	if errors.Is(err, ErrOpcodeUnknown) && cpu.Policy == POLICY_SKIP {
		if cpu.Verbose {
			log.Printf("cpu: %v, skipped", err)
		}
		err = nil
		cpu.Pc = pc + 1
		cpu.Ticks++
		return
	}
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%02x: %v %v", pc, inst.Name, operands)
	}

	err = inst.Exec(cpu, operands)
	if err != nil {
		err = &ErrInstruction{Opcode: op, Pc: pc, Err: err}
		return
	}

	cpu.Ticks++

	if cpu.State == STATE_HALTED {
		return
	}

	cpu.Pc = pc + inst.Size()

	return
}

// Run executes cycles until the CPU halts, an error occurs, the tick
// limit is reached, or ctx is done. Cancellation is only checked between
// instructions.
func (cpu *Cpu) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			cpu.Halt()
		}
	}()

	cpu.State = STATE_RUNNING

	for cpu.Running() {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		if cpu.MaxTicks > 0 && cpu.Ticks >= cpu.MaxTicks {
			err = ErrTickLimit
			return
		}

		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// peek returns a memory cell for display.
func (cpu *Cpu) peek(addr int) string {
	value, err := cpu.Memory.Read(addr)
	if err != nil {
		return "--"
	}

	return fmt.Sprintf("%02X", value)
}

// Trace returns the program counter, the three memory cells at it, and
// the registers, on a single line.
func (cpu *Cpu) Trace() string {
	var text strings.Builder

	fmt.Fprintf(&text, "TRACE: %02X | %v %v %v |", cpu.Pc,
		cpu.peek(cpu.Pc), cpu.peek(cpu.Pc+1), cpu.peek(cpu.Pc+2))

	for _, value := range cpu.Register {
		fmt.Fprintf(&text, " %02X", value)
	}

	return text.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"state",
		"ticks",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "state":
			strval = cpu.State.String()
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		default:
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X (%d)", val, val)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
