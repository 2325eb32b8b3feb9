package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Opcode is the leading byte of an instruction.
type Opcode uint8

// LS-8 opcodes. The top two bits of an opcode are its operand count.
const (
	OP_HLT = Opcode(0b00000001)
	OP_LDI = Opcode(0b10000010)
	OP_LD  = Opcode(0b10000011)
	OP_ST  = Opcode(0b10000100)
	OP_PRN = Opcode(0b01000111)
	OP_PRA = Opcode(0b01001000)
	OP_ADD = Opcode(0b10100000)
	OP_SUB = Opcode(0b10100001)
	OP_MUL = Opcode(0b10100010)
	OP_DIV = Opcode(0b10100011)
	OP_MOD = Opcode(0b10100100)
	OP_INC = Opcode(0b01100101)
	OP_DEC = Opcode(0b01100110)
	OP_AND = Opcode(0b10101000)
	OP_NOT = Opcode(0b01101001)
	OP_OR  = Opcode(0b10101010)
	OP_XOR = Opcode(0b10101011)
	OP_SHL = Opcode(0b10101100)
	OP_SHR = Opcode(0b10101101)
)

// Operands returns the operand count encoded in the opcode's top two bits.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// String returns the mnemonic of a known opcode, or its hex value.
func (op Opcode) String() string {
	inst, ok := isaIndex[op]
	if ok {
		return inst.Name
	}

	return fmt.Sprintf("0x%02x", uint8(op))
}

// Exec executes an instruction against the cpu, given its operand bytes.
// It must validate everything before the first register or memory write.
type Exec func(cpu *Cpu, operands []uint8) error

// Instruction binds an opcode to the handler that implements it.
type Instruction struct {
	Opcode   Opcode // Opcode byte.
	Name     string // Mnemonic.
	Operands int    // Operand bytes following the opcode.
	Exec     Exec   // Handler.
}

// Size returns the total encoded length of the instruction.
func (inst Instruction) Size() int {
	return 1 + inst.Operands
}

// String returns the instruction mnemonic and encoding.
func (inst Instruction) String() string {
	return fmt.Sprintf("%v(0b%08b/%d)", inst.Name, uint8(inst.Opcode), inst.Size())
}

// aluInstruction makes an instruction that routes its register operands
// through the ALU.
func aluInstruction(op Opcode, name string, alu AluOp) (inst Instruction) {
	inst = Instruction{
		Opcode:   op,
		Name:     name,
		Operands: 2,
		Exec: func(cpu *Cpu, operands []uint8) error {
			return cpu.Alu(alu, int(operands[0]), int(operands[1]))
		},
	}

	if alu.Unary() {
		inst.Operands = 1
		inst.Exec = func(cpu *Cpu, operands []uint8) error {
			return cpu.Alu(alu, int(operands[0]), int(operands[0]))
		}
	}

	return
}

// isa is the LS-8 instruction set.
var isa = []Instruction{
	{Opcode: OP_HLT, Name: "HLT", Operands: 0, Exec: execHlt},
	{Opcode: OP_LDI, Name: "LDI", Operands: 2, Exec: execLdi},
	{Opcode: OP_LD, Name: "LD", Operands: 2, Exec: execLd},
	{Opcode: OP_ST, Name: "ST", Operands: 2, Exec: execSt},
	{Opcode: OP_PRN, Name: "PRN", Operands: 1, Exec: execPrn},
	{Opcode: OP_PRA, Name: "PRA", Operands: 1, Exec: execPra},
	aluInstruction(OP_ADD, "ADD", ALU_OP_ADD),
	aluInstruction(OP_SUB, "SUB", ALU_OP_SUB),
	aluInstruction(OP_MUL, "MUL", ALU_OP_MUL),
	aluInstruction(OP_DIV, "DIV", ALU_OP_DIV),
	aluInstruction(OP_MOD, "MOD", ALU_OP_MOD),
	aluInstruction(OP_INC, "INC", ALU_OP_INC),
	aluInstruction(OP_DEC, "DEC", ALU_OP_DEC),
	aluInstruction(OP_AND, "AND", ALU_OP_AND),
	aluInstruction(OP_NOT, "NOT", ALU_OP_NOT),
	aluInstruction(OP_OR, "OR", ALU_OP_OR),
	aluInstruction(OP_XOR, "XOR", ALU_OP_XOR),
	aluInstruction(OP_SHL, "SHL", ALU_OP_SHL),
	aluInstruction(OP_SHR, "SHR", ALU_OP_SHR),
}

var isaIndex = func() map[Opcode]Instruction {
	index := make(map[Opcode]Instruction, len(isa))
	for _, inst := range isa {
		index[inst.Opcode] = inst
	}
	return index
}()

// Isa returns the LS-8 instruction set, in opcode order.
func Isa() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, op := range slices.Sorted(maps.Keys(isaIndex)) {
			if !yield(isaIndex[op]) {
				return
			}
		}
	}
}

// execHlt notifies the console and halts the CPU.
func execHlt(cpu *Cpu, operands []uint8) (err error) {
	err = cpu.Console.Halt()
	if err != nil {
		return
	}

	cpu.Halt()
	return
}

// execLdi loads an immediate: R[a] = imm
func execLdi(cpu *Cpu, operands []uint8) (err error) {
	err = cpu.Register.Set(int(operands[0]), operands[1])
	if err != nil {
		err = errors.Join(ErrOperandArg1, err)
	}
	return
}

// execLd loads from memory: R[a] = MEM[R[b]]
func execLd(cpu *Cpu, operands []uint8) (err error) {
	a, b := int(operands[0]), int(operands[1])
	if !cpu.Register.Valid(a) {
		err = errors.Join(ErrOperandArg1, ErrRegister(a))
		return
	}

	addr, err := cpu.Register.Get(b)
	if err != nil {
		err = errors.Join(ErrOperandArg2, err)
		return
	}

	value, err := cpu.Memory.Read(int(addr))
	if err != nil {
		err = errors.Join(ErrOperandArg2, err)
		return
	}

	err = cpu.Register.Set(a, value)
	return
}

// execSt stores to memory: MEM[R[a]] = R[b]
func execSt(cpu *Cpu, operands []uint8) (err error) {
	addr, err := cpu.Register.Get(int(operands[0]))
	if err != nil {
		err = errors.Join(ErrOperandArg1, err)
		return
	}

	value, err := cpu.Register.Get(int(operands[1]))
	if err != nil {
		err = errors.Join(ErrOperandArg2, err)
		return
	}

	err = cpu.Memory.Write(int(addr), value)
	if err != nil {
		err = errors.Join(ErrOperandArg1, err)
	}
	return
}

// execPrn prints R[a] as a decimal number.
func execPrn(cpu *Cpu, operands []uint8) (err error) {
	value, err := cpu.Register.Get(int(operands[0]))
	if err != nil {
		err = errors.Join(ErrOperandArg1, err)
		return
	}

	err = cpu.Console.Print(value)
	return
}

// execPra prints R[a] as a character.
func execPra(cpu *Cpu, operands []uint8) (err error) {
	value, err := cpu.Register.Get(int(operands[0]))
	if err != nil {
		err = errors.Join(ErrOperandArg1, err)
		return
	}

	err = cpu.Console.PrintChar(value)
	return
}
