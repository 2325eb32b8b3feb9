package cpu

import (
	"errors"
)

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0)  // add
	ALU_OP_SUB = AluOp(1)  // sub
	ALU_OP_MUL = AluOp(2)  // mul
	ALU_OP_DIV = AluOp(3)  // div
	ALU_OP_MOD = AluOp(4)  // mod
	ALU_OP_AND = AluOp(5)  // and
	ALU_OP_OR  = AluOp(6)  // or
	ALU_OP_XOR = AluOp(7)  // xor
	ALU_OP_SHL = AluOp(8)  // shl
	ALU_OP_SHR = AluOp(9)  // shr
	ALU_OP_NOT = AluOp(10) // not
	ALU_OP_INC = AluOp(11) // inc
	ALU_OP_DEC = AluOp(12) // dec
)

// Unary returns true if the operation ignores its source operand.
func (op AluOp) Unary() bool {
	switch op {
	case ALU_OP_NOT, ALU_OP_INC, ALU_OP_DEC:
		return true
	}
	return false
}

// Alu applies op to registers dst and src, storing the result in dst.
// On error, no register is modified.
func (cpu *Cpu) Alu(op AluOp, dst, src int) (err error) {
	a, err := cpu.Register.Get(dst)
	if err != nil {
		err = errors.Join(ErrOperandArg1, err)
		return
	}

	var b uint8
	if !op.Unary() {
		b, err = cpu.Register.Get(src)
		if err != nil {
			err = errors.Join(ErrOperandArg2, err)
			return
		}
	}

	output, err := doAlu(op, a, b)
	if err != nil {
		return
	}

	err = cpu.Register.Set(dst, output)
	return
}

// doAlu performs the requested ALU action, and returns the output value.
// Arithmetic wraps at the register width.
func doAlu(op AluOp, input uint8, value uint8) (output uint8, err error) {
	switch op {
	case ALU_OP_ADD:
		output = input + value
	case ALU_OP_SUB:
		output = input - value
	case ALU_OP_MUL:
		output = input * value
	case ALU_OP_DIV:
		if value == 0 {
			err = ErrAluDivide
			return
		}
		output = input / value
	case ALU_OP_MOD:
		if value == 0 {
			err = ErrAluDivide
			return
		}
		output = input % value
	case ALU_OP_AND:
		output = input & value
	case ALU_OP_OR:
		output = input | value
	case ALU_OP_XOR:
		output = input ^ value
	case ALU_OP_SHL:
		output = input << (value & 7)
	case ALU_OP_SHR:
		output = input >> (value & 7)
	case ALU_OP_NOT:
		output = ^input
	case ALU_OP_INC:
		output = input + 1
	case ALU_OP_DEC:
		output = input - 1
	default:
		err = errors.Join(ErrAluOp, ErrAluOpCode(op))
	}

	return
}
