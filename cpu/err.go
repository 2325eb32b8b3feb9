package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrAddressRange    = errors.New(f("address out of range"))
	ErrRegisterRange   = errors.New(f("register out of range"))
	ErrOpcodeUnknown   = errors.New(f("opcode unknown"))
	ErrOpcodeDuplicate = errors.New(f("opcode duplicated"))
	ErrTableFrozen     = errors.New(f("dispatch table frozen"))
	ErrHandlerMissing  = errors.New(f("instruction handler missing"))
	ErrPolicyUnknown   = errors.New(f("unknown opcode policy invalid"))
	ErrTickLimit       = errors.New(f("tick limit exceeded"))

	// ALU errors
	ErrAluOp     = errors.New(f("unsupported alu operation"))
	ErrAluDivide = errors.New(f("alu divide by zero"))

	// Operand decode errors
	ErrOperandArg1 = errors.New(f("arg1"))
	ErrOperandArg2 = errors.New(f("arg2"))

	// Loader errors
	ErrLineMalformed   = errors.New(f("not a binary byte"))
	ErrProgramSize     = errors.New(f("program larger than memory"))
	ErrExpressionRange = errors.New(f("expression out of byte range"))
)

// ErrAddress is an out of range memory access.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %d out of range", int(ea))
}

func (ea ErrAddress) Unwrap() error {
	return ErrAddressRange
}

// ErrRegister is an out of range register index.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register r%d out of range", int(er))
}

func (er ErrRegister) Unwrap() error {
	return ErrRegisterRange
}

// ErrAluOpCode is an ALU operation with no implementation.
type ErrAluOpCode AluOp

func (ea ErrAluOpCode) Error() string {
	return f("alu operation %v", AluOp(ea).String())
}

// ErrOpcode is a fetched byte with no bound instruction.
type ErrOpcode struct {
	Opcode Opcode
	Pc     int
}

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x at pc 0x%02x", uint8(eo.Opcode), eo.Pc)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeUnknown {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrInstruction is a failure while executing a decoded instruction.
type ErrInstruction struct {
	Opcode Opcode
	Pc     int
	Err    error
}

func (ei *ErrInstruction) Error() string {
	return f("0x%02x: %v %v", ei.Pc, ei.Opcode, ei.Err)
}

func (ei *ErrInstruction) Unwrap() error {
	return ei.Err
}

// ErrSyntax locates a loader error in the program text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseExpression is a $(...) expression that could not be evaluated.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
