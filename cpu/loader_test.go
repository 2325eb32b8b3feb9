package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parse(ld *Loader, lines ...string) (*Program, error) {
	return ld.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

func TestLoader_Lenient(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	prog, err := parse(ld, "10000010 # comment", "", "not binary", "00000001")
	assert.NoError(err)
	assert.Equal([]uint8{0x82, 0x01}, prog.Binary())

	if assert.Len(ld.Skipped, 1) {
		assert.Equal(3, ld.Skipped[0].LineNo)
		assert.Equal("not binary", ld.Skipped[0].Line)
		assert.ErrorIs(ld.Skipped[0], ErrLineMalformed)
	}

	assert.Equal(Line{LineNo: 1, Addr: 0, Text: "10000010", Value: 0x82}, prog.Lines[0])
	assert.Equal(Line{LineNo: 4, Addr: 1, Text: "00000001", Value: 0x01}, prog.Lines[1])
}

func TestLoader_Strict(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{Strict: true}
	prog, err := parse(ld, "10000010 # comment", "", "not binary", "00000001")
	assert.Nil(prog)
	assert.ErrorIs(err, ErrLineMalformed)

	var synerr ErrSyntax
	if assert.True(errors.As(err, &synerr)) {
		assert.Equal(3, synerr.LineNo)
	}
}

func TestLoader_Lines(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line  string
		ok    bool
		value uint8
	}){
		{"1", true, 1},
		{"   00001010   ", true, 10},
		{"11111111", true, 0xff},
		{"# only a comment", false, 0},
		{"\t", false, 0},
		{"01000111#PRN", true, 0x47},
		{"111111111", false, 0},
		{"00000002", false, 0},
		{"0b1010", false, 0},
		{"1010 1010", false, 0},
	}

	for _, entry := range table {
		ld := &Loader{}
		prog, err := parse(ld, entry.line)
		assert.NoError(err, entry.line)
		if entry.ok {
			assert.Equal([]uint8{entry.value}, prog.Binary(), entry.line)
		} else {
			assert.Equal(0, prog.Len(), entry.line)
		}
	}
}

func TestLoader_Expressions(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(MEMORY_SIZE)

	ld := &Loader{Strict: true}
	ld.PredefineAll(cpu.Defines())
	ld.Predefine("ANSWER", "0x2a")

	prog, err := parse(ld,
		"$(LDI)      # LDI R0,9",
		"$(R0)",
		"$(3 * 3)",
		"$(PRN)",
		"$(R0)",
		"$(ANSWER)",
		"$(MEMORY_SIZE - 1)",
		"$(HLT)",
	)
	assert.NoError(err)
	assert.Equal([]uint8{0x82, 0, 9, 0x47, 0, 42, 255, 0x01}, prog.Binary())
}

func TestLoader_ExpressionErrors(t *testing.T) {
	assert := assert.New(t)

	for _, line := range []string{"$(256)", "$(-1)", "$(UNDEFINED)", "$('text')", "$(1 +)"} {
		ld := &Loader{Strict: true}
		_, err := parse(ld, line)
		assert.ErrorIs(err, ErrLineMalformed, line)

		ld = &Loader{}
		prog, err := parse(ld, line, "1")
		assert.NoError(err, line)
		assert.Equal([]uint8{1}, prog.Binary(), line)
		assert.Len(ld.Skipped, 1, line)
	}

	ld := &Loader{Strict: true}
	_, err := parse(ld, "$(300)")
	assert.ErrorIs(err, ErrExpressionRange)
}

func TestLoader_Reuse(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	_, err := parse(ld, "junk", "1")
	assert.NoError(err)
	assert.Len(ld.Skipped, 1)

	_, err = parse(ld, "1")
	assert.NoError(err)
	assert.Len(ld.Skipped, 0)
}

func TestLoader_LongLine(t *testing.T) {
	assert := assert.New(t)

	long := strings.Repeat("x", 70000)

	ld := &Loader{}
	prog, err := parse(ld, "10000010", long, "00000001")
	if !assert.NoError(err) {
		return
	}
	assert.Equal([]uint8{0x82, 0x01}, prog.Binary())
	if assert.Len(ld.Skipped, 1) {
		assert.Equal(2, ld.Skipped[0].LineNo)
		assert.Equal(long, ld.Skipped[0].Line)
	}

	ld = &Loader{Strict: true}
	prog, err = parse(ld, "10000010", long, "00000001")
	assert.Nil(prog)
	assert.ErrorIs(err, ErrLineMalformed)

	var synerr ErrSyntax
	if assert.True(errors.As(err, &synerr)) {
		assert.Equal(2, synerr.LineNo)
	}
}

func TestLoader_CarriageReturn(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{Strict: true}
	prog, err := ld.Parse(strings.NewReader("10000010\r\n00000001\r\n"))
	assert.NoError(err)
	assert.Equal([]uint8{0x82, 0x01}, prog.Binary())
}

func TestLoader_SkippedKept(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	_, err := parse(ld, "junk", "more junk", "1")
	assert.NoError(err)
	skipped := ld.Skipped

	_, err = parse(ld, "other", "1")
	assert.NoError(err)
	assert.Len(ld.Skipped, 1)

	if assert.Len(skipped, 2) {
		assert.Equal("junk", skipped[0].Line)
		assert.Equal("more junk", skipped[1].Line)
	}
}
