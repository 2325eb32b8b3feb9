// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	reBinary     = regexp.MustCompile(`^[01]{1,8}$`)
	reExpression = regexp.MustCompile(`^\$\((.*)\)$`)
)

// Loader reads LS-8 byte-code text into a Program.
//
// Each line holds one byte, written as up to eight binary digits or as a
// $(...) expression, optionally followed by a '#' comment. Blank lines are
// ignored. Other lines are malformed: they are skipped, unless Strict is set.
type Loader struct {
	Verbose bool // If set, verbosely logs the loader actions.
	Strict  bool // If set, malformed lines are an error.

	Skipped []ErrSyntax // Malformed lines skipped by the last Parse.

	predefine map[string]string // Predefines
}

// Predefine defines a new name for $(...) expressions, or redefines an
// existing one.
func (ld *Loader) Predefine(equ string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{equ: value}
	} else {
		ld.predefine[equ] = value
	}
}

// PredefineAll defines every name from defines.
func (ld *Loader) PredefineAll(defines iter.Seq2[string, string]) {
	for equ, value := range defines {
		ld.Predefine(equ, value)
	}
}

// parenEval does $(...) evaluations.
func (ld *Loader) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{Name: "ls8"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range maps.All(ld.predefine) {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Non-integer predefines are not visible to expressions.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xff {
		err = errors.Join(ErrParseExpression(expr), ErrExpressionRange)
		return
	}

	value = uint8(st_int64)
	return
}

// parseLine parses a comment free line. Blank lines return ok == false.
func (ld *Loader) parseLine(line string) (value uint8, ok bool, err error) {
	if len(line) == 0 {
		return
	}

	switch {
	case reBinary.MatchString(line):
		var v64 uint64
		v64, err = strconv.ParseUint(line, 2, 8)
		if err != nil {
			err = errors.Join(ErrLineMalformed, err)
			return
		}
		value = uint8(v64)
	case reExpression.MatchString(line):
		expr := reExpression.FindStringSubmatch(line)[1]
		value, err = ld.parenEval(expr)
		if err != nil {
			err = errors.Join(ErrLineMalformed, err)
			return
		}
	default:
		err = ErrLineMalformed
		return
	}

	ok = true
	return
}

// Parse parses an input stream into a Program.
// Lines have no length limit.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	reader := bufio.NewReader(input)

	prog = &Program{}
	ld.Skipped = nil

	var lineno int
	for done := false; !done; {
		text, rerr := reader.ReadString('\n')
		switch {
		case rerr == io.EOF:
			done = true
			if len(text) == 0 {
				continue
			}
		case rerr != nil:
			prog = nil
			err = rerr
			return
		}
		text = strings.TrimRight(text, "\r\n")
		lineno += 1

		text_comment := strings.SplitN(text, "#", 2)
		line := strings.TrimSpace(text_comment[0])

		value, ok, perr := ld.parseLine(line)
		if perr != nil {
			synerr := ErrSyntax{LineNo: lineno, Line: text, Err: perr}
			if ld.Strict {
				prog = nil
				err = synerr
				return
			}
			if ld.Verbose {
				log.Printf("loader: skipped %v", synerr)
			}
			ld.Skipped = append(ld.Skipped, synerr)
			continue
		}
		if !ok {
			continue
		}

		if ld.Verbose {
			log.Printf("%02x: %08b ; line %d", prog.Len(), value, lineno)
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo: lineno,
			Addr:   prog.Len(),
			Text:   line,
			Value:  value,
		})
	}

	return
}
