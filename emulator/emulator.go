// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator ties an LS-8 CPU to its loaded program and console.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"os"
	"strings"

	stdio "io"

	"github.com/ezrec/ls8/config"
	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
	"github.com/ezrec/ls8/translate"
)

var _emulator_defines = map[string]string{
	"HALT":    fmt.Sprintf("%#x", uint8(cpu.OP_HLT)),
	"REG_MAX": fmt.Sprintf("%d", cpu.REGISTER_COUNT-1),
}

// Emulator state. CPU + program + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.
	Loader   cpu.Loader   // Program loader.

	Tape io.Tape // Console for prints, halt and trace lines.

	defines map[string]string
}

// NewEmulator creates a new emulator from a configuration.
// A nil configuration uses the defaults. A configured locale becomes the
// process wide message language.
func NewEmulator(cfg *config.Config) (emu *Emulator, err error) {
	if cfg == nil {
		cfg = config.Default()
	}

	err = cfg.Validate()
	if err != nil {
		return
	}

	policy, err := cfg.Policy()
	if err != nil {
		return
	}

	if len(cfg.Output.Locale) != 0 {
		translate.SetLanguage(cfg.Output.Locale)
	}

	emu = &Emulator{
		Verbose: cfg.Output.Verbose,
		Cpu:     cpu.NewCpu(cfg.Machine.Memory),
		Program: &cpu.Program{},
		defines: maps.Clone(cfg.Loader.Defines),
	}

	emu.Tape.Output = os.Stdout

	emu.Cpu.Console = &emu.Tape
	emu.Cpu.Policy = policy
	emu.Cpu.MaxTicks = cfg.Machine.MaxTicks
	emu.Cpu.Tracing = cfg.Output.Trace
	emu.Cpu.Verbose = cfg.Output.Verbose

	emu.Loader.Strict = cfg.Loader.Strict
	emu.Loader.Verbose = cfg.Output.Verbose

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		maps.All(emu.defines),
	)
}

// Load parses program text and resets the emulator with it.
// On failure the previous program stays loaded.
func (emu *Emulator) Load(input stdio.Reader) (err error) {
	emu.Loader.PredefineAll(emu.Defines())

	prog, err := emu.Loader.Parse(input)
	if err != nil {
		return
	}

	if emu.Verbose {
		for _, skipped := range emu.Loader.Skipped {
			log.Printf("emulator: %v", skipped)
		}
	}

	if prog.Len() > emu.Cpu.Memory.Len() {
		err = errors.Join(cpu.ErrProgramSize, cpu.ErrAddress(prog.Len()-1))
		return
	}

	emu.Program = prog

	err = emu.Reset()
	return
}

// LoadString parses program text and resets the emulator with it.
func (emu *Emulator) LoadString(text string) (err error) {
	return emu.Load(strings.NewReader(text))
}

// LoadFile parses a program file and resets the emulator with it.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Load(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

// Reset the emulator state: clear memory and CPU, then place the program.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = ErrProgramMissing
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Memory.Reset()
	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Binary())
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// LineNo returns the source line number for the current program counter,
// or 0 if the PC is outside the program.
func (emu *Emulator) LineNo() int {
	line, ok := emu.Program.Debug(emu.Cpu.Pc)
	if !ok {
		return 0
	}

	return line.LineNo
}

// wrap annotates a CPU error with the program location.
func (emu *Emulator) wrap(err error, pc int, lineno int) error {
	if err == nil {
		return nil
	}

	return &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc, lineno := emu.Cpu.Pc, emu.LineNo()

	err = emu.wrap(emu.Cpu.Tick(), pc, lineno)
	done = !emu.Cpu.Running()

	return
}

// Run runs the program until it halts, fails, or ctx is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	// A failing instruction leaves the PC on itself.
	err = emu.wrap(emu.Cpu.Run(ctx), emu.Cpu.Pc, emu.LineNo())
	return
}
