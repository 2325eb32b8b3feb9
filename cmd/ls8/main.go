// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/ls8/config"
	"github.com/ezrec/ls8/emulator"
)

func main() {
	var conf string
	var trace bool
	var verbose bool
	var strict bool
	var policy string
	var ticks int
	var lang string

	flag.StringVar(&conf, "c", "", "ls8.toml machine configuration")
	flag.BoolVar(&trace, "t", false, "Trace every cycle")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&strict, "s", false, "Malformed program lines are errors")
	flag.StringVar(&policy, "p", "", "Unknown opcode policy (halt, skip)")
	flag.IntVar(&ticks, "m", -1, "Maximum cycles, 0 for no limit")
	flag.StringVar(&lang, "l", "", "Message language")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: %v [options] program.ls8", os.Args[0])
	}
	program := flag.Arg(0)

	cfg := config.Default()
	if len(conf) != 0 {
		var err error
		cfg, err = config.Load(conf)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "t":
			cfg.Output.Trace = trace
		case "v":
			cfg.Output.Verbose = verbose
		case "s":
			cfg.Loader.Strict = strict
		case "p":
			cfg.Machine.Unknown = policy
		case "m":
			cfg.Machine.MaxTicks = ticks
		case "l":
			cfg.Output.Locale = lang
		}
	})

	err := run(cfg, program)
	if err != nil {
		log.Fatal(err)
	}
}

// run loads and executes program until it halts or is interrupted.
func run(cfg *config.Config, program string) (err error) {
	emu, err := emulator.NewEmulator(cfg)
	if err != nil {
		return
	}

	emu.Tape.Output = os.Stdout
	emu.Tape.Debug = os.Stderr

	err = emu.LoadFile(program)
	if err != nil {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil {
		if cfg.Output.Verbose {
			log.Print(emu.Cpu.String())
		}
		err = &emulator.ErrProgram{Path: program, Err: err}
	}

	return
}
