package config

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrKeyUnknown = errors.New(f("unknown configuration key"))
	ErrMemorySize = errors.New(f("machine.memory must be positive"))
	ErrMaxTicks   = errors.New(f("machine.max-ticks must not be negative"))
	ErrPolicy     = errors.New(f("machine.unknown must be halt or skip"))
	ErrLocale     = errors.New(f("output.locale is not a language tag"))
)

// ErrFile locates a configuration error in a file.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
