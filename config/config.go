// Package config handles ls8.toml machine configuration.
package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"

	"golang.org/x/text/language"

	"github.com/ezrec/ls8/cpu"
)

// Config represents an ls8.toml machine configuration.
type Config struct {
	Machine Machine `toml:"machine"`
	Loader  Loader  `toml:"loader"`
	Output  Output  `toml:"output"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Machine configures the CPU.
type Machine struct {
	Memory   int    `toml:"memory"`    // Memory size in bytes.
	Unknown  string `toml:"unknown"`   // Unknown opcode policy: "halt" or "skip".
	MaxTicks int    `toml:"max-ticks"` // Cycle limit, 0 for none.
}

// Loader configures the program loader.
type Loader struct {
	Strict  bool              `toml:"strict"`  // Malformed lines are errors.
	Defines map[string]string `toml:"defines"` // Extra $(...) names.
}

// Output configures the console and logging.
type Output struct {
	Trace   bool   `toml:"trace"`   // Trace every cycle.
	Verbose bool   `toml:"verbose"` // Verbose logging.
	Locale  string `toml:"locale"`  // Message language, empty for the system locale.
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Machine: Machine{
			Memory:  cpu.MEMORY_SIZE,
			Unknown: cpu.POLICY_HALT.String(),
		},
	}
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (c *Config, err error) {
	c = Default()
	md, err := toml.Decode(text, c)
	if err != nil {
		c = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		c = nil
		err = errors.Join(ErrKeyUnknown, errors.New(f("%v", undecoded)))
		return
	}

	err = c.Validate()
	if err != nil {
		c = nil
		return
	}

	return
}

// Load parses an ls8.toml file.
func Load(path string) (c *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
		return
	}

	c, err = Parse(string(data))
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
		return
	}

	c.Path = path
	return
}

// Validate checks the configuration values.
func (c *Config) Validate() (err error) {
	if c.Machine.Memory <= 0 {
		err = errors.Join(ErrMemorySize, errors.New(f("memory = %d", c.Machine.Memory)))
		return
	}

	if c.Machine.MaxTicks < 0 {
		err = errors.Join(ErrMaxTicks, errors.New(f("max-ticks = %d", c.Machine.MaxTicks)))
		return
	}

	_, err = c.Policy()
	if err != nil {
		return
	}

	if len(c.Output.Locale) != 0 {
		_, lerr := language.Parse(c.Output.Locale)
		if lerr != nil {
			err = errors.Join(ErrLocale, lerr)
			return
		}
	}

	return
}

// Policy returns the unknown opcode policy.
func (c *Config) Policy() (policy cpu.Policy, err error) {
	if c.Machine.Unknown == "" {
		policy = cpu.POLICY_HALT
		return
	}

	policy, err = cpu.ParsePolicy(c.Machine.Unknown)
	if err != nil {
		err = errors.Join(ErrPolicy, err)
		return
	}

	return
}
