package emul8

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// ParseFlags parses the command line arguments, without the program name,
// into a Config.
func ParseFlags(name string, args []string) (Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	cfg := DefaultConfig()
	flags.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, fmt.Sprintf("display and input frontend: %v", frontends))
	flags.IntVar(&cfg.Rate, "clock", cfg.Rate, "instructions executed per second")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per CHIP-8 pixel")
	flags.Uint64Var(&cfg.Seed, "seed", 0, "seed for the random number instruction, 0 picks a random seed")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debug logging, including an instruction trace")
	flags.BoolVar(&cfg.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&cfg.Disasm, "disasm", false, "print a disassembly of the rom and exit")
	flags.BoolVar(&cfg.Statsview, "statsview", false, "launch the runtime statistics server (requires the statsview build tag)")
	flags.BoolVar(&cfg.Version, "version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}
	if cfg.Version {
		return cfg, nil
	}

	rest := flags.Args()
	if err := validateArgs(rest); err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}
	cfg.ROM = rest[0]

	if err := cfg.Validate(); err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}
	return cfg, nil
}

// validateArgs checks that exactly one rom file was passed and that no flags
// follow it.
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return fmt.Errorf("argument %s found after rom file, please pass the rom file as last argument", arg)
		}
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one rom file, got %d", len(args))
	}
	return nil
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8 [options] <rom file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}
