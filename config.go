package emul8

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

const (
	FrontendFyne     = "fyne"
	FrontendSDL      = "sdl"
	FrontendTerminal = "term"

	defaultScale = 10
)

var frontends = []string{FrontendFyne, FrontendSDL, FrontendTerminal}

// Config holds the settings of one emulator run.
type Config struct {
	ROM       string
	Frontend  string
	Rate      int // instructions per second
	Scale     int // window pixels per CHIP-8 pixel
	Seed      uint64
	Debug     bool
	Quiet     bool
	Disasm    bool
	Statsview bool
	Version   bool
}

func DefaultConfig() Config {
	return Config{
		Frontend: FrontendFyne,
		Rate:     int(time.Second / chip8.ClockRate),
		Scale:    defaultScale,
	}
}

func (c Config) Validate() error {
	if c.ROM == "" {
		return errors.New("no rom file given")
	}
	if !slices.Contains(frontends, c.Frontend) {
		return fmt.Errorf("unsupported frontend '%s', valid options are %v", c.Frontend, frontends)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("invalid clock rate %d", c.Rate)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", c.Scale)
	}
	return nil
}

// CycleTime returns the duration of one instruction at the configured rate.
func (c Config) CycleTime() time.Duration {
	return time.Second / time.Duration(c.Rate)
}

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
