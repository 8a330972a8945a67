package emul8

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

// Frontend displays the framebuffer and feeds the keypad while driving the
// emulator clock.
type Frontend interface {
	Run(ctx context.Context, e *Emulator) error
}

// NewFrontend returns the frontend registered under name.
func NewFrontend(name string, cfg Config) (Frontend, error) {
	switch name {
	case FrontendFyne:
		return &FyneFrontend{Scale: cfg.Scale}, nil
	case FrontendSDL:
		return &SDLFrontend{Scale: cfg.Scale}, nil
	case FrontendTerminal:
		return &TermFrontend{}, nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}

// Emulator wires a machine to its interpreter, framebuffer and keypad.
type Emulator struct {
	logger    *log.Logger
	cpu       *chip8.Interpreter
	fb        *chip8.Framebuffer
	keypad    *chip8.Keypad
	clock     *Clock
	presenter func(frame *[chip8.Area]bool)
	sounding  bool
	onSound   func(on bool)
}

// New loads rom into a fresh machine.
func New(cfg Config, logger *log.Logger, rom []byte) (*Emulator, error) {
	m, err := chip8.New(rom)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	e := &Emulator{
		logger: logger,
		keypad: chip8.NewKeypad(),
	}
	e.fb = chip8.NewFramebuffer(e.present)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	opts := []chip8.Option{chip8.WithRandom(rand.New(rand.NewPCG(seed, seed)))}
	if cfg.Debug {
		opts = append(opts, chip8.WithLogger(logger))
	}

	e.cpu = chip8.NewInterpreter(m, e.fb, e.keypad, opts...)
	e.clock = NewClock(e.cpu, cfg.CycleTime(), time.Now())
	return e, nil
}

func (e *Emulator) present(frame *[chip8.Area]bool) {
	if e.presenter != nil {
		e.presenter(frame)
	}
}

// OnPresent registers the function called with each presented frame. It runs
// on the goroutine that advances the clock.
func (e *Emulator) OnPresent(fn func(frame *[chip8.Area]bool)) {
	e.presenter = fn
}

// OnSound registers the function called whenever the sound timer starts or
// stops running. Like OnPresent it runs on the goroutine that advances the
// clock.
func (e *Emulator) OnSound(fn func(on bool)) {
	e.onSound = fn
}

func (e *Emulator) Keypad() *chip8.Keypad {
	return e.keypad
}

func (e *Emulator) Framebuffer() *chip8.Framebuffer {
	return e.fb
}

func (e *Emulator) Clock() *Clock {
	return e.clock
}

// Advance runs the clock up to now. A machine fault is logged together with
// the machine state and returned.
func (e *Emulator) Advance(now time.Time) error {
	err := e.clock.Advance(now)
	if err == nil {
		if on := e.clock.Sounding(); on != e.sounding {
			e.sounding = on
			if e.onSound != nil {
				e.onSound(on)
			}
		}
		return nil
	}

	m := e.cpu.Machine()
	e.logger.Error("Machine fault",
		log.Hex("pc", m.ProgramCounter()),
		log.Hex("index", m.Index()),
		log.Int("stack", m.StackDepth()),
		log.Err(err))
	return err
}

// windowTitle marks the title while the sound timer runs, sound output itself
// is not emulated.
func windowTitle(sounding bool) string {
	if sounding {
		return "Chip-8 Emulator ♪"
	}
	return "Chip-8 Emulator"
}

// Run drives the clock from a ticker until ctx is cancelled or the machine
// faults.
func (e *Emulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.clock.cycle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := e.Advance(now); err != nil {
				return err
			}
		}
	}
}
