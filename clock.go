package emul8

import (
	"time"

	"github.com/senojj/emul8/chip8"
)

// maxBurst bounds the number of instructions run by one Advance. Cycles owed
// beyond it are dropped.
const maxBurst = 64

// Clock runs instructions at a fixed rate and ticks the timers at 60hz, both
// measured against wall time handed in by the host.
type Clock struct {
	cpu        *chip8.Interpreter
	cycle      time.Duration
	nextStep   time.Time
	nextTimers time.Time
}

func NewClock(cpu *chip8.Interpreter, cycle time.Duration, now time.Time) *Clock {
	return &Clock{
		cpu:        cpu,
		cycle:      cycle,
		nextStep:   now,
		nextTimers: now.Add(chip8.TimerRate),
	}
}

// Advance executes every instruction and timer tick due at now.
func (c *Clock) Advance(now time.Time) error {
	var steps int
	for !now.Before(c.nextStep) {
		if steps == maxBurst {
			c.nextStep = now.Add(c.cycle)
			break
		}
		if err := c.cpu.Step(); err != nil {
			return err
		}
		c.nextStep = c.nextStep.Add(c.cycle)
		steps++
	}

	for !now.Before(c.nextTimers) {
		c.cpu.TickTimers()
		c.nextTimers = c.nextTimers.Add(chip8.TimerRate)
		if now.Sub(c.nextTimers) > time.Second {
			c.nextTimers = now.Add(chip8.TimerRate)
		}
	}
	return nil
}

// Sounding reports whether the sound timer is running.
func (c *Clock) Sounding() bool {
	return c.cpu.Machine().SoundTimer() > 0
}
