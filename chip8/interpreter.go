/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Display is the sink the interpreter draws into. Coordinates passed to
// TogglePixel are always within Width x Height.
type Display interface {
	Clear()
	// TogglePixel flips the pixel at (x, y) and reports whether it was lit
	// before the flip.
	TogglePixel(x, y int) bool
	Present()
}

// Input reports the state of the 16 key keypad.
type Input interface {
	IsHeld(key uint8) bool
	// Poll returns the next pending key press, if any.
	Poll() (uint8, bool)
}

// Interpreter executes instructions against a Machine.
type Interpreter struct {
	m       *Machine
	display Display
	input   Input
	random  func() uint8
	logger  *log.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRandom makes Cxnn draw its random bytes from r.
func WithRandom(r *rand.Rand) Option {
	return func(p *Interpreter) {
		p.random = func() uint8 {
			return uint8(r.UintN(256))
		}
	}
}

// WithLogger enables a debug trace of executed instructions.
func WithLogger(logger *log.Logger) Option {
	return func(p *Interpreter) {
		p.logger = logger
	}
}

func NewInterpreter(m *Machine, display Display, input Input, opts ...Option) *Interpreter {
	p := &Interpreter{
		m:       m,
		display: display,
		input:   input,
		random: func() uint8 {
			return uint8(rand.UintN(256))
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Interpreter) Machine() *Machine {
	return p.m
}

// Step fetches, decodes and executes the instruction at the program counter.
// The returned error is fatal to the run; the machine is left as it was at
// the point of failure.
func (p *Interpreter) Step() error {
	pc := p.m.pc

	op, err := p.m.OpcodeAt(pc)
	if err != nil {
		return fmt.Errorf("fetching instruction at 0x%04X: %w", pc, err)
	}

	ins := op.Decode()
	if p.logger != nil {
		p.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.String("opcode", op.String()),
			log.String("mnemonic", Mnemonic(op)))
	}

	jumped, err := p.Execute(ins)
	if err != nil {
		return fmt.Errorf("executing %s at 0x%04X: %w", op, pc, err)
	}

	if !jumped {
		p.m.pc += 2
	}
	return nil
}

// TickTimers decrements the delay and sound timers, stopping at zero. The
// host calls it at 60hz regardless of how often Step runs.
func (p *Interpreter) TickTimers() {
	p.m.tickTimers()
}

// Execute applies a decoded instruction to the machine. It reports whether
// the instruction assigned the program counter itself, in which case the
// caller must not advance it.
func (p *Interpreter) Execute(ins Instruction) (bool, error) {
	switch ins.Op {
	case 0x0:
		switch ins.Opcode {
		case 0x00E0:
			p.clearScreen()
		case 0x00EE:
			return false, p.returnFromSubroutine()
		default:
			p.unknown(ins)
		}
	case 0x1:
		p.jumpToLocation(ins.NNN)
		return true, nil
	case 0x2:
		p.callSubroutine(ins.NNN)
		return true, nil
	case 0x3:
		p.stepIfXEqualsNN(ins.X, ins.NN)
	case 0x4:
		p.stepIfXNotEqualsNN(ins.X, ins.NN)
	case 0x5:
		if ins.N != 0 {
			p.unknown(ins)
			break
		}
		p.stepIfXEqualsY(ins.X, ins.Y)
	case 0x6:
		p.setXToNN(ins.X, ins.NN)
	case 0x7:
		p.addNNToX(ins.X, ins.NN)
	case 0x8:
		switch ins.N {
		case 0x0:
			p.setXToY(ins.X, ins.Y)
		case 0x1:
			p.orXY(ins.X, ins.Y)
		case 0x2:
			p.andXY(ins.X, ins.Y)
		case 0x3:
			p.xorXY(ins.X, ins.Y)
		case 0x4:
			p.addXY(ins.X, ins.Y)
		case 0x5:
			p.subtractYFromX(ins.X, ins.Y)
		case 0x6:
			p.shiftRightX(ins.X)
		case 0x7:
			p.subtractXFromY(ins.X, ins.Y)
		case 0xE:
			p.shiftLeftX(ins.X)
		default:
			p.unknown(ins)
		}
	case 0x9:
		if ins.N != 0 {
			p.unknown(ins)
			break
		}
		p.stepIfXNotEqualsY(ins.X, ins.Y)
	case 0xA:
		p.setIToNNN(ins.NNN)
	case 0xB:
		p.jumpWithOffset(ins.X, ins.NN)
		return true, nil
	case 0xC:
		p.setXToRandom(ins.X, ins.NN)
	case 0xD:
		return false, p.drawSprite(ins.X, ins.Y, ins.N)
	case 0xE:
		switch ins.NN {
		case 0x9E:
			p.stepIfKeyDown(ins.X)
		case 0xA1:
			p.stepIfKeyUp(ins.X)
		default:
			p.unknown(ins)
		}
	case 0xF:
		switch ins.NN {
		case 0x07:
			p.setXToDelay(ins.X)
		case 0x0A:
			return !p.waitForKey(ins.X), nil
		case 0x15:
			p.setDelayToX(ins.X)
		case 0x18:
			p.setSoundToX(ins.X)
		case 0x1E:
			p.addXToI(ins.X)
		case 0x29:
			p.setIToSymbol(ins.X)
		case 0x33:
			return false, p.binaryCodedDecimal(ins.X)
		case 0x55:
			return false, p.setRegistersToMemory(ins.X)
		case 0x65:
			return false, p.setMemoryToRegisters(ins.X)
		default:
			p.unknown(ins)
		}
	}
	return false, nil
}

// unknown treats an unrecognized opcode as a no-op. Data following code is
// common in ROMs and must not halt the machine.
func (p *Interpreter) unknown(ins Instruction) {
	if p.logger != nil {
		p.logger.Debug("Skipping unknown opcode",
			log.Hex("pc", p.m.pc),
			log.String("opcode", ins.Opcode.String()))
	}
}
