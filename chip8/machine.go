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
	"time"
)

const (
	RegisterCount       int    = 16
	KeyCount            int    = 16
	MemorySize          int    = 4096
	FontStartAddress    uint16 = 0x000
	LastAddress         uint16 = 0xFFF
	ProgramStartAddress uint16 = 0x200
	CarryFlag           uint8  = 0xF

	TimerRate time.Duration = time.Second / 60  // 60hz
	ClockRate time.Duration = time.Second / 700 // 700hz

	Width  int = 64
	Height int = 32
	Area   int = Width * Height
)

// Machine is the state of a CHIP-8 virtual machine: memory, registers, call
// stack and timers. It is mutated only by an Interpreter.
type Machine struct {
	memory [MemorySize]byte
	v      [RegisterCount]byte
	stack  []uint16
	pc     uint16
	i      uint16
	delay  uint8
	sound  uint8
}

// New creates a machine with the font set loaded at FontStartAddress and rom
// copied to ProgramStartAddress.
func New(rom []byte) (*Machine, error) {
	if int(ProgramStartAddress)+len(rom) > MemorySize {
		return nil, fmt.Errorf("%w: %d bytes, at most %d fit",
			ErrROMTooLarge, len(rom), MemorySize-int(ProgramStartAddress))
	}

	m := &Machine{pc: ProgramStartAddress}
	copy(m.memory[FontStartAddress:], fontSet[:])
	copy(m.memory[ProgramStartAddress:], rom)
	return m, nil
}

// Register returns the value of register Vx. Only the low nibble of x is used.
func (m *Machine) Register(x uint8) uint8 {
	return m.v[x&0xF]
}

func (m *Machine) Index() uint16 {
	return m.i
}

func (m *Machine) ProgramCounter() uint16 {
	return m.pc
}

func (m *Machine) StackDepth() int {
	return len(m.stack)
}

func (m *Machine) DelayTimer() uint8 {
	return m.delay
}

func (m *Machine) SoundTimer() uint8 {
	return m.sound
}

// Read copies memory starting at loc into data and returns the number of bytes
// copied. Copying stops at the end of memory.
func (m *Machine) Read(loc uint16, data []byte) int {
	if int(loc) >= MemorySize {
		return 0
	}
	return copy(data, m.memory[loc:])
}

// OpcodeAt returns the big-endian instruction word stored at addr.
func (m *Machine) OpcodeAt(addr uint16) (Opcode, error) {
	if err := checkRange(addr, 2); err != nil {
		return 0, err
	}

	// opcode is a 16bit value, comprised of two contiguous 8bit values
	// in memory, starting at addr
	high := uint16(m.memory[addr])  // high-order bits of opcode
	low := uint16(m.memory[addr+1]) // low-order bits of opcode
	return Opcode((high << 8) | low), nil
}

// slice returns memory[addr:addr+n] after checking that every byte in the
// range is addressable.
func (m *Machine) slice(addr uint16, n int) ([]byte, error) {
	if err := checkRange(addr, n); err != nil {
		return nil, err
	}
	return m.memory[addr : int(addr)+n], nil
}

func (m *Machine) push(addr uint16) {
	m.stack = append(m.stack, addr)
}

func (m *Machine) pop() (uint16, error) {
	if len(m.stack) == 0 {
		return 0, ErrStackUnderflow
	}
	top := len(m.stack) - 1
	addr := m.stack[top]
	m.stack = m.stack[:top]
	return addr, nil
}

func (m *Machine) tickTimers() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

func checkRange(addr uint16, n int) error {
	if n > 0 && int(addr)+n-1 > int(LastAddress) {
		return fmt.Errorf("%w: 0x%04X+%d", ErrMemoryOutOfRange, addr, n)
	}
	return nil
}
