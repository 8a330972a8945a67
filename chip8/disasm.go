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
	"io"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the assembly form of op, for example "ld vA, 0x3C". Words
// that do not decode to an instruction are rendered as a data directive.
func Mnemonic(op Opcode) string {
	ins := lookup(op)
	if ins == nil {
		return fmt.Sprintf(".word 0x%04X", uint16(op))
	}

	operands := operandsOf(op.Decode())
	if operands == "" {
		return ins.Name
	}
	return ins.Name + " " + operands
}

func lookup(op Opcode) *chip8cpu.Instruction {
	w := uint16(op)
	for _, candidate := range chip8cpu.Opcodes[int(op.kind())] {
		if candidate.Info.Mask&w == candidate.Info.Value {
			return candidate.Instruction
		}
	}
	return nil
}

func operandsOf(ins Instruction) string {
	vx := fmt.Sprintf("v%X", ins.X)
	vy := fmt.Sprintf("v%X", ins.Y)

	switch ins.Op {
	case 0x0:
		return ""
	case 0x1, 0x2:
		return fmt.Sprintf("0x%03X", ins.NNN)
	case 0x3, 0x4, 0x6, 0x7:
		return fmt.Sprintf("%s, 0x%02X", vx, ins.NN)
	case 0x5, 0x9:
		return vx + ", " + vy
	case 0x8:
		if ins.N == 0x6 || ins.N == 0xE {
			return vx
		}
		return vx + ", " + vy
	case 0xA:
		return fmt.Sprintf("I, 0x%03X", ins.NNN)
	case 0xB, 0xC:
		return fmt.Sprintf("%s, 0x%02X", vx, ins.NN)
	case 0xD:
		return fmt.Sprintf("%s, %s, %d", vx, vy, ins.N)
	case 0xE:
		return vx
	}

	switch ins.NN {
	case 0x07:
		return vx + ", DT"
	case 0x0A:
		return vx + ", K"
	case 0x15:
		return "DT, " + vx
	case 0x18:
		return "ST, " + vx
	case 0x1E:
		return "I, " + vx
	case 0x29:
		return "F, " + vx
	case 0x33:
		return "B, " + vx
	case 0x55:
		return "[I], " + vx
	case 0x65:
		return vx + ", [I]"
	}
	return ""
}

// Disassemble writes one line per instruction word of rom, addressed as if
// the rom was loaded at ProgramStartAddress. A trailing odd byte is written
// as a data byte.
func Disassemble(w io.Writer, rom []byte) error {
	addr := ProgramStartAddress

	for i := 0; i+1 < len(rom); i += 2 {
		op := Opcode(uint16(rom[i])<<8 | uint16(rom[i+1]))
		if _, err := fmt.Fprintf(w, "0x%04X  %s  %s\n", addr, op, Mnemonic(op)); err != nil {
			return fmt.Errorf("writing instruction at 0x%04X: %w", addr, err)
		}
		addr += 2
	}

	if len(rom)%2 == 1 {
		if _, err := fmt.Fprintf(w, "0x%04X  %02X    .byte 0x%02X\n", addr, rom[len(rom)-1], rom[len(rom)-1]); err != nil {
			return fmt.Errorf("writing trailing byte at 0x%04X: %w", addr, err)
		}
	}
	return nil
}
