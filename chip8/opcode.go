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

import "fmt"

// Opcode is a raw 16bit CHIP-8 instruction word.
type Opcode uint16

// First nibble of the opcode is the operation kind.
func (o Opcode) kind() uint8 {
	return uint8((o & 0xF000) >> 12)
}

// Second nibble of the opcode is the X register location.
func (o Opcode) x() uint8 {
	return uint8((o & 0x0F00) >> 8)
}

// Third nibble of the opcode is the Y register location.
func (o Opcode) y() uint8 {
	return uint8((o & 0x00F0) >> 4)
}

// Fourth nibble of the opcode is the N value.
func (o Opcode) n() uint8 {
	return uint8(o & 0x000F)
}

// Third and fourth nibbles of the opcode combine into the NN value.
func (o Opcode) nn() uint8 {
	return uint8(o & 0x00FF)
}

// Second, third, and fourth nibbles of the opcode combine into the NNN value.
func (o Opcode) nnn() uint16 {
	return uint16(o & 0x0FFF)
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}

// Instruction is an opcode split into its fields. It is computed once per
// step and every opcode body reads from it.
type Instruction struct {
	Opcode Opcode
	Op     uint8
	X      uint8
	Y      uint8
	N      uint8
	NN     uint8
	NNN    uint16
}

// Decode splits the opcode into the standard CHIP-8 fields.
func (o Opcode) Decode() Instruction {
	return Instruction{
		Opcode: o,
		Op:     o.kind(),
		X:      o.x(),
		Y:      o.y(),
		N:      o.n(),
		NN:     o.nn(),
		NNN:    o.nnn(),
	}
}
