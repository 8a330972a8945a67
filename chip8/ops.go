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

func (p *Interpreter) clearScreen() {
	p.display.Clear()
}

// callSubroutine pushes the address of the call itself. The matching return
// pops it and lets the normal advance skip past the call.
func (p *Interpreter) callSubroutine(nnn uint16) {
	p.m.push(p.m.pc)
	p.m.pc = nnn
}

func (p *Interpreter) returnFromSubroutine() error {
	addr, err := p.m.pop()
	if err != nil {
		return err
	}
	p.m.pc = addr
	return nil
}

func (p *Interpreter) jumpToLocation(nnn uint16) {
	p.m.pc = nnn
}

func (p *Interpreter) jumpWithOffset(x, nn uint8) {
	p.m.pc = uint16(nn) + uint16(p.m.v[x])
}

func (p *Interpreter) skip() {
	p.m.pc += 2
}

func (p *Interpreter) stepIfXEqualsNN(x, nn uint8) {
	if p.m.v[x] == nn {
		p.skip()
	}
}

func (p *Interpreter) stepIfXNotEqualsNN(x, nn uint8) {
	if p.m.v[x] != nn {
		p.skip()
	}
}

func (p *Interpreter) stepIfXEqualsY(x, y uint8) {
	if p.m.v[x] == p.m.v[y] {
		p.skip()
	}
}

func (p *Interpreter) stepIfXNotEqualsY(x, y uint8) {
	if p.m.v[x] != p.m.v[y] {
		p.skip()
	}
}

func (p *Interpreter) setXToNN(x, nn uint8) {
	p.m.v[x] = nn
}

// addNNToX wraps and leaves the carry flag alone.
func (p *Interpreter) addNNToX(x, nn uint8) {
	p.m.v[x] += nn
}

func (p *Interpreter) setXToY(x, y uint8) {
	p.m.v[x] = p.m.v[y]
}

func (p *Interpreter) orXY(x, y uint8) {
	p.m.v[x] |= p.m.v[y]
}

func (p *Interpreter) andXY(x, y uint8) {
	p.m.v[x] &= p.m.v[y]
}

func (p *Interpreter) xorXY(x, y uint8) {
	p.m.v[x] ^= p.m.v[y]
}

// The flag producing ALU operations write the result first and the flag
// second, so VF holds the flag when x is 0xF.

func (p *Interpreter) addXY(x, y uint8) {
	sum, carry := AddWithCarry(p.m.v[x], p.m.v[y])
	p.m.v[x] = sum
	p.m.v[CarryFlag] = flag(carry)
}

func (p *Interpreter) subtractYFromX(x, y uint8) {
	diff, noBorrow := SubWithBorrow(p.m.v[x], p.m.v[y])
	p.m.v[x] = diff
	p.m.v[CarryFlag] = flag(noBorrow)
}

func (p *Interpreter) subtractXFromY(x, y uint8) {
	diff, noBorrow := SubWithBorrow(p.m.v[y], p.m.v[x])
	p.m.v[x] = diff
	p.m.v[CarryFlag] = flag(noBorrow)
}

func (p *Interpreter) shiftRightX(x uint8) {
	out := p.m.v[x] & 0x1
	p.m.v[x] >>= 1
	p.m.v[CarryFlag] = out
}

func (p *Interpreter) shiftLeftX(x uint8) {
	out := (p.m.v[x] >> 7) & 0x1
	p.m.v[x] <<= 1
	p.m.v[CarryFlag] = out
}

func (p *Interpreter) setIToNNN(nnn uint16) {
	p.m.i = nnn
}

func (p *Interpreter) setXToRandom(x, nn uint8) {
	p.m.v[x] = p.random() & nn
}

// drawSprite XORs an n row sprite from memory at I onto the display with its
// top left corner at (Vx, Vy). Pixels falling outside the display are clipped.
// VF is set when any lit pixel is turned off.
func (p *Interpreter) drawSprite(x, y, n uint8) error {
	sprite, err := p.m.slice(p.m.i, int(n))
	if err != nil {
		return err
	}

	startX := int(p.m.v[x])
	startY := int(p.m.v[y])

	p.m.v[CarryFlag] = 0

	for row, bits := range sprite {
		py := startY + row
		if py >= Height {
			// Reached the bottom of the display.
			break
		}

		for col := range 8 {
			px := startX + col
			if px >= Width {
				break
			}

			if bits&(0x80>>col) == 0 {
				continue
			}

			if p.display.TogglePixel(px, py) {
				p.m.v[CarryFlag] = 1
			}
		}
	}

	p.display.Present()
	return nil
}

func (p *Interpreter) stepIfKeyDown(x uint8) {
	key := p.m.v[x] & 0x0F
	if p.input.IsHeld(key) {
		p.skip()
	}
}

func (p *Interpreter) stepIfKeyUp(x uint8) {
	key := p.m.v[x] & 0x0F
	if !p.input.IsHeld(key) {
		p.skip()
	}
}

func (p *Interpreter) setXToDelay(x uint8) {
	p.m.v[x] = p.m.delay
}

// waitForKey stores the next pending key press in Vx. It reports false when
// no key is pending, in which case the instruction runs again on the next step.
func (p *Interpreter) waitForKey(x uint8) bool {
	key, ok := p.input.Poll()
	if !ok {
		return false
	}
	p.m.v[x] = key & 0x0F
	return true
}

func (p *Interpreter) setDelayToX(x uint8) {
	p.m.delay = p.m.v[x]
}

func (p *Interpreter) setSoundToX(x uint8) {
	p.m.sound = p.m.v[x]
}

func (p *Interpreter) addXToI(x uint8) {
	p.m.i += uint16(p.m.v[x])
}

func (p *Interpreter) setIToSymbol(x uint8) {
	p.m.i = FontStartAddress + uint16(p.m.v[x])*GlyphSize
}

// binaryCodedDecimal stores the hundreds, tens and ones digits of Vx at I,
// I+1 and I+2.
func (p *Interpreter) binaryCodedDecimal(x uint8) error {
	dst, err := p.m.slice(p.m.i, 3)
	if err != nil {
		return err
	}

	// Double Dabble. Before each shift, any BCD nibble >= 5 has 3 added so
	// that the shift carries it into the next decimal place.
	var bcd uint32
	val := uint32(p.m.v[x])

	for i := range 8 {
		// Ones (bits 0-3)
		if (bcd & 0x00F) >= 5 {
			bcd += 3
		}

		// Tens (bits 4-7)
		if (bcd & 0x0F0) >= 0x050 {
			bcd += 0x030
		}

		// Hundreds (bits 8-11)
		if (bcd & 0xF00) >= 0x500 {
			bcd += 0x300
		}

		// Shift BCD left by 1, and pull in the next bit from `val`
		bcd = (bcd << 1) | ((val >> (7 - i)) & 1)
	}

	dst[0] = byte((bcd >> 8) & 0xF) // Hundreds
	dst[1] = byte((bcd >> 4) & 0xF) // Tens
	dst[2] = byte(bcd & 0xF)        // Ones
	return nil
}

func (p *Interpreter) setRegistersToMemory(x uint8) error {
	dst, err := p.m.slice(p.m.i, int(x)+1)
	if err != nil {
		return err
	}
	copy(dst, p.m.v[:int(x)+1])
	return nil
}

func (p *Interpreter) setMemoryToRegisters(x uint8) error {
	src, err := p.m.slice(p.m.i, int(x)+1)
	if err != nil {
		return err
	}
	copy(p.m.v[:int(x)+1], src)
	return nil
}
