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

// AddWithCarry returns (a + b) mod 256 and whether the unmodded sum exceeds
// 255.
func AddWithCarry(a, b uint8) (uint8, bool) {
	sum := uint16(a) + uint16(b)
	return uint8(sum), sum > 0xFF
}

// SubWithBorrow returns (a - b) mod 256 and whether the subtraction completed
// without a borrow, i.e. a >= b.
func SubWithBorrow(a, b uint8) (uint8, bool) {
	return a - b, a >= b
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
