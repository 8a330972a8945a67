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

import "sync/atomic"

const pendingKeys = 16

// Keypad is an Input whose keys are pressed and released by a frontend,
// usually from a UI goroutine, while the interpreter reads it.
type Keypad struct {
	keyState [KeyCount]atomic.Bool
	pending  chan uint8
}

func NewKeypad() *Keypad {
	return &Keypad{pending: make(chan uint8, pendingKeys)}
}

// Press marks key as held. A key that was not already held is queued for
// Poll. When the queue is full the oldest press is evicted.
func (k *Keypad) Press(key uint8) {
	key &= 0x0F
	if k.keyState[key].Swap(true) {
		return
	}
	for {
		select {
		case k.pending <- key:
			return
		default:
		}
		select {
		case <-k.pending:
		default:
		}
	}
}

func (k *Keypad) Release(key uint8) {
	k.keyState[key&0x0F].Store(false)
}

func (k *Keypad) IsHeld(key uint8) bool {
	return k.keyState[key&0x0F].Load()
}

// Poll returns the oldest queued press whose key is still held. Presses of
// keys released in the meantime are discarded.
func (k *Keypad) Poll() (uint8, bool) {
	for {
		select {
		case key := <-k.pending:
			if k.keyState[key].Load() {
				return key, true
			}
		default:
			return 0, false
		}
	}
}
