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

import "errors"

var (
	// ErrROMTooLarge is returned by New when the program image does not fit
	// between ProgramStartAddress and the end of memory.
	ErrROMTooLarge = errors.New("rom too large")

	// ErrMemoryOutOfRange is returned by Step when an instruction fetch or a
	// data access resolves to an address beyond LastAddress.
	ErrMemoryOutOfRange = errors.New("memory access out of range")

	// ErrStackUnderflow is returned by Step when 00EE executes with an empty
	// call stack.
	ErrStackUnderflow = errors.New("stack underflow")
)
