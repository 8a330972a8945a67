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

// Framebuffer is an in-memory Display. Drawing happens on a back buffer that
// Present copies to the front buffer before notifying the presenter.
type Framebuffer struct {
	back      [Area]bool
	front     [Area]bool
	frames    uint64
	presenter func(frame *[Area]bool)
}

// NewFramebuffer returns a cleared framebuffer. presenter, if not nil, is
// called with the front buffer on every Present; it must not retain the
// pointer past the call.
func NewFramebuffer(presenter func(frame *[Area]bool)) *Framebuffer {
	return &Framebuffer{presenter: presenter}
}

func (f *Framebuffer) Clear() {
	f.back = [Area]bool{}
}

func (f *Framebuffer) TogglePixel(x, y int) bool {
	idx := x + y*Width
	was := f.back[idx]
	f.back[idx] = !was
	return was
}

func (f *Framebuffer) Present() {
	f.front = f.back
	f.frames++
	if f.presenter != nil {
		f.presenter(&f.front)
	}
}

// Pixel reports whether the pixel at (x, y) of the most recently presented
// frame is lit. Coordinates outside the display are never lit.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.front[x+y*Width]
}

// snapshot returns a copy of the most recently presented frame.
func (f *Framebuffer) snapshot() [Area]bool {
	return f.front
}

// presented returns the number of times Present has been called.
func (f *Framebuffer) presented() uint64 {
	return f.frames
}
