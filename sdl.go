package emul8

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/senojj/emul8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

// sdlKeyMap uses scancodes so the keypad keeps its shape on any keyboard
// layout.
var sdlKeyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1, sdl.SCANCODE_2: 0x2, sdl.SCANCODE_3: 0x3, sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4, sdl.SCANCODE_W: 0x5, sdl.SCANCODE_E: 0x6, sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7, sdl.SCANCODE_S: 0x8, sdl.SCANCODE_D: 0x9, sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA, sdl.SCANCODE_X: 0x0, sdl.SCANCODE_C: 0xB, sdl.SCANCODE_V: 0xF,
}

// SDLFrontend shows the display in an SDL window. All SDL calls, and
// therefore the emulation itself, happen on the calling goroutine locked to
// its OS thread.
type SDLFrontend struct {
	Scale int
}

func (f *SDLFrontend) Run(ctx context.Context, e *Emulator) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initialising sdl: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(windowTitle(false), sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(chip8.Width*f.Scale), int32(chip8.Height*f.Scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating sdl window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("creating sdl renderer: %w", err)
	}
	defer renderer.Destroy()

	var drawErr error
	e.OnPresent(func(frame *[chip8.Area]bool) {
		if err := f.draw(renderer, frame); err != nil && drawErr == nil {
			drawErr = err
		}
	})
	if err := f.draw(renderer, &[chip8.Area]bool{}); err != nil {
		return err
	}

	e.OnSound(func(on bool) {
		window.SetTitle(windowTitle(on))
	})

	keypad := e.Keypad()

	for {
		if ctx.Err() != nil {
			return nil
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					return nil
				}
				hex, ok := sdlKeyMap[ev.Keysym.Scancode]
				if !ok || ev.Repeat != 0 {
					continue
				}
				if ev.Type == sdl.KEYDOWN {
					keypad.Press(hex)
				} else {
					keypad.Release(hex)
				}
			}
		}

		if err := e.Advance(time.Now()); err != nil {
			return err
		}
		if drawErr != nil {
			return drawErr
		}

		sdl.Delay(1)
	}
}

func (f *SDLFrontend) draw(renderer *sdl.Renderer, frame *[chip8.Area]bool) error {
	if err := renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := renderer.SetDrawColor(255, 255, 255, 255); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}

	scale := int32(f.Scale)
	for i, lit := range frame {
		if !lit {
			continue
		}
		rect := sdl.Rect{
			X: int32(i%chip8.Width) * scale,
			Y: int32(i/chip8.Width) * scale,
			W: scale,
			H: scale,
		}
		if err := renderer.FillRect(&rect); err != nil {
			return fmt.Errorf("drawing pixel: %w", err)
		}
	}

	renderer.Present()
	return nil
}
