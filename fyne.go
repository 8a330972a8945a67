package emul8

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/senojj/emul8/chip8"
)

var fyneKeyMap = map[fyne.KeyName]uint8{
	fyne.Key1: 0x1, fyne.Key2: 0x2, fyne.Key3: 0x3, fyne.Key4: 0xC,
	fyne.KeyQ: 0x4, fyne.KeyW: 0x5, fyne.KeyE: 0x6, fyne.KeyR: 0xD,
	fyne.KeyA: 0x7, fyne.KeyS: 0x8, fyne.KeyD: 0x9, fyne.KeyF: 0xE,
	fyne.KeyZ: 0xA, fyne.KeyX: 0x0, fyne.KeyC: 0xB, fyne.KeyV: 0xF,
}

// FyneFrontend shows the display in a fyne window.
type FyneFrontend struct {
	Scale int
}

func (f *FyneFrontend) Run(ctx context.Context, e *Emulator) error {
	a := app.New()
	w := a.NewWindow(windowTitle(false))

	// back-buffer for the pixel data, scaled up by the canvas
	buffer := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	paint(buffer, &[chip8.Area]bool{})

	img := canvas.NewImageFromImage(buffer)
	img.FillMode = canvas.ImageFillStretch  // Scales the 64x32 grid to window size
	img.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look

	canv, ok := w.Canvas().(desktop.Canvas)
	if !ok {
		return errors.New("emulator cannot be run on mobile")
	}
	keypad := e.Keypad()
	canv.SetOnKeyDown(func(k *fyne.KeyEvent) {
		if hex, ok := fyneKeyMap[k.Name]; ok {
			keypad.Press(hex)
		}
	})
	canv.SetOnKeyUp(func(k *fyne.KeyEvent) {
		if hex, ok := fyneKeyMap[k.Name]; ok {
			keypad.Release(hex)
		}
	})

	e.OnPresent(func(frame *[chip8.Area]bool) {
		snapshot := *frame
		fyne.Do(func() {
			paint(buffer, &snapshot)
			img.Refresh()
		})
	})

	e.OnSound(func(on bool) {
		fyne.Do(func() {
			w.SetTitle(windowTitle(on))
		})
	})

	w.SetContent(img)
	w.Resize(fyne.NewSize(float32(chip8.Width*f.Scale), float32(chip8.Height*f.Scale)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var runErr error
	var closed atomic.Bool

	wg.Go(func() {
		runErr = e.Run(ctx)
		if !closed.Load() {
			// the machine faulted or the run was interrupted
			fyne.Do(a.Quit)
		}
	})

	w.ShowAndRun()
	closed.Store(true)
	cancel()
	wg.Wait()

	return runErr
}

func paint(buffer *image.RGBA, frame *[chip8.Area]bool) {
	for i, lit := range frame {
		x, y := i%chip8.Width, i/chip8.Width
		c := color.Black
		if lit {
			c = color.White
		}
		buffer.Set(x, y, c)
	}
}
