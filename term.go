package emul8

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/term"
	"github.com/senojj/emul8/chip8"
	"golang.org/x/sys/unix"
)

// keyHold is how long a key counts as held after a key press arrives.
// Terminals report presses only, never releases.
const keyHold = 150 * time.Millisecond

var termKeyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

const (
	keyEscape = 0x1B
	keyCtrlC  = 0x03
)

// TermFrontend draws the display with half block characters, two pixel rows
// per terminal line, and reads keys from the terminal in raw mode.
type TermFrontend struct {
	pressedAt [chip8.KeyCount]atomic.Int64
}

func (f *TermFrontend) Run(ctx context.Context, e *Emulator) error {
	if err := checkTermSize(os.Stdout); err != nil {
		return err
	}

	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		_ = t.Restore()
		_ = t.Close()
	}()

	out := bufio.NewWriter(os.Stdout)
	fmt.Fprint(out, "\x1b[2J\x1b[?25l")
	defer func() {
		fmt.Fprint(out, "\x1b[?25h\r\n")
		_ = out.Flush()
	}()

	e.OnPresent(func(frame *[chip8.Area]bool) {
		drawFrame(out, frame)
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// readKeys stays blocked in Read after Run returns
	go f.readKeys(t, e.Keypad(), cancel)

	ticker := time.NewTicker(e.Clock().cycle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			f.releaseKeys(e.Keypad(), now)
			if err := e.Advance(now); err != nil {
				return err
			}
		}
	}
}

func (f *TermFrontend) readKeys(t *term.Term, keypad *chip8.Keypad, cancel context.CancelFunc) {
	buf := make([]byte, 16)
	for {
		n, err := t.Read(buf)
		if err != nil {
			cancel()
			return
		}
		for _, b := range buf[:n] {
			if b == keyEscape || b == keyCtrlC {
				cancel()
				return
			}
			if hex, ok := termKey(b); ok {
				f.pressedAt[hex].Store(time.Now().UnixNano())
				keypad.Press(hex)
			}
		}
	}
}

// termKey maps a byte read from the terminal to a keypad key. Upper case
// letters map like their lower case form.
func termKey(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	hex, ok := termKeyMap[b]
	return hex, ok
}

// releaseKeys releases every held key whose last press is older than keyHold.
func (f *TermFrontend) releaseKeys(keypad *chip8.Keypad, now time.Time) {
	for key := range f.pressedAt {
		at := f.pressedAt[key].Load()
		if at == 0 || now.Sub(time.Unix(0, at)) < keyHold {
			continue
		}
		if f.pressedAt[key].CompareAndSwap(at, 0) {
			keypad.Release(uint8(key))
		}
	}
}

// checkTermSize makes sure the frame fits on the terminal.
func checkTermSize(out *os.File) error {
	ws, err := unix.IoctlGetWinsize(int(out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("reading terminal size: %w", err)
	}
	if int(ws.Col) < chip8.Width || int(ws.Row) < chip8.Height/2+1 {
		return fmt.Errorf("terminal is %dx%d, at least %dx%d is required",
			ws.Col, ws.Row, chip8.Width, chip8.Height/2+1)
	}
	return nil
}

func drawFrame(out *bufio.Writer, frame *[chip8.Area]bool) {
	fmt.Fprint(out, "\x1b[H")
	for y := 0; y < chip8.Height; y += 2 {
		for x := range chip8.Width {
			top := frame[x+y*chip8.Width]
			bottom := frame[x+(y+1)*chip8.Width]
			out.WriteString(halfBlock(top, bottom))
		}
		out.WriteString("\r\n")
	}
	_ = out.Flush()
}

func halfBlock(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	default:
		return " "
	}
}
