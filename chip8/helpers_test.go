package chip8

import (
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// rom encodes instruction words big-endian.
func rom(words ...uint16) []byte {
	b := make([]byte, 0, len(words)*2)
	for _, w := range words {
		b = append(b, byte(w>>8), byte(w))
	}
	return b
}

type testSetup struct {
	m      *Machine
	p      *Interpreter
	fb     *Framebuffer
	keypad *Keypad
}

func newTestSetup(t *testing.T, words ...uint16) testSetup {
	t.Helper()

	m, err := New(rom(words...))
	assert.NoError(t, err)

	fb := NewFramebuffer(nil)
	keypad := NewKeypad()
	p := NewInterpreter(m, fb, keypad, WithRandom(rand.New(rand.NewPCG(1, 2))))
	return testSetup{m: m, p: p, fb: fb, keypad: keypad}
}

func (s testSetup) steps(t *testing.T, n int) {
	t.Helper()
	for range n {
		assert.NoError(t, s.p.Step())
	}
}
