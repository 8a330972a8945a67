package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func litPixels(fb *Framebuffer) int {
	var n int
	for _, lit := range fb.snapshot() {
		if lit {
			n++
		}
	}
	return n
}

func TestSetRegister(t *testing.T) {
	s := newTestSetup(t, 0x6A3C)
	s.steps(t, 1)

	assert.Equal(t, uint8(0x3C), s.m.Register(0xA))
	assert.Equal(t, uint16(0x202), s.m.ProgramCounter())
}

func TestJump(t *testing.T) {
	s := newTestSetup(t, 0x1228)
	s.steps(t, 1)

	assert.Equal(t, uint16(0x228), s.m.ProgramCounter())
}

func TestCallAndReturn(t *testing.T) {
	program := make([]byte, 0x102)
	copy(program, rom(0x2300))
	copy(program[0x100:], rom(0x00EE))

	m, err := New(program)
	assert.NoError(t, err)
	p := NewInterpreter(m, NewFramebuffer(nil), NewKeypad())

	assert.NoError(t, p.Step())
	assert.Equal(t, uint16(0x300), m.ProgramCounter())
	assert.Equal(t, 1, m.StackDepth())

	assert.NoError(t, p.Step())
	assert.Equal(t, uint16(0x202), m.ProgramCounter())
	assert.Equal(t, 0, m.StackDepth())
}

func TestReturnWithEmptyStack(t *testing.T) {
	s := newTestSetup(t, 0x00EE)

	err := s.p.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, ProgramStartAddress, s.m.ProgramCounter())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name     string
		program  []uint16
		expected uint16
	}{
		{"3xnn equal", []uint16{0x6042, 0x3042}, 0x206},
		{"3xnn not equal", []uint16{0x6042, 0x3043}, 0x204},
		{"4xnn not equal", []uint16{0x6042, 0x4043}, 0x206},
		{"4xnn equal", []uint16{0x6042, 0x4042}, 0x204},
		{"5xy0 equal", []uint16{0x6042, 0x6142, 0x5010}, 0x208},
		{"5xy0 not equal", []uint16{0x6042, 0x6141, 0x5010}, 0x206},
		{"9xy0 not equal", []uint16{0x6042, 0x6141, 0x9010}, 0x208},
		{"9xy0 equal", []uint16{0x6042, 0x6142, 0x9010}, 0x206},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSetup(t, tt.program...)
			s.steps(t, len(tt.program))
			assert.Equal(t, tt.expected, s.m.ProgramCounter())
		})
	}
}

func TestALU(t *testing.T) {
	tests := []struct {
		name       string
		x, y, f    uint8
		opcode     uint16
		expectedX  uint8
		expectedVF uint8
	}{
		{"copy", 0x01, 0x02, 0x07, 0x8010, 0x02, 0x07},
		{"or", 0x0C, 0x0A, 0x07, 0x8011, 0x0E, 0x07},
		{"and", 0x0C, 0x0A, 0x07, 0x8012, 0x08, 0x07},
		{"xor", 0x0C, 0x0A, 0x07, 0x8013, 0x06, 0x07},
		{"add overflow", 0xFF, 0x01, 0x07, 0x8014, 0x00, 1},
		{"add", 0x01, 0x02, 0x07, 0x8014, 0x03, 0},
		{"sub", 0x05, 0x03, 0x07, 0x8015, 0x02, 1},
		{"sub equal", 0x05, 0x05, 0x07, 0x8015, 0x00, 1},
		{"sub borrow", 0x03, 0x05, 0x07, 0x8015, 0xFE, 0},
		{"shift right", 0x05, 0x00, 0x07, 0x8016, 0x02, 1},
		{"shift right even", 0x04, 0x00, 0x07, 0x8016, 0x02, 0},
		{"reverse sub", 0x03, 0x05, 0x07, 0x8017, 0x02, 1},
		{"reverse sub borrow", 0x05, 0x03, 0x07, 0x8017, 0xFE, 0},
		{"shift left", 0x81, 0x00, 0x07, 0x801E, 0x02, 1},
		{"shift left no carry", 0x41, 0x00, 0x07, 0x801E, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSetup(t,
				0x6000|uint16(tt.x),
				0x6100|uint16(tt.y),
				0x6F00|uint16(tt.f),
				tt.opcode,
			)
			s.steps(t, 4)

			assert.Equal(t, tt.expectedX, s.m.Register(0x0))
			assert.Equal(t, tt.expectedVF, s.m.Register(CarryFlag))
			assert.Equal(t, uint16(0x208), s.m.ProgramCounter())
		})
	}
}

func TestALUFlagRegisterAsOperand(t *testing.T) {
	// VF += V1 overflows, the flag replaces the sum
	s := newTestSetup(t, 0x6FFF, 0x6101, 0x8F14)
	s.steps(t, 3)
	assert.Equal(t, uint8(1), s.m.Register(CarryFlag))

	// VF >>= 1 shifts out a zero
	s = newTestSetup(t, 0x6F02, 0x8F06)
	s.steps(t, 2)
	assert.Equal(t, uint8(0), s.m.Register(CarryFlag))
}

func TestAddNNLeavesFlag(t *testing.T) {
	s := newTestSetup(t, 0x60FF, 0x6F05, 0x7002)
	s.steps(t, 3)

	assert.Equal(t, uint8(0x01), s.m.Register(0x0))
	assert.Equal(t, uint8(0x05), s.m.Register(CarryFlag))
}

func TestIndex(t *testing.T) {
	s := newTestSetup(t, 0xA123, 0x6010, 0xF01E)
	s.steps(t, 1)
	assert.Equal(t, uint16(0x123), s.m.Index())

	s.steps(t, 2)
	assert.Equal(t, uint16(0x133), s.m.Index())
}

func TestJumpWithOffset(t *testing.T) {
	s := newTestSetup(t, 0x6208, 0x6010, 0xB210)
	s.steps(t, 3)

	assert.Equal(t, uint16(0x18), s.m.ProgramCounter())
}

func TestRandom(t *testing.T) {
	s := newTestSetup(t, 0x60FF, 0xC000, 0xC10F)
	s.steps(t, 3)

	assert.Equal(t, uint8(0), s.m.Register(0x0))
	assert.True(t, s.m.Register(0x1) <= 0x0F)
}

func TestDrawSinglePixel(t *testing.T) {
	s := newTestSetup(t,
		0xA204,
		0xD005,
		0x8000, 0x0000, 0x0000, // sprite data
	)
	s.steps(t, 2)

	assert.True(t, s.fb.Pixel(0, 0))
	assert.Equal(t, 1, litPixels(s.fb))
	assert.Equal(t, uint8(0), s.m.Register(CarryFlag))
	assert.Equal(t, uint64(1), s.fb.presented())
}

func TestDrawTwiceRestoresFrame(t *testing.T) {
	s := newTestSetup(t,
		0x600A, // V0 = A
		0xF029, // I = glyph A
		0x6105,
		0x6203,
		0xD125,
		0xD125,
	)
	s.steps(t, 5)

	assert.Equal(t, uint16(0x0A*GlyphSize), s.m.Index())
	assert.Equal(t, uint8(0), s.m.Register(CarryFlag))
	// top row of A is 0xF0
	for x := 5; x < 9; x++ {
		assert.True(t, s.fb.Pixel(x, 3))
	}
	assert.False(t, s.fb.Pixel(9, 3))

	s.steps(t, 1)
	assert.Equal(t, 0, litPixels(s.fb))
	assert.Equal(t, uint8(1), s.m.Register(CarryFlag))
}

func TestDrawClipsAtEdges(t *testing.T) {
	s := newTestSetup(t,
		0x603E, // V0 = 62
		0x611F, // V1 = 31
		0xA208,
		0xD012,
		0xFFFF, // sprite data
	)
	s.steps(t, 4)

	assert.True(t, s.fb.Pixel(62, 31))
	assert.True(t, s.fb.Pixel(63, 31))
	assert.False(t, s.fb.Pixel(0, 31))
	assert.False(t, s.fb.Pixel(62, 0))
	assert.Equal(t, 2, litPixels(s.fb))
}

func TestDrawOutOfRange(t *testing.T) {
	s := newTestSetup(t, 0xAFFE, 0xD003)
	s.steps(t, 1)

	err := s.p.Step()
	assert.True(t, errors.Is(err, ErrMemoryOutOfRange))
	assert.Equal(t, uint64(0), s.fb.presented())
}

func TestClearScreen(t *testing.T) {
	s := newTestSetup(t, 0xA000, 0xD005, 0x00E0)
	s.steps(t, 2)
	assert.True(t, litPixels(s.fb) > 0)

	s.steps(t, 1)
	s.fb.Present()
	assert.Equal(t, 0, litPixels(s.fb))
	assert.Equal(t, uint16(0x206), s.m.ProgramCounter())
}

func TestKeySkips(t *testing.T) {
	s := newTestSetup(t, 0x6005, 0xE09E)
	s.keypad.Press(5)
	s.steps(t, 2)
	assert.Equal(t, uint16(0x206), s.m.ProgramCounter())

	s = newTestSetup(t, 0x6005, 0xE09E)
	s.steps(t, 2)
	assert.Equal(t, uint16(0x204), s.m.ProgramCounter())

	s = newTestSetup(t, 0x6005, 0xE0A1)
	s.steps(t, 2)
	assert.Equal(t, uint16(0x206), s.m.ProgramCounter())

	s = newTestSetup(t, 0x6005, 0xE0A1)
	s.keypad.Press(5)
	s.steps(t, 2)
	assert.Equal(t, uint16(0x204), s.m.ProgramCounter())
}

func TestWaitForKey(t *testing.T) {
	s := newTestSetup(t, 0xF30A)

	s.steps(t, 3)
	assert.Equal(t, ProgramStartAddress, s.m.ProgramCounter())
	assert.Equal(t, uint8(0), s.m.Register(0x3))

	s.keypad.Press(0x7)
	s.steps(t, 1)
	assert.Equal(t, uint8(0x7), s.m.Register(0x3))
	assert.Equal(t, uint16(0x202), s.m.ProgramCounter())
}

func TestTimers(t *testing.T) {
	s := newTestSetup(t, 0x6005, 0xF015, 0xF018, 0xF107)
	s.steps(t, 3)
	assert.Equal(t, uint8(5), s.m.DelayTimer())
	assert.Equal(t, uint8(5), s.m.SoundTimer())

	s.p.TickTimers()
	s.steps(t, 1)
	assert.Equal(t, uint8(4), s.m.Register(0x1))
	assert.Equal(t, uint8(4), s.m.SoundTimer())
}

func TestBinaryCodedDecimal(t *testing.T) {
	tests := []struct {
		value    uint8
		expected []byte
	}{
		{0, []byte{0, 0, 0}},
		{9, []byte{0, 0, 9}},
		{42, []byte{0, 4, 2}},
		{156, []byte{1, 5, 6}},
		{255, []byte{2, 5, 5}},
	}

	for _, tt := range tests {
		s := newTestSetup(t, 0x6000|uint16(tt.value), 0xA300, 0xF033)
		s.steps(t, 3)

		got := make([]byte, 3)
		s.m.Read(0x300, got)
		assert.Equal(t, tt.expected, got)
	}
}

func TestRegisterDumpAndLoad(t *testing.T) {
	s := newTestSetup(t,
		0x6001, 0x6102, 0x6203, 0x6304, 0x6455,
		0xA300,
		0xF355,
		0x6000, 0x6100, 0x6200, 0x6300,
		0xF365,
	)
	s.steps(t, 7)

	stored := make([]byte, 5)
	s.m.Read(0x300, stored)
	assert.Equal(t, []byte{1, 2, 3, 4, 0}, stored)

	s.steps(t, 5)
	for x := range uint8(4) {
		assert.Equal(t, x+1, s.m.Register(x))
	}
	assert.Equal(t, uint8(0x55), s.m.Register(0x4))
	assert.Equal(t, uint16(0x300), s.m.Index())
}

func TestRegisterDumpOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		index  uint16
		opcode uint16
	}{
		{"store registers", 0xAFFE, 0xF255},
		{"load registers", 0xAFFE, 0xF265},
		{"bcd", 0xAFFE, 0xF233},
		{"bcd at last byte", 0xAFFF, 0xF033},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSetup(t, tt.index, tt.opcode)
			s.steps(t, 1)

			err := s.p.Step()
			assert.True(t, errors.Is(err, ErrMemoryOutOfRange))
			assert.Equal(t, uint16(0x202), s.m.ProgramCounter())
		})
	}
}

func TestFetchOutOfRange(t *testing.T) {
	s := newTestSetup(t, 0x1FFF)
	s.steps(t, 1)

	err := s.p.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrMemoryOutOfRange))
}

func TestUnknownOpcodes(t *testing.T) {
	for _, op := range []uint16{0x0123, 0x5121, 0x8008, 0x912F, 0xE000, 0xFFFF} {
		s := newTestSetup(t, op)
		s.steps(t, 1)
		assert.Equal(t, uint16(0x202), s.m.ProgramCounter())
	}
}

func TestDebugTrace(t *testing.T) {
	m, err := New(rom(0x6A3C, 0xFFFF))
	assert.NoError(t, err)

	p := NewInterpreter(m, NewFramebuffer(nil), NewKeypad(), WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, p.Step())
	assert.NoError(t, p.Step())
	assert.Equal(t, uint16(0x204), m.ProgramCounter())
}
