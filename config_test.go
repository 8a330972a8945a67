package emul8

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate())

	cfg.ROM = "game.ch8"
	assert.NoError(t, cfg.Validate())

	cfg.Scale = 0
	assert.Error(t, cfg.Validate())
}

func TestConfigCycleTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rate = 1000
	assert.Equal(t, time.Millisecond, cfg.CycleTime())
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
	assert.NotNil(t, CreateLogger(false, false))
}
