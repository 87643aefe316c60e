package button

import (
	"git.lost.host/meutraa/chase/internal/config"
	"git.lost.host/meutraa/chase/internal/hardware"
)

type DefaultDebouncer struct {
	Pin hardware.Pin

	lastLevel bool
	origin    uint32 // timestamp of the last accepted press
}

func (b *DefaultDebouncer) Pressed(now uint32) bool {
	// the line is active low, invert so true means held down
	level := !b.Pin.Read()

	pressed := false
	if level && !b.lastLevel {
		if hardware.Elapsed(now, b.origin) >= config.DebounceMs {
			pressed = true
			b.origin = now
		}
	}

	b.lastLevel = level
	return pressed
}

func (b *DefaultDebouncer) Reset(now uint32) {
	b.lastLevel = !b.Pin.Read()
	b.origin = now
}
