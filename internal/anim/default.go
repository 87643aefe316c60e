package anim

import (
	"git.lost.host/meutraa/chase/internal/config"
	"git.lost.host/meutraa/chase/internal/hardware"
)

// step fires act once wait milliseconds have passed since the
// previous step on the same channel.
type step struct {
	wait uint32
	act  func()
}

type channel struct {
	steps []step
	index int
	last  uint32
}

func (c *channel) advance(now uint32) {
	if c.index >= len(c.steps) {
		return
	}
	s := c.steps[c.index]
	if hardware.Elapsed(now, c.last) >= s.wait {
		s.act()
		c.last = now
		c.index++
	}
}

func (c *channel) done() bool {
	return c.index >= len(c.steps)
}

type schedule struct {
	audio []step
	light []step
}

// DefaultEngine plays the three fixed sequences. The schedules are built
// once at construction, the audio and light channels of a sequence advance
// on independent timers so neither blocks or drifts against the other.
type DefaultEngine struct {
	kind      Kind
	audio     channel
	light     channel
	schedules map[Kind]schedule
}

func NewDefaultEngine(strip hardware.Strip, sounder hardware.Sounder) *DefaultEngine {
	return &DefaultEngine{
		schedules: map[Kind]schedule{
			Hit:  {audio: hitAudio(sounder)},
			Win:  {audio: winAudio(sounder), light: winSweep(strip)},
			Lose: {audio: loseAudio(sounder), light: loseFlash(strip)},
		},
	}
}

func (e *DefaultEngine) Start(kind Kind, now uint32) {
	sc := e.schedules[kind]
	e.kind = kind
	e.audio = channel{steps: sc.audio, last: now}
	e.light = channel{steps: sc.light, last: now}
}

func (e *DefaultEngine) Advance(now uint32) bool {
	if e.kind == Idle {
		return true
	}
	e.audio.advance(now)
	e.light.advance(now)
	if e.audio.done() && e.light.done() {
		e.kind = Idle
		return true
	}
	return false
}

func (e *DefaultEngine) Active() bool {
	return e.kind != Idle
}

func hitAudio(sounder hardware.Sounder) []step {
	steps := make([]step, 0, len(config.HitTones))
	for _, freq := range config.HitTones {
		freq := freq
		steps = append(steps, step{
			wait: config.DurationHitNote,
			act:  func() { sounder.Tone(freq, config.DurationHitNote) },
		})
	}
	return steps
}

func winAudio(sounder hardware.Sounder) []step {
	steps := make([]step, 0, len(config.WinTones))
	var wait uint32 // first note fires immediately
	for i, freq := range config.WinTones {
		freq, duration := freq, config.WinToneDurations[i]
		steps = append(steps, step{
			wait: wait,
			act:  func() { sounder.Tone(freq, duration) },
		})
		wait = uint32(duration) + config.WinToneGapMs
	}
	return steps
}

func loseAudio(sounder hardware.Sounder) []step {
	steps := make([]step, 0, len(config.LoseTones))
	for _, freq := range config.LoseTones {
		freq := freq
		steps = append(steps, step{
			wait: config.DurationLoseNote,
			act:  func() { sounder.Tone(freq, config.DurationLoseNote) },
		})
	}
	return steps
}

func winSweep(strip hardware.Strip) []step {
	steps := make([]step, 0, config.WinSweeps*config.NumLeds+1)
	for sweep := 0; sweep < config.WinSweeps; sweep++ {
		for position := 0; position < config.NumLeds; position++ {
			position := position
			steps = append(steps, step{
				wait: config.WinSweepMs,
				act: func() {
					strip.Clear()
					strip.Set(position, true)
				},
			})
		}
	}
	steps = append(steps, step{wait: config.WinSweepMs, act: strip.Clear})
	return steps
}

func loseFlash(strip hardware.Strip) []step {
	steps := make([]step, 0, 2*config.LoseFlashCount)
	allOn := func() {
		for i := 0; i < config.NumLeds; i++ {
			strip.Set(i, true)
		}
	}
	for cycle := 0; cycle < config.LoseFlashCount; cycle++ {
		steps = append(steps, step{wait: config.LoseFlashMs, act: allOn})
		steps = append(steps, step{wait: config.LoseFlashMs, act: strip.Clear})
	}
	return steps
}
