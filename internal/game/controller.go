package game

import (
	"git.lost.host/meutraa/chase/internal/anim"
	"git.lost.host/meutraa/chase/internal/button"
	"git.lost.host/meutraa/chase/internal/config"
	"git.lost.host/meutraa/chase/internal/hardware"
	"git.lost.host/meutraa/chase/internal/store"
)

type stateActions struct {
	enter  func(c *Controller, now uint32)
	update func(c *Controller, now uint32)
	exit   func(c *Controller, now uint32)
}

// Controller owns all game state and advances it one frame per Tick.
// Every operation returns well inside the frame budget, nothing blocks.
type Controller struct {
	hw     hardware.Board
	button button.Debouncer
	anim   anim.Engine
	store  store.Store

	state   State
	entered uint32 // when the current state was entered
	cursor  Cursor
	score   uint16
	high    uint16
	newHigh bool

	actions [stateCount]stateActions
}

func NewController(hw hardware.Board, btn button.Debouncer, eng anim.Engine, st store.Store) *Controller {
	c := &Controller{hw: hw, button: btn, anim: eng, store: st}
	c.actions = [stateCount]stateActions{
		Attract: {
			enter:  (*Controller).enterAttract,
			update: (*Controller).updateAttract,
			exit:   (*Controller).exitAttract,
		},
		Playing: {
			enter:  (*Controller).enterPlaying,
			update: (*Controller).updatePlaying,
		},
		Result: {
			update: (*Controller).updateResult,
		},
		Celebration: {
			enter:  (*Controller).enterCelebration,
			update: (*Controller).updateCelebration,
			exit:   (*Controller).exitCelebration,
		},
		GameOver: {
			enter:  (*Controller).enterGameOver,
			update: (*Controller).updateGameOver,
			exit:   (*Controller).exitGameOver,
		},
	}
	return c
}

// Init loads the persisted high score and enters attract mode.
// Call exactly once before the first Tick.
func (c *Controller) Init() {
	now := c.hw.Millis()
	c.high = c.store.Load()
	c.score = 0
	c.newHigh = false
	c.cursor = Cursor{Direction: 1, Speed: config.InitialChaseSpeed, LastMove: now}
	c.state = Attract
	c.entered = now
	c.enterAttract(now)
}

// Tick runs one frame: the counter is read once, the animation engine
// advances unconditionally, then the active state updates.
func (c *Controller) Tick() {
	now := c.hw.Millis()
	c.anim.Advance(now)
	if update := c.actions[c.state].update; nil != update {
		update(c, now)
	}
}

// transition runs the outgoing exit action, swaps the state and entry
// timestamp, then runs the incoming entry action, in that fixed order.
func (c *Controller) transition(to State, now uint32) {
	if exit := c.actions[c.state].exit; nil != exit {
		exit(c, now)
	}
	c.state = to
	c.entered = now
	if enter := c.actions[to].enter; nil != enter {
		enter(c, now)
	}
}

func (c *Controller) enterAttract(now uint32) {
	c.cursor.Speed = config.InitialChaseSpeed
	c.hw.ShowAttract(c.high)
}

func (c *Controller) updateAttract(now uint32) {
	c.advanceCursor(now)
	if c.button.Pressed(now) {
		c.transition(Playing, now)
	}
}

func (c *Controller) exitAttract(now uint32) {
	c.score = 0
	c.newHigh = false
	c.button.Reset(now)
}

func (c *Controller) enterPlaying(now uint32) {
	c.hw.ShowGame(c.score, c.high)
	// the chase carries on from where it was, only the timer resyncs
	c.cursor.LastMove = now
}

func (c *Controller) updatePlaying(now uint32) {
	c.advanceCursor(now)
	if !c.button.Pressed(now) {
		return
	}

	points := scoreAt(c.cursor.Position)
	if points == 0 {
		if c.newHigh {
			c.store.Save(c.high)
			c.transition(Celebration, now)
		} else {
			c.transition(GameOver, now)
		}
		return
	}

	c.score += points
	if c.score > c.high {
		c.high = c.score
		c.newHigh = true
	}
	c.hw.ShowGame(c.score, c.high)
	c.anim.Start(anim.Hit, now)

	if c.cursor.Speed > config.MinChaseSpeed {
		c.cursor.Speed -= config.SpeedDecrease
		if c.cursor.Speed < config.MinChaseSpeed {
			c.cursor.Speed = config.MinChaseSpeed
		}
	}

	c.transition(Result, now)
}

func (c *Controller) updateResult(now uint32) {
	if hardware.Elapsed(now, c.entered) >= config.ResultDwellMs {
		c.transition(Playing, now)
	}
}

func (c *Controller) enterCelebration(now uint32) {
	c.hw.ShowCelebration(c.high)
	c.anim.Start(anim.Win, now)
}

func (c *Controller) updateCelebration(now uint32) {
	if hardware.Elapsed(now, c.entered) >= config.CelebrationDwellMs {
		c.transition(Attract, now)
	}
}

func (c *Controller) exitCelebration(now uint32) {
	c.button.Reset(now)
}

func (c *Controller) enterGameOver(now uint32) {
	c.anim.Start(anim.Lose, now)
	c.hw.Clear()
}

func (c *Controller) updateGameOver(now uint32) {
	if !c.anim.Active() {
		c.transition(Attract, now)
	}
}

func (c *Controller) exitGameOver(now uint32) {
	c.score = 0
	c.button.Reset(now)
}

// advanceCursor moves the light at most one position per elapsed speed
// interval, bouncing at the two ends of the strip.
func (c *Controller) advanceCursor(now uint32) {
	if hardware.Elapsed(now, c.cursor.LastMove) < c.cursor.Speed {
		return
	}
	c.cursor.LastMove = now

	c.hw.Clear()
	c.cursor.Position += c.cursor.Direction
	if c.cursor.Position == 0 {
		c.cursor.Direction = 1
	} else if c.cursor.Position == config.NumLeds-1 {
		c.cursor.Direction = -1
	}
	c.hw.Set(c.cursor.Position, true)

	c.hw.Tone(config.FreqTick, config.DurationTick)
}

// scoreAt maps a strip position to points: inside the target zone or nothing.
func scoreAt(position int) uint16 {
	if position >= config.TargetZoneStart && position <= config.TargetZoneEnd {
		return config.BullseyeScore
	}
	return 0
}
