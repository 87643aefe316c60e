package game

import (
	"fmt"
	"testing"

	"git.lost.host/meutraa/chase/internal/anim"
	"git.lost.host/meutraa/chase/internal/button"
	"git.lost.host/meutraa/chase/internal/config"
	"git.lost.host/meutraa/chase/internal/store"
)

type fakeBoard struct {
	now     uint32
	leds    [config.NumLeds]bool
	screens []string
	tones   []uint16
}

func (b *fakeBoard) Set(position int, on bool) {
	if position < 0 || position >= config.NumLeds {
		return
	}
	b.leds[position] = on
}

func (b *fakeBoard) Clear() {
	for i := range b.leds {
		b.leds[i] = false
	}
}

func (b *fakeBoard) Tone(freq, duration uint16) {
	b.tones = append(b.tones, freq)
}

func (b *fakeBoard) ShowAttract(high uint16) {
	b.screens = append(b.screens, fmt.Sprintf("attract %d", high))
}

func (b *fakeBoard) ShowGame(score, high uint16) {
	b.screens = append(b.screens, fmt.Sprintf("game %d %d", score, high))
}

func (b *fakeBoard) ShowCelebration(score uint16) {
	b.screens = append(b.screens, fmt.Sprintf("celebration %d", score))
}

func (b *fakeBoard) Blank() {
	b.screens = append(b.screens, "blank")
}

func (b *fakeBoard) Millis() uint32 { return b.now }

type fakePin struct {
	level bool
}

func (p *fakePin) Read() bool { return p.level }

// fakeStore counts Save calls on top of the in-memory cells.
type fakeStore struct {
	store.MemoryStore
	saves int
}

func (s *fakeStore) Save(value uint16) {
	s.saves++
	s.MemoryStore.Save(value)
}

func newTestGame(high uint16) (*Controller, *fakeBoard, *fakePin, *fakeStore) {
	hw := &fakeBoard{now: 1000}
	pin := &fakePin{level: true}
	st := &fakeStore{}
	if high > 0 {
		st.MemoryStore.Save(high)
	}
	c := NewController(hw, &button.DefaultDebouncer{Pin: pin}, anim.NewDefaultEngine(hw, hw), st)
	c.Init()
	return c, hw, pin, st
}

// press advances past the debounce window and taps the button,
// ticking once with the line low and once released.
func press(c *Controller, hw *fakeBoard, pin *fakePin) {
	hw.now += config.DebounceMs + 10
	pin.level = false
	c.Tick()
	pin.level = true
	c.Tick()
}

// aim parks the cursor on a position without a pending move.
func aim(c *Controller, hw *fakeBoard, position int) {
	c.cursor.Position = position
	c.cursor.LastMove = hw.now
}

// settle ticks until the controller is back in attract mode.
func settle(t *testing.T, c *Controller, hw *fakeBoard) {
	t.Helper()
	for i := 0; i < 200; i++ {
		hw.now += 50
		c.Tick()
		if c.state == Attract {
			return
		}
	}
	t.Fatalf("never returned to attract, stuck in %d", c.state)
}

func TestInitLoadsHighScore(t *testing.T) {
	c, hw, _, _ := newTestGame(50)
	if c.state != Attract {
		t.Fatalf("initial state = %d, want attract", c.state)
	}
	if c.high != 50 {
		t.Fatalf("high after init = %d, want 50", c.high)
	}
	if len(hw.screens) == 0 || hw.screens[0] != "attract 50" {
		t.Fatalf("screens after init = %v", hw.screens)
	}
}

func TestAttractPressStartsGame(t *testing.T) {
	c, hw, pin, _ := newTestGame(50)
	press(c, hw, pin)
	if c.state != Playing {
		t.Fatalf("state after press = %d, want playing", c.state)
	}
	if c.score != 0 || c.newHigh {
		t.Fatalf("score %d newHigh %v entering a new game", c.score, c.newHigh)
	}
	if hw.screens[len(hw.screens)-1] != "game 0 50" {
		t.Fatalf("screen = %q, want game 0 50", hw.screens[len(hw.screens)-1])
	}
	if c.cursor.Speed != config.InitialChaseSpeed {
		t.Fatalf("speed = %d, want %d", c.cursor.Speed, config.InitialChaseSpeed)
	}
}

func TestBullseyeHit(t *testing.T) {
	c, hw, pin, _ := newTestGame(0)
	press(c, hw, pin)

	aim(c, hw, config.TargetZoneStart)
	press(c, hw, pin)

	if c.state != Result {
		t.Fatalf("state after hit = %d, want result", c.state)
	}
	if c.score != config.BullseyeScore {
		t.Fatalf("score = %d, want %d", c.score, config.BullseyeScore)
	}
	if c.high != config.BullseyeScore || !c.newHigh {
		t.Fatalf("high = %d newHigh = %v", c.high, c.newHigh)
	}
	if c.cursor.Speed != config.InitialChaseSpeed-config.SpeedDecrease {
		t.Fatalf("speed = %d, want %d", c.cursor.Speed, config.InitialChaseSpeed-config.SpeedDecrease)
	}
	if hw.screens[len(hw.screens)-1] != "game 10 10" {
		t.Fatalf("screen = %q, want game 10 10", hw.screens[len(hw.screens)-1])
	}
}

func TestSpeedClampsAtMinimum(t *testing.T) {
	c, hw, pin, _ := newTestGame(0)
	press(c, hw, pin)

	// at these speeds the press window itself moves the cursor once,
	// aim at the zone start so the move lands on the zone end
	c.cursor.Speed = config.MinChaseSpeed + 2
	aim(c, hw, config.TargetZoneStart)
	press(c, hw, pin)
	if c.cursor.Speed != config.MinChaseSpeed {
		t.Fatalf("speed = %d, want clamp at %d", c.cursor.Speed, config.MinChaseSpeed)
	}

	hw.now += config.ResultDwellMs
	c.Tick()
	if c.state != Playing {
		t.Fatalf("state after dwell = %d, want playing", c.state)
	}

	aim(c, hw, config.TargetZoneStart)
	press(c, hw, pin)
	if c.cursor.Speed != config.MinChaseSpeed {
		t.Fatalf("speed = %d, floor must hold", c.cursor.Speed)
	}
}

func TestResultDwellBoundary(t *testing.T) {
	c, hw, pin, _ := newTestGame(0)
	press(c, hw, pin)
	aim(c, hw, config.TargetZoneStart)
	press(c, hw, pin)

	entered := hw.now
	hw.now = entered + config.ResultDwellMs - 1
	c.Tick()
	if c.state != Result {
		t.Fatal("left result before the dwell elapsed")
	}

	hw.now = entered + config.ResultDwellMs
	c.Tick()
	if c.state != Playing {
		t.Fatalf("state at dwell = %d, want playing", c.state)
	}
}

func TestMissWithoutHighScore(t *testing.T) {
	c, hw, pin, st := newTestGame(50)
	press(c, hw, pin)

	// one hit, still short of the stored high score
	aim(c, hw, config.TargetZoneStart)
	press(c, hw, pin)
	if c.score != config.BullseyeScore || c.newHigh {
		t.Fatalf("score %d newHigh %v after hit below the high score", c.score, c.newHigh)
	}
	hw.now += config.ResultDwellMs
	c.Tick()

	aim(c, hw, 0)
	press(c, hw, pin)

	if c.state != GameOver {
		t.Fatalf("state after miss = %d, want game over", c.state)
	}
	if c.score != config.BullseyeScore {
		t.Fatalf("score = %d, must stay unchanged until game over exits", c.score)
	}
	if st.saves != 0 {
		t.Fatalf("store written %d times on a plain miss", st.saves)
	}
	for i, on := range hw.leds {
		if on {
			t.Fatalf("led %d still on entering game over", i)
		}
	}

	settle(t, c, hw)
	if c.score != 0 {
		t.Fatalf("score = %d after game over exit, want 0", c.score)
	}
	if st.saves != 0 {
		t.Fatal("store touched while returning to attract")
	}
	if hw.screens[len(hw.screens)-1] != "attract 50" {
		t.Fatalf("screen = %q, want attract 50", hw.screens[len(hw.screens)-1])
	}
}

func TestMissWithNewHighScorePersistsOnce(t *testing.T) {
	c, hw, pin, st := newTestGame(0)
	press(c, hw, pin)

	aim(c, hw, config.TargetZoneStart)
	press(c, hw, pin)
	hw.now += config.ResultDwellMs
	c.Tick()

	aim(c, hw, 0)
	press(c, hw, pin)

	if c.state != Celebration {
		t.Fatalf("state after miss = %d, want celebration", c.state)
	}
	if st.saves != 1 {
		t.Fatalf("store written %d times, want exactly once", st.saves)
	}
	if got := st.Load(); got != config.BullseyeScore {
		t.Fatalf("persisted high = %d, want %d", got, config.BullseyeScore)
	}
	if hw.screens[len(hw.screens)-1] != "celebration 10" {
		t.Fatalf("screen = %q, want celebration 10", hw.screens[len(hw.screens)-1])
	}

	hw.now += config.CelebrationDwellMs
	c.Tick()
	if c.state != Attract {
		t.Fatalf("state after celebration dwell = %d, want attract", c.state)
	}
	if st.saves != 1 {
		t.Fatal("store written again after the celebration")
	}

	// the next game starts clean
	press(c, hw, pin)
	if c.state != Playing || c.score != 0 || c.newHigh {
		t.Fatalf("new game state %d score %d newHigh %v", c.state, c.score, c.newHigh)
	}
}

func TestTransitionOrder(t *testing.T) {
	c, hw, _, _ := newTestGame(0)

	type call struct {
		name  string
		state State
	}
	var calls []call
	c.actions[Attract].exit = func(c *Controller, now uint32) {
		calls = append(calls, call{"exit", c.state})
	}
	c.actions[Playing].enter = func(c *Controller, now uint32) {
		calls = append(calls, call{"enter", c.state})
	}

	c.transition(Playing, hw.now)

	if len(calls) != 2 {
		t.Fatalf("transition ran %d actions, want 2", len(calls))
	}
	if calls[0] != (call{"exit", Attract}) {
		t.Fatalf("first action = %v, want exit during attract", calls[0])
	}
	if calls[1] != (call{"enter", Playing}) {
		t.Fatalf("second action = %v, want enter during playing", calls[1])
	}
}

func TestCursorBouncesAtStripEnds(t *testing.T) {
	c, hw, _, _ := newTestGame(0)

	sawLow, sawHigh := false, false
	direction := c.cursor.Direction
	for i := 0; i < 50; i++ {
		hw.now += config.InitialChaseSpeed
		c.Tick()
		if c.cursor.Position < 0 || c.cursor.Position >= config.NumLeds {
			t.Fatalf("cursor left the strip at %d", c.cursor.Position)
		}
		if c.cursor.Direction != direction {
			if c.cursor.Position != 0 && c.cursor.Position != config.NumLeds-1 {
				t.Fatalf("direction flipped at %d", c.cursor.Position)
			}
			if c.cursor.Position == 0 {
				sawLow = true
			} else {
				sawHigh = true
			}
			direction = c.cursor.Direction
		}
	}
	if !sawLow || !sawHigh {
		t.Fatalf("bounces seen: low %v high %v", sawLow, sawHigh)
	}
}

var scoreAtTests = map[int]uint16{
	0: 0,
	1: 0,
	2: 0,
	3: config.BullseyeScore,
	4: config.BullseyeScore,
	5: 0,
	6: 0,
	7: 0,
}

func TestScoreAt(t *testing.T) {
	for position, expected := range scoreAtTests {
		if got := scoreAt(position); got != expected {
			t.Log("position", position)
			t.Log("got     ", got)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}
