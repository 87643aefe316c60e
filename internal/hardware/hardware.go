package hardware

// Strip drives the indicator leds. An out of range index is a no-op.
type Strip interface {
	Set(position int, on bool)
	Clear()
}

// Sounder emits a tone without blocking, duration in milliseconds.
type Sounder interface {
	Tone(freq, duration uint16)
}

// Display renders one of the four fixed 16x2 layouts.
type Display interface {
	ShowAttract(high uint16)
	ShowGame(score, high uint16)
	ShowCelebration(score uint16)
	Blank()
}

// Pin reads the raw logical level of the button line.
// The line is active low, a held button reads false.
type Pin interface {
	Read() bool
}

// Clock is the monotonic millisecond counter all timing derives from.
// It wraps after 2^32 ms of continuous running, callers must compare
// readings through Elapsed.
type Clock interface {
	Millis() uint32
}

// Board is the set of collaborators the game controller consumes.
type Board interface {
	Strip
	Sounder
	Display
	Clock
}

// Hardware is the full cabinet as driven by the frame loop.
type Hardware interface {
	Board
	Pin
	Init() error
	Deinit() error
	Closed() bool
}

// Elapsed returns the milliseconds between two counter readings.
// Unsigned subtraction keeps the result correct across the counter
// wrapping back through zero.
func Elapsed(now, since uint32) uint32 {
	return now - since
}
