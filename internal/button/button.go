package button

// Debouncer turns the noisy raw button line into clean single press events.
type Debouncer interface {
	// Pressed reports a debounced press edge. Call once per frame.
	Pressed(now uint32) bool

	// Reset resynchronizes with the current line level and restarts the
	// debounce window, so a button held across a state change cannot
	// produce a stale edge in the new state.
	Reset(now uint32)
}
