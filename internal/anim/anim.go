package anim

// Kind selects one of the fixed audio/visual sequences.
type Kind uint8

const (
	Idle Kind = iota
	Hit
	Win
	Lose
)

// Engine runs at most one sequence at a time without blocking the caller.
type Engine interface {
	// Start abandons any running sequence and begins kind from its
	// first step, with every channel timestamp set to now.
	Start(kind Kind, now uint32)

	// Advance performs at most one due step per channel. Call exactly
	// once per frame, before the game state update. Returns true when
	// idle, including the frame the last channel exhausts its steps.
	Advance(now uint32) bool

	// Active reports whether a sequence is still running.
	Active() bool
}
