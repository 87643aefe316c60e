package game

// State is the game controller phase. Exactly one is active, and it is
// only ever changed through the controller transition operation.
type State uint8

const (
	Attract State = iota
	Playing
	Result
	Celebration
	GameOver

	stateCount
)

// Cursor is the moving light: position, travel direction, and the
// interval between moves. Speed shrinks as the game gets harder.
type Cursor struct {
	Position  int
	Direction int
	Speed     uint32
	LastMove  uint32
}
