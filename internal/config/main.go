package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Eeprom      = kingpin.Flag("eeprom", "Path to the eeprom database").Default("eeprom.db").Short('e').String()
	FramePeriod = kingpin.Flag("frame-period", "Frame loop period").Default("5ms").Short('p').Duration()
	Watchdog    = kingpin.Flag("watchdog", "Frame deadline before the watchdog trips").Default("2s").Short('w').Duration()
	Silent      = kingpin.Flag("silent", "Disable the buzzer").Short('s').Bool()
)

// Parse is called from run, not from package init,
// so tests can import the constants without eating os.Args
func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}

// Strip layout
const (
	NumLeds         = 8
	TargetZoneStart = 3
	TargetZoneEnd   = 4
)

// Timing, in milliseconds against the monotonic counter
const (
	DebounceMs         = 50
	InitialChaseSpeed  = 200
	MinChaseSpeed      = 50
	SpeedDecrease      = 5
	ResultDwellMs      = 300
	CelebrationDwellMs = 2000
)

// Scoring. Only the bullseye value is wired into the scoring rule,
// the adjacent and outer values belong to a graduated zone that never shipped.
const (
	BullseyeScore uint16 = 10
	AdjacentScore uint16 = 5
	OuterScore    uint16 = 1
)

// Chase tick sound
const (
	FreqTick     = 100
	DurationTick = 20
)

// Hit fanfare, one ascending tone per step
var HitTones = [3]uint16{800, 1000, 1200}

const DurationHitNote = 100

// Celebration melody with a parallel led sweep
var (
	WinTones         = [5]uint16{523, 659, 784, 1047, 1319}
	WinToneDurations = [5]uint16{150, 150, 150, 150, 300}
)

const (
	WinToneGapMs = 50
	WinSweepMs   = 40
	WinSweeps    = 3
)

// Game over descent with a parallel all-led flash
var LoseTones = [3]uint16{400, 300, 200}

const (
	DurationLoseNote = 200
	LoseFlashMs      = 150
	LoseFlashCount   = 5
)

// Eeprom record layout
const (
	EepromHighScoreAddr = 0
	EepromMagicByte     = 0xA5
)
