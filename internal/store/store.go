package store

import (
	"git.lost.host/meutraa/chase/internal/config"
)

// Store retains the high score across power cycles.
type Store interface {
	Init() error
	Deinit()

	// Load returns the stored value, or 0 when the record is missing,
	// uninitialized or corrupt. It never fails.
	Load() uint16

	// Save writes the value, skipping any record byte that already
	// holds its target to bound wear on the underlying storage.
	Save(value uint16)
}

const recordSize = 4

// encode packs a value into the on-device record:
// value low byte, value high byte, magic marker, xor checksum.
func encode(value uint16) [recordSize]byte {
	low, high := byte(value), byte(value>>8)
	return [recordSize]byte{
		low,
		high,
		config.EepromMagicByte,
		low ^ high ^ config.EepromMagicByte,
	}
}

// decode validates the magic marker and checksum and reconstructs the
// value. Any violation reads as 0, the same as never written.
func decode(record [recordSize]byte) uint16 {
	if record[2] != config.EepromMagicByte {
		return 0
	}
	if record[3] != record[0]^record[1]^record[2] {
		return 0
	}
	return uint16(record[0]) | uint16(record[1])<<8
}
