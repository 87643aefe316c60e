package store

// MemoryStore is a volatile Store over an in-process cell array. It counts
// physical cell writes, which makes the wear discipline observable in tests.
type MemoryStore struct {
	Cells  [recordSize]byte
	Writes int
}

func (s *MemoryStore) Init() error { return nil }

func (s *MemoryStore) Deinit() {}

func (s *MemoryStore) Load() uint16 {
	return decode(s.Cells)
}

func (s *MemoryStore) Save(value uint16) {
	record := encode(value)
	for i, b := range record {
		if s.Cells[i] != b {
			s.Cells[i] = b
			s.Writes++
		}
	}
}
