package chart

import (
	"encoding/binary"
	"hash/fnv"
	"sync"

	"github.com/Veraticus/tradepost/internal/model"
)

// Memo caches the most recent alignment. The series set is identified by a version
// the caller bumps whenever it replaces the set.
type Memo struct {
	table *AlignedTable
	hash  uint64
	mu    sync.Mutex
	valid bool
}

// Align returns the cached table when (version, selected, tier) is unchanged and
// recomputes it otherwise.
func (m *Memo) Align(version uint64, series model.SeriesSet, selected []string, tier model.QualityTier) *AlignedTable {
	h := inputHash(version, selected, tier)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.hash == h {
		return m.table
	}
	m.table = Align(series, selected, tier)
	m.hash = h
	m.valid = true
	return m.table
}

// Reset drops the cached table.
func (m *Memo) Reset() {
	m.mu.Lock()
	m.valid = false
	m.table = nil
	m.mu.Unlock()
}

func inputHash(version uint64, selected []string, tier model.QualityTier) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], version)
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(tier))
	_, _ = h.Write(buf[:])
	for _, k := range selected {
		_, _ = h.Write([]byte(k))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
