package engine

import (
	"sync"
	"sync/atomic"

	"github.com/hailam/chesscore/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// Number of shards for TT locking (power of 2 for fast modulo)
const ttShardCount = 64
const ttShardMask = ttShardCount - 1

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint64
	BestMove board.Move
	Score    int
	Depth    int
	Flag     TTFlag
}

// TranspositionTable is a fixed-size hash table of search results, shared by
// parallel root workers.
type TranspositionTable struct {
	entries []TTEntry
	shards  [ttShardCount]sync.RWMutex
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTranspositionTable creates a table with at least the given number of
// entries, rounded up to a power of two.
func NewTranspositionTable(entries int) *TranspositionTable {
	size := uint64(ttShardCount)
	for size < uint64(entries) {
		size <<= 1
	}
	return &TranspositionTable{
		entries: make([]TTEntry, size),
		mask:    size - 1,
	}
}

// Probe looks up a position. The entry is returned only when its key matches.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	if tt == nil {
		return TTEntry{}, false
	}
	tt.probes.Add(1)
	idx := key & tt.mask
	mu := &tt.shards[idx&ttShardMask]
	mu.RLock()
	e := tt.entries[idx]
	mu.RUnlock()
	if e.Key != key || e.Depth == 0 {
		return TTEntry{}, false
	}
	tt.hits.Add(1)
	return e, true
}

// Store saves a result, replacing any shallower entry in the slot.
func (tt *TranspositionTable) Store(key uint64, move board.Move, score, depth int, flag TTFlag) {
	if tt == nil {
		return
	}
	idx := key & tt.mask
	mu := &tt.shards[idx&ttShardMask]
	mu.Lock()
	defer mu.Unlock()
	old := tt.entries[idx]
	if old.Key == key && old.Depth > depth {
		return
	}
	tt.entries[idx] = TTEntry{Key: key, BestMove: move, Score: score, Depth: depth, Flag: flag}
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.shards {
		tt.shards[i].Lock()
	}
	clear(tt.entries)
	for i := range tt.shards {
		tt.shards[i].Unlock()
	}
	tt.hits.Store(0)
	tt.probes.Store(0)
}

// HitRate returns the permille of probes that found an entry.
func (tt *TranspositionTable) HitRate() int {
	p := tt.probes.Load()
	if p == 0 {
		return 0
	}
	return int(tt.hits.Load() * 1000 / p)
}
