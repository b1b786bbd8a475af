package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs hands out run ids "run-0001", "run-0002", ... so stored
// history is byte-identical between test runs.
//
// Thread-safety: Next is safe for concurrent use.
type SequentialIDs struct {
	mu  sync.Mutex
	seq int
}

// Next returns the next id. Its signature matches store.WithIDGenerator.
func (g *SequentialIDs) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("run-%04d", g.seq), nil
}

// Reset restarts the sequence at run-0001.
func (g *SequentialIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
