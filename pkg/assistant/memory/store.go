package memory

import (
	"encoding/json"
	"sync"

	"opx-assistant-be/pkg/store"
)

const (
	// Hard cap on retained entries; once exceeded we trim down to
	// lowWater so consecutive appends do not thrash the trim.
	hardCap   = 100
	lowWater  = 50
	// Aggressive trim target when serialized history outgrows its budget.
	pressureWater = 20

	// Budget for the serialized history, in bytes.
	sizeBudget = 100 * 1024
	// Pressure percentage above which the aggressive trim kicks in.
	pressureLimit = 80
)

// Store is the bounded conversational history shared by all pipeline
// runs. Mutations are serialized internally; it is an injected component,
// not a package-level singleton, so tests can own their instance.
type Store struct {
	mu      sync.Mutex
	entries []store.ConversationEntry
}

func NewStore() *Store {
	return &Store{}
}

// Append adds an entry and applies the hard-cap trim.
func (s *Store) Append(entry store.ConversationEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > hardCap {
		s.trimLocked(lowWater)
	}
}

// Recent returns the n most recent entries, oldest first.
func (s *Store) Recent(n int) []store.ConversationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]store.ConversationEntry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// Len returns the current entry count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Pressure estimates how full the history is, as a percentage of the
// serialized-size budget, capped at 100.
func (s *Store) Pressure() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pressureLocked()
}

// CompactBefore runs ahead of a pipeline run and sheds history when the
// pressure estimate is already past its limit.
func (s *Store) CompactBefore() {
	s.compact()
}

// CompactAfter runs at the end of a pipeline run, after the new entry
// has been appended.
func (s *Store) CompactAfter() {
	s.compact()
}

func (s *Store) compact() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > hardCap {
		s.trimLocked(lowWater)
	}
	if s.pressureLocked() > pressureLimit {
		s.trimLocked(pressureWater)
	}
}

func (s *Store) pressureLocked() int {
	if len(s.entries) == 0 {
		return 0
	}
	data, err := json.Marshal(s.entries)
	if err != nil {
		return 0
	}
	pct := len(data) * 100 / sizeBudget
	if pct > 100 {
		pct = 100
	}
	return pct
}

// trimLocked keeps the `keep` most recent entries. Caller holds the lock.
func (s *Store) trimLocked(keep int) {
	if len(s.entries) <= keep {
		return
	}
	trimmed := make([]store.ConversationEntry, keep)
	copy(trimmed, s.entries[len(s.entries)-keep:])
	s.entries = trimmed
}
