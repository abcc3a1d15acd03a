package memory

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/store"
)

func entry(i int) store.ConversationEntry {
	return store.ConversationEntry{
		Command:   fmt.Sprintf("command %d", i),
		Intent:    "query_database",
		Response:  fmt.Sprintf("response %d", i),
		Success:   true,
		Timestamp: time.Now(),
	}
}

func TestStoreNeverExceedsHardCap(t *testing.T) {
	s := NewStore()
	for i := 0; i < 250; i++ {
		s.Append(entry(i))
		assert.LessOrEqual(t, s.Len(), 100)
	}
}

func TestStoreTrimsToFiftyMostRecent(t *testing.T) {
	s := NewStore()
	for i := 0; i <= 100; i++ { // 101 appends crosses the cap once
		s.Append(entry(i))
	}

	assert.Equal(t, 50, s.Len())

	recent := s.Recent(50)
	assert.Equal(t, "command 51", recent[0].Command, "oldest survivor")
	assert.Equal(t, "command 100", recent[49].Command, "newest survivor")
}

func TestRecentReturnsOldestFirst(t *testing.T) {
	s := NewStore()
	for i := 0; i < 20; i++ {
		s.Append(entry(i))
	}

	recent := s.Recent(10)
	assert.Len(t, recent, 10)
	assert.Equal(t, "command 10", recent[0].Command)
	assert.Equal(t, "command 19", recent[9].Command)
}

func TestRecentWithOversizedN(t *testing.T) {
	s := NewStore()
	s.Append(entry(1))
	s.Append(entry(2))

	recent := s.Recent(10)
	assert.Len(t, recent, 2)
}

func TestCompactShedsUnderPressure(t *testing.T) {
	s := NewStore()

	// Oversized responses push the serialized history past its budget.
	big := strings.Repeat("x", 4*1024)
	for i := 0; i < 60; i++ {
		s.Append(store.ConversationEntry{
			Command:   fmt.Sprintf("command %d", i),
			Response:  big,
			Timestamp: time.Now(),
		})
	}
	assert.Greater(t, s.Pressure(), 80)

	s.CompactBefore()
	assert.Equal(t, 20, s.Len())
}

func TestConcurrentAppendsStayBounded(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Append(entry(w*100 + i))
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 100)
}
