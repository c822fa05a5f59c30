package service

import (
	"sync"
	"testing"
	"time"

	"github.com/hackforge/policy-chatbot-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	store := NewSessionStore(0)

	id := store.Create("document text", types.ClassificationAllowed)
	require.NotEmpty(t, id)

	session, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "document text", session.Content)
	assert.Equal(t, types.ClassificationAllowed, session.Classification)
	assert.Equal(t, id, session.ID)
}

func TestSessionUnknownID(t *testing.T) {
	store := NewSessionStore(0)

	_, ok := store.Get("no-such-session")
	assert.False(t, ok)
}

func TestSessionIDsAreUnique(t *testing.T) {
	store := NewSessionStore(0)

	first := store.Create("a", types.ClassificationAllowed)
	second := store.Create("a", types.ClassificationAllowed)
	assert.NotEqual(t, first, second)
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore(time.Nanosecond)

	id := store.Create("document text", types.ClassificationRestricted)
	time.Sleep(2 * time.Millisecond)

	_, ok := store.Get(id)
	assert.False(t, ok)
}

func TestSessionExpiredEntryIsEvicted(t *testing.T) {
	store := NewSessionStore(time.Nanosecond)

	id := store.Create("document text", types.ClassificationAllowed)
	time.Sleep(2 * time.Millisecond)

	_, ok := store.Get(id)
	require.False(t, ok)

	// The expired entry is removed, not just hidden.
	inner := store.(*sessionStore)
	inner.mu.RLock()
	_, present := inner.sessions[id]
	inner.mu.RUnlock()
	assert.False(t, present)
}

func TestSessionConcurrentCreates(t *testing.T) {
	store := NewSessionStore(0)

	const n = 50
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = store.Create("doc", types.ClassificationAllowed)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		require.False(t, seen[id])
		seen[id] = true
		_, ok := store.Get(id)
		assert.True(t, ok)
	}
}
