package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiServiceRequiresKeys(t *testing.T) {
	_, err := NewGeminiService(nil, "models/gemini-1.5-flash-latest")
	assert.Error(t, err)
}

func TestGeminiKeyRotationCycles(t *testing.T) {
	svc, err := NewGeminiService([]string{"key-a", "key-b"}, "models/gemini-1.5-flash-latest")
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.rotateAPIKey())
	assert.Equal(t, 1, svc.currentKey)
	require.NoError(t, svc.rotateAPIKey())
	assert.Equal(t, 0, svc.currentKey)
}

func TestGeminiModelSnapshotDuringRotation(t *testing.T) {
	svc, err := NewGeminiService([]string{"key-a", "key-b"}, "models/gemini-1.5-flash-latest")
	require.NoError(t, err)
	defer svc.Close()

	// Concurrent rotations and model reads must not race; run with -race.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = svc.rotateAPIKey()
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, svc.currentModel())
		}()
	}
	wg.Wait()
}
