package session

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderClearIfToken(t *testing.T) {
	h := NewHolder(NewMemoryStore())
	require.NoError(t, h.Set(testSession()))

	cleared, err := h.ClearIfToken("stale-token")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.NotNil(t, h.Current())

	cleared, err = h.ClearIfToken("opaque-token")
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Nil(t, h.Current())

	cleared, err = h.ClearIfToken("opaque-token")
	require.NoError(t, err)
	assert.False(t, cleared, "second clear for the same token must be a no-op")
}

func TestHolderClearIfTokenConcurrent(t *testing.T) {
	h := NewHolder(NewMemoryStore())
	require.NoError(t, h.Set(testSession()))

	var clears atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := h.ClearIfToken("opaque-token"); ok {
				clears.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), clears.Load())
}

func TestHolderSeesExternalClear(t *testing.T) {
	store := NewMemoryStore()
	h := NewHolder(store)
	require.NoError(t, h.Set(testSession()))

	require.NoError(t, store.Clear())
	assert.Nil(t, h.Current())
}
