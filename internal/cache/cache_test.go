package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadThroughCachesHit(t *testing.T) {
	require := require.New(t)
	backend := NewMemoryBackend()
	var loads int32
	rt := NewReadThrough(backend, 10, nil)

	load := func(key string) ([]byte, error) {
		atomic.AddInt32(&loads, 1)
		return []byte("value-" + key), nil
	}

	v, err := rt.Get("a", load)
	require.NoError(err)
	require.Equal("value-a", string(v))

	v, err = rt.Get("a", load)
	require.NoError(err)
	require.Equal("value-a", string(v))
	require.EqualValues(1, loads)
}

func TestReadThroughSingleFlight(t *testing.T) {
	require := require.New(t)
	backend := NewMemoryBackend()
	rt := NewReadThrough(backend, 10, nil)

	var loads int32
	release := make(chan struct{})
	load := func(key string) ([]byte, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return []byte("value"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := rt.Get("k", load)
			require.NoError(err)
			require.Equal("value", string(v))
		}()
	}
	close(release)
	wg.Wait()
	require.LessOrEqual(loads, int32(2))
}

func TestReadThroughDisablesAfterConsecutiveFailures(t *testing.T) {
	require := require.New(t)
	backend := NewMemoryBackend()
	rt := NewReadThrough(backend, 3, nil)

	failing := func(key string) ([]byte, error) {
		return nil, fmt.Errorf("boom")
	}

	for i := 0; i < 3; i++ {
		_, err := rt.Get(fmt.Sprintf("k%d", i), failing)
		require.Error(err)
	}
	require.True(rt.Disabled())
}
