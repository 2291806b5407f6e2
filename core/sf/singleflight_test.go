package sf

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleflight_Dedup(t *testing.T) {
	s := New[int]()

	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := s.Do("key", func() (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		require.Equal(t, 42, v)
	}
}

func TestSingleflight_Error(t *testing.T) {
	s := New[string]()
	boom := errors.New("boom")

	v, _, err := s.Do("key", func() (string, error) { return "ignored", boom })
	require.ErrorIs(t, err, boom)
	require.Empty(t, v)

	v, _, err = s.Do("key", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	require.Equal(t, "ok", v)
}

func TestSingleflight_NilInterfaceResult(t *testing.T) {
	s := New[any]()

	var (
		v   any
		err error
	)
	require.NotPanics(t, func() {
		v, _, err = s.Do("key", func() (any, error) { return nil, nil })
	})
	require.NoError(t, err)
	require.Nil(t, v)
}
