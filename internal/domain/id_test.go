package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_Next(t *testing.T) {
	t.Parallel()

	t.Run("uses millisecond clock", func(t *testing.T) {
		fixed := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
		g := &IDGenerator{now: func() time.Time { return fixed }}

		assert.Equal(t, fixed.UnixMilli(), g.Next())
	})

	t.Run("same millisecond stays unique", func(t *testing.T) {
		fixed := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
		g := &IDGenerator{now: func() time.Time { return fixed }}

		first := g.Next()
		second := g.Next()
		third := g.Next()

		assert.Equal(t, first+1, second)
		assert.Equal(t, second+1, third)
	})

	t.Run("seed floor wins over a clock behind it", func(t *testing.T) {
		fixed := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
		g := &IDGenerator{now: func() time.Time { return fixed }}
		g.Seed(fixed.UnixMilli() + 500)

		assert.Equal(t, fixed.UnixMilli()+501, g.Next())
	})

	t.Run("seed never lowers the floor", func(t *testing.T) {
		g := NewIDGenerator()
		id := g.Next()
		g.Seed(1)

		assert.Greater(t, g.Next(), id)
	})
}

func TestIDGenerator_ConcurrentUnique(t *testing.T) {
	t.Parallel()

	g := NewIDGenerator()
	const workers, perWorker = 8, 200

	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				local = append(local, g.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker, "every generated id should be unique")
}
