package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fhk/internal/arena"
)

func TestScratchPool_AcquireReleaseReuse(t *testing.T) {
	p := arena.NewScratchPool()

	buf, slot, ok := p.Acquire(16)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(buf), 16)

	p.Release(slot)

	buf2, slot2, ok := p.Acquire(8)
	require.True(t, ok)
	assert.Equal(t, slot, slot2)
	assert.GreaterOrEqual(t, len(buf2), 8)
}

func TestScratchPool_ExhaustsAllSlots(t *testing.T) {
	p := arena.NewScratchPool()
	for i := 0; i < arena.MaxSlots; i++ {
		_, _, ok := p.Acquire(8)
		require.True(t, ok)
	}
	_, _, ok := p.Acquire(8)
	assert.False(t, ok)
}

func TestScratchPool_ReleaseUnacquiredPanics(t *testing.T) {
	p := arena.NewScratchPool()
	assert.Panics(t, func() { p.Release(0) })
}
