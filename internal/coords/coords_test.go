package coords

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockPosInChunkIndexIsUniqueAndInRange(t *testing.T) {
	seen := make(map[int]bool, ChunkVolume)
	for x := uint32(0); x < ChunkSize; x++ {
		for y := uint32(0); y < ChunkSize; y++ {
			for z := uint32(0); z < ChunkSize; z++ {
				p, ok := NewBlockPosInChunk(x, y, z)
				require.True(t, ok)
				i := p.Index()
				require.GreaterOrEqual(t, i, 0)
				require.Less(t, i, ChunkVolume)
				require.False(t, seen[i], "index %d produced twice", i)
				seen[i] = true
			}
		}
	}
	assert.Len(t, seen, ChunkVolume)
}

func TestBlockPosInChunkRejectsOutOfRange(t *testing.T) {
	for _, c := range [][3]uint32{{16, 0, 0}, {0, 16, 0}, {0, 0, 16}, {255, 255, 255}, {1 << 31, 0, 0}} {
		_, ok := NewBlockPosInChunk(c[0], c[1], c[2])
		assert.False(t, ok, "%v", c)
	}
}

func TestIndexLayoutIsYThenZThenX(t *testing.T) {
	p, _ := NewBlockPosInChunk(1, 0, 0)
	assert.Equal(t, 1, p.Index())
	p, _ = NewBlockPosInChunk(0, 0, 1)
	assert.Equal(t, 16, p.Index())
	p, _ = NewBlockPosInChunk(0, 1, 0)
	assert.Equal(t, 256, p.Index())
	p, _ = NewBlockPosInChunk(15, 15, 15)
	assert.Equal(t, 4095, p.Index())
}

func TestFromIndexRoundTrip(t *testing.T) {
	n := 0
	for p := range AllInChunk() {
		assert.Equal(t, n, p.Index())
		back, ok := FromIndex(n)
		require.True(t, ok)
		assert.Equal(t, p, back)
		n++
	}
	assert.Equal(t, ChunkVolume, n)

	_, ok := FromIndex(ChunkVolume)
	assert.False(t, ok)
	_, ok = FromIndex(-1)
	assert.False(t, ok)
}

func TestFromChunkPos(t *testing.T) {
	local, ok := NewBlockPosInChunk(2, 3, 4)
	require.True(t, ok)

	assert.Equal(t, BlockPosInWorld{18, 3, 4}, FromChunkPos(NewChunkPos(1, 0, 0), local))
	assert.Equal(t, BlockPosInWorld{-14, 3, 36}, FromChunkPos(NewChunkPos(-1, 0, 2), local))
}

func TestSplitInvertsFromChunkPos(t *testing.T) {
	for _, w := range []BlockPosInWorld{{0, 0, 0}, {18, 3, 4}, {-1, -16, -17}, {31, -32, 15}} {
		c, l := w.Split()
		assert.Equal(t, w, FromChunkPos(c, l), "%v", w)
	}
	c, l := NewBlockPosInWorld(-1, 0, 0).Split()
	assert.Equal(t, NewChunkPos(-1, 0, 0), c)
	assert.Equal(t, uint8(15), l.X())
}

func TestChunkPosOf(t *testing.T) {
	assert.Equal(t, NewChunkPos(0, 0, 0), ChunkPosOf(mgl32.Vec3{0.5, 15.9, 0}))
	assert.Equal(t, NewChunkPos(-1, 1, 0), ChunkPosOf(mgl32.Vec3{-0.1, 16, 3}))
}

func TestDegRad(t *testing.T) {
	assert.InDelta(t, float32(mgl32.DegToRad(90)), float32(Deg(90).Rad()), 1e-6)
	assert.InDelta(t, 180, float32(Rad(3.14159265).Deg()), 1e-3)
	assert.InDelta(t, 1, Deg(90).Sin(), 1e-6)
	assert.InDelta(t, -1, Deg(180).Cos(), 1e-6)
}
