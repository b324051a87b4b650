package world

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencraft/internal/block"
	"opencraft/internal/chunk"
	"opencraft/internal/coords"
	"opencraft/internal/physics"
	"opencraft/internal/texture"
)

func newTestWorld() (*World, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(log.New(&buf, "", 0)), &buf
}

func TestAddChunkRefusesDuplicates(t *testing.T) {
	w, _ := newTestWorld()
	pos := coords.NewChunkPos(1, -2, 3)

	first := chunk.New(pos)
	first.SetBlock(block.Grass, coords.BlockPosInChunk{})
	require.NoError(t, w.AddChunk(first))

	err := w.AddChunk(chunk.New(pos))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateChunk))
	assert.Contains(t, err.Error(), "chunk(1,-2,3)")

	got, ok := w.GetChunk(pos)
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, 1, w.Len())
}

func TestGetChunkMissing(t *testing.T) {
	w, _ := newTestWorld()
	_, ok := w.GetChunk(coords.NewChunkPos(0, 0, 0))
	assert.False(t, ok)
}

func TestWorldBlocksAcrossChunks(t *testing.T) {
	w, _ := newTestWorld()
	pos := coords.NewBlockPosInWorld(-1, 17, 0)
	w.SetBlock(block.Grass, pos)

	got, ok := w.GetBlock(pos)
	require.True(t, ok)
	assert.Equal(t, block.Grass, got)

	c, ok := w.GetChunk(coords.NewChunkPos(-1, 1, 0))
	require.True(t, ok)
	local, _ := coords.NewBlockPosInChunk(15, 1, 0)
	_, ok = c.GetBlock(local)
	assert.True(t, ok)

	_, ok = w.GetBlock(coords.NewBlockPosInWorld(0, 17, 0))
	assert.False(t, ok)
}

func TestChunksOrder(t *testing.T) {
	w, _ := newTestWorld()
	for _, p := range []coords.ChunkPos{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 0}, {X: -1, Y: 5, Z: 5}} {
		require.NoError(t, w.AddChunk(chunk.New(p)))
	}
	var got []coords.ChunkPos
	for c := range w.Chunks() {
		got = append(got, c.Pos())
	}
	assert.Equal(t, []coords.ChunkPos{{X: -1, Y: 5, Z: 5}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}}, got)
}

func TestCollisionAABBsIn(t *testing.T) {
	w, _ := newTestWorld()
	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(20, 0, 0))
	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(0, 0, 0))
	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(-100, 0, 0))

	area := physics.NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{17, 2, 2})
	boxes := w.CollisionAABBsIn(area)
	require.Len(t, boxes, 2)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, boxes[0].Min)
	assert.Equal(t, mgl32.Vec3{20, 0, 0}, boxes[1].Min)

	assert.Empty(t, w.CollisionAABBsIn(physics.NewAABB(mgl32.Vec3{50, 50, 50}, mgl32.Vec3{51, 51, 51})))
}

func TestGenerateMesh(t *testing.T) {
	w, _ := newTestWorld()
	a, err := texture.NewAtlas(192, 64, 64, 64)
	require.NoError(t, err)
	for i, n := range []string{"grass_side", "grass_top", "grass_bottom"} {
		require.NoError(t, a.Add(n, uint32(i), 0))
	}

	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(1, 1, 1))
	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(2, 1, 1))
	b, err := w.GenerateMesh(coords.NewChunkPos(0, 0, 0), block.DefaultTable(), a)
	require.NoError(t, err)
	assert.Equal(t, 72, b.VertexCount())

	_, err = w.GenerateMesh(coords.NewChunkPos(9, 9, 9), block.DefaultTable(), a)
	assert.True(t, errors.Is(err, ErrUnknownChunk))

	require.NoError(t, w.AddChunk(chunk.New(coords.NewChunkPos(5, 5, 5))))
	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(-1, 0, 0))
	total := 0
	for b, err := range w.Meshes(block.DefaultTable(), a) {
		require.NoError(t, err)
		total += b.VertexCount()
	}
	assert.Equal(t, 108, total)
}

func TestMeshesStopsOnContentError(t *testing.T) {
	w, _ := newTestWorld()
	a, err := texture.NewAtlas(64, 64, 64, 64)
	require.NoError(t, err)
	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(0, 0, 0))
	w.SetBlock(block.Grass, coords.NewBlockPosInWorld(32, 0, 0))

	calls := 0
	for _, err := range w.Meshes(block.DefaultTable(), a) {
		calls++
		var missing *texture.MissingTextureError
		assert.True(t, errors.As(err, &missing))
	}
	assert.Equal(t, 1, calls)
}
