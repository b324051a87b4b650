package coords

import (
	"fmt"
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ChunkSize   = 16
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// Index maps chunk-local coordinates to a slot in chunk storage.
// Storage, meshing and collision all go through this one function.
func Index(x, y, z uint8) int {
	return ChunkSize*ChunkSize*int(y) + ChunkSize*int(z) + int(x)
}

// BlockPosInChunk is a block position relative to its chunk. Every component
// is in [0,16); the only way to build one is NewBlockPosInChunk or FromIndex.
type BlockPosInChunk struct {
	x, y, z uint8
}

func NewBlockPosInChunk(x, y, z uint32) (BlockPosInChunk, bool) {
	if x >= ChunkSize || y >= ChunkSize || z >= ChunkSize {
		return BlockPosInChunk{}, false
	}
	return BlockPosInChunk{uint8(x), uint8(y), uint8(z)}, true
}

// FromIndex is the inverse of Index.
func FromIndex(i int) (BlockPosInChunk, bool) {
	if i < 0 || i >= ChunkVolume {
		return BlockPosInChunk{}, false
	}
	return BlockPosInChunk{
		x: uint8(i % ChunkSize),
		z: uint8((i / ChunkSize) % ChunkSize),
		y: uint8(i / (ChunkSize * ChunkSize)),
	}, true
}

func (p BlockPosInChunk) X() uint8 { return p.x }
func (p BlockPosInChunk) Y() uint8 { return p.y }
func (p BlockPosInChunk) Z() uint8 { return p.z }

func (p BlockPosInChunk) Index() int {
	return Index(p.x, p.y, p.z)
}

func (p BlockPosInChunk) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.x, p.y, p.z)
}

// AllInChunk yields every local position in storage order.
func AllInChunk() iter.Seq[BlockPosInChunk] {
	return func(yield func(BlockPosInChunk) bool) {
		for i := 0; i < ChunkVolume; i++ {
			p, _ := FromIndex(i)
			if !yield(p) {
				return
			}
		}
	}
}

type ChunkPos struct {
	X, Y, Z int32
}

func NewChunkPos(x, y, z int32) ChunkPos {
	return ChunkPos{x, y, z}
}

func (c ChunkPos) String() string {
	return fmt.Sprintf("chunk(%d,%d,%d)", c.X, c.Y, c.Z)
}

// ChunkPosOf returns the chunk containing a point in world space.
func ChunkPosOf(p mgl32.Vec3) ChunkPos {
	return ChunkPos{
		X: int32(math.Floor(float64(p.X()) / ChunkSize)),
		Y: int32(math.Floor(float64(p.Y()) / ChunkSize)),
		Z: int32(math.Floor(float64(p.Z()) / ChunkSize)),
	}
}

type BlockPosInWorld struct {
	X, Y, Z int32
}

func NewBlockPosInWorld(x, y, z int32) BlockPosInWorld {
	return BlockPosInWorld{x, y, z}
}

// FromChunkPos places a chunk-local position in the world: chunk*16 + local.
func FromChunkPos(chunk ChunkPos, local BlockPosInChunk) BlockPosInWorld {
	return BlockPosInWorld{
		X: chunk.X*ChunkSize + int32(local.x),
		Y: chunk.Y*ChunkSize + int32(local.y),
		Z: chunk.Z*ChunkSize + int32(local.z),
	}
}

// Split is the inverse of FromChunkPos. Negative coordinates floor toward
// -infinity, so (-1,0,0) lands in chunk (-1,0,0) at local (15,0,0).
func (p BlockPosInWorld) Split() (ChunkPos, BlockPosInChunk) {
	c := ChunkPos{floorDiv(p.X), floorDiv(p.Y), floorDiv(p.Z)}
	return c, BlockPosInChunk{
		x: uint8(p.X - c.X*ChunkSize),
		y: uint8(p.Y - c.Y*ChunkSize),
		z: uint8(p.Z - c.Z*ChunkSize),
	}
}

// Vec3 is the block's minimum corner.
func (p BlockPosInWorld) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}

func (p BlockPosInWorld) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

func floorDiv(v int32) int32 {
	q := v / ChunkSize
	if v%ChunkSize < 0 {
		q--
	}
	return q
}
