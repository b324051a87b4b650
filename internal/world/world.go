package world

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"log"
	"slices"

	"opencraft/internal/block"
	"opencraft/internal/chunk"
	"opencraft/internal/coords"
	"opencraft/internal/mesh"
	"opencraft/internal/physics"
	"opencraft/internal/texture"
)

var (
	ErrDuplicateChunk = errors.New("chunk already registered")
	ErrUnknownChunk   = errors.New("chunk not registered")
)

// World is a sparse set of chunks keyed by position. It is not safe for
// concurrent mutation.
type World struct {
	chunks map[coords.ChunkPos]*chunk.Chunk
	logger *log.Logger
}

func New(logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		chunks: make(map[coords.ChunkPos]*chunk.Chunk),
		logger: logger,
	}
}

// AddChunk registers c. A chunk already present at c.Pos() is kept and
// ErrDuplicateChunk is returned.
func (w *World) AddChunk(c *chunk.Chunk) error {
	if _, exists := w.chunks[c.Pos()]; exists {
		return fmt.Errorf("add %s: %w", c.Pos(), ErrDuplicateChunk)
	}
	w.chunks[c.Pos()] = c
	return nil
}

func (w *World) GetChunk(pos coords.ChunkPos) (*chunk.Chunk, bool) {
	c, ok := w.chunks[pos]
	return c, ok
}

func (w *World) Len() int { return len(w.chunks) }

// Chunks yields every chunk ordered by x, then y, then z.
func (w *World) Chunks() iter.Seq[*chunk.Chunk] {
	keys := make([]coords.ChunkPos, 0, len(w.chunks))
	for k := range w.chunks {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b coords.ChunkPos) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), cmp.Compare(a.Z, b.Z))
	})
	return func(yield func(*chunk.Chunk) bool) {
		for _, k := range keys {
			if !yield(w.chunks[k]) {
				return
			}
		}
	}
}

// SetBlock places b at a world position, creating the chunk if needed.
func (w *World) SetBlock(b block.Block, pos coords.BlockPosInWorld) {
	cp, local := pos.Split()
	c, ok := w.chunks[cp]
	if !ok {
		c = chunk.New(cp)
		w.chunks[cp] = c
	}
	c.SetBlock(b, local)
}

func (w *World) GetBlock(pos coords.BlockPosInWorld) (block.Block, bool) {
	cp, local := pos.Split()
	c, ok := w.chunks[cp]
	if !ok {
		return 0, false
	}
	return c.GetBlock(local)
}

// CollisionAABBsIn gathers the block boxes of every registered chunk that
// overlaps area. Chunks are visited x, then y, then z ascending; boxes within
// a chunk keep index order.
func (w *World) CollisionAABBsIn(area physics.AABB) []physics.AABB {
	lo := coords.ChunkPosOf(area.Min)
	hi := coords.ChunkPosOf(area.Max)

	var out []physics.AABB
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				if c, ok := w.chunks[coords.ChunkPos{X: x, Y: y, Z: z}]; ok {
					out = append(out, c.CollisionAABBs()...)
				}
			}
		}
	}
	return out
}

func (w *World) GenerateMesh(pos coords.ChunkPos, table block.Table, atlas texture.Lookup) (*mesh.Builder, error) {
	c, ok := w.chunks[pos]
	if !ok {
		return nil, fmt.Errorf("mesh %s: %w", pos, ErrUnknownChunk)
	}
	return c.GenerateMesh(table, atlas)
}

// Meshes builds one mesh per non-empty chunk, in Chunks order. The first
// content error aborts.
func (w *World) Meshes(table block.Table, atlas texture.Lookup) iter.Seq2[*mesh.Builder, error] {
	return func(yield func(*mesh.Builder, error) bool) {
		for c := range w.Chunks() {
			if c.Len() == 0 {
				continue
			}
			b, err := c.GenerateMesh(table, atlas)
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}
