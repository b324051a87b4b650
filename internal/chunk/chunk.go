package chunk

import (
	"fmt"
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"opencraft/internal/block"
	"opencraft/internal/coords"
	"opencraft/internal/mesh"
	"opencraft/internal/physics"
	"opencraft/internal/texture"
)

type slot struct {
	block    block.Block
	occupied bool
}

// Chunk is a 16x16x16 cube of optional blocks. Slots are laid out by
// coords.Index and only ever go from empty to occupied.
type Chunk struct {
	pos    coords.ChunkPos
	blocks [coords.ChunkVolume]slot
	count  int
}

func New(pos coords.ChunkPos) *Chunk {
	return &Chunk{pos: pos}
}

func (c *Chunk) Pos() coords.ChunkPos { return c.pos }

// Len is the number of occupied slots.
func (c *Chunk) Len() int { return c.count }

// SetBlock places b at p, replacing whatever was there.
func (c *Chunk) SetBlock(b block.Block, p coords.BlockPosInChunk) {
	s := &c.blocks[p.Index()]
	if !s.occupied {
		c.count++
	}
	s.block = b
	s.occupied = true
}

func (c *Chunk) GetBlock(p coords.BlockPosInChunk) (block.Block, bool) {
	s := c.blocks[p.Index()]
	return s.block, s.occupied
}

// All yields the occupied slots in index order.
func (c *Chunk) All() iter.Seq2[coords.BlockPosInChunk, block.Block] {
	return func(yield func(coords.BlockPosInChunk, block.Block) bool) {
		if c.count == 0 {
			return
		}
		for i := range c.blocks {
			if !c.blocks[i].occupied {
				continue
			}
			p, _ := coords.FromIndex(i)
			if !yield(p, c.blocks[i].block) {
				return
			}
		}
	}
}

// corners returns the world-space extent of the block at p.
func (c *Chunk) corners(p coords.BlockPosInChunk) (mgl32.Vec3, mgl32.Vec3) {
	begin := coords.FromChunkPos(c.pos, p).Vec3()
	return begin, begin.Add(mgl32.Vec3{1, 1, 1})
}

// CollisionAABBs returns one unit cube per occupied slot, in index order.
func (c *Chunk) CollisionAABBs() []physics.AABB {
	out := make([]physics.AABB, 0, c.count)
	for p := range c.All() {
		out = append(out, physics.NewAABB(c.corners(p)))
	}
	return out
}

// AppendMesh adds a full cube for every occupied slot to b. A block whose
// textures cannot be resolved stops meshing; b keeps what was added so far.
func (c *Chunk) AppendMesh(b *mesh.Builder, table block.Table, atlas texture.Lookup) error {
	cache := make(map[block.Block]mesh.CuboidTextures)
	for p, kind := range c.All() {
		tex, ok := cache[kind]
		if !ok {
			var err error
			tex, err = table.CuboidTextures(kind, atlas)
			if err != nil {
				return fmt.Errorf("mesh %s at %s: %w", c.pos, p, err)
			}
			cache[kind] = tex
		}
		begin, end := c.corners(p)
		b.AddCuboid(begin, end, tex)
	}
	return nil
}

func (c *Chunk) GenerateMesh(table block.Table, atlas texture.Lookup) (*mesh.Builder, error) {
	b := mesh.NewBuilder()
	if err := c.AppendMesh(b, table, atlas); err != nil {
		return nil, err
	}
	return b, nil
}
