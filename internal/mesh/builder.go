package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"opencraft/internal/texture"
)

// Stride is the number of floats per vertex: position, normal, uv.
const Stride = 8

var (
	Up    = mgl32.Vec3{0, 1, 0}
	Down  = mgl32.Vec3{0, -1, 0}
	North = mgl32.Vec3{1, 0, 0}
	South = mgl32.Vec3{-1, 0, 0}
	West  = mgl32.Vec3{0, 0, 1}
	East  = mgl32.Vec3{0, 0, -1}
)

// CuboidTextures holds one atlas region per face of a cuboid.
type CuboidTextures struct {
	Top, Bottom  texture.UV
	South, North texture.UV
	West, East   texture.UV
}

// Builder accumulates a triangle list of [x y z nx ny nz u v] records.
type Builder struct {
	buffer      []float32
	vertexCount int
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Buffer() []float32 { return b.buffer }
func (b *Builder) VertexCount() int  { return b.vertexCount }

// Len is the buffer length in floats.
func (b *Builder) Len() int { return len(b.buffer) }

func (b *Builder) Reset() {
	b.buffer = b.buffer[:0]
	b.vertexCount = 0
}

// AddCuboid emits the six faces of the box spanning begin..end. begin is the
// corner nearest (-inf,-inf,-inf).
func (b *Builder) AddCuboid(begin, end mgl32.Vec3, tex CuboidTextures) {
	bx, by, bz := begin.Elem()
	ex, ey, ez := end.Elem()

	// top
	b.AddFace(
		mgl32.Vec3{bx, ey, bz},
		mgl32.Vec3{bx, ey, ez},
		mgl32.Vec3{ex, ey, ez},
		mgl32.Vec3{ex, ey, bz},
		tex.Top,
	)
	// bottom
	b.AddFace(
		mgl32.Vec3{ex, by, bz},
		mgl32.Vec3{ex, by, ez},
		mgl32.Vec3{bx, by, ez},
		mgl32.Vec3{bx, by, bz},
		tex.Bottom,
	)
	// south, -x
	b.AddFace(
		mgl32.Vec3{bx, ey, bz},
		mgl32.Vec3{bx, by, bz},
		mgl32.Vec3{bx, by, ez},
		mgl32.Vec3{bx, ey, ez},
		tex.South,
	)
	// north, +x
	b.AddFace(
		mgl32.Vec3{ex, ey, ez},
		mgl32.Vec3{ex, by, ez},
		mgl32.Vec3{ex, by, bz},
		mgl32.Vec3{ex, ey, bz},
		tex.North,
	)
	// west, +z
	b.AddFace(
		mgl32.Vec3{bx, ey, ez},
		mgl32.Vec3{bx, by, ez},
		mgl32.Vec3{ex, by, ez},
		mgl32.Vec3{ex, ey, ez},
		tex.West,
	)
	// east, -z
	b.AddFace(
		mgl32.Vec3{ex, ey, bz},
		mgl32.Vec3{ex, by, bz},
		mgl32.Vec3{bx, by, bz},
		mgl32.Vec3{bx, ey, bz},
		tex.East,
	)
}

// AddFace emits the quad p1..p4 as two triangles. p1 is top-left, p2
// bottom-left, p3 bottom-right and p4 top-right, counter-clockwise when seen
// from the side the face looks at.
func (b *Builder) AddFace(p1, p2, p3, p4 mgl32.Vec3, uv texture.UV) {
	n := p2.Sub(p4).Cross(p3.Sub(p1)).Normalize()

	b.vertex(p1, n, uv.BeginU, uv.EndV)
	b.vertex(p2, n, uv.BeginU, uv.BeginV)
	b.vertex(p3, n, uv.EndU, uv.BeginV)

	b.vertex(p1, n, uv.BeginU, uv.EndV)
	b.vertex(p3, n, uv.EndU, uv.BeginV)
	b.vertex(p4, n, uv.EndU, uv.EndV)
}

func (b *Builder) vertex(p, n mgl32.Vec3, u, v float32) {
	b.buffer = append(b.buffer, p[0], p[1], p[2], n[0], n[1], n[2], u, v)
	b.vertexCount++
}
