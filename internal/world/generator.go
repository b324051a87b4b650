package world

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"opencraft/internal/block"
	"opencraft/internal/coords"
)

// Generator decides the surface height of each world column.
type Generator interface {
	Height(x, z int32) int32
}

// Flat is a constant-height generator.
type Flat int32

func (f Flat) Height(x, z int32) int32 { return int32(f) }

// SimplexTerrain sums octaves of 2D simplex noise around Base.
type SimplexTerrain struct {
	noise       opensimplex.Noise32
	Base        int32
	Amplitude   float32
	Scale       float32
	Octaves     int
	Lacunarity  float32
	Persistence float32
	// Limit clamps the noise term to [-Limit, Limit].
	Limit int32
}

func NewSimplexTerrain(seed int64) *SimplexTerrain {
	return &SimplexTerrain{
		noise:       opensimplex.New32(seed),
		Amplitude:   30,
		Scale:       100,
		Octaves:     4,
		Lacunarity:  1.5,
		Persistence: 0.5,
		Limit:       128,
	}
}

func (s *SimplexTerrain) Height(x, z int32) int32 {
	val := int32(0)
	x1 := float32(x)
	z1 := float32(z)
	amplitude := s.Amplitude

	for i := 0; i < s.Octaves; i++ {
		val += int32(s.noise.Eval2(x1/s.Scale, z1/s.Scale) * amplitude)
		z1 *= s.Lacunarity
		x1 *= s.Lacunarity
		amplitude *= s.Persistence
	}
	return s.Base + max(-s.Limit, min(s.Limit, val))
}

// PerlinTerrain maps 2D Perlin noise, roughly in [-1,1], onto
// [Base-Amplitude, Base+Amplitude].
type PerlinTerrain struct {
	noise     *perlin.Perlin
	Base      int32
	Amplitude float64
	Scale     float64
}

func NewPerlinTerrain(seed int64) *PerlinTerrain {
	alpha := 2.0
	beta := 2.0
	n := int32(3)
	return &PerlinTerrain{
		noise:     perlin.NewPerlin(alpha, beta, n, seed),
		Amplitude: 12,
		Scale:     64,
	}
}

func (p *PerlinTerrain) Height(x, z int32) int32 {
	v := p.noise.Noise2D(float64(x)/p.Scale, float64(z)/p.Scale)
	return p.Base + int32(math.Round(v*p.Amplitude))
}

// NewGenerator picks a generator by its configuration name.
func NewGenerator(name string, seed int64, flatHeight int32) (Generator, error) {
	switch name {
	case "simplex":
		return NewSimplexTerrain(seed), nil
	case "perlin":
		return NewPerlinTerrain(seed), nil
	case "flat":
		return Flat(flatHeight), nil
	}
	return nil, fmt.Errorf("unknown terrain generator %q", name)
}

// Populate fills every column of the (2*radius+1)^2 chunk columns around the
// origin with depth blocks of b, the topmost at the generator's height.
// It returns the number of blocks placed.
func (w *World) Populate(gen Generator, b block.Block, radius, depth int32) int {
	placed := 0
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			for lx := int32(0); lx < coords.ChunkSize; lx++ {
				for lz := int32(0); lz < coords.ChunkSize; lz++ {
					x := cx*coords.ChunkSize + lx
					z := cz*coords.ChunkSize + lz
					top := gen.Height(x, z)
					for y := top - depth + 1; y <= top; y++ {
						w.SetBlock(b, coords.NewBlockPosInWorld(x, y, z))
						placed++
					}
				}
			}
		}
	}
	w.logger.Printf("populated %d blocks in %d chunks (radius %d, depth %d)", placed, len(w.chunks), radius, depth)
	return placed
}

// SpawnAbove lifts p so a collider with half extents half stands just clear
// of the generated surface. Points already above it are returned unchanged.
func SpawnAbove(gen Generator, p, half mgl32.Vec3) mgl32.Vec3 {
	top := gen.Height(int32(math.Floor(float64(p.X()))), int32(math.Floor(float64(p.Z()))))
	rest := float32(top) + 1 + half.Y() + 0.01
	if p.Y() < rest {
		p[1] = rest
	}
	return p
}
