package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"opencraft/internal/mesh"
)

// Scene owns the chunk meshes and draws them with the block program.
type Scene struct {
	program *Program
	atlas   *Texture
	meshes  []*Mesh
	// LightDir points toward the light.
	LightDir mgl32.Vec3
}

func NewScene(program *Program, atlas *Texture) *Scene {
	return &Scene{
		program:  program,
		atlas:    atlas,
		LightDir: mgl32.Vec3{0.4, 1, 0.25}.Normalize(),
	}
}

// Add uploads a chunk mesh and returns its vertex count.
func (s *Scene) Add(b *mesh.Builder) int {
	m := Upload(b)
	s.meshes = append(s.meshes, m)
	return int(m.VertexCount())
}

func (s *Scene) Len() int { return len(s.meshes) }

// Draw renders every mesh. Faces are wound counter-clockwise seen from
// outside, so back faces are culled.
func (s *Scene) Draw(view, projection mgl32.Mat4) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	s.program.Use()
	s.program.SetMat4("view", view)
	s.program.SetMat4("projection", projection)
	s.program.SetVec3("lightDir", s.LightDir)
	s.program.SetInt("atlas", 0)
	s.atlas.Bind(0)

	for _, m := range s.meshes {
		m.Draw()
	}
}

func (s *Scene) Delete() {
	for _, m := range s.meshes {
		m.Delete()
	}
	s.meshes = nil
}

// Projection is the perspective used for the world, 70 degrees vertical.
func Projection(width, height int) mgl32.Mat4 {
	aspect := float32(width) / float32(max(height, 1))
	return mgl32.Perspective(mgl32.DegToRad(70), aspect, 0.1, 350)
}

func Clear(r, g, b float32) {
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}
