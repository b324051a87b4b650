package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"opencraft/internal/mesh"
)

const floatSize = 4

// Mesh is a vertex buffer on the GPU laid out as mesh.Stride floats per
// vertex: position, normal, uv.
type Mesh struct {
	vao, vbo uint32
	count    int32
}

// Upload copies the builder's buffer into a new VAO. An empty builder gives a
// mesh that draws nothing.
func Upload(b *mesh.Builder) *Mesh {
	m := &Mesh{count: int32(b.VertexCount())}
	if m.count == 0 {
		return m
	}
	verts := b.Buffer()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, floatSize*len(verts), gl.Ptr(verts), gl.STATIC_DRAW)

	stride := int32(mesh.Stride * floatSize)
	//position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	//normal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*floatSize)
	//uv
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*floatSize)

	gl.BindVertexArray(0)
	return m
}

func (m *Mesh) VertexCount() int32 { return m.count }

func (m *Mesh) Draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

func (m *Mesh) Delete() {
	if m.count == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
}
