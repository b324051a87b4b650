package render

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Overlay draws a screen-space canvas in the top-left corner of the window.
type Overlay struct {
	program *Program
	canvas  *Texture
	vao     uint32
	vbo     uint32
	size    mgl32.Vec2
}

func NewOverlay(program *Program, img *image.RGBA) *Overlay {
	vertices := []float32{
		0.0, 0.0, 0.0, 0.0, 0.0, // top-left
		0.0, 1.0, 0.0, 0.0, 1.0, // bottom-left
		1.0, 1.0, 0.0, 1.0, 1.0, // bottom-right

		0.0, 0.0, 0.0, 0.0, 0.0, // top-left
		1.0, 1.0, 0.0, 1.0, 1.0, // bottom-right
		1.0, 0.0, 0.0, 1.0, 0.0, // top-right
	}
	o := &Overlay{
		program: program,
		canvas:  NewCanvasTexture(img),
		size:    mgl32.Vec2{float32(img.Rect.Dx()), float32(img.Rect.Dy())},
	}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 5*floatSize, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*floatSize, 3*floatSize)
	gl.BindVertexArray(0)
	return o
}

// Update uploads a redrawn canvas.
func (o *Overlay) Update(img *image.RGBA) {
	o.canvas.Update(img)
}

// Draw renders the canvas for a window of the given size.
func (o *Overlay) Draw(width, height int) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	o.program.Use()
	o.program.SetMat4("projection", mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1))
	o.program.SetMat4("model", mgl32.Scale3D(o.size.X(), o.size.Y(), 1))
	o.program.SetInt("canvas", 0)
	o.canvas.Bind(0)

	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (o *Overlay) Delete() {
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
	o.canvas.Delete()
}
