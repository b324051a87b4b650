package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"opencraft/internal/kinematics"
)

var bindings = map[glfw.Key]kinematics.Key{
	glfw.KeyW:         kinematics.KeyForward,
	glfw.KeyS:         kinematics.KeyBack,
	glfw.KeyA:         kinematics.KeyLeft,
	glfw.KeyD:         kinematics.KeyRight,
	glfw.KeySpace:     kinematics.KeyUp,
	glfw.KeyLeftShift: kinematics.KeyDown,
}

// controls turns GLFW state into per-tick input snapshots.
type controls struct {
	window     *glfw.Window
	lastX      float64
	lastY      float64
	firstMouse bool
	mouse      mgl32.Vec2
	showDebug  bool
}

func newControls(window *glfw.Window) *controls {
	c := &controls{window: window, firstMouse: true, showDebug: true}
	window.SetCursorPosCallback(c.onCursor)
	return c
}

func (c *controls) onCursor(_ *glfw.Window, x, y float64) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}
	// screen y grows downward, the input snapshot wants +y up
	c.mouse = c.mouse.Add(mgl32.Vec2{float32(x - c.lastX), float32(c.lastY - y)})
	c.lastX, c.lastY = x, y
}

func (c *controls) onKey(player *kinematics.Entity) glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF:
			player.Flying = !player.Flying
		case glfw.KeyF3:
			c.showDebug = !c.showDebug
		}
	}
}

// snapshot reads the held keys and the mouse travel since the last tick.
func (c *controls) snapshot() kinematics.Input {
	var keys kinematics.KeySet
	for k, action := range bindings {
		if c.window.GetKey(k) == glfw.Press {
			keys = keys.With(action)
		}
	}
	return kinematics.Input{Keys: keys, MouseDelta: c.mouse}
}

func (c *controls) consumeMouse() {
	c.mouse = mgl32.Vec2{}
}
