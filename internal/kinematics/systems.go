package kinematics

import (
	"github.com/go-gl/mathgl/mgl32"

	"opencraft/internal/coords"
	"opencraft/internal/physics"
)

// System is one stage of a tick. Input is read-only.
type System interface {
	Update(e *Entity, dt float32, in Input)
}

// AngleController turns the view by the mouse delta, in degrees per unit of
// mouse travel per second.
type AngleController struct {
	RotateSpeed float32
}

func (c AngleController) Update(e *Entity, dt float32, in Input) {
	pitch := e.Angle.Pitch() - coords.Deg(c.RotateSpeed*dt*in.MouseDelta.X())
	yaw := e.Angle.Yaw() + coords.Deg(c.RotateSpeed*dt*in.MouseDelta.Y())

	yaw = max(-90, min(90, yaw))
	for pitch < 0 {
		pitch += 360
	}
	for pitch >= 360 {
		pitch -= 360
	}
	e.Angle.Set(pitch, yaw)
}

// VelocityController turns held keys into velocity. Horizontal velocity is
// replaced every tick. Vertical velocity is kept for gravity unless flying.
type VelocityController struct {
	MoveSpeed float32
	JumpSpeed float32
}

func (c VelocityController) Update(e *Entity, dt float32, in Input) {
	var dir mgl32.Vec3
	front := e.Angle.FrontOnGround()
	if in.Keys.Has(KeyForward) {
		dir = dir.Add(front)
	}
	if in.Keys.Has(KeyBack) {
		dir = dir.Sub(front)
	}
	if in.Keys.Has(KeyRight) {
		dir = dir.Add(e.Angle.Right())
	}
	if in.Keys.Has(KeyLeft) {
		dir = dir.Sub(e.Angle.Right())
	}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	v := dir.Mul(c.MoveSpeed)
	switch {
	case e.Flying:
		if in.Keys.Has(KeyUp) {
			v[1] += c.MoveSpeed
		}
		if in.Keys.Has(KeyDown) {
			v[1] -= c.MoveSpeed
		}
	case in.Keys.Has(KeyUp) && e.OnGround:
		v[1] = c.JumpSpeed
	default:
		v[1] = e.Velocity.Y()
	}
	e.Velocity = v
}

// AccelerationIntegrator applies the entity's constant acceleration. Flying
// entities ignore it.
type AccelerationIntegrator struct{}

func (AccelerationIntegrator) Update(e *Entity, dt float32, in Input) {
	if e.Flying {
		return
	}
	e.Velocity = e.Velocity.Add(e.Acceleration.Mul(dt))
}

// Colliders supplies static boxes near an area.
type Colliders interface {
	CollisionAABBsIn(area physics.AABB) []physics.AABB
}

// CollisionAdjuster clips velocity against the world and updates OnGround.
type CollisionAdjuster struct {
	World    Colliders
	Resolver *physics.Resolver
	// Margin widens the broad-phase area so the ground probe sees the floor.
	Margin float32
}

func (c CollisionAdjuster) Update(e *Entity, dt float32, in Input) {
	box := e.Bounds()
	area := box.Merged(box.Translate(e.Velocity.Mul(dt))).Grow(mgl32.Vec3{c.Margin, c.Margin, c.Margin})

	res := c.Resolver.Resolve(e.Collider, e.Position, e.Velocity, dt, c.World.CollisionAABBsIn(area))
	e.Velocity = res.Velocity
	e.OnGround = res.OnGround
}

// PositionUpdater moves the entity by its velocity.
type PositionUpdater struct{}

func (PositionUpdater) Update(e *Entity, dt float32, in Input) {
	e.PrevPosition = e.Position
	e.Position = e.Position.Add(e.Velocity.Mul(dt))
}
