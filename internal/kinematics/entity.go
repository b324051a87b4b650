package kinematics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"opencraft/internal/physics"
)

// Gravity is the constant acceleration of a falling entity.
func Gravity(g float32) mgl32.Vec3 {
	return mgl32.Vec3{0, -g, 0}
}

// Entity carries the kinematic state of one moving body.
type Entity struct {
	ID uuid.UUID

	Position mgl32.Vec3
	// PrevPosition is Position before the last tick, for interpolation.
	PrevPosition mgl32.Vec3
	Velocity     mgl32.Vec3
	Acceleration mgl32.Vec3
	Angle        Angle2
	// Collider holds half extents of a box centred on Position.
	Collider mgl32.Vec3
	// EyeHeight places the camera above Position, inside the collider.
	EyeHeight float32
	OnGround  bool
	Flying    bool
}

func NewEntity(pos, collider mgl32.Vec3, acceleration mgl32.Vec3) *Entity {
	return &Entity{
		ID:           uuid.New(),
		Position:     pos,
		PrevPosition: pos,
		Acceleration: acceleration,
		Angle:        NewAngle2(0, 0),
		Collider:     collider,
	}
}

// Bounds is the collider box at the current position.
func (e *Entity) Bounds() physics.AABB {
	return physics.FromHalfExtents(e.Position, e.Collider)
}

// Interpolated blends the last two positions; alpha is clamped to [0,1].
func (e *Entity) Interpolated(alpha float32) mgl32.Vec3 {
	alpha = mgl32.Clamp(alpha, 0, 1)
	return e.PrevPosition.Add(e.Position.Sub(e.PrevPosition).Mul(alpha))
}

// Eye is the interpolated camera position.
func (e *Entity) Eye(alpha float32) mgl32.Vec3 {
	return e.Interpolated(alpha).Add(mgl32.Vec3{0, e.EyeHeight, 0})
}

func (e *Entity) String() string {
	return fmt.Sprintf("entity %s pos=%v vel=%v ground=%t", e.ID, e.Position, e.Velocity, e.OnGround)
}
