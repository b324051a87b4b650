package kinematics

import (
	"github.com/go-gl/mathgl/mgl32"

	"opencraft/internal/coords"
)

// Angle2 is a view orientation. Pitch turns around the vertical axis and is
// kept in [0,360); Yaw tilts up and down and is kept in [-90,90]. Pitch 0,
// Yaw 0 looks along +z.
//
// Front, Right and Up are recomputed on every Set and are never stale.
type Angle2 struct {
	pitch, yaw       coords.Deg
	front, right, up mgl32.Vec3
}

func NewAngle2(pitch, yaw coords.Deg) Angle2 {
	var a Angle2
	a.Set(pitch, yaw)
	return a
}

func (a *Angle2) Set(pitch, yaw coords.Deg) {
	a.pitch = pitch
	a.yaw = yaw
	a.front = mgl32.Vec3{yaw.Cos() * pitch.Sin(), yaw.Sin(), yaw.Cos() * pitch.Cos()}.Normalize()
	side := pitch - 90
	// no roll, so right stays level
	a.right = mgl32.Vec3{side.Sin(), 0, side.Cos()}.Normalize()
	a.up = a.right.Cross(a.front)
}

func (a Angle2) Pitch() coords.Deg { return a.pitch }
func (a Angle2) Yaw() coords.Deg   { return a.yaw }
func (a Angle2) Front() mgl32.Vec3 { return a.front }
func (a Angle2) Right() mgl32.Vec3 { return a.right }
func (a Angle2) Up() mgl32.Vec3    { return a.up }

// FrontOnGround is Front flattened onto the horizontal plane.
func (a Angle2) FrontOnGround() mgl32.Vec3 {
	return mgl32.Vec3{a.pitch.Sin(), 0, a.pitch.Cos()}
}

// ViewMatrix is the right-handed look-at matrix of a camera at eye.
func ViewMatrix(eye mgl32.Vec3, a Angle2) mgl32.Mat4 {
	return mgl32.LookAtV(eye, eye.Add(a.front), a.up)
}
