package kinematics

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencraft/internal/coords"
	"opencraft/internal/physics"
)

type staticBoxes []physics.AABB

func (s staticBoxes) CollisionAABBsIn(physics.AABB) []physics.AABB { return s }

var testFloor = staticBoxes{physics.NewAABB(mgl32.Vec3{-8, 0, -8}, mgl32.Vec3{8, 1, 8})}

func newPlayer(y float32) *Entity {
	return NewEntity(mgl32.Vec3{0, y, 0}, mgl32.Vec3{0.3, 0.9, 0.3}, Gravity(9.8))
}

func quietResolver() *physics.Resolver {
	return physics.NewResolver(log.New(&bytes.Buffer{}, "", 0))
}

func TestAngleControllerTurnsTowardRight(t *testing.T) {
	e := newPlayer(0)
	right := e.Angle.Right()
	AngleController{RotateSpeed: 10}.Update(e, 1, Input{MouseDelta: mgl32.Vec2{1, 0}})

	assert.Greater(t, e.Angle.Front().Dot(right), float32(0))
	assert.Equal(t, coords.Deg(350), e.Angle.Pitch(), "wrapped into [0,360)")
}

func TestAngleControllerClampsYaw(t *testing.T) {
	e := newPlayer(0)
	c := AngleController{RotateSpeed: 10}
	c.Update(e, 1, Input{MouseDelta: mgl32.Vec2{0, 100}})
	assert.Equal(t, coords.Deg(90), e.Angle.Yaw())
	c.Update(e, 1, Input{MouseDelta: mgl32.Vec2{0, -1000}})
	assert.Equal(t, coords.Deg(-90), e.Angle.Yaw())
}

func TestVelocityControllerReplacesHorizontal(t *testing.T) {
	e := newPlayer(0)
	e.Velocity = mgl32.Vec3{7, -3, 7}
	c := VelocityController{MoveSpeed: 2, JumpSpeed: 5}

	c.Update(e, 0.1, Input{Keys: Keys(KeyForward)})
	near(t, mgl32.Vec3{0, -3, 2}, e.Velocity)

	c.Update(e, 0.1, Input{})
	near(t, mgl32.Vec3{0, -3, 0}, e.Velocity)

	c.Update(e, 0.1, Input{Keys: Keys(KeyForward, KeyRight)})
	assert.InDelta(t, 2, mgl32.Vec3{e.Velocity.X(), 0, e.Velocity.Z()}.Len(), 1e-5)
	assert.Less(t, e.Velocity.X(), float32(0), "right is -x at pitch 0")
}

func TestVelocityControllerJump(t *testing.T) {
	e := newPlayer(0)
	c := VelocityController{MoveSpeed: 2, JumpSpeed: 5}

	c.Update(e, 0.1, Input{Keys: Keys(KeyUp)})
	assert.Zero(t, e.Velocity.Y(), "no jump in the air")

	e.OnGround = true
	c.Update(e, 0.1, Input{Keys: Keys(KeyUp)})
	assert.Equal(t, float32(5), e.Velocity.Y())
}

func TestVelocityControllerFlying(t *testing.T) {
	e := newPlayer(0)
	e.Flying = true
	e.Velocity = mgl32.Vec3{0, -10, 0}
	c := VelocityController{MoveSpeed: 2, JumpSpeed: 5}

	c.Update(e, 0.1, Input{Keys: Keys(KeyUp)})
	assert.Equal(t, float32(2), e.Velocity.Y())
	c.Update(e, 0.1, Input{Keys: Keys(KeyDown)})
	assert.Equal(t, float32(-2), e.Velocity.Y())
	c.Update(e, 0.1, Input{})
	assert.Zero(t, e.Velocity.Y())
}

func TestAccelerationIntegrator(t *testing.T) {
	e := newPlayer(0)
	AccelerationIntegrator{}.Update(e, 0.5, Input{})
	near(t, mgl32.Vec3{0, -4.9, 0}, e.Velocity)

	e.Flying = true
	AccelerationIntegrator{}.Update(e, 0.5, Input{})
	near(t, mgl32.Vec3{0, -4.9, 0}, e.Velocity)
}

func TestCollisionAdjusterUsesWorld(t *testing.T) {
	e := newPlayer(2)
	e.Velocity = mgl32.Vec3{1, -10, 0}
	CollisionAdjuster{World: testFloor, Resolver: quietResolver(), Margin: 1}.Update(e, 0.1, Input{})
	near(t, mgl32.Vec3{1, 0, 0}, e.Velocity)
}

func TestPositionUpdater(t *testing.T) {
	e := newPlayer(1)
	e.Velocity = mgl32.Vec3{2, 0, -2}
	PositionUpdater{}.Update(e, 0.5, Input{})
	near(t, mgl32.Vec3{1, 1, -1}, e.Position)
	near(t, mgl32.Vec3{0, 1, 0}, e.PrevPosition)
	near(t, mgl32.Vec3{0.5, 1, -0.5}, e.Interpolated(0.5))
	near(t, e.Position, e.Interpolated(3))
}

func TestEyeSitsAboveCentre(t *testing.T) {
	e := newPlayer(1)
	e.EyeHeight = 0.65
	e.Position = mgl32.Vec3{2, 3, 0}
	near(t, mgl32.Vec3{1, 2.65, 0}, e.Eye(0.5))
	near(t, mgl32.Vec3{2, 3.65, 0}, e.Eye(1))
}

func TestPipelineOrder(t *testing.T) {
	p := NewPipeline(DefaultSettings(), testFloor, quietResolver())
	s := p.Systems()
	require.Len(t, s, 5)
	assert.IsType(t, AngleController{}, s[0])
	assert.IsType(t, VelocityController{}, s[1])
	assert.IsType(t, AccelerationIntegrator{}, s[2])
	assert.IsType(t, CollisionAdjuster{}, s[3])
	assert.IsType(t, PositionUpdater{}, s[4])
}

type tickCounter struct{ n int }

func (c *tickCounter) ObserveTick(time.Duration) { c.n++ }

func TestPipelineLandsAndJumps(t *testing.T) {
	p := NewPipeline(DefaultSettings(), testFloor, quietResolver())
	counter := &tickCounter{}
	p.Observer = counter
	e := newPlayer(3)
	dt := float32(1.0 / 60)

	for i := 0; i < 120; i++ {
		p.Tick(e, dt, Input{})
	}
	assert.True(t, e.OnGround)
	assert.GreaterOrEqual(t, e.Position.Y(), float32(1.9))
	assert.LessOrEqual(t, e.Position.Y(), float32(1.95))
	assert.Equal(t, 120, counter.n)

	rest := e.Position.Y()
	p.Tick(e, dt, Input{Keys: Keys(KeyUp)})
	assert.Greater(t, e.Position.Y(), rest)
	assert.False(t, e.OnGround)
}

func TestPipelineWalksIntoWall(t *testing.T) {
	world := append(staticBoxes{physics.NewAABB(mgl32.Vec3{-8, 1, 2}, mgl32.Vec3{8, 3, 3})}, testFloor...)
	p := NewPipeline(DefaultSettings(), world, quietResolver())
	e := newPlayer(1.92)
	dt := float32(1.0 / 60)

	for i := 0; i < 120; i++ {
		p.Tick(e, dt, Input{Keys: Keys(KeyForward)})
	}
	assert.Less(t, e.Position.Z(), float32(1.7))
	assert.Greater(t, e.Position.Z(), float32(1.6))
	assert.InDelta(t, 0, e.Position.X(), 1e-4)
}

func TestStepper(t *testing.T) {
	s := Stepper{Step: 0.05}
	ticks, alpha := s.Advance(0.12)
	assert.Equal(t, 2, ticks)
	assert.InDelta(t, 0.4, alpha, 1e-4)

	ticks, alpha = s.Advance(0.01)
	assert.Zero(t, ticks)
	assert.InDelta(t, 0.6, alpha, 1e-4)
}

func TestStepperCapsLongFrames(t *testing.T) {
	s := Stepper{Step: 0.0625}
	ticks, alpha := s.Advance(10)
	assert.Equal(t, 4, ticks)
	assert.InDelta(t, 0, alpha, 1e-4)

	ticks, _ = s.Advance(0.0625)
	assert.Equal(t, 1, ticks, "nothing left over from the stall")
}
