package kinematics

import (
	"time"

	"opencraft/internal/physics"
)

type Settings struct {
	MoveSpeed   float32
	RotateSpeed float32
	JumpSpeed   float32
	// Margin widens the collision query around the swept collider.
	Margin float32
}

func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:   4.3,
		RotateSpeed: 10,
		JumpSpeed:   8,
		Margin:      1,
	}
}

// TickObserver receives the wall time spent in each tick.
type TickObserver interface {
	ObserveTick(d time.Duration)
}

// Pipeline runs its systems in order on every tick. Each system reads what
// the previous one wrote, so the order is fixed at construction.
type Pipeline struct {
	systems  []System
	Observer TickObserver
}

// NewPipeline builds the standard order: angle, velocity from input,
// acceleration, collision, position.
func NewPipeline(s Settings, world Colliders, resolver *physics.Resolver) *Pipeline {
	return &Pipeline{
		systems: []System{
			AngleController{RotateSpeed: s.RotateSpeed},
			VelocityController{MoveSpeed: s.MoveSpeed, JumpSpeed: s.JumpSpeed},
			AccelerationIntegrator{},
			CollisionAdjuster{World: world, Resolver: resolver, Margin: s.Margin},
			PositionUpdater{},
		},
	}
}

func (p *Pipeline) Systems() []System { return p.systems }

func (p *Pipeline) Tick(e *Entity, dt float32, in Input) {
	start := time.Now()
	for _, s := range p.systems {
		s.Update(e, dt, in)
	}
	if p.Observer != nil {
		p.Observer.ObserveTick(time.Since(start))
	}
}

// MaxFrame caps the frame time a Stepper accepts at once, so a stalled frame
// does not turn into a burst of catch-up ticks.
const MaxFrame float32 = 0.25

// Stepper runs fixed-length ticks out of variable frame times.
type Stepper struct {
	Step        float32
	accumulator float32
}

// Advance adds frame time and returns how many ticks are due. Alpha is how
// far the leftover time reaches into the next tick, in [0,1]. Frames longer
// than MaxFrame count as MaxFrame.
func (s *Stepper) Advance(frame float32) (ticks int, alpha float32) {
	s.accumulator += min(frame, MaxFrame)
	for s.accumulator >= s.Step {
		s.accumulator -= s.Step
		ticks++
	}
	return ticks, min(1, max(0, s.accumulator/s.Step))
}
