package physics

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxTimeOfImpact bounds every ray cast, in multiples of the velocity.
	MaxTimeOfImpact float32 = 50
	// MaxPasses bounds the slide iteration.
	MaxPasses = 16
)

// GroundProbe is the downward test velocity used for ground contact.
var GroundProbe = mgl32.Vec3{0, -0.001, 0}

// Observer receives per-resolve statistics.
type Observer interface {
	ObserveResolve(passes int, capped bool)
}

// Result is the outcome of one Resolve call.
type Result struct {
	Velocity mgl32.Vec3
	OnGround bool
	// Passes counts slide iterations, including the final one without a hit.
	Passes int
	// Capped is set when MaxPasses ran out before the velocity settled.
	Capped bool
}

// Resolver removes the part of an entity's velocity that would make it
// penetrate static boxes, sliding it along whatever it runs into.
type Resolver struct {
	MaxPasses int
	MaxToi    float32
	Probe     mgl32.Vec3
	Logger    *log.Logger
	Observer  Observer
}

func NewResolver(logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		MaxPasses: MaxPasses,
		MaxToi:    MaxTimeOfImpact,
		Probe:     GroundProbe,
		Logger:    logger,
	}
}

type candidate struct {
	box      AABB
	extended AABB
}

// Resolve adjusts vel for an entity with the given collider half extents at
// pos, moving for dt, against the static boxes.
func (r *Resolver) Resolve(half, pos, vel mgl32.Vec3, dt float32, boxes []AABB) Result {
	entity := FromHalfExtents(pos, half)

	// Growing each box by the entity's half extents lets the entity be
	// treated as the point pos.
	cands := make([]candidate, len(boxes))
	for i, b := range boxes {
		cands[i] = candidate{box: b, extended: b.Grow(half)}
	}

	res := Result{Velocity: vel}
	for {
		if res.Passes >= r.MaxPasses {
			res.Capped = true
			r.Logger.Printf("collision resolve did not settle after %d passes: pos=%v vel=%v, keeping %v", res.Passes, pos, vel, res.Velocity)
			break
		}
		res.Passes++

		n, hit := r.nearest(cands, entity, pos, res.Velocity, dt)
		if !hit {
			break
		}
		res.Velocity = res.Velocity.Sub(n.Mul(res.Velocity.Dot(n)))
	}

	res.OnGround = r.grounded(cands, pos.Add(res.Velocity.Mul(dt)))

	if r.Observer != nil {
		r.Observer.ObserveResolve(res.Passes, res.Capped)
	}
	return res
}

// nearest finds the normal of the first box the entity would run into.
// Equal times keep the earlier candidate.
func (r *Resolver) nearest(cands []candidate, entity AABB, pos, vel mgl32.Vec3, dt float32) (mgl32.Vec3, bool) {
	swept := entity.Merged(entity.Translate(vel.Mul(dt)))

	best := float32(mgl32.InfPos)
	var normal mgl32.Vec3
	found := false
	for _, c := range cands {
		// already inside, or exactly on the surface
		if c.extended.ContainsPoint(pos) {
			continue
		}
		if !swept.Intersects(c.box) {
			continue
		}
		h, ok := CastRay(c.extended, pos, vel, r.MaxToi)
		if !ok {
			continue
		}
		if h.Toi < best {
			best = h.Toi
			normal = h.Normal
			found = true
		}
	}
	return normal, found
}

// grounded probes straight down from next against boxes whose top is not
// above it.
func (r *Resolver) grounded(cands []candidate, next mgl32.Vec3) bool {
	for _, c := range cands {
		if c.extended.Max.Y() > next.Y() {
			continue
		}
		if _, ok := CastRay(c.extended, next, r.Probe, r.MaxToi); ok {
			return true
		}
	}
	return false
}
