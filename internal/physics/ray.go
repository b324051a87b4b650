package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is the first contact of a ray with a box. Toi is measured in multiples
// of the ray direction, so origin + Toi*dir is the contact point.
type Hit struct {
	Toi    float32
	Normal mgl32.Vec3
}

// CastRay intersects the ray origin + t*dir, 0 <= t <= maxToi, with the closed
// box. A ray starting inside or on the box hits at Toi 0 with a zero normal.
// Otherwise the normal is the outward normal of the face crossed first; exact
// corner ties resolve x before y before z.
func CastRay(box AABB, origin, dir mgl32.Vec3, maxToi float32) (Hit, bool) {
	entry := float32(math.Inf(-1))
	exit := float32(math.Inf(1))
	axis := -1

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < box.Min[i] || origin[i] > box.Max[i] {
				return Hit{}, false
			}
			continue
		}
		t1 := (box.Min[i] - origin[i]) / dir[i]
		t2 := (box.Max[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > entry {
			entry = t1
			axis = i
		}
		if t2 < exit {
			exit = t2
		}
	}

	if entry > exit || exit < 0 {
		return Hit{}, false
	}
	if entry <= 0 {
		return Hit{Toi: 0}, true
	}
	if entry > maxToi {
		return Hit{}, false
	}

	var n mgl32.Vec3
	if dir[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return Hit{Toi: entry, Normal: n}, true
}
