package coords

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Deg is an angle in degrees. Trig always runs in radians.
type Deg float32

// Rad is an angle in radians.
type Rad float32

func (d Deg) Rad() Rad { return Rad(mgl32.DegToRad(float32(d))) }
func (r Rad) Deg() Deg { return Deg(mgl32.RadToDeg(float32(r))) }

func (d Deg) Sin() float32 { return d.Rad().Sin() }
func (d Deg) Cos() float32 { return d.Rad().Cos() }

func (r Rad) Sin() float32 { return float32(math.Sin(float64(r))) }
func (r Rad) Cos() float32 { return float32(math.Cos(float64(r))) }
