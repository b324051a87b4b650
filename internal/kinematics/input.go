package kinematics

import "github.com/go-gl/mathgl/mgl32"

// Key is a movement action, independent of the physical key bound to it.
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// KeySet is the set of actions held during a tick.
type KeySet uint8

func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) With(k Key) KeySet { return s | 1<<k }
func (s KeySet) Has(k Key) bool    { return s&(1<<k) != 0 }

// Input is the snapshot the systems read during one tick. MouseDelta is in
// screen units with +x to the right and +y upward.
type Input struct {
	Keys       KeySet
	MouseDelta mgl32.Vec2
}
