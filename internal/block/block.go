package block

import "fmt"

// Block is a block type tag. The zero value is Grass; absence of a block is
// expressed by the storage, never by a Block value.
type Block uint8

const (
	Grass Block = iota
)

var names = map[Block]string{
	Grass: "grass",
}

func (b Block) String() string {
	if n, ok := names[b]; ok {
		return n
	}
	return fmt.Sprintf("block(%d)", uint8(b))
}

// Parse maps a block name back to its tag.
func Parse(name string) (Block, error) {
	for b, n := range names {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown block %q", name)
}

// Side is one of the six faces of a block.
type Side uint8

const (
	Top Side = iota
	Bottom
	North
	South
	West
	East
)

var Sides = [...]Side{Top, Bottom, North, South, West, East}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}
