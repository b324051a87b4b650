package block

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"opencraft/internal/mesh"
	"opencraft/internal/texture"
)

// Faces names the atlas texture of each face. The four horizontal faces fall
// back to Side when they have no name of their own.
type Faces struct {
	Top    string `yaml:"top"`
	Bottom string `yaml:"bottom"`
	Side   string `yaml:"side,omitempty"`
	North  string `yaml:"north,omitempty"`
	South  string `yaml:"south,omitempty"`
	West   string `yaml:"west,omitempty"`
	East   string `yaml:"east,omitempty"`
}

func (f Faces) Name(s Side) string {
	pick := func(own string) string {
		if own != "" {
			return own
		}
		return f.Side
	}
	switch s {
	case Top:
		return f.Top
	case Bottom:
		return f.Bottom
	case North:
		return pick(f.North)
	case South:
		return pick(f.South)
	case West:
		return pick(f.West)
	case East:
		return pick(f.East)
	}
	return ""
}

// Table maps block types to their face texture names.
type Table map[Block]Faces

// DefaultTable is the built-in content used when no table is configured.
func DefaultTable() Table {
	return Table{
		Grass: {Top: "grass_top", Bottom: "grass_bottom", Side: "grass_side"},
	}
}

// NewTable builds a table from block names, as found in configuration.
func NewTable(byName map[string]Faces) (Table, error) {
	t := make(Table, len(byName))
	for name, faces := range byName {
		b, err := Parse(name)
		if err != nil {
			return nil, err
		}
		for _, s := range Sides {
			if faces.Name(s) == "" {
				return nil, fmt.Errorf("block %s: no texture for %s face", name, s)
			}
		}
		t[b] = faces
	}
	return t, nil
}

// LoadTable reads a YAML document of the form
//
//	grass:
//	  top: grass_top
//	  bottom: grass_bottom
//	  side: grass_side
func LoadTable(r io.Reader) (Table, error) {
	var byName map[string]Faces
	if err := yaml.NewDecoder(r).Decode(&byName); err != nil {
		return nil, fmt.Errorf("decode block table: %w", err)
	}
	return NewTable(byName)
}

// TextureName returns the atlas name for one face of b.
func (t Table) TextureName(b Block, s Side) (string, error) {
	faces, ok := t[b]
	if !ok {
		return "", fmt.Errorf("block %s has no texture entry", b)
	}
	return faces.Name(s), nil
}

// FaceTextureError is returned when a face of a block cannot be textured.
type FaceTextureError struct {
	Block Block
	Side  Side
	Err   error
}

func (e *FaceTextureError) Error() string {
	return fmt.Sprintf("block %s, %s face: %v", e.Block, e.Side, e.Err)
}

func (e *FaceTextureError) Unwrap() error { return e.Err }

// CuboidTextures resolves all six faces of b through the atlas.
func (t Table) CuboidTextures(b Block, atlas texture.Lookup) (mesh.CuboidTextures, error) {
	var out mesh.CuboidTextures
	for _, s := range Sides {
		name, err := t.TextureName(b, s)
		if err != nil {
			return out, &FaceTextureError{Block: b, Side: s, Err: err}
		}
		uv, err := atlas.Region(name)
		if err != nil {
			return out, &FaceTextureError{Block: b, Side: s, Err: err}
		}
		switch s {
		case Top:
			out.Top = uv
		case Bottom:
			out.Bottom = uv
		case North:
			out.North = uv
		case South:
			out.South = uv
		case West:
			out.West = uv
		case East:
			out.East = uv
		}
	}
	return out, nil
}
