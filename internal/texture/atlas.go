package texture

import (
	"fmt"
	"sort"
)

// UV is a rectangular region of the atlas in normalized texture space.
type UV struct {
	BeginU, EndU float32
	BeginV, EndV float32
}

// OfAtlas computes the region of the grid cell (col,row) in an atlas made of
// cellW x cellH pixel cells.
func OfAtlas(col, row, cellW, cellH, atlasW, atlasH uint32) UV {
	w, h := float32(atlasW), float32(atlasH)
	return UV{
		BeginU: float32(col*cellW) / w,
		EndU:   float32((col+1)*cellW) / w,
		BeginV: float32(row*cellH) / h,
		EndV:   float32((row+1)*cellH) / h,
	}
}

// Lookup resolves a texture name to its atlas region.
type Lookup interface {
	Region(name string) (UV, error)
}

// MissingTextureError reports a texture name the atlas does not know. It is a
// content error: the asset configuration is wrong.
type MissingTextureError struct {
	Name string
}

func (e *MissingTextureError) Error() string {
	return fmt.Sprintf("texture %q is not in the atlas", e.Name)
}

// Atlas is a fixed grid of equally sized cells addressed by name.
type Atlas struct {
	width, height         uint32
	cellWidth, cellHeight uint32
	regions               map[string]UV
}

func NewAtlas(width, height, cellWidth, cellHeight uint32) (*Atlas, error) {
	if width == 0 || height == 0 || cellWidth == 0 || cellHeight == 0 {
		return nil, fmt.Errorf("atlas %dx%d with %dx%d cells: sizes must be positive", width, height, cellWidth, cellHeight)
	}
	return &Atlas{
		width:      width,
		height:     height,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		regions:    make(map[string]UV),
	}, nil
}

// Add registers name at grid cell (col,row).
func (a *Atlas) Add(name string, col, row uint32) error {
	if (col+1)*a.cellWidth > a.width || (row+1)*a.cellHeight > a.height {
		return fmt.Errorf("texture %q: cell (%d,%d) is outside the %dx%d atlas", name, col, row, a.width, a.height)
	}
	a.regions[name] = OfAtlas(col, row, a.cellWidth, a.cellHeight, a.width, a.height)
	return nil
}

func (a *Atlas) Region(name string) (UV, error) {
	uv, ok := a.regions[name]
	if !ok {
		return UV{}, &MissingTextureError{Name: name}
	}
	return uv, nil
}

// Names lists the registered textures, sorted.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for n := range a.regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (a *Atlas) Size() (width, height uint32) {
	return a.width, a.height
}
