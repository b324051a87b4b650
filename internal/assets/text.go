package assets

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Text rasterizes lines of debug text into a transparent canvas.
type Text struct {
	ctx  *freetype.Context
	dst  *image.RGBA
	size float64
}

func NewText(fontData []byte, width, height int, size float64) (*Text, error) {
	f, err := freetype.ParseFont(fontData)
	if err != nil {
		return nil, err
	}
	return newText(f, width, height, size), nil
}

func LoadText(path string, width, height int, size float64) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewText(data, width, height, size)
}

func newText(f *truetype.Font, width, height int, size float64) *Text {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetDst(dst)
	ctx.SetClip(dst.Bounds())
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)
	return &Text{ctx: ctx, dst: dst, size: size}
}

func (t *Text) lineHeight() fixed.Int26_6 {
	return t.ctx.PointToFixed(t.size * 1.3)
}

// Render clears the canvas and draws one line per entry, top down.
func (t *Text) Render(lines []string) (*image.RGBA, error) {
	clear(t.dst.Pix)

	pt := freetype.Pt(4, 0)
	for _, line := range lines {
		pt.Y += t.lineHeight()
		if _, err := t.ctx.DrawString(line, pt); err != nil {
			return nil, err
		}
	}
	return t.dst, nil
}
