package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
)

// DecodeAtlas reads a PNG atlas into RGBA pixels. The image must match the
// configured atlas size, otherwise every UV would be off.
func DecodeAtlas(r io.Reader, width, height uint32) (*image.RGBA, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode atlas: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != int(width) || b.Dy() != int(height) {
		return nil, fmt.Errorf("atlas is %dx%d, configured as %dx%d", b.Dx(), b.Dy(), width, height)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Over)
	return rgba, nil
}

func LoadAtlas(path string, width, height uint32) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeAtlas(f, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
