package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 2, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeAtlas(t *testing.T) {
	rgba, err := DecodeAtlas(bytes.NewReader(encodePNG(t, 64, 192)), 64, 192)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 192), rgba.Bounds())
	assert.Equal(t, color.RGBA{R: 200, G: 10, B: 10, A: 255}, rgba.RGBAAt(1, 2))
}

func TestDecodeAtlasSizeMismatch(t *testing.T) {
	_, err := DecodeAtlas(bytes.NewReader(encodePNG(t, 64, 64)), 64, 192)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atlas is 64x64, configured as 64x192")
}

func TestDecodeAtlasNotPNG(t *testing.T) {
	_, err := DecodeAtlas(bytes.NewReader([]byte("not an image")), 1, 1)
	assert.Error(t, err)
}

func TestLoadAtlas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 16, 16), 0o644))
	_, err := LoadAtlas(path, 16, 16)
	require.NoError(t, err)

	_, err = LoadAtlas(filepath.Join(t.TempDir(), "missing.png"), 16, 16)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func opaque(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestTextRender(t *testing.T) {
	txt, err := NewText(goregular.TTF, 256, 128, 16)
	require.NoError(t, err)

	img, err := txt.Render([]string{"FPS: 60", "Grounded: true"})
	require.NoError(t, err)
	assert.Greater(t, opaque(img), 0)

	img, err = txt.Render(nil)
	require.NoError(t, err)
	assert.Zero(t, opaque(img), "render clears the canvas")
}

func TestNewTextRejectsGarbage(t *testing.T) {
	_, err := NewText([]byte("nope"), 8, 8, 12)
	assert.Error(t, err)
}
