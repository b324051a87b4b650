package texture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfAtlas(t *testing.T) {
	uv := OfAtlas(0, 1, 64, 64, 256, 256)
	assert.Equal(t, UV{BeginU: 0, EndU: 0.25, BeginV: 0.25, EndV: 0.5}, uv)

	uv = OfAtlas(3, 0, 64, 32, 256, 128)
	assert.Equal(t, UV{BeginU: 0.75, EndU: 1, BeginV: 0, EndV: 0.25}, uv)
}

func TestAtlasRegion(t *testing.T) {
	a, err := NewAtlas(256, 256, 64, 64)
	require.NoError(t, err)
	require.NoError(t, a.Add("grass_side", 0, 0))
	require.NoError(t, a.Add("grass_top", 0, 1))

	uv, err := a.Region("grass_top")
	require.NoError(t, err)
	assert.Equal(t, OfAtlas(0, 1, 64, 64, 256, 256), uv)
	assert.Equal(t, []string{"grass_side", "grass_top"}, a.Names())
}

func TestAtlasMissingTexture(t *testing.T) {
	a, err := NewAtlas(256, 256, 64, 64)
	require.NoError(t, err)

	_, err = a.Region("stone")
	var missing *MissingTextureError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "stone", missing.Name)
	assert.Contains(t, err.Error(), `"stone"`)
}

func TestAtlasRejectsBadGeometry(t *testing.T) {
	_, err := NewAtlas(0, 256, 64, 64)
	assert.Error(t, err)

	a, err := NewAtlas(128, 128, 64, 64)
	require.NoError(t, err)
	assert.Error(t, a.Add("too_far", 2, 0))
	assert.Error(t, a.Add("too_low", 0, 2))
}
