package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestServer_LoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path)

	server := NewServer()
	id, err := server.LoadTexture(path)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	tx, ok := server.Texture(id)
	require.True(t, ok)
	assert.Equal(t, uint32(2), tx.Width)
	assert.Equal(t, uint32(2), tx.Height)
	require.Len(t, tx.Texels, 2*2*4)

	// Top-left texel is the red pixel.
	assert.Equal(t, []uint8{255, 0, 0, 255}, tx.Texels[0:4])
	// Bottom-right texel is the white pixel.
	assert.Equal(t, []uint8{255, 255, 255, 255}, tx.Texels[12:16])
}

func TestServer_LoadTextureDistinctIds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path)

	server := NewServer()
	id1, err := server.LoadTexture(path)
	require.NoError(t, err)
	id2, err := server.LoadTexture(path)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}

func TestServer_LoadTextureMissingFile(t *testing.T) {
	server := NewServer()
	_, err := server.LoadTexture(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorContains(t, err, "image not found")
}

func TestServer_UnknownTexture(t *testing.T) {
	server := NewServer()
	_, ok := server.Texture("missing")
	assert.False(t, ok)
}
