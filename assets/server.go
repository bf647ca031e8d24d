package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

type AssetId string

// TextureAsset holds decoded image data as tightly-packed RGBA8 texels,
// ready for a wgpu texture upload or the software sampler.
type TextureAsset struct {
	Texels []uint8
	Width  uint32
	Height uint32
}

type Server struct {
	textures map[AssetId]TextureAsset
}

func NewServer() *Server {
	return &Server{
		textures: make(map[AssetId]TextureAsset),
	}
}

// LoadTexture decodes an image file (PNG, JPEG or BMP) into an RGBA8
// texture asset and returns its id.
func (s *Server) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("image not found: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)

	id := makeAssetId()
	s.textures[id] = TextureAsset{
		Texels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
	return id, nil
}

func (s *Server) Texture(id AssetId) (TextureAsset, bool) {
	tx, ok := s.textures[id]
	return tx, ok
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
