package app

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/crtsim/assets"
)

const bytesPerPixelRGBA8 = 4

// createTextureFromAsset uploads the decoded image as an RGBA8 texture and
// returns its view for binding.
func createTextureFromAsset(txAsset assets.TextureAsset, device *wgpu.Device, queue *wgpu.Queue) (*wgpu.TextureView, error) {
	textureExtent := wgpu.Extent3D{
		Width:              txAsset.Width,
		Height:             txAsset.Height,
		DepthOrArrayLayers: 1,
	}
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Source Image",
		Size:          textureExtent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	defer texture.Release()

	textureView, err := texture.CreateView(nil)
	if err != nil {
		return nil, err
	}

	err = queue.WriteTexture(
		texture.AsImageCopy(),
		wgpu.ToBytes(txAsset.Texels),
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  txAsset.Width * bytesPerPixelRGBA8,
			RowsPerImage: txAsset.Height,
		},
		&textureExtent,
	)
	if err != nil {
		textureView.Release()
		return nil, err
	}
	return textureView, nil
}

func createSampler(device *wgpu.Device, nearest bool) (*wgpu.Sampler, error) {
	filter := wgpu.FilterModeLinear
	if nearest {
		filter = wgpu.FilterModeNearest
	}
	return device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Source Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filter,
		MinFilter:     filter,
		MaxAnisotropy: 1,
	})
}
