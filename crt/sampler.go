package crt

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is a CPU-side RGBA8 image, tightly packed, row-major from the
// top-left corner.
type Texture struct {
	Texels []uint8
	Width  int
	Height int
}

type AddressMode int

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
)

type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// Sampler mirrors the GPU sampler configuration for the software path.
// The zero value matches the viewer's sampler: linear filtering with
// clamp-to-edge addressing.
type Sampler struct {
	Filter  FilterMode
	Address AddressMode
}

// Sample fetches the texture at a normalized UV coordinate. Out-of-range
// coordinates follow the configured address mode.
func (s Sampler) Sample(t *Texture, uv mgl32.Vec2) mgl32.Vec4 {
	if s.Filter == FilterNearest {
		x := int(math.Floor(float64(uv.X()) * float64(t.Width)))
		y := int(math.Floor(float64(uv.Y()) * float64(t.Height)))
		return s.texelAt(t, x, y)
	}

	// Texel centers sit at (i + 0.5) / size.
	fx := float64(uv.X())*float64(t.Width) - 0.5
	fy := float64(uv.Y())*float64(t.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - math.Floor(fx))
	ty := float32(fy - math.Floor(fy))

	c00 := s.texelAt(t, x0, y0)
	c10 := s.texelAt(t, x0+1, y0)
	c01 := s.texelAt(t, x0, y0+1)
	c11 := s.texelAt(t, x0+1, y0+1)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bottom := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

func (s Sampler) texelAt(t *Texture, x, y int) mgl32.Vec4 {
	switch s.Address {
	case AddressRepeat:
		x = wrap(x, t.Width)
		y = wrap(y, t.Height)
	default:
		x = clampi(x, 0, t.Width-1)
		y = clampi(y, 0, t.Height-1)
	}

	i := (y*t.Width + x) * 4
	return mgl32.Vec4{
		float32(t.Texels[i]) / 255.0,
		float32(t.Texels[i+1]) / 255.0,
		float32(t.Texels[i+2]) / 255.0,
		float32(t.Texels[i+3]) / 255.0,
	}
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
