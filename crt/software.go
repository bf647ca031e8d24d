package crt

import (
	"image"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// SoftwareRenderer runs the effect on the CPU: one independent ShadePixel
// evaluation per output pixel, rows split across a pool of goroutines. No
// invocation observes another's state; the texture, sampler and params are
// read-only for the duration of a frame.
type SoftwareRenderer struct {
	Sampler Sampler
	Offsets OffsetSource
	Workers int
}

func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{
		Sampler: Sampler{Filter: FilterLinear, Address: AddressClampToEdge},
		Offsets: ZeroOffsets{},
		Workers: runtime.NumCPU(),
	}
}

// Render evaluates one frame of the effect into dst. UVs are taken at pixel
// centers of the destination grid, so dst and src may differ in size.
func (r *SoftwareRenderer) Render(dst *image.RGBA, src *Texture, p Params) {
	bounds := dst.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	offsets := r.Offsets
	if offsets == nil {
		offsets = ZeroOffsets{}
	}

	rowsPerWorker := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		rowStart := w * rowsPerWorker
		rowEnd := rowStart + rowsPerWorker
		if rowEnd > height {
			rowEnd = height
		}
		if rowStart >= rowEnd {
			break
		}

		wg.Add(1)
		go func(rowStart, rowEnd int) {
			defer wg.Done()
			for y := rowStart; y < rowEnd; y++ {
				v := (float32(y) + 0.5) / float32(height)
				for x := 0; x < width; x++ {
					u := (float32(x) + 0.5) / float32(width)
					out := ShadePixel(src, r.Sampler, mgl32.Vec2{u, v}, offsets, p)

					i := dst.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
					dst.Pix[i] = quantize(out.X())
					dst.Pix[i+1] = quantize(out.Y())
					dst.Pix[i+2] = quantize(out.Z())
					dst.Pix[i+3] = quantize(out.W())
				}
			}
		}(rowStart, rowEnd)
	}
	wg.Wait()
}

// The effect itself never clamps; clamping happens here, at output
// quantization to 8 bits.
func quantize(v float32) uint8 {
	if !(v > 0) { // catches NaN as well
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
