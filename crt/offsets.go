package crt

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OffsetSource supplies the horizontal artifact offsets the effect samples
// per pixel. Keeping them behind an interface lets a real source be plugged
// in without touching ApplyEffects.
type OffsetSource interface {
	OffsetsAt(uv mgl32.Vec2) (offsetL, offsetR float32)
}

// ZeroOffsets reproduces the stock behavior: both offsets fixed at 0.0,
// which leaves both artifact branches inactive (0.0 is outside the open
// intervals (0.01, 0.99) and (-0.99, -0.01)).
type ZeroOffsets struct{}

func (ZeroOffsets) OffsetsAt(mgl32.Vec2) (float32, float32) {
	return 0.0, 0.0
}

// ScanOffsets derives the offsets from the horizontal scan position, which
// activates the artifact stripes across the interior of each flicker row:
// offset_l = uv.x and offset_r = uv.x - 1, so both branches fire everywhere
// except a thin margin at the left and right edges.
type ScanOffsets struct{}

func (ScanOffsets) OffsetsAt(uv mgl32.Vec2) (float32, float32) {
	return uv.X(), uv.X() - 1.0
}
