package crt

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// The effect is a fixed look, not a parameterization: these constants define
// it and are compiled in on purpose. The only runtime knobs are the fields of
// Params.
const (
	scanlineFreq     = 200.0 // rows-to-radians factor for the flicker band
	flickerThreshold = 0.85
	artifactGain     = 1.5

	biasBase       = 0.55
	biasScale      = 0.02
	biasBloomScale = 0.7

	brightnessBase       = 1.075
	brightnessCrtScale   = 0.012
	brightnessBloomScale = 0.12

	outputLift = 0.5
)

// Params is the per-frame uniform block shared by every pixel of a draw.
// The host must populate all four fields before each frame; Time must
// advance monotonically to scroll the flicker band.
type Params struct {
	Time              float32
	ArtifactAmplifier float32
	CrtAmountAdjusted float32
	BloomFac          float32
}

// ApplyEffects transforms one sampled color. Pure: same inputs, same output.
// Components are not clamped; out-of-range and non-finite values propagate.
//
// The two artifact branches are order-dependent: the green overwrite reads
// the red channel after the red overwrite may have replaced it.
func ApplyEffects(uv mgl32.Vec2, offsetL, offsetR float32, color mgl32.Vec3, p Params) mgl32.Vec3 {
	if math.Sin(float64(p.Time+uv.Y()*scanlineFreq)) > flickerThreshold {
		if offsetL > 0.01 && offsetL < 0.99 {
			color[0] = color[1] * artifactGain
		}
		if offsetR > -0.99 && offsetR < -0.01 {
			color[1] = color[0] * artifactGain
		}
	}

	bias := float32(biasBase) - biasScale*(p.ArtifactAmplifier-1.0-p.CrtAmountAdjusted*p.BloomFac*biasBloomScale)
	brightness := float32(brightnessBase) + p.CrtAmountAdjusted*(brightnessCrtScale-p.BloomFac*brightnessBloomScale)

	for i := range color {
		color[i] = (color[i]-bias)*brightness + outputLift
	}
	return color
}

// ShadePixel is the fragment contract: sample the texture at uv, fetch the
// per-pixel offsets, run the effect and carry the sampled alpha through.
func ShadePixel(tex *Texture, smp Sampler, uv mgl32.Vec2, offsets OffsetSource, p Params) mgl32.Vec4 {
	sampled := smp.Sample(tex, uv)
	offsetL, offsetR := offsets.OffsetsAt(uv)
	rgb := ApplyEffects(uv, offsetL, offsetR, sampled.Vec3(), p)
	return mgl32.Vec4{rgb[0], rgb[1], rgb[2], sampled.W()}
}
