package crt

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Neutral knobs: bias = 0.55, brightness = 1.075.
var neutralParams = Params{
	Time:              0,
	ArtifactAmplifier: 1.0,
	CrtAmountAdjusted: 0.0,
	BloomFac:          0.0,
}

// uv.y * 200 == pi/2, so sin(...) == 1 at time zero and the flicker band
// covers this row.
var flickerUV = mgl32.Vec2{0.5, float32(math.Pi / 2.0 / 200.0)}

// A row where sin(uv.y*200) == 0 at time zero: flicker inactive.
var quietUV = mgl32.Vec2{0.5, 0.0}

func shade(channel float32) float32 {
	return (channel-0.55)*1.075 + 0.5
}

func TestApplyEffects_Deterministic(t *testing.T) {
	base := mgl32.Vec3{0.3, 0.6, 0.9}
	p := Params{Time: 12.5, ArtifactAmplifier: 1.3, CrtAmountAdjusted: 0.8, BloomFac: 0.2}

	first := ApplyEffects(flickerUV, 0.5, -0.5, base, p)
	second := ApplyEffects(flickerUV, 0.5, -0.5, base, p)
	require.Equal(t, first, second)
}

func TestApplyEffects_BiasBrightness(t *testing.T) {
	got := ApplyEffects(quietUV, 0, 0, mgl32.Vec3{0.6, 0.6, 0.6}, neutralParams)

	// (0.6 - 0.55) * 1.075 + 0.5
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.55375, got[i], 1e-5)
	}
}

func TestApplyEffects_FlickerLeftBranch(t *testing.T) {
	base := mgl32.Vec3{0.2, 0.4, 0.8}
	got := ApplyEffects(flickerUV, 0.5, 0.0, base, neutralParams)

	// Red was overwritten with g*1.5 = 0.6 before bias/brightness; green
	// and blue pass through untouched by the branch.
	assert.InDelta(t, shade(0.6), got.X(), 1e-5)
	assert.InDelta(t, shade(0.4), got.Y(), 1e-5)
	assert.InDelta(t, shade(0.8), got.Z(), 1e-5)
}

func TestApplyEffects_FlickerRightBranch(t *testing.T) {
	base := mgl32.Vec3{0.2, 0.4, 0.8}
	got := ApplyEffects(flickerUV, 0.0, -0.5, base, neutralParams)

	// Only green changes: g = r*1.5 = 0.3.
	assert.InDelta(t, shade(0.2), got.X(), 1e-5)
	assert.InDelta(t, shade(0.3), got.Y(), 1e-5)
	assert.InDelta(t, shade(0.8), got.Z(), 1e-5)
}

func TestApplyEffects_BranchOrdering(t *testing.T) {
	base := mgl32.Vec3{0.2, 0.4, 0.8}
	got := ApplyEffects(flickerUV, 0.5, -0.5, base, neutralParams)

	// Both branches fire. The green overwrite must read the red channel
	// after the red overwrite: r = 0.4*1.5 = 0.6, then g = 0.6*1.5 = 0.9.
	assert.InDelta(t, shade(0.6), got.X(), 1e-5)
	assert.InDelta(t, shade(0.9), got.Y(), 1e-5)
	assert.InDelta(t, shade(0.8), got.Z(), 1e-5)
}

func TestApplyEffects_BoundaryExclusion(t *testing.T) {
	base := mgl32.Vec3{0.2, 0.4, 0.8}
	want := ApplyEffects(flickerUV, 0.0, 0.0, base, neutralParams)

	cases := []struct {
		name             string
		offsetL, offsetR float32
	}{
		{"offsetL at lower bound", 0.01, 0.0},
		{"offsetL at upper bound", 0.99, 0.0},
		{"offsetL below range", 0.0, 0.0},
		{"offsetL above range", 1.0, 0.0},
		{"offsetR at upper bound", 0.0, -0.01},
		{"offsetR at lower bound", 0.0, -0.99},
		{"offsetR above range", 0.0, 0.0},
		{"offsetR below range", 0.0, -1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyEffects(flickerUV, tc.offsetL, tc.offsetR, base, neutralParams)
			assert.Equal(t, want, got, "open-interval boundary must not trigger the branch")
		})
	}
}

func TestApplyEffects_NoClamping(t *testing.T) {
	high := ApplyEffects(quietUV, 0, 0, mgl32.Vec3{5, 5, 5}, neutralParams)
	low := ApplyEffects(quietUV, 0, 0, mgl32.Vec3{-3, -3, -3}, neutralParams)

	for i := 0; i < 3; i++ {
		assert.Greater(t, high[i], float32(1.0))
		assert.Less(t, low[i], float32(0.0))
	}
}

func TestApplyEffects_KnobFormulas(t *testing.T) {
	// bias = 0.55 - 0.02*(1.5 - 1.0 - 2.0*0.5*0.7) = 0.55 - 0.02*(-0.2) = 0.554
	// brightness = 1.075 + 2.0*(0.012 - 0.5*0.12) = 1.075 - 0.096 = 0.979
	p := Params{Time: 0, ArtifactAmplifier: 1.5, CrtAmountAdjusted: 2.0, BloomFac: 0.5}
	got := ApplyEffects(quietUV, 0, 0, mgl32.Vec3{0.6, 0.6, 0.6}, p)

	want := (float32(0.6)-0.554)*0.979 + 0.5
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want, got[i], 1e-5)
	}
}

func TestTransformVertex_PassThrough(t *testing.T) {
	v := Vertex{Position: [2]float32{-0.25, 0.75}, UV: [2]float32{0.125, 0.875}}
	out := TransformVertex(v)

	assert.Equal(t, mgl32.Vec4{-0.25, 0.75, 0.0, 1.0}, out.ClipPosition)
	assert.Equal(t, mgl32.Vec2{0.125, 0.875}, out.UV)
}

func TestFullScreenQuad(t *testing.T) {
	vertices, indices := FullScreenQuad()
	require.Len(t, vertices, 4)
	require.Len(t, indices, 6)

	for _, idx := range indices {
		assert.Less(t, int(idx), len(vertices))
	}
	for _, v := range vertices {
		assert.GreaterOrEqual(t, v.UV[0], float32(0))
		assert.LessOrEqual(t, v.UV[0], float32(1))
		assert.GreaterOrEqual(t, v.UV[1], float32(0))
		assert.LessOrEqual(t, v.UV[1], float32(1))
	}
}

func TestShadePixel_AlphaPassThrough(t *testing.T) {
	tex := &Texture{
		Texels: []uint8{153, 153, 153, 128},
		Width:  1,
		Height: 1,
	}
	smp := Sampler{Filter: FilterNearest, Address: AddressClampToEdge}

	out := ShadePixel(tex, smp, mgl32.Vec2{0.5, 0.5}, ZeroOffsets{}, neutralParams)
	assert.InDelta(t, float32(128)/255.0, out.W(), 1e-6)
}
