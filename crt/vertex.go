package crt

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one corner of the full-screen quad. The tags drive the wgpu
// vertex buffer layout (see app.CreateVertexBufferLayout).
type Vertex struct {
	Position [2]float32 `crt:"layout" format:"float2" location:"0"`
	UV       [2]float32 `crt:"layout" format:"float2" location:"1"`
}

type VertexOutput struct {
	ClipPosition mgl32.Vec4
	UV           mgl32.Vec2
}

// TransformVertex maps a quad vertex to clip space and passes UV through
// unchanged. Total over all finite inputs, no side effects.
func TransformVertex(v Vertex) VertexOutput {
	return VertexOutput{
		ClipPosition: mgl32.Vec4{v.Position[0], v.Position[1], 0.0, 1.0},
		UV:           mgl32.Vec2{v.UV[0], v.UV[1]},
	}
}

// FullScreenQuad returns the static two-triangle quad the effect is drawn
// with. UV origin is the top-left corner, matching the texel upload order.
func FullScreenQuad() ([]Vertex, []uint16) {
	vertices := []Vertex{
		{Position: [2]float32{-1, -1}, UV: [2]float32{0, 1}},
		{Position: [2]float32{1, -1}, UV: [2]float32{1, 1}},
		{Position: [2]float32{1, 1}, UV: [2]float32{1, 0}},
		{Position: [2]float32{-1, 1}, UV: [2]float32{0, 0}},
	}
	indices := []uint16{0, 1, 2, 2, 3, 0}
	return vertices, indices
}
