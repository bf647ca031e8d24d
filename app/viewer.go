package app

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/crtsim/assets"
	"github.com/gekko3d/crtsim/crt"
	"github.com/gekko3d/crtsim/shaders"
)

// Viewer owns the wgpu state for the single-pass CRT draw: a full-screen
// quad sampling the source image through the embedded shader, with the
// Params uniform rewritten every frame.
type Viewer struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Pipeline      *wgpu.RenderPipeline
	BindGroup     *wgpu.BindGroup
	VertexBuffer  *wgpu.Buffer
	IndexBuffer   *wgpu.Buffer
	UniformBuffer *wgpu.Buffer
	Sampler       *wgpu.Sampler
	TextureView   *wgpu.TextureView

	// Params is the uniform block for the next frame. Time is overwritten
	// each Update; the other fields are the host's effect knobs.
	Params crt.Params
	// Nearest switches the source sampler from linear to nearest filtering.
	// Must be set before Init.
	Nearest bool
	Log     Logger

	indexCount     uint32
	LastRenderTime float64
	FrameCount     int
	FPS            float64
	fpsTime        float64
}

func NewViewer(window *glfw.Window, logger Logger) *Viewer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Viewer{
		Window: window,
		Params: crt.Params{ArtifactAmplifier: 1.0},
		Log:    logger,
	}
}

func (v *Viewer) Init(txAsset assets.TextureAsset) error {
	v.Instance = wgpu.CreateInstance(nil)

	surface := v.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(v.Window))
	v.Surface = surface

	adapter, err := v.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return err
	}
	v.Adapter = adapter

	v.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return err
	}
	v.Queue = v.Device.GetQueue()

	width, height := v.Window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	v.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, v.Device, v.Config)

	v.Pipeline, err = createRenderPipeline("CRT Pipeline", shaders.CrtWGSL, crt.Vertex{}, v.Device, format)
	if err != nil {
		return err
	}

	v.TextureView, err = createTextureFromAsset(txAsset, v.Device, v.Queue)
	if err != nil {
		return err
	}

	v.Sampler, err = createSampler(v.Device, v.Nearest)
	if err != nil {
		return err
	}

	v.UniformBuffer, err = v.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Params Buffer",
		Contents: v.Params.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	vertices, indices := crt.FullScreenQuad()
	v.VertexBuffer, err = v.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad Vertex Buffer",
		Contents: sliceToWgpuBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return err
	}
	v.IndexBuffer, err = v.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return err
	}
	v.indexCount = uint32(len(indices))

	bindGroupLayout := v.Pipeline.GetBindGroupLayout(0)
	defer bindGroupLayout.Release()

	v.BindGroup, err = v.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "CRT Bind Group",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: v.TextureView},
			{Binding: 1, Sampler: v.Sampler},
			{Binding: 2, Buffer: v.UniformBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	v.Log.Infof("viewer initialized: %dx%d, surface format %v", width, height, format)
	return nil
}

// Update advances the uniform block for the next frame. Time comes from
// glfw's monotonic clock, which keeps the flicker band scrolling.
func (v *Viewer) Update() {
	v.Params.Time = float32(glfw.GetTime())
	if err := v.Queue.WriteBuffer(v.UniformBuffer, 0, v.Params.Bytes()); err != nil {
		v.Log.Errorf("uniform write failed: %v", err)
	}
}

func (v *Viewer) Render() {
	nextTexture, err := v.Surface.GetCurrentTexture()
	if err != nil {
		v.Log.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		v.Log.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := v.Device.CreateCommandEncoder(nil)
	if err != nil {
		v.Log.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rPass.SetPipeline(v.Pipeline)
	rPass.SetBindGroup(0, v.BindGroup, nil)
	rPass.SetVertexBuffer(0, v.VertexBuffer, 0, wgpu.WholeSize)
	rPass.SetIndexBuffer(v.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	rPass.DrawIndexed(v.indexCount, 1, 0, 0, 0)
	if err := rPass.End(); err != nil {
		v.Log.Errorf("render pass End failed: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		v.Log.Errorf("encoder Finish failed: %v", err)
		return
	}
	v.Queue.Submit(cmd)
	v.Surface.Present()

	now := glfw.GetTime()
	if v.LastRenderTime > 0 {
		v.FrameCount++
		v.fpsTime += now - v.LastRenderTime
		if v.fpsTime >= 1.0 {
			v.FPS = float64(v.FrameCount) / v.fpsTime
			v.FrameCount = 0
			v.fpsTime = 0
			v.Log.Debugf("fps: %.1f", v.FPS)
		}
	}
	v.LastRenderTime = now
}

func (v *Viewer) Resize(w, h int) {
	if w > 0 && h > 0 {
		v.Config.Width = uint32(w)
		v.Config.Height = uint32(h)
		v.Surface.Configure(v.Adapter, v.Device, v.Config)
	}
}
