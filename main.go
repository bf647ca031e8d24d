package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/crtsim/app"
	"github.com/gekko3d/crtsim/assets"
	"github.com/gekko3d/crtsim/crt"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	offscreen := flag.String("offscreen", "", "render one frame on the CPU to this PNG file and exit")
	frameTime := flag.Float64("t", 0.0, "time value for the offscreen frame")
	scanOffsets := flag.Bool("scan-offsets", false, "derive artifact offsets from the horizontal scan position (offscreen path)")
	nearest := flag.Bool("nearest", false, "sample the source with nearest filtering instead of linear")
	debug := flag.Bool("debug", false, "enable debug logging")
	crtAmount := flag.Float64("crt", 1.0, "crt_amount_adjusted knob")
	bloomFac := flag.Float64("bloom", 0.0, "bloom_fac knob")
	artifact := flag.Float64("artifact", 1.0, "artifact_amplifier knob")
	flag.Parse()

	logger := app.NewDefaultLogger("crtsim", *debug)

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Image path required.")
		flag.Usage()
		os.Exit(1)
	}

	server := assets.NewServer()
	id, err := server.LoadTexture(flag.Arg(0))
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	txAsset, _ := server.Texture(id)

	params := crt.Params{
		Time:              float32(*frameTime),
		ArtifactAmplifier: float32(*artifact),
		CrtAmountAdjusted: float32(*crtAmount),
		BloomFac:          float32(*bloomFac),
	}

	if *offscreen != "" {
		if err := renderOffscreen(*offscreen, txAsset, params, *scanOffsets, *nearest); err != nil {
			logger.Errorf("offscreen render failed: %v", err)
			os.Exit(1)
		}
		logger.Infof("wrote %s", *offscreen)
		return
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(int(txAsset.Width), int(txAsset.Height), "CRT Shader Simulation", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	viewer := app.NewViewer(window, logger)
	viewer.Params = params
	viewer.Nearest = *nearest
	if err := viewer.Init(txAsset); err != nil {
		logger.Errorf("viewer init failed: %v", err)
		os.Exit(1)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		viewer.Resize(width, height)
	})

	// Effect knobs, adjustable while the image is on screen.
	const step = 0.05
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyUp:
			viewer.Params.CrtAmountAdjusted += step
		case glfw.KeyDown:
			viewer.Params.CrtAmountAdjusted -= step
		case glfw.KeyRight:
			viewer.Params.BloomFac += step
		case glfw.KeyLeft:
			viewer.Params.BloomFac -= step
		case glfw.KeyA:
			viewer.Params.ArtifactAmplifier += step
		case glfw.KeyZ:
			viewer.Params.ArtifactAmplifier -= step
		default:
			return
		}
		logger.Debugf("params: crt=%.2f bloom=%.2f artifact=%.2f",
			viewer.Params.CrtAmountAdjusted, viewer.Params.BloomFac, viewer.Params.ArtifactAmplifier)
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		viewer.Update()
		viewer.Render()
	}
}

// renderOffscreen runs the software path: the same effect evaluated by a
// worker pool over the pixel grid, written out as a PNG.
func renderOffscreen(path string, txAsset assets.TextureAsset, params crt.Params, scanOffsets, nearest bool) error {
	src := &crt.Texture{
		Texels: txAsset.Texels,
		Width:  int(txAsset.Width),
		Height: int(txAsset.Height),
	}

	renderer := crt.NewSoftwareRenderer()
	if nearest {
		renderer.Sampler.Filter = crt.FilterNearest
	}
	if scanOffsets {
		renderer.Offsets = crt.ScanOffsets{}
	}

	dst := image.NewRGBA(image.Rect(0, 0, src.Width, src.Height))
	renderer.Render(dst, src, params)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, dst)
}
