package bowling

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	env "github.com/samuelfneumann/gobowl/environment"
	"gorgonia.org/tensor"
)

// RenderMode determines what Render does
type RenderMode string

const (
	// RenderNone disables rendering
	RenderNone RenderMode = "none"

	// RenderHuman draws each frame and saves it as a PNG image in the
	// frame directory, for viewing while the environment runs
	RenderHuman RenderMode = "human"

	// RenderRGBArray draws each frame into an offscreen buffer and
	// returns it as a (height, width, 3) uint8 tensor
	RenderRGBArray RenderMode = "rgb_array"
)

// Frame dimensions in pixels, one pixel per lane unit
const (
	FrameWidth  int = int(LaneWidth)
	FrameHeight int = int(LaneHeight)
)

// scene is a snapshot of everything that gets drawn
type scene struct {
	ball Rect
	pins []Rect
}

// renderFuncs dispatches on render mode
var renderFuncs = map[RenderMode]func(*renderer, scene) (*tensor.Dense,
	error){
	RenderNone:     (*renderer).unavailable,
	RenderHuman:    (*renderer).saveFrame,
	RenderRGBArray: (*renderer).pixels,
}

// renderer owns the drawing surface of a single environment. The
// surface is created on the first draw and released by close.
type renderer struct {
	mode     RenderMode
	frameDir string
	frames   int

	canvas *image.RGBA
	dc     *gg.Context
}

// newRenderer validates the render mode and returns a renderer that has
// not yet acquired a drawing surface
func newRenderer(mode RenderMode, frameDir string) (*renderer, error) {
	if mode == "" {
		mode = RenderNone
	}
	if _, ok := renderFuncs[mode]; !ok {
		return nil, fmt.Errorf("newRenderer: no such render mode %q", mode)
	}

	return &renderer{mode: mode, frameDir: frameDir}, nil
}

func (r *renderer) render(s scene) (*tensor.Dense, error) {
	return renderFuncs[r.mode](r, s)
}

func (r *renderer) unavailable(scene) (*tensor.Dense, error) {
	return nil, fmt.Errorf("mode %q: %w", r.mode, env.ErrRenderUnavailable)
}

// saveFrame draws the scene and saves it to the next frame file
func (r *renderer) saveFrame(s scene) (*tensor.Dense, error) {
	if r.frameDir == "" {
		return nil, fmt.Errorf("mode %q without frame directory: %w",
			r.mode, env.ErrRenderUnavailable)
	}
	if r.canvas == nil {
		if err := os.MkdirAll(r.frameDir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create frame directory: %v",
				err)
		}
	}

	r.draw(s)
	filename := filepath.Join(r.frameDir, fmt.Sprintf("frame%06d.png",
		r.frames))
	if err := r.dc.SavePNG(filename); err != nil {
		return nil, fmt.Errorf("could not save frame: %v", err)
	}
	r.frames++

	return nil, nil
}

// pixels draws the scene and copies the RGB channels of the canvas into
// a (height, width, 3) tensor
func (r *renderer) pixels(s scene) (*tensor.Dense, error) {
	r.draw(s)

	backing := make([]uint8, FrameHeight*FrameWidth*3)
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			src := r.canvas.PixOffset(x, y)
			dst := (y*FrameWidth + x) * 3
			copy(backing[dst:dst+3], r.canvas.Pix[src:src+3])
		}
	}

	return tensor.New(
		tensor.WithShape(FrameHeight, FrameWidth, 3),
		tensor.WithBacking(backing),
	), nil
}

// draw draws the scene onto the canvas, creating the canvas if needed
func (r *renderer) draw(s scene) {
	if r.canvas == nil {
		r.canvas = image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
		r.dc = gg.NewContextForRGBA(r.canvas)
	}
	dc := r.dc

	dc.SetRGB255(0, 0, 0)
	dc.Clear()

	// Lane
	dc.SetRGB255(200, 200, 200)
	dc.DrawRectangle(0, LaneHeight/2, LaneWidth, LaneHeight/2)
	dc.Fill()

	// Pins
	dc.SetRGB255(255, 255, 255)
	for _, pin := range s.pins {
		min := pin.Min()
		dc.DrawRectangle(min.X, min.Y, pin.W, pin.H)
	}
	dc.Fill()

	// Ball
	dc.SetRGB255(255, 0, 0)
	dc.DrawCircle(s.ball.Center.X, s.ball.Center.Y, s.ball.W/2)
	dc.Fill()
}

// close releases the drawing surface
func (r *renderer) close() {
	r.canvas = nil
	r.dc = nil
}
