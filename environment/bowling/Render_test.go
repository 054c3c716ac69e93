package bowling

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	env "github.com/samuelfneumann/gobowl/environment"
	"gonum.org/v1/gonum/mat"
)

func TestRenderNone(t *testing.T) {
	c := newTestContinuous(t, Settings{})
	if _, err := c.Render(); !errors.Is(err, env.ErrUsedBeforeReset) {
		t.Errorf("render: want %v, have %v", env.ErrUsedBeforeReset, err)
	}

	if _, err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := c.Render(); !errors.Is(err, env.ErrRenderUnavailable) {
		t.Errorf("render: want %v, have %v", env.ErrRenderUnavailable, err)
	}
}

func TestRenderRGBArray(t *testing.T) {
	c := newTestContinuous(t, Settings{RenderMode: RenderRGBArray})
	if _, err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	frame, err := c.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	shape := frame.Shape()
	if len(shape) != 3 || shape[0] != FrameHeight || shape[1] != FrameWidth ||
		shape[2] != 3 {
		t.Fatalf("render: want shape (%v, %v, 3), have %v", FrameHeight,
			FrameWidth, shape)
	}

	pixels, ok := frame.Data().([]uint8)
	if !ok {
		t.Fatalf("render: want uint8 frame, have %T", frame.Data())
	}
	at := func(x, y int) [3]uint8 {
		i := (y*FrameWidth + x) * 3
		return [3]uint8{pixels[i], pixels[i+1], pixels[i+2]}
	}

	tests := []struct {
		name string
		x, y int
		want [3]uint8
	}{
		{"ball", int(BallStartX), int(BallStartY), [3]uint8{255, 0, 0}},
		{"head pin", int(HeadPinX), int(HeadPinY), [3]uint8{255, 255, 255}},
		{"background", 10, 10, [3]uint8{0, 0, 0}},
		{"lane", 10, FrameHeight - 10, [3]uint8{200, 200, 200}},
	}
	for _, test := range tests {
		if have := at(test.x, test.y); have != test.want {
			t.Errorf("%v: pixel (%v, %v) want %v have %v", test.name, test.x,
				test.y, test.want, have)
		}
	}

	// Frames are independent of one another
	again, err := c.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if &again.Data().([]uint8)[0] == &pixels[0] {
		t.Error("render: frames should not share memory")
	}
}

func TestRenderHuman(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	d := newTestDiscrete(t, Settings{RenderMode: RenderHuman, FrameDir: dir})
	if _, err := d.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for i := 0; i < 2; i++ {
		frame, err := d.Render()
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if frame != nil {
			t.Errorf("render: human mode should not return a frame")
		}
	}

	for _, name := range []string{"frame000000.png", "frame000001.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("render: frame %v not written: %v", name, err)
		}
	}
}

func TestRenderHumanWithoutFrameDir(t *testing.T) {
	d := newTestDiscrete(t, Settings{RenderMode: RenderHuman})
	if _, err := d.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := d.Render(); !errors.Is(err, env.ErrRenderUnavailable) {
		t.Errorf("render: want %v, have %v", env.ErrRenderUnavailable, err)
	}
}

func TestClose(t *testing.T) {
	c := newTestContinuous(t, Settings{RenderMode: RenderRGBArray})
	if _, err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := c.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := c.Close(); err != nil {
			t.Errorf("close %v: %v", i, err)
		}
	}

	if _, err := c.Render(); !errors.Is(err, env.ErrClosed) {
		t.Errorf("render: want %v, have %v", env.ErrClosed, err)
	}
	if _, _, err := c.Step(mat.NewVecDense(2, nil)); !errors.Is(err, env.ErrClosed) {
		t.Errorf("step: want %v, have %v", env.ErrClosed, err)
	}
	if _, err := c.Reset(); !errors.Is(err, env.ErrClosed) {
		t.Errorf("reset: want %v, have %v", env.ErrClosed, err)
	}
}

func TestNewRendererUnknownMode(t *testing.T) {
	if _, err := newRenderer("hologram", ""); err == nil {
		t.Error("newRenderer: want error for unknown mode")
	}
	r, err := newRenderer("", "")
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	if r.mode != RenderNone {
		t.Errorf("newRenderer: want default mode %v, have %v", RenderNone,
			r.mode)
	}
}
