package bowling

import (
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	"gonum.org/v1/gonum/spatial/r2"
)

// Formation names an arrangement of pins on the lane
type Formation string

const (
	// Triangle arranges ten pins in rows of 1, 2, 3 and 4 with the head
	// pin closest to the bowler
	Triangle Formation = "triangle"

	// Row arranges ten equally spaced pins in a single row across the
	// far end of the lane
	Row Formation = "row"
)

const (
	// Triangle formation geometry, in lane coordinates
	HeadPinX   float64 = LaneWidth / 2
	HeadPinY   float64 = 250
	PinSpacing float64 = 60 // horizontal distance between pin centres
	RowSpacing float64 = 50 // vertical distance between rows
	PinRows    int     = 4

	// Row formation geometry: top-left corner of the first pin and the
	// horizontal offset between consecutive pins
	RowLeft   float64 = 100
	RowTop    float64 = 100
	RowOffset float64 = 50
)

// Rect is an axis-aligned rectangle in lane coordinates, stored by its
// centre
type Rect struct {
	Center r2.Vec
	W, H   float64
}

// NewRect returns the Rect with top-left corner (x, y) and size w x h
func NewRect(x, y, w, h float64) Rect {
	return Rect{Center: r2.Vec{X: x + w/2, Y: y + h/2}, W: w, H: h}
}

// Min returns the top-left corner of the Rect
func (r Rect) Min() r2.Vec {
	return r2.Vec{X: r.Center.X - r.W/2, Y: r.Center.Y - r.H/2}
}

// Max returns the bottom-right corner of the Rect
func (r Rect) Max() r2.Vec {
	return r2.Vec{X: r.Center.X + r.W/2, Y: r.Center.Y + r.H/2}
}

// AABB returns the Rect as a Box2D axis-aligned bounding box
func (r Rect) AABB() box2d.B2AABB {
	min, max := r.Min(), r.Max()
	return box2d.B2AABB{
		LowerBound: box2d.MakeB2Vec2(min.X, min.Y),
		UpperBound: box2d.MakeB2Vec2(max.X, max.Y),
	}
}

// Overlaps returns whether two Rects intersect with positive area.
// Rects that only share an edge or a corner do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	if !box2d.B2TestOverlapBoundingBoxes(r.AABB(), other.AABB()) {
		return false
	}

	// Box2D also reports boxes that only touch
	rMin, rMax := r.Min(), r.Max()
	oMin, oMax := other.Min(), other.Max()
	width := math.Min(rMax.X, oMax.X) - math.Max(rMin.X, oMin.X)
	height := math.Min(rMax.Y, oMax.Y) - math.Max(rMin.Y, oMin.Y)
	return width > 0 && height > 0
}

// Layout computes the pin rectangles of a formation. Layout is
// deterministic: every call for the same formation returns equal
// rectangles in the same order, and the index of a pin in the returned
// slice is that pin's identity.
func Layout(f Formation) ([]Rect, error) {
	switch f {
	case Triangle, "":
		return triangle(), nil
	case Row:
		return row(), nil
	}
	return nil, fmt.Errorf("layout: no such formation %q", f)
}

// triangle lays out the pins row by row, starting at the head pin
func triangle() []Rect {
	pins := make([]Rect, 0, Pins)
	for r := 0; r < PinRows; r++ {
		y := HeadPinY - float64(r)*RowSpacing
		for i := 0; i <= r; i++ {
			x := HeadPinX + (float64(i)-float64(r)/2)*PinSpacing
			pins = append(pins, Rect{
				Center: r2.Vec{X: x, Y: y},
				W:      PinWidth,
				H:      PinHeight,
			})
		}
	}
	return pins
}

func row() []Rect {
	pins := make([]Rect, Pins)
	for i := range pins {
		pins[i] = NewRect(RowLeft+float64(i)*RowOffset, RowTop, PinWidth,
			PinHeight)
	}
	return pins
}
