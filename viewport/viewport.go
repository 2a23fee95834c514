// Package viewport holds the pan/zoom state of the composition canvas.
// Pan is clamped so the scaled canvas always covers the visible area.
package viewport

import (
	"math"

	"github.com/junaidrashid-git/charm-studio-api/layout"
)

// Zoom bounds and the increment applied by ZoomIn and ZoomOut.
const (
	MinZoom  = 1.0
	MaxZoom  = 3.0
	ZoomStep = 0.15
)

// Viewport is the pan/zoom state of one canvas.
type Viewport struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Zoom   float64      `json:"zoom"`
	Pan    layout.Point `json:"pan"`

	dragging  bool
	dragStart layout.Point

	pinching     bool
	pinchDist    float64
	pinchInitial float64
}

// New returns a viewport at zoom 1 with no pan.
func New(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, Zoom: MinZoom}
}

// MaxPan is the largest pan magnitude on each axis for the current zoom.
func (v *Viewport) MaxPan() layout.Point {
	if v.Zoom <= MinZoom {
		return layout.Point{}
	}
	return layout.Point{
		X: v.Width * (v.Zoom - 1) / 2,
		Y: v.Height * (v.Zoom - 1) / 2,
	}
}

// ZoomIn raises the zoom by one step, up to MaxZoom.
func (v *Viewport) ZoomIn() { v.SetZoom(v.Zoom + ZoomStep) }

// ZoomOut lowers the zoom by one step, down to MinZoom.
func (v *Viewport) ZoomOut() { v.SetZoom(v.Zoom - ZoomStep) }

// SetZoom clamps z into [MinZoom, MaxZoom] and re-clamps pan. A NaN zoom
// is ignored.
func (v *Viewport) SetZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	v.Zoom = clamp(z, MinZoom, MaxZoom)
	v.SetPan(v.Pan)
}

// SetPan clamps p against the current zoom. A NaN component is ignored.
func (v *Viewport) SetPan(p layout.Point) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return
	}
	if v.Zoom <= MinZoom {
		v.Pan = layout.Point{}
		return
	}
	m := v.MaxPan()
	v.Pan = layout.Point{X: clamp(p.X, -m.X, m.X), Y: clamp(p.Y, -m.Y, m.Y)}
}

// BeginDrag starts a drag gesture at pointer. There is nothing to drag at zoom 1.
func (v *Viewport) BeginDrag(pointer layout.Point) {
	if v.Zoom <= MinZoom {
		return
	}
	v.dragging = true
	v.dragStart = layout.Point{X: pointer.X - v.Pan.X, Y: pointer.Y - v.Pan.Y}
}

// DragTo moves the pan with the pointer while a drag is held.
func (v *Viewport) DragTo(pointer layout.Point) {
	if !v.dragging {
		return
	}
	v.SetPan(layout.Point{X: pointer.X - v.dragStart.X, Y: pointer.Y - v.dragStart.Y})
}

// EndDrag releases the drag wherever the pointer is.
func (v *Viewport) EndDrag() { v.dragging = false }

// Dragging reports whether a drag is in progress.
func (v *Viewport) Dragging() bool { return v.dragging }

// BeginPinch records the initial finger distance and zoom.
func (v *Viewport) BeginPinch(a, b layout.Point) {
	d := distance(a, b)
	if d == 0 {
		return
	}
	v.pinching = true
	v.pinchDist = d
	v.pinchInitial = v.Zoom
}

// PinchTo scales the zoom by the ratio of current to initial finger distance.
func (v *Viewport) PinchTo(a, b layout.Point) {
	if !v.pinching {
		return
	}
	v.SetZoom(v.pinchInitial * distance(a, b) / v.pinchDist)
}

// EndPinch stops scaling; the zoom stays where the pinch left it.
func (v *Viewport) EndPinch() { v.pinching = false }

// Reset returns to zoom 1 and no pan.
func (v *Viewport) Reset() {
	v.Zoom = MinZoom
	v.Pan = layout.Point{}
	v.dragging = false
	v.pinching = false
}

// Transform maps a canvas point to screen space: scale about the canvas
// center, then pan.
func (v *Viewport) Transform(p layout.Point) layout.Point {
	cx, cy := v.Width/2, v.Height/2
	return layout.Point{
		X: cx + (p.X-cx)*v.Zoom + v.Pan.X,
		Y: cy + (p.Y-cy)*v.Zoom + v.Pan.Y,
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func distance(a, b layout.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
