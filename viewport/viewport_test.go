package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junaidrashid-git/charm-studio-api/layout"
)

func TestZoomInNeverExceedsMax(t *testing.T) {
	v := New(800, 350)
	for i := 0; i < 20; i++ {
		v.ZoomIn()
		assert.LessOrEqual(t, v.Zoom, MaxZoom)
	}
	assert.Equal(t, MaxZoom, v.Zoom)

	v.Reset()
	assert.Equal(t, 1.0, v.Zoom)
	assert.Equal(t, layout.Point{}, v.Pan)
}

func TestZoomOutStopsAtOne(t *testing.T) {
	v := New(800, 350)
	v.ZoomOut()
	assert.Equal(t, MinZoom, v.Zoom)
}

func TestPanClamp(t *testing.T) {
	v := New(800, 350)
	v.SetZoom(2)
	assert.Equal(t, layout.Point{X: 400, Y: 175}, v.MaxPan())

	v.SetPan(layout.Point{X: 10000, Y: 10000})
	assert.Equal(t, layout.Point{X: 400, Y: 175}, v.Pan)

	v.SetPan(layout.Point{X: -10000, Y: 20})
	assert.Equal(t, layout.Point{X: -400, Y: 20}, v.Pan)
}

func TestZoomOutReclampsPan(t *testing.T) {
	v := New(800, 350)
	v.SetZoom(3)
	v.SetPan(layout.Point{X: 800, Y: 350})
	assert.Equal(t, layout.Point{X: 800, Y: 350}, v.Pan)

	v.SetZoom(2)
	assert.Equal(t, layout.Point{X: 400, Y: 175}, v.Pan)

	v.SetZoom(1)
	assert.Equal(t, layout.Point{}, v.Pan)
}

func TestPanDisabledAtZoomOne(t *testing.T) {
	v := New(800, 350)
	v.SetPan(layout.Point{X: 5, Y: 5})
	assert.Equal(t, layout.Point{}, v.Pan)

	v.BeginDrag(layout.Point{X: 10, Y: 10})
	assert.False(t, v.Dragging())
	v.DragTo(layout.Point{X: 50, Y: 50})
	assert.Equal(t, layout.Point{}, v.Pan)
}

func TestDrag(t *testing.T) {
	v := New(800, 350)
	v.SetZoom(2)
	v.SetPan(layout.Point{X: 10, Y: 0})

	v.BeginDrag(layout.Point{X: 100, Y: 100})
	v.DragTo(layout.Point{X: 150, Y: 80})
	assert.Equal(t, layout.Point{X: 60, Y: -20}, v.Pan)

	v.DragTo(layout.Point{X: 5000, Y: 100})
	assert.Equal(t, layout.Point{X: 400, Y: 0}, v.Pan)

	v.EndDrag()
	v.DragTo(layout.Point{X: 0, Y: 0})
	assert.Equal(t, layout.Point{X: 400, Y: 0}, v.Pan)
}

func TestPinch(t *testing.T) {
	v := New(800, 350)
	v.BeginPinch(layout.Point{X: 0, Y: 0}, layout.Point{X: 100, Y: 0})
	v.PinchTo(layout.Point{X: 0, Y: 0}, layout.Point{X: 200, Y: 0})
	assert.InDelta(t, 2.0, v.Zoom, 1e-9)

	v.PinchTo(layout.Point{X: 0, Y: 0}, layout.Point{X: 1000, Y: 0})
	assert.Equal(t, MaxZoom, v.Zoom)

	v.PinchTo(layout.Point{X: 0, Y: 0}, layout.Point{X: 10, Y: 0})
	assert.Equal(t, MinZoom, v.Zoom)
	assert.Equal(t, layout.Point{}, v.Pan)

	v.EndPinch()
	v.PinchTo(layout.Point{X: 0, Y: 0}, layout.Point{X: 200, Y: 0})
	assert.Equal(t, MinZoom, v.Zoom)
}

func TestPinchIgnoresZeroDistance(t *testing.T) {
	v := New(800, 350)
	v.BeginPinch(layout.Point{X: 3, Y: 3}, layout.Point{X: 3, Y: 3})
	v.PinchTo(layout.Point{X: 0, Y: 0}, layout.Point{X: 100, Y: 0})
	assert.Equal(t, MinZoom, v.Zoom)
}

func TestTransform(t *testing.T) {
	v := New(800, 350)
	p := layout.Point{X: 100, Y: 140}
	assert.Equal(t, p, v.Transform(p))

	v.SetZoom(2)
	v.SetPan(layout.Point{X: 10, Y: -5})
	// center (400,175): 400 + (100-400)*2 + 10, 175 + (140-175)*2 - 5
	assert.Equal(t, layout.Point{X: -190, Y: 100}, v.Transform(p))
}

func TestNaNInputIsIgnored(t *testing.T) {
	v := New(800, 350)
	v.SetZoom(2)
	v.SetPan(layout.Point{X: 30, Y: 10})

	v.SetZoom(math.NaN())
	v.SetPan(layout.Point{X: math.NaN(), Y: 0})
	assert.Equal(t, 2.0, v.Zoom)
	assert.Equal(t, layout.Point{X: 30, Y: 10}, v.Pan)

	v.SetPan(layout.Point{X: math.Inf(1), Y: math.Inf(-1)})
	assert.Equal(t, layout.Point{X: 400, Y: -175}, v.Pan)
}
