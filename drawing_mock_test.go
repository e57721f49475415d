package freelook3d

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vecAlmostEqual(a, b mgl64.Vec3) bool {
	for i := range a {
		if !almostEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func matAlmostEqual(a, b mgl64.Mat4) bool {
	for i := range a {
		if !almostEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func matFinite(m mgl64.Mat4) bool {
	return finite(m[:]...)
}

// recordingCanvas is a Canvas for tests: it keeps every batch and clear
// instead of touching the GPU.
type recordingCanvas struct {
	bounds  image.Rectangle
	batches [][]ebiten.Vertex
	indices [][]uint16
	clears  []image.Rectangle
}

func newRecordingCanvas(w, h int) *recordingCanvas {
	return &recordingCanvas{bounds: image.Rect(0, 0, w, h)}
}

func (c *recordingCanvas) DrawTriangles(vertices []ebiten.Vertex, indices []uint16, img *ebiten.Image, options *ebiten.DrawTrianglesOptions) {
	c.batches = append(c.batches, append([]ebiten.Vertex(nil), vertices...))
	c.indices = append(c.indices, append([]uint16(nil), indices...))
}

func (c *recordingCanvas) Clear(r image.Rectangle, clr color.Color) {
	c.clears = append(c.clears, r)
}

func (c *recordingCanvas) Bounds() image.Rectangle { return c.bounds }

func (c *recordingCanvas) triangleCount() int {
	n := 0
	for _, idx := range c.indices {
		n += len(idx) / 3
	}
	return n
}

func (c *recordingCanvas) vertices() []ebiten.Vertex {
	var out []ebiten.Vertex
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}
