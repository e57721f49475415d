package freelook3d

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas receives finished triangles. *ebiten.Image satisfies it through
// ImageCanvas; tests use a recording implementation.
type Canvas interface {
	DrawTriangles(vertices []ebiten.Vertex, indices []uint16, img *ebiten.Image, options *ebiten.DrawTrianglesOptions)
	Clear(r image.Rectangle, clr color.Color)
	Bounds() image.Rectangle
}

// ImageCanvas draws onto an ebiten image.
type ImageCanvas struct {
	Image *ebiten.Image
}

func (c ImageCanvas) DrawTriangles(vertices []ebiten.Vertex, indices []uint16, img *ebiten.Image, options *ebiten.DrawTrianglesOptions) {
	c.Image.DrawTriangles(vertices, indices, img, options)
}

// Clear fills r, clipped to the image, with clr.
func (c ImageCanvas) Clear(r image.Rectangle, clr color.Color) {
	r = r.Intersect(c.Image.Bounds())
	if r.Empty() {
		return
	}
	c.Image.SubImage(r).(*ebiten.Image).Fill(clr)
}

func (c ImageCanvas) Bounds() image.Rectangle {
	return c.Image.Bounds()
}

// NewSolidSource returns the 1x1 white source image that every batch samples
// from, so vertex colours come through unchanged.
func NewSolidSource() *ebiten.Image {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func colorComponents(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}

// appendConvexPolygon fan-triangulates a convex polygon.
func appendConvexPolygon(vertices []ebiten.Vertex, indices []uint16, xp, yp []float32, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	if len(xp) < 3 {
		return vertices, indices
	}
	base := uint16(len(vertices))
	cr, cg, cb, ca := colorComponents(clr)
	for i := range xp {
		vertices = append(vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(xp); i++ {
		indices = append(indices, base, base+uint16(i-1), base+uint16(i))
	}
	return vertices, indices
}

// appendStroke outlines a line segment using the vector package.
func appendStroke(vertices []ebiten.Vertex, indices []uint16, x0, y0, x1, y1, width float32, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	var path vector.Path
	path.MoveTo(x0, y0)
	path.LineTo(x1, y1)

	start := len(vertices)
	vertices, indices = path.AppendVerticesAndIndicesForStroke(vertices, indices, &vector.StrokeOptions{
		Width:    width,
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	})

	cr, cg, cb, ca := colorComponents(clr)
	for i := start; i < len(vertices); i++ {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}
	return vertices, indices
}

// strokeVertexBudget is an upper bound on the vertices one stroked segment
// needs, used to decide when a batch must be flushed.
const strokeVertexBudget = 256
