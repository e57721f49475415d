package freelook3d

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const maxBatchVertices = math.MaxUint16

// wEpsilon keeps clipped vertices strictly in front of the eye.
const wEpsilon = 1e-6

type batchItem struct {
	xp, yp  []float32
	line    bool
	width   float32
	depth   float64
	clr     color.RGBA
	overlay bool
	seq     int
}

// BatchStats counts what happened to submitted primitives since the last Flush.
type BatchStats struct {
	Submitted int
	Clipped   int
	Culled    int
	Drawn     int
}

// Batcher collects clip-space primitives, clips them to the view volume,
// maps them into the current viewport and paints them far to near.
type Batcher struct {
	src       *ebiten.Image
	fbWidth   int
	fbHeight  int
	viewport  image.Rectangle // GL convention: origin bottom-left
	depthTest bool
	cullFace  bool
	lineWidth float32
	antiAlias bool
	items     []batchItem
	seq       int
	stats     BatchStats
}

// NewBatcher returns a batcher sampling src for every triangle. src may be
// nil when the canvas ignores it.
func NewBatcher(src *ebiten.Image) *Batcher {
	return &Batcher{
		src:       src,
		depthTest: true,
		lineWidth: 1,
		antiAlias: true,
	}
}

// Begin starts a frame for a framebuffer of the given size and resets the
// viewport to cover it.
func (b *Batcher) Begin(width, height int) {
	b.fbWidth, b.fbHeight = width, height
	b.viewport = image.Rect(0, 0, width, height)
	b.items = b.items[:0]
	b.seq = 0
	b.stats = BatchStats{}
	b.depthTest = true
}

// SetViewport selects the target rectangle, with (x, y) the bottom-left
// corner as in glViewport.
func (b *Batcher) SetViewport(x, y, width, height int) {
	b.viewport = image.Rect(x, y, x+width, y+height)
}

// ViewportBounds is the current viewport in top-left canvas coordinates.
func (b *Batcher) ViewportBounds() image.Rectangle {
	return image.Rect(
		b.viewport.Min.X, b.fbHeight-b.viewport.Max.Y,
		b.viewport.Max.X, b.fbHeight-b.viewport.Min.Y,
	)
}

// SetDepthTest controls ordering. Primitives submitted with the depth test off
// are painted after everything else, in submission order.
func (b *Batcher) SetDepthTest(on bool) { b.depthTest = on }

// SetCullFace drops polygons wound clockwise on screen.
func (b *Batcher) SetCullFace(on bool) { b.cullFace = on }

func (b *Batcher) SetLineWidth(w float32) {
	if w > 0 {
		b.lineWidth = w
	}
}

func (b *Batcher) Stats() BatchStats { return b.stats }

// Pending is the number of primitives waiting for Flush.
func (b *Batcher) Pending() int { return len(b.items) }

// AddPolygon submits a convex polygon in clip coordinates.
func (b *Batcher) AddPolygon(clip []mgl64.Vec4, clr color.RGBA) {
	b.stats.Submitted++
	poly := clipPolygon(clip)
	if len(poly) < 3 {
		b.stats.Clipped++
		return
	}

	ndc := make([]mgl64.Vec3, len(poly))
	for i, v := range poly {
		ndc[i] = v.Vec3().Mul(1 / v[3])
	}
	if b.cullFace && signedArea(ndc) <= 0 {
		b.stats.Culled++
		return
	}

	item := batchItem{
		xp:      make([]float32, len(ndc)),
		yp:      make([]float32, len(ndc)),
		clr:     clr,
		overlay: !b.depthTest,
		seq:     b.nextSeq(),
	}
	for i, p := range ndc {
		item.xp[i], item.yp[i] = b.toScreen(p)
		item.depth += p[2]
	}
	item.depth /= float64(len(ndc))
	b.items = append(b.items, item)
}

// AddLine submits a segment in clip coordinates.
func (b *Batcher) AddLine(a, c mgl64.Vec4, clr color.RGBA) {
	b.stats.Submitted++
	a, c, ok := clipSegment(a, c)
	if !ok {
		b.stats.Clipped++
		return
	}
	pa := a.Vec3().Mul(1 / a[3])
	pc := c.Vec3().Mul(1 / c[3])
	item := batchItem{
		xp:      make([]float32, 2),
		yp:      make([]float32, 2),
		line:    true,
		width:   b.lineWidth,
		depth:   (pa[2] + pc[2]) / 2,
		clr:     clr,
		overlay: !b.depthTest,
		seq:     b.nextSeq(),
	}
	item.xp[0], item.yp[0] = b.toScreen(pa)
	item.xp[1], item.yp[1] = b.toScreen(pc)
	b.items = append(b.items, item)
}

func (b *Batcher) nextSeq() int {
	b.seq++
	return b.seq
}

func (b *Batcher) toScreen(ndc mgl64.Vec3) (float32, float32) {
	w := float64(b.viewport.Dx())
	h := float64(b.viewport.Dy())
	x := float64(b.viewport.Min.X) + (ndc[0]+1)/2*w
	y := float64(b.viewport.Min.Y) + (ndc[1]+1)/2*h
	return float32(x), float32(float64(b.fbHeight) - y)
}

// Flush paints everything pending onto c and empties the batch.
func (b *Batcher) Flush(c Canvas) {
	if len(b.items) == 0 {
		return
	}
	sort.SliceStable(b.items, func(i, j int) bool {
		a, o := b.items[i], b.items[j]
		if a.overlay != o.overlay {
			return !a.overlay
		}
		if a.overlay {
			return a.seq < o.seq
		}
		if a.depth != o.depth {
			return a.depth > o.depth
		}
		return a.seq < o.seq
	})

	opts := &ebiten.DrawTrianglesOptions{AntiAlias: b.antiAlias}
	vertices := make([]ebiten.Vertex, 0, 1024)
	indices := make([]uint16, 0, 2048)
	for _, item := range b.items {
		need := len(item.xp)
		if item.line {
			need = strokeVertexBudget
		}
		if len(vertices)+need > maxBatchVertices {
			c.DrawTriangles(vertices, indices, b.src, opts)
			vertices, indices = vertices[:0], indices[:0]
		}
		if item.line {
			vertices, indices = appendStroke(vertices, indices, item.xp[0], item.yp[0], item.xp[1], item.yp[1], item.width, item.clr)
		} else {
			vertices, indices = appendConvexPolygon(vertices, indices, item.xp, item.yp, item.clr)
		}
		b.stats.Drawn++
	}
	if len(indices) > 0 {
		c.DrawTriangles(vertices, indices, b.src, opts)
	}
	b.items = b.items[:0]
}

// signedArea is positive for counter-clockwise polygons in NDC.
func signedArea(pts []mgl64.Vec3) float64 {
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return area / 2
}

// clipPlanes are the view-volume planes as distance functions; a vertex is
// inside when every distance is >= 0. The far plane is left open.
var clipPlanes = []func(v mgl64.Vec4) float64{
	func(v mgl64.Vec4) float64 { return v[3] - wEpsilon },
	func(v mgl64.Vec4) float64 { return v[2] + v[3] },
	func(v mgl64.Vec4) float64 { return v[3] - v[0] },
	func(v mgl64.Vec4) float64 { return v[3] + v[0] },
	func(v mgl64.Vec4) float64 { return v[3] - v[1] },
	func(v mgl64.Vec4) float64 { return v[3] + v[1] },
}

// clipPolygon clips a convex clip-space polygon against every plane in turn.
func clipPolygon(poly []mgl64.Vec4) []mgl64.Vec4 {
	out := poly
	for _, dist := range clipPlanes {
		if len(out) == 0 {
			return nil
		}
		out = clipAgainst(out, dist)
	}
	return out
}

func clipAgainst(poly []mgl64.Vec4, dist func(mgl64.Vec4) float64) []mgl64.Vec4 {
	out := make([]mgl64.Vec4, 0, len(poly)+2)
	for i := range poly {
		cur := poly[i]
		next := poly[(i+1)%len(poly)]
		dc, dn := dist(cur), dist(next)
		if dc >= 0 {
			out = append(out, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			out = append(out, lerp4(cur, next, t))
		}
	}
	return out
}

func clipSegment(a, c mgl64.Vec4) (mgl64.Vec4, mgl64.Vec4, bool) {
	for _, dist := range clipPlanes {
		da, dc := dist(a), dist(c)
		switch {
		case da < 0 && dc < 0:
			return a, c, false
		case da < 0:
			a = lerp4(a, c, da/(da-dc))
		case dc < 0:
			c = lerp4(a, c, da/(da-dc))
		}
	}
	return a, c, true
}

func lerp4(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
