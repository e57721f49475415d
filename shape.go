package freelook3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is an indexed triangle mesh with an optional line list. Several
// objects can share one Shape.
type Shape struct {
	Name      string
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Faces     [][3]int
	Lines     [][2]int

	min, max mgl64.Vec3
}

// Init fills in smooth vertex normals when none were supplied and computes
// the bounding box.
func (s *Shape) Init() {
	if len(s.Faces) > 0 && len(s.Normals) != len(s.Positions) {
		s.Normals = smoothNormals(s.Positions, s.Faces)
	}
	s.calcBounds()
}

func (s *Shape) calcBounds() {
	if len(s.Positions) == 0 {
		s.min, s.max = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}
	s.min, s.max = s.Positions[0], s.Positions[0]
	for _, p := range s.Positions[1:] {
		for i := 0; i < 3; i++ {
			s.min[i] = math.Min(s.min[i], p[i])
			s.max[i] = math.Max(s.max[i], p[i])
		}
	}
}

func (s *Shape) MinY() float64 { return s.min[1] }

// Extents returns the bounding box size along each axis.
func (s *Shape) Extents() mgl64.Vec3 { return s.max.Sub(s.min) }

// CentreObject moves every point so the bounding box is centred on the origin.
func (s *Shape) CentreObject() {
	s.calcBounds()
	centre := s.min.Add(s.max).Mul(0.5)
	for i := range s.Positions {
		s.Positions[i] = s.Positions[i].Sub(centre)
	}
	s.calcBounds()
}

// Draw issues the shape's draw calls through p, which must be bound.
func (s *Shape) Draw(p *Program) {
	if len(s.Faces) > 0 {
		p.DrawTriangles(s.Positions, s.Normals, s.UVs, s.Faces)
	}
	if len(s.Lines) > 0 {
		p.DrawLines(s.Positions, s.Lines)
	}
}

func smoothNormals(positions []mgl64.Vec3, faces [][3]int) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(positions))
	for _, f := range faces {
		if !inRange(len(positions), f[0], f[1], f[2]) {
			continue
		}
		a, b, c := positions[f[0]], positions[f[1]], positions[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, i := range f {
			normals[i] = normals[i].Add(n)
		}
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl64.Vec3{0, 1, 0}
		}
	}
	return normals
}
