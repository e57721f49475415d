package freelook3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewSquare builds the unit ground square in the XY plane, spanning [-1, 1]
// and facing +Z, split into divisions x divisions quads. UVs run 0..repeat.
func NewSquare(divisions int, repeat float64) *Shape {
	if divisions < 1 {
		divisions = 1
	}
	s := &Shape{Name: "square"}
	n := divisions + 1
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			u := float64(i) / float64(divisions)
			v := float64(j) / float64(divisions)
			s.Positions = append(s.Positions, mgl64.Vec3{2*u - 1, 2*v - 1, 0})
			s.Normals = append(s.Normals, mgl64.Vec3{0, 0, 1})
			s.UVs = append(s.UVs, mgl64.Vec2{u * repeat, v * repeat})
		}
	}
	for j := 0; j < divisions; j++ {
		for i := 0; i < divisions; i++ {
			a := j*n + i
			s.Faces = append(s.Faces, [3]int{a, a + 1, a + n + 1}, [3]int{a, a + n + 1, a + n})
		}
	}
	s.Init()
	return s
}

// NewCube builds an axis-aligned cube of the given edge length with flat
// faces.
func NewCube(size float64) *Shape {
	h := size / 2
	s := &Shape{Name: "cube"}
	sides := []struct {
		normal mgl64.Vec3
		u, v   mgl64.Vec3
	}{
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
	}
	for _, side := range sides {
		base := len(s.Positions)
		centre := side.normal.Mul(h)
		for _, c := range [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := centre.Add(side.u.Mul(c[0] * h)).Add(side.v.Mul(c[1] * h))
			s.Positions = append(s.Positions, p)
			s.Normals = append(s.Normals, side.normal)
			s.UVs = append(s.UVs, mgl64.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2})
		}
		s.Faces = append(s.Faces, [3]int{base, base + 1, base + 2}, [3]int{base, base + 2, base + 3})
	}
	s.Init()
	return s
}

// NewUVSphere builds a sphere from slices around Y and stacks from pole to
// pole.
func NewUVSphere(radius float64, slices, stacks int) *Shape {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}
	s := &Shape{Name: "sphere"}
	for j := 0; j <= stacks; j++ {
		theta := math.Pi * float64(j) / float64(stacks)
		st, ct := math.Sincos(theta)
		for i := 0; i <= slices; i++ {
			phi := 2 * math.Pi * float64(i) / float64(slices)
			sp, cp := math.Sincos(phi)
			n := mgl64.Vec3{st * cp, ct, -st * sp}
			s.Positions = append(s.Positions, n.Mul(radius))
			s.Normals = append(s.Normals, n)
			s.UVs = append(s.UVs, mgl64.Vec2{float64(i) / float64(slices), 1 - float64(j)/float64(stacks)})
		}
	}
	row := slices + 1
	for j := 0; j < stacks; j++ {
		for i := 0; i < slices; i++ {
			a := j*row + i
			b := a + row
			if j != 0 {
				s.Faces = append(s.Faces, [3]int{a, b, a + 1})
			}
			if j != stacks-1 {
				s.Faces = append(s.Faces, [3]int{a + 1, b, b + 1})
			}
		}
	}
	s.Init()
	return s
}

// NewTorus builds a ring around Y with major radius R and tube radius r.
func NewTorus(R, r float64, segments, sides int) *Shape {
	if segments < 3 {
		segments = 3
	}
	if sides < 3 {
		sides = 3
	}
	s := &Shape{Name: "torus"}
	for i := 0; i <= segments; i++ {
		u := 2 * math.Pi * float64(i) / float64(segments)
		su, cu := math.Sincos(u)
		for j := 0; j <= sides; j++ {
			v := 2 * math.Pi * float64(j) / float64(sides)
			sv, cv := math.Sincos(v)
			n := mgl64.Vec3{cv * cu, sv, cv * su}
			s.Positions = append(s.Positions, mgl64.Vec3{(R + r*cv) * cu, r * sv, (R + r*cv) * su})
			s.Normals = append(s.Normals, n)
			s.UVs = append(s.UVs, mgl64.Vec2{float64(i) / float64(segments), float64(j) / float64(sides)})
		}
	}
	row := sides + 1
	for i := 0; i < segments; i++ {
		for j := 0; j < sides; j++ {
			a := i*row + j
			b := a + row
			s.Faces = append(s.Faces, [3]int{a, a + 1, b + 1}, [3]int{a, b + 1, b})
		}
	}
	s.Init()
	return s
}

// NewFrustumWireframe builds a unit view pyramid: apex at the origin and the
// far rectangle at z = -1 with corners (+-1, +-1). Scaled by
// (aspect*tan(fov/2), tan(fov/2), 1) it matches a camera's view volume.
func NewFrustumWireframe() *Shape {
	s := &Shape{
		Name: "frustum",
		Positions: []mgl64.Vec3{
			{0, 0, 0},
			{-1, -1, -1},
			{1, -1, -1},
			{1, 1, -1},
			{-1, 1, -1},
		},
		Lines: [][2]int{
			{0, 1}, {0, 2}, {0, 3}, {0, 4},
			{1, 2}, {2, 3}, {3, 4}, {4, 1},
		},
	}
	s.Init()
	return s
}
