package freelook3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProceduralShapes(t *testing.T) {
	testCases := []struct {
		name      string
		shape     *Shape
		wantFaces int
		wantMinY  float64
	}{
		{"square", NewSquare(4, 2), 32, -1},
		{"cube", NewCube(2), 12, -1},
		{"sphere", NewUVSphere(0.5, 8, 4), 8*4*2 - 2*8, -0.5},
		{"torus", NewTorus(1, 0.25, 6, 4), 6 * 4 * 2, -0.25},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.shape
			if len(s.Faces) != tc.wantFaces {
				t.Errorf("faces = %d, want %d", len(s.Faces), tc.wantFaces)
			}
			if !almostEqual(s.MinY(), tc.wantMinY) {
				t.Errorf("MinY() = %v, want %v", s.MinY(), tc.wantMinY)
			}
			if len(s.Normals) != len(s.Positions) {
				t.Errorf("%d normals for %d positions", len(s.Normals), len(s.Positions))
			}
			for _, f := range s.Faces {
				if !inRange(len(s.Positions), f[0], f[1], f[2]) {
					t.Fatalf("face %v out of range", f)
				}
			}
		})
	}
}

func TestFrustumWireframe(t *testing.T) {
	s := NewFrustumWireframe()
	if len(s.Lines) != 8 || len(s.Faces) != 0 {
		t.Fatalf("lines %d faces %d", len(s.Lines), len(s.Faces))
	}
	if s.Positions[0] != (mgl64.Vec3{}) {
		t.Errorf("apex = %v", s.Positions[0])
	}
	for _, p := range s.Positions[1:] {
		if p[2] != -1 || (p[0] != 1 && p[0] != -1) || (p[1] != 1 && p[1] != -1) {
			t.Errorf("far corner %v", p)
		}
	}
}

func TestCentreObject(t *testing.T) {
	s := &Shape{Positions: []mgl64.Vec3{{2, 2, 2}, {4, 6, 2}}}
	s.Init()
	s.CentreObject()
	if !vecAlmostEqual(s.Positions[0], mgl64.Vec3{-1, -2, 0}) {
		t.Errorf("first point = %v", s.Positions[0])
	}
	if !vecAlmostEqual(s.Extents(), mgl64.Vec3{2, 4, 0}) {
		t.Errorf("Extents() = %v", s.Extents())
	}
}
