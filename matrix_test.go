package freelook3d

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	mv := mgl64.Translate3D(1, 2, 3).
		Mul4(mgl64.HomogRotate3DY(0.4)).
		Mul4(mgl64.Scale3D(3, 0.5, 1))

	// a tangent and a normal of the plane x + y = 0
	tangent := mgl64.Vec3{1, -1, 0}
	normal := mgl64.Vec3{1, 1, 0}

	tt := TransformDirection(mv, tangent)
	nn := NormalMatrix(mv).Mul3x1(normal)
	if !almostEqual(tt.Dot(nn), 0) {
		t.Errorf("transformed normal %v not perpendicular to tangent %v", nn, tt)
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	got := NormalMatrix(mgl64.Scale3D(1, 0, 1))
	if got != mgl64.Ident3() {
		t.Errorf("NormalMatrix(singular) = %v, want identity", got)
	}
}

func TestWrapAngle(t *testing.T) {
	testCases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tc := range testCases {
		if got := wrapAngle(tc.in); !almostEqual(got, tc.want) {
			t.Errorf("wrapAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFinite(t *testing.T) {
	if !finite(1, -2, 0) {
		t.Error("finite(1, -2, 0) = false")
	}
	if finite(1, math.NaN()) || finite(math.Inf(-1)) {
		t.Error("finite accepted NaN or Inf")
	}
}

func TestFormatMatrix(t *testing.T) {
	out := formatMatrix(mgl64.Translate3D(1, 2, 3))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d rows, want 4", len(lines))
	}
	if lines[0] != "1.000000 0.000000 0.000000 1.000000" {
		t.Errorf("row 0 = %q", lines[0])
	}
}
