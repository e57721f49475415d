package freelook3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCameraDragModes(t *testing.T) {
	testCases := []struct {
		name        string
		shift, ctrl bool
		check       func(t *testing.T, c *Camera)
	}{
		{
			name: "plain drag rotates",
			check: func(t *testing.T, c *Camera) {
				want := mgl64.Vec2{10 * 0.01, 20 * 0.01}
				if got := c.Rotations(); !almostEqual(got[0], want[0]) || !almostEqual(got[1], want[1]) {
					t.Errorf("rotations = %v, want %v", got, want)
				}
			},
		},
		{
			name:  "shift drag translates",
			shift: true,
			check: func(t *testing.T, c *Camera) {
				got := c.Translations()
				if !vecAlmostEqual(got, mgl64.Vec3{5 * 0.001 * 10, -5 * 0.001 * 20, -5}) {
					t.Errorf("translations = %v", got)
				}
			},
		},
		{
			name: "ctrl drag scales",
			ctrl: true,
			check: func(t *testing.T, c *Camera) {
				want := -5 * (1 - 0.005*20)
				if got := c.Translations()[2]; !almostEqual(got, want) {
					t.Errorf("z = %v, want %v", got, want)
				}
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera()
			c.MouseClicked(100, 100, tc.shift, tc.ctrl, false)
			c.MouseMoved(110, 120)
			tc.check(t, c)
		})
	}
}

func TestCameraViewMatrix(t *testing.T) {
	c := NewCamera()
	c.SetInitDistance(2)
	s := NewTransformStack()
	c.ApplyViewMatrix(s)
	want := mgl64.Translate3D(0, 0, -2)
	if !matAlmostEqual(s.TopMatrix(), want) {
		t.Errorf("view = %v, want %v", s.TopMatrix(), want)
	}

	c.MouseClicked(0, 0, false, false, false)
	c.MouseMoved(math.Pi/2/0.01, 0)
	s = NewTransformStack()
	c.ApplyViewMatrix(s)
	got := TransformPoint(s.TopMatrix(), mgl64.Vec3{1, 0, 0})
	if !vecAlmostEqual(got, mgl64.Vec3{0, 0, -3}) {
		t.Errorf("rotated point = %v, want (0, 0, -3)", got)
	}
}

func TestCameraIgnoresBadInput(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	c.SetAspect(math.NaN())
	c.SetAspect(0)
	c.SetInitDistance(math.Inf(1))
	c.MouseClicked(math.NaN(), 0, false, false, false)
	c.MouseMoved(math.NaN(), 0)

	p := c.ProjectionMatrix()
	if !almostEqual(p.At(1, 1)/p.At(0, 0), 2) {
		t.Errorf("aspect lost: %v", p)
	}
	if c.Translations() != (mgl64.Vec3{0, 0, -5}) || c.Rotations() != (mgl64.Vec2{}) {
		t.Errorf("state changed: %v %v", c.Translations(), c.Rotations())
	}
}
