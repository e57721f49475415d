package freelook3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type dragState int

const (
	dragRotate dragState = iota
	dragTranslate
	dragScale
)

// Camera is an orbiting camera: the world is rotated in place and pushed away
// along -Z. The overview viewport uses it with a fixed top-down placement.
type Camera struct {
	aspect       float64
	fovy         float64
	znear        float64
	zfar         float64
	rotations    mgl64.Vec2
	translations mgl64.Vec3
	rfactor      float64
	tfactor      float64
	sfactor      float64
	mousePrev    mgl64.Vec2
	state        dragState
}

func NewCamera() *Camera {
	return &Camera{
		aspect:       1,
		fovy:         degreesToRadians(45),
		znear:        0.1,
		zfar:         1000,
		translations: mgl64.Vec3{0, 0, -5},
		rfactor:      0.01,
		tfactor:      0.001,
		sfactor:      0.005,
	}
}

// SetInitDistance places the camera d units away from the pivot.
func (c *Camera) SetInitDistance(d float64) {
	if !finite(d) {
		return
	}
	c.translations[2] = -math.Abs(d)
}

func (c *Camera) SetAspect(aspect float64) {
	if !finite(aspect) || aspect <= 0 {
		return
	}
	c.aspect = aspect
}

// MouseClicked starts a drag. Shift translates, ctrl scales, anything else
// rotates.
func (c *Camera) MouseClicked(x, y float64, shift, ctrl, alt bool) {
	if !finite(x, y) {
		return
	}
	c.mousePrev = mgl64.Vec2{x, y}
	switch {
	case shift:
		c.state = dragTranslate
	case ctrl:
		c.state = dragScale
	default:
		c.state = dragRotate
	}
}

func (c *Camera) MouseMoved(x, y float64) {
	if !finite(x, y) {
		return
	}
	curr := mgl64.Vec2{x, y}
	dv := curr.Sub(c.mousePrev)
	switch c.state {
	case dragRotate:
		c.rotations = c.rotations.Add(dv.Mul(c.rfactor))
	case dragTranslate:
		c.translations[0] -= c.translations[2] * c.tfactor * dv[0]
		c.translations[1] += c.translations[2] * c.tfactor * dv[1]
	case dragScale:
		c.translations[2] *= 1 - c.sfactor*dv[1]
	}
	c.mousePrev = curr
}

func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(c.fovy, c.aspect, c.znear, c.zfar)
}

func (c *Camera) ApplyProjectionMatrix(s *TransformStack) {
	s.MultMatrix(c.ProjectionMatrix())
}

func (c *Camera) ApplyViewMatrix(s *TransformStack) {
	s.Translate(c.translations)
	s.Rotate(c.rotations[1], mgl64.Vec3{1, 0, 0})
	s.Rotate(c.rotations[0], mgl64.Vec3{0, 1, 0})
}

func (c *Camera) Translations() mgl64.Vec3 { return c.translations }
func (c *Camera) Rotations() mgl64.Vec2    { return c.rotations }
