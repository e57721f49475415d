package freelook3d

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Drawable is anything that can issue draw calls through a bound program.
type Drawable interface {
	Draw(p *Program)
}

// Object is one placed instance of a shared drawable.
type Object struct {
	Shape       Drawable
	Translation mgl64.Vec3
	Scale       mgl64.Vec3
	Rotation    mgl64.Vec3
	Color       mgl64.Vec3
}

// NewObject returns an object with unit scale and a random colour from rng.
func NewObject(shape Drawable, rng *rand.Rand) *Object {
	return &Object{
		Shape: shape,
		Scale: mgl64.Vec3{1, 1, 1},
		Color: mgl64.Vec3{rng.Float64(), rng.Float64(), rng.Float64()},
	}
}

// apply composes the object's local transform onto the top of s.
func (o *Object) apply(s *TransformStack) {
	s.Translate(o.Translation)
	if o.Rotation[1] != 0 {
		s.Rotate(o.Rotation[1], mgl64.Vec3{0, 1, 0})
	}
	if o.Rotation[0] != 0 {
		s.Rotate(o.Rotation[0], mgl64.Vec3{1, 0, 0})
	}
	if o.Rotation[2] != 0 {
		s.Rotate(o.Rotation[2], mgl64.Vec3{0, 0, 1})
	}
	s.Scale(o.Scale)
}
