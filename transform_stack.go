package freelook3d

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-gl/mathgl/mgl64/matstack"
)

// ErrStackUnderflow is returned when PopMatrix would remove the initial
// identity entry. It always means push/pop calls are unbalanced.
var ErrStackUnderflow = errors.New("transform stack: pop without matching push")

// ErrUnbalancedScope is returned by Scoped when the callback leaves the stack
// at a different depth than it found it.
var ErrUnbalancedScope = errors.New("transform stack: unbalanced push/pop inside scope")

// TransformStack is a stack of accumulated 4x4 transforms. Every composition
// operation right-multiplies the top, so children pushed after their parents
// end up with parent1 * parent2 * ... * local. The zero value is ready to use
// and holds a single identity matrix.
type TransformStack struct {
	ms *matstack.MatStack
}

// NewTransformStack returns a stack holding a single identity matrix.
func NewTransformStack() *TransformStack {
	return &TransformStack{ms: matstack.NewMatStack()}
}

func (s *TransformStack) stack() *matstack.MatStack {
	if s.ms == nil {
		s.ms = matstack.NewMatStack()
	}
	return s.ms
}

// PushMatrix duplicates the top matrix.
func (s *TransformStack) PushMatrix() {
	s.stack().Push()
}

// PopMatrix removes the top matrix. The initial entry can never be popped.
func (s *TransformStack) PopMatrix() error {
	if len(*s.stack()) <= 1 {
		return ErrStackUnderflow
	}
	return s.stack().Pop()
}

// TopMatrix returns a copy of the top matrix.
func (s *TransformStack) TopMatrix() mgl64.Mat4 {
	return s.stack().Peek()
}

// Depth is the number of entries, including the initial identity.
func (s *TransformStack) Depth() int {
	return len(*s.stack())
}

func (s *TransformStack) LoadIdentity() {
	s.stack().LoadIdent()
}

func (s *TransformStack) MultMatrix(m mgl64.Mat4) {
	s.stack().RightMul(m)
}

func (s *TransformStack) Translate(v mgl64.Vec3) {
	s.stack().RightMul(mgl64.Translate3D(v[0], v[1], v[2]))
}

func (s *TransformStack) TranslateXYZ(x, y, z float64) {
	s.stack().RightMul(mgl64.Translate3D(x, y, z))
}

func (s *TransformStack) Scale(v mgl64.Vec3) {
	s.stack().RightMul(mgl64.Scale3D(v[0], v[1], v[2]))
}

func (s *TransformStack) ScaleXYZ(x, y, z float64) {
	s.stack().RightMul(mgl64.Scale3D(x, y, z))
}

func (s *TransformStack) ScaleUniform(f float64) {
	s.stack().RightMul(mgl64.Scale3D(f, f, f))
}

// Rotate rotates by angle radians around axis. A zero axis is a no-op.
func (s *TransformStack) Rotate(angle float64, axis mgl64.Vec3) {
	if axis.Len() == 0 {
		return
	}
	s.stack().RightMul(mgl64.HomogRotate3D(angle, axis.Normalize()))
}

// Scoped pushes, runs fn and pops again. Entries fn left behind are popped
// too, so the stack is back at its old depth whenever fn did not pop too far.
func (s *TransformStack) Scoped(fn func()) error {
	depth := s.Depth()
	s.PushMatrix()
	fn()
	balanced := s.Depth() == depth+1
	for s.Depth() > depth {
		if err := s.PopMatrix(); err != nil {
			return err
		}
	}
	if !balanced {
		return ErrUnbalancedScope
	}
	return nil
}
