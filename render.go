package freelook3d

import (
	"errors"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
)

// overviewOffset and overviewTilt place the top-down camera above the grid.
var overviewOffset = mgl64.Vec3{-5, 5, -12}

const overviewTilt = math.Pi / 2

// pulse is the breathing scale applied to every grid object at time t.
func pulse(t float64) float64 {
	return 1 + 0.1/2 + 0.1/2*math.Sin(2*math.Pi*0.25*t)
}

// Render draws one frame of the given framebuffer size at time t seconds.
// A zero-sized framebuffer draws nothing. Errors only come from unbalanced
// transform stacks.
func (s *Scene) Render(c Canvas, width, height int, t float64) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	aspect := float64(width) / float64(height)
	s.overview.SetAspect(aspect)
	s.freeCam.SetAspect(aspect)

	b := s.batcher
	b.Begin(width, height)
	b.SetCullFace(s.cull)
	c.Clear(image.Rect(0, 0, width, height).Intersect(c.Bounds()), ClearColor)

	P := NewTransformStack()
	MV := NewTransformStack()

	P.PushMatrix()
	s.freeCam.ApplyProjectionMatrix(P)
	MV.PushMatrix()

	// The HUD is drawn before the view matrix goes on, so it stays fixed in
	// front of the camera.
	if err := s.drawHUD(P, MV, aspect, t); err != nil {
		return err
	}
	s.freeCam.ApplyViewMatrix(MV)

	err := errors.Join(
		s.drawSun(P, MV),
		s.drawGround(P, MV, s.cfg.Scene.GroundScale),
		s.drawObjects(P, MV, t),
		MV.PopMatrix(),
		P.PopMatrix(),
	)
	if err != nil {
		return err
	}
	b.Flush(c)

	if s.OverviewVisible() {
		return s.renderOverview(c, P, MV, width, height, t)
	}
	return nil
}

func (s *Scene) renderOverview(c Canvas, P, MV *TransformStack, width, height int, t float64) error {
	b := s.batcher
	scale := s.cfg.Overview.Scale
	b.SetViewport(0, 0, int(scale*float64(width)), int(scale*float64(height)))
	c.Clear(b.ViewportBounds().Intersect(c.Bounds()), ClearColor)

	P.PushMatrix()
	MV.PushMatrix()
	s.overview.ApplyProjectionMatrix(P)
	s.overview.ApplyViewMatrix(MV)
	MV.Translate(overviewOffset)
	MV.Rotate(overviewTilt, axisX)

	err := errors.Join(
		s.drawSun(P, MV),
		s.drawGround(P, MV, 2*s.cfg.Scene.GroundScale),
		s.drawFrustum(P, MV),
		s.drawObjects(P, MV, t),
		P.PopMatrix(),
		MV.PopMatrix(),
	)
	if err != nil {
		return err
	}
	b.Flush(c)
	return nil
}

func (s *Scene) setMatrices(P, MV *TransformStack) {
	p := s.prog
	mv := MV.TopMatrix()
	p.SetMatrix4(p.Uniform(UniformProjection), P.TopMatrix())
	p.SetMatrix4(p.Uniform(UniformModelView), mv)
	p.SetMatrix4(p.Uniform(UniformNormalMatrix), NormalMatrix(mv).Mat4())
}

func (s *Scene) setMaterial(ka, kd, ks mgl64.Vec3, shiny float64) {
	p := s.prog
	p.SetVec3(p.Uniform(UniformAmbient), ka[0], ka[1], ka[2])
	p.SetVec3(p.Uniform(UniformDiffuse), kd[0], kd[1], kd[2])
	p.SetVec3(p.Uniform(UniformSpecular), ks[0], ks[1], ks[2])
	p.SetFloat(p.Uniform(UniformShininess), shiny)
}

func (s *Scene) setLight(pos, clr mgl64.Vec3) {
	p := s.prog
	p.SetVec3(p.Uniform(UniformLightPos), pos[0], pos[1], pos[2])
	p.SetVec3(p.Uniform(UniformLightColor), clr[0], clr[1], clr[2])
}

// drawHUD draws the two spinning objects pinned to the top corners.
func (s *Scene) drawHUD(P, MV *TransformStack, aspect, t float64) error {
	hud := []struct {
		shape  *Shape
		offset mgl64.Vec3
	}{
		{s.bunny, mgl64.Vec3{0.6 * aspect, 0.3 * aspect, -2}},
		{s.teapot, mgl64.Vec3{-0.6 * aspect, 0.33 * aspect, -2}},
	}
	mat := s.Material()
	var errs []error
	for _, h := range hud {
		errs = append(errs, MV.Scoped(func() {
			MV.Translate(h.offset)
			MV.ScaleUniform(0.1)
			MV.Rotate(t, axisY)

			s.prog.Bind()
			s.setMatrices(P, MV)
			s.setLight(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1})
			s.setMaterial(mgl64.Vec3{0.2, 0.2, 0.2}, mgl64.Vec3{0.6, 0.6, 0.6}, mgl64.Vec3{1, 0.9, 0.8}, mat.Shiny)
			h.shape.Draw(s.prog)
			s.prog.Unbind()
		}))
	}
	return errors.Join(errs...)
}

// drawSun draws the light as a small yellow ball and leaves its view-space
// position in the program for the draws that follow.
func (s *Scene) drawSun(P, MV *TransformStack) error {
	light := s.lights[0]
	lightPos := TransformPoint(MV.TopMatrix(), light.Position)

	return MV.Scoped(func() {
		MV.Translate(light.Position)
		MV.ScaleUniform(0.2)

		s.prog.Bind()
		s.setLight(lightPos, light.Color)
		s.setMatrices(P, MV)
		s.setMaterial(mgl64.Vec3{1, 1, 0}, mgl64.Vec3{}, mgl64.Vec3{}, s.Material().Shiny)
		s.sun.Draw(s.prog)
		s.prog.Unbind()
	})
}

func (s *Scene) drawGround(P, MV *TransformStack, size float64) error {
	return MV.Scoped(func() {
		MV.ScaleXYZ(size, 1, size)
		MV.Rotate(math.Pi/2, axisX)

		s.prog.Bind()
		s.prog.BindTexture(s.prog.Uniform(UniformTexture), s.texture)
		s.setMatrices(P, MV)
		s.setMaterial(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 0.9, 0.8}, s.Material().Shiny)
		s.ground.Draw(s.prog)
		s.prog.UnbindTexture()
		s.prog.Unbind()
	})
}

// drawFrustum outlines the free-look camera's view volume.
func (s *Scene) drawFrustum(P, MV *TransformStack) error {
	frustum, ok := s.freeCam.FrustumMatrix(s.cfg.Overview.FrustumLength)
	if !ok {
		return nil
	}

	s.batcher.SetDepthTest(false)
	defer s.batcher.SetDepthTest(true)
	return MV.Scoped(func() {
		MV.MultMatrix(frustum)

		s.prog.Bind()
		s.setMatrices(P, MV)
		s.setMaterial(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, s.Material().Shiny)
		s.frustum.Draw(s.prog)
		s.prog.Unbind()
	})
}

func (s *Scene) drawObjects(P, MV *TransformStack, t float64) error {
	mat := s.Material()
	factor := pulse(t)
	var errs []error
	for _, obj := range s.objects {
		errs = append(errs, MV.Scoped(func() {
			obj.apply(MV)
			MV.ScaleUniform(factor)

			s.prog.Bind()
			s.setMatrices(P, MV)
			s.setMaterial(mat.Ambient, obj.Color, mat.Specular, mat.Shiny)
			obj.Shape.Draw(s.prog)
			s.prog.Unbind()
		}))
	}
	return errors.Join(errs...)
}
