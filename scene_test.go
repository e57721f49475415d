package freelook3d

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

func newTestScene(t *testing.T, rows, cols int) *Scene {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Scene.Rows = rows
	cfg.Scene.Cols = cols
	s, err := NewScene(cfg, nil, NewBatcher(nil))
	if err != nil {
		t.Fatalf("NewScene() error = %v", err)
	}
	return s
}

func TestNewSceneGrid(t *testing.T) {
	s := newTestScene(t, 3, 4)
	objs := s.Objects()
	if len(objs) != 12 {
		t.Fatalf("got %d objects, want 12", len(objs))
	}
	for i, obj := range objs {
		row, col := i/4, i%4
		wantShape := s.teapot
		if col%2 == 0 {
			wantShape = s.bunny
		}
		if obj.Shape != Drawable(wantShape) {
			t.Errorf("object %d: wrong shape", i)
		}
		if obj.Translation[0] != float64(col) || obj.Translation[2] != float64(row) {
			t.Errorf("object %d at %v", i, obj.Translation)
		}
		// resting on the ground
		bottom := obj.Translation[1] + wantShape.MinY()*obj.Scale[1]
		if !almostEqual(bottom, 0) {
			t.Errorf("object %d bottom at %v", i, bottom)
		}
	}
}

func TestNewSceneSeededColours(t *testing.T) {
	a := newTestScene(t, 2, 2)
	b := newTestScene(t, 2, 2)
	for i := range a.Objects() {
		if a.Objects()[i].Color != b.Objects()[i].Color {
			t.Errorf("object %d colour differs between runs with the same seed", i)
		}
	}
}

func TestNewSceneRejectsBadMovement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Movement = "fly"
	if _, err := NewScene(cfg, nil, nil); err == nil {
		t.Error("NewScene() error = nil")
	}
}

func TestPulse(t *testing.T) {
	if !almostEqual(pulse(0), 1.05) || !almostEqual(pulse(1), 1.1) || !almostEqual(pulse(3), 1.0) {
		t.Errorf("pulse = %v %v %v", pulse(0), pulse(1), pulse(3))
	}
}

func TestRenderMainView(t *testing.T) {
	s := newTestScene(t, 2, 2)
	c := newRecordingCanvas(200, 100)
	if err := s.Render(c, 200, 100, 0.5); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(c.clears) != 1 || c.clears[0] != image.Rect(0, 0, 200, 100) {
		t.Errorf("clears = %v", c.clears)
	}
	if c.triangleCount() == 0 {
		t.Error("nothing drawn")
	}
	if !almostEqual(s.FreeCam().Aspect(), 2) {
		t.Errorf("aspect = %v, want 2", s.FreeCam().Aspect())
	}
	for _, v := range c.vertices() {
		if math.IsNaN(float64(v.DstX)) || math.IsNaN(float64(v.DstY)) {
			t.Fatalf("NaN vertex %+v", v)
		}
	}
}

func TestRenderOverview(t *testing.T) {
	s := newTestScene(t, 2, 2)
	s.HandleChar(KeyToggleOverview)
	if !s.OverviewVisible() {
		t.Fatal("overview hidden after toggle")
	}

	c := newRecordingCanvas(200, 100)
	if err := s.Render(c, 200, 100, 0); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(c.clears) != 2 || c.clears[1] != image.Rect(0, 50, 100, 100) {
		t.Fatalf("clears = %v", c.clears)
	}
	if len(c.batches) < 2 {
		t.Errorf("got %d batches, want one per viewport", len(c.batches))
	}

	// the second pass stays inside the overview viewport
	last := c.batches[len(c.batches)-1]
	for _, v := range last {
		if v.DstX < -2 || v.DstX > 102 || v.DstY < 48 || v.DstY > 102 {
			t.Fatalf("overview vertex outside its viewport: (%v, %v)", v.DstX, v.DstY)
		}
	}
}

func TestRenderEmptyFramebuffer(t *testing.T) {
	s := newTestScene(t, 1, 1)
	c := newRecordingCanvas(0, 0)
	s.FreeCam().SetAspect(1.25)
	if err := s.Render(c, 0, 0, 0); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(c.clears) != 0 || len(c.batches) != 0 {
		t.Error("drew into an empty framebuffer")
	}
	if s.FreeCam().Aspect() != 1.25 {
		t.Errorf("aspect changed to %v", s.FreeCam().Aspect())
	}
}

func TestRenderLooksStraightDown(t *testing.T) {
	s := newTestScene(t, 2, 2)
	s.FreeCam().SetPitch(-math.Pi / 2)
	s.HandleChar(KeyToggleOverview)
	c := newRecordingCanvas(160, 120)
	if err := s.Render(c, 160, 120, 0); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, v := range c.vertices() {
		if math.IsNaN(float64(v.DstX)) || math.IsInf(float64(v.DstY), 0) {
			t.Fatalf("bad vertex %+v", v)
		}
	}
}

func TestHandleChar(t *testing.T) {
	s := newTestScene(t, 1, 1)
	cam := s.FreeCam()
	cam.SetPosition(mgl64.Vec3{})
	fov := cam.FOV()

	for _, r := range "wwd" {
		s.HandleChar(r)
	}
	step := DefaultConfig().Camera.MoveStep
	if !vecAlmostEqual(cam.Position(), mgl64.Vec3{step, 0, -2 * step}) {
		t.Errorf("position = %v", cam.Position())
	}

	s.HandleChar(KeyZoomOut)
	if !(cam.FOV() > fov) {
		t.Errorf("fov %v did not grow", cam.FOV())
	}

	s.HandleChar(KeyToggleCull)
	if !s.CullEnabled() {
		t.Error("culling still off")
	}
	mat := s.Material()
	s.HandleChar(KeyCycleMaterial)
	if s.Material() == mat {
		t.Error("material unchanged")
	}
	s.HandleChar('x')
}

func TestHandleMouse(t *testing.T) {
	s := newTestScene(t, 1, 1)

	// the overview camera only follows the secondary button while shown
	s.HandleMousePress(ebiten.MouseButtonRight, 0, 0, false, false, false)
	s.HandleMouseMove(50, 0, false, true)
	if s.Overview().Rotations() != (mgl64.Vec2{}) {
		t.Errorf("hidden overview camera moved: %v", s.Overview().Rotations())
	}

	s.ToggleOverview()
	s.HandleMousePress(ebiten.MouseButtonRight, 0, 0, false, false, false)
	s.HandleMouseMove(50, 0, false, true)
	if !almostEqual(s.Overview().Rotations()[0], 0.5) {
		t.Errorf("overview rotations = %v", s.Overview().Rotations())
	}

	s.HandleMousePress(ebiten.MouseButtonLeft, 0, 0, false, false, false)
	s.HandleMouseMove(10, 0, true, false)
	if !almostEqual(s.FreeCam().Yaw(), 10*DefaultConfig().Camera.MouseSensitivity) {
		t.Errorf("yaw = %v", s.FreeCam().Yaw())
	}
}
