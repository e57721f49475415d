package freelook3d

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Toggle keys handled by the scene itself.
const (
	KeyToggleOverview = 't'
	KeyToggleCull     = 'c'
	KeyCycleMaterial  = 'm'
)

// heldKeys maps movement runes to the physical keys polled in held mode.
var heldKeys = []struct {
	r   rune
	key ebiten.Key
}{
	{KeyForward, ebiten.KeyW},
	{KeyLeft, ebiten.KeyA},
	{KeyBack, ebiten.KeyS},
	{KeyRight, ebiten.KeyD},
}

// HandleChar applies one typed character.
func (s *Scene) HandleChar(r rune) {
	switch r {
	case KeyForward, KeyLeft, KeyBack, KeyRight:
		s.freeCam.KeyPressed(r)
	case KeyZoomIn, KeyZoomOut:
		s.freeCam.UpdateFOV(r)
	case KeyToggleOverview:
		s.ToggleOverview()
	case KeyToggleCull:
		s.ToggleCull()
	case KeyCycleMaterial:
		s.CycleMaterial()
	}
}

// HandleMousePress starts a drag. The primary button steers the free-look
// camera; the secondary one steers the overview camera while it is shown.
func (s *Scene) HandleMousePress(button ebiten.MouseButton, x, y float64, shift, ctrl, alt bool) {
	switch button {
	case ebiten.MouseButtonLeft:
		s.freeCam.MouseClicked(x, y, shift, ctrl, alt)
	case ebiten.MouseButtonRight:
		if s.OverviewVisible() {
			s.overview.MouseClicked(x, y, shift, ctrl, alt)
		}
	}
}

// HandleMouseMove forwards cursor motion to whichever camera is being dragged.
func (s *Scene) HandleMouseMove(x, y float64, primary, secondary bool) {
	if primary {
		s.freeCam.MouseMoved(x, y)
	}
	if secondary && s.OverviewVisible() {
		s.overview.MouseMoved(x, y)
	}
}

// inputPoller reads ebiten's input state once per tick and feeds it to a
// scene.
type inputPoller struct {
	chars        []rune
	lastX, lastY int
}

func (in *inputPoller) poll(s *Scene, dt float64) {
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		s.HandleChar(r)
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)

	x, y := ebiten.CursorPosition()
	for _, button := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight} {
		if inpututil.IsMouseButtonJustPressed(button) {
			s.HandleMousePress(button, float64(x), float64(y), shift, ctrl, alt)
		}
	}
	if x != in.lastX || y != in.lastY {
		s.HandleMouseMove(float64(x), float64(y),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		)
		in.lastX, in.lastY = x, y
	}

	if s.freeCam.Mode() == MovementHeld {
		for _, k := range heldKeys {
			s.freeCam.SetKeyHeld(k.r, ebiten.IsKeyPressed(k.key))
		}
		s.freeCam.Advance(dt)
	}
}
