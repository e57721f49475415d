package freelook3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Movement keys.
const (
	KeyForward  = 'w'
	KeyLeft     = 'a'
	KeyBack     = 's'
	KeyRight    = 'd'
	KeyZoomIn   = 'z'
	KeyZoomOut  = 'Z'
	heldKeySize = 4
)

// FreeLookCamera is a first-person camera: a position, a yaw around world up
// and a pitch around the camera's right axis. Yaw 0 looks down -Z.
//
// Pitch is not clamped.
type FreeLookCamera struct {
	position mgl64.Vec3
	yaw      float64
	pitch    float64

	fov    float64
	aspect float64
	near   float64
	far    float64

	fovStep     float64
	fovMin      float64
	fovMax      float64
	moveStep    float64
	speed       float64
	sensitivity float64
	mode        MovementMode

	mousePrev mgl64.Vec2
	anchored  bool
	shift     bool
	ctrl      bool
	alt       bool
	held      [heldKeySize]bool
}

// NewFreeLookCamera builds a camera from cfg. Zero or out-of-range settings
// fall back to the defaults, but zero position and angles are kept as given.
// Any mode other than held is event mode.
func NewFreeLookCamera(cfg CameraConfig) *FreeLookCamera {
	cfg.repair()
	if cfg.Movement != MovementHeld {
		cfg.Movement = MovementEvent
	}

	return &FreeLookCamera{
		position:    mgl64.Vec3{cfg.Position[0], cfg.Position[1], cfg.Position[2]},
		yaw:         wrapAngle(degreesToRadians(cfg.YawDegrees)),
		pitch:       degreesToRadians(cfg.PitchDegrees),
		fov:         degreesToRadians(cfg.FOVDegrees),
		aspect:      1,
		near:        cfg.Near,
		far:         cfg.Far,
		fovStep:     degreesToRadians(cfg.FOVStepDegrees),
		fovMin:      degreesToRadians(cfg.FOVMinDegrees),
		fovMax:      degreesToRadians(cfg.FOVMaxDegrees),
		moveStep:    cfg.MoveStep,
		speed:       cfg.Speed,
		sensitivity: cfg.MouseSensitivity,
		mode:        cfg.Movement,
	}
}

// SetInitDistance puts the camera |d| units from the origin along +Z, looking
// back at it.
func (c *FreeLookCamera) SetInitDistance(d float64) {
	if !finite(d) {
		return
	}
	c.position = mgl64.Vec3{0, 0, math.Abs(d)}
}

// Forward is the unit view direction. Every consumer of the camera's
// orientation goes through this function.
func (c *FreeLookCamera) Forward() mgl64.Vec3 {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	return mgl64.Vec3{sy * cp, sp, -cy * cp}
}

// Up is the camera's own up axis, perpendicular to Forward.
func (c *FreeLookCamera) Up() mgl64.Vec3 {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	return mgl64.Vec3{-sy * sp, cp, cy * sp}
}

// flatForward ignores pitch so walking stays on the ground plane.
func (c *FreeLookCamera) flatForward() mgl64.Vec3 {
	sy, cy := math.Sincos(c.yaw)
	return mgl64.Vec3{sy, 0, -cy}
}

// Right is the horizontal strafe direction.
func (c *FreeLookCamera) Right() mgl64.Vec3 {
	sy, cy := math.Sincos(c.yaw)
	return mgl64.Vec3{cy, 0, sy}
}

// KeyPressed moves one step for w/a/s/d. In held mode movement comes from
// Advance instead and this is a no-op.
func (c *FreeLookCamera) KeyPressed(key rune) {
	if c.mode != MovementEvent {
		return
	}
	if dir, ok := c.moveDirection(key); ok {
		c.position = c.position.Add(dir.Mul(c.moveStep))
	}
}

func (c *FreeLookCamera) moveDirection(key rune) (mgl64.Vec3, bool) {
	switch key {
	case KeyForward:
		return c.flatForward(), true
	case KeyBack:
		return c.flatForward().Mul(-1), true
	case KeyRight:
		return c.Right(), true
	case KeyLeft:
		return c.Right().Mul(-1), true
	}
	return mgl64.Vec3{}, false
}

func heldIndex(key rune) int {
	switch key {
	case KeyForward:
		return 0
	case KeyLeft:
		return 1
	case KeyBack:
		return 2
	case KeyRight:
		return 3
	}
	return -1
}

// SetKeyHeld records whether a movement key is down. Only used in held mode.
func (c *FreeLookCamera) SetKeyHeld(key rune, down bool) {
	if i := heldIndex(key); i >= 0 {
		c.held[i] = down
	}
}

// Advance moves the camera for dt seconds of held keys.
func (c *FreeLookCamera) Advance(dt float64) {
	if c.mode != MovementHeld || !finite(dt) || dt <= 0 {
		return
	}
	var move mgl64.Vec3
	for _, key := range []rune{KeyForward, KeyLeft, KeyBack, KeyRight} {
		if !c.held[heldIndex(key)] {
			continue
		}
		dir, _ := c.moveDirection(key)
		move = move.Add(dir)
	}
	// opposite keys cancel out
	if move.Len() < 1e-9 {
		return
	}
	c.position = c.position.Add(move.Normalize().Mul(c.speed * dt))
}

// UpdateFOV zooms in on 'z' and out on 'Z'. The result is clamped to the
// configured bounds, which always lie strictly inside (0, pi).
func (c *FreeLookCamera) UpdateFOV(key rune) {
	switch key {
	case KeyZoomIn:
		c.fov -= c.fovStep
	case KeyZoomOut:
		c.fov += c.fovStep
	default:
		return
	}
	c.fov = clampFloat(c.fov, c.fovMin, c.fovMax)
}

// MouseClicked anchors a drag at (x, y).
func (c *FreeLookCamera) MouseClicked(x, y float64, shift, ctrl, alt bool) {
	if !finite(x, y) {
		return
	}
	c.mousePrev = mgl64.Vec2{x, y}
	c.anchored = true
	c.shift, c.ctrl, c.alt = shift, ctrl, alt
}

// MouseMoved turns the camera by the distance moved since the last event.
// Moving right turns right, moving down looks down.
func (c *FreeLookCamera) MouseMoved(x, y float64) {
	if !finite(x, y) {
		return
	}
	curr := mgl64.Vec2{x, y}
	if !c.anchored {
		c.mousePrev = curr
		c.anchored = true
		return
	}
	delta := curr.Sub(c.mousePrev)
	c.mousePrev = curr

	yaw := c.yaw + delta[0]*c.sensitivity
	pitch := c.pitch - delta[1]*c.sensitivity
	if !finite(yaw, pitch) {
		return
	}
	c.yaw = wrapAngle(yaw)
	c.pitch = pitch
}

// ProjectionMatrix is the perspective matrix for the current fov and aspect.
func (c *FreeLookCamera) ProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(c.fov, c.aspect, c.near, c.far)
}

// ViewMatrix looks from the position along Forward. Straight up or down the
// world up axis is parallel to Forward, so the camera's own up is used there.
func (c *FreeLookCamera) ViewMatrix() mgl64.Mat4 {
	forward := c.Forward()
	up := worldUp
	if forward.Cross(up).Len() < 1e-9 {
		up = c.Up()
	}
	return mgl64.LookAtV(c.position, c.position.Add(forward), up)
}

// FrustumMatrix maps the unit frustum wireframe (apex at the origin, far
// corners at (±1, ±1, -1)) onto the camera's view volume, cut off length units
// in front of it. ok is false when the view matrix cannot be inverted.
func (c *FreeLookCamera) FrustumMatrix(length float64) (m mgl64.Mat4, ok bool) {
	view := c.ViewMatrix()
	if math.Abs(view.Det()) < 1e-12 {
		return mgl64.Ident4(), false
	}
	h := math.Tan(c.fov/2) * length
	return view.Inv().Mul4(mgl64.Scale3D(c.aspect*h, h, length)), true
}

func (c *FreeLookCamera) ApplyProjectionMatrix(s *TransformStack) {
	s.MultMatrix(c.ProjectionMatrix())
}

func (c *FreeLookCamera) ApplyViewMatrix(s *TransformStack) {
	s.MultMatrix(c.ViewMatrix())
}

// SetAspect ignores zero, negative and non-finite ratios, which happen while a
// window is minimised.
func (c *FreeLookCamera) SetAspect(aspect float64) {
	if !finite(aspect) || aspect <= 0 {
		return
	}
	c.aspect = aspect
}

func (c *FreeLookCamera) SetPosition(p mgl64.Vec3) {
	if finite(p[0], p[1], p[2]) {
		c.position = p
	}
}

func (c *FreeLookCamera) SetYaw(yaw float64) {
	if finite(yaw) {
		c.yaw = wrapAngle(yaw)
	}
}

func (c *FreeLookCamera) SetPitch(pitch float64) {
	if finite(pitch) {
		c.pitch = pitch
	}
}

func (c *FreeLookCamera) Position() mgl64.Vec3 { return c.position }
func (c *FreeLookCamera) Yaw() float64         { return c.yaw }
func (c *FreeLookCamera) Pitch() float64       { return c.pitch }
func (c *FreeLookCamera) FOV() float64         { return c.fov }
func (c *FreeLookCamera) Aspect() float64      { return c.aspect }
func (c *FreeLookCamera) Near() float64        { return c.near }
func (c *FreeLookCamera) Far() float64         { return c.far }
func (c *FreeLookCamera) Mode() MovementMode   { return c.mode }

// FOVBounds returns the clamp range used by UpdateFOV.
func (c *FreeLookCamera) FOVBounds() (min, max float64) {
	return c.fovMin, c.fovMax
}

// Modifiers reports the modifier keys held at the last MouseClicked.
func (c *FreeLookCamera) Modifiers() (shift, ctrl, alt bool) {
	return c.shift, c.ctrl, c.alt
}
