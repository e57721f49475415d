package freelook3d

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
)

// MovementMode selects how movement keys drive the free-look camera.
type MovementMode string

const (
	// MovementEvent moves one fixed step per key event.
	MovementEvent MovementMode = "event"
	// MovementHeld moves continuously while a key is held, at Speed units per second.
	MovementHeld MovementMode = "held"
)

// Config is the full runtime configuration, usually read from a TOML file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Overview OverviewConfig `toml:"overview"`
	Scene    SceneConfig    `toml:"scene"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// CameraConfig holds the free-look camera pose and projection settings.
// Angles are in degrees in the file and converted when the camera is built.
type CameraConfig struct {
	Position         [3]float64   `toml:"position"`
	YawDegrees       float64      `toml:"yaw_degrees"`
	PitchDegrees     float64      `toml:"pitch_degrees"`
	FOVDegrees       float64      `toml:"fov_degrees"`
	FOVStepDegrees   float64      `toml:"fov_step_degrees"`
	FOVMinDegrees    float64      `toml:"fov_min_degrees"`
	FOVMaxDegrees    float64      `toml:"fov_max_degrees"`
	Near             float64      `toml:"near"`
	Far              float64      `toml:"far"`
	MoveStep         float64      `toml:"move_step"`
	Speed            float64      `toml:"speed"`
	MouseSensitivity float64      `toml:"mouse_sensitivity"`
	Movement         MovementMode `toml:"movement"`
}

type OverviewConfig struct {
	Visible       bool    `toml:"visible"`
	Scale         float64 `toml:"scale"`
	Distance      float64 `toml:"distance"`
	FrustumLength float64 `toml:"frustum_length"`
}

type SceneConfig struct {
	Rows        int     `toml:"rows"`
	Cols        int     `toml:"cols"`
	Seed        int64   `toml:"seed"`
	ResourceDir string  `toml:"resource_dir"`
	GroundScale float64 `toml:"ground_scale"`
}

// DefaultConfig returns the settings the scene was designed around.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "freelook3d",
		},
		Camera: CameraConfig{
			Position:         [3]float64{4.5, 0.5, 12},
			FOVDegrees:       45,
			FOVStepDegrees:   2,
			FOVMinDegrees:    4,
			FOVMaxDegrees:    114,
			Near:             0.1,
			Far:              1000,
			MoveStep:         0.1,
			Speed:            3,
			MouseSensitivity: 0.005,
			Movement:         MovementEvent,
		},
		Overview: OverviewConfig{
			Scale:         0.5,
			Distance:      2,
			FrustumLength: 1,
		},
		Scene: SceneConfig{
			Rows:        10,
			Cols:        10,
			Seed:        1,
			GroundScale: 25,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig, so a file only has to
// name the values it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate repairs out-of-range numbers in place. An unknown movement mode
// cannot be repaired and is reported after everything else has been fixed.
func (c *Config) Validate() error {
	def := DefaultConfig()

	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}

	var modeErr error
	switch c.Camera.Movement {
	case "":
		c.Camera.Movement = MovementEvent
	case MovementEvent, MovementHeld:
	default:
		modeErr = fmt.Errorf("unknown movement mode %q (want %q or %q)", c.Camera.Movement, MovementEvent, MovementHeld)
	}
	c.Camera.repair()

	if !(c.Overview.Scale > 0 && c.Overview.Scale <= 1) {
		c.Overview.Scale = def.Overview.Scale
	}
	if !finite(c.Overview.Distance) {
		c.Overview.Distance = def.Overview.Distance
	}
	if !(c.Overview.FrustumLength > 0) || math.IsInf(c.Overview.FrustumLength, 0) {
		c.Overview.FrustumLength = def.Overview.FrustumLength
	}

	if c.Scene.Rows < 0 {
		c.Scene.Rows = 0
	}
	if c.Scene.Cols < 0 {
		c.Scene.Cols = 0
	}
	if !(c.Scene.GroundScale > 0) || math.IsInf(c.Scene.GroundScale, 0) {
		c.Scene.GroundScale = def.Scene.GroundScale
	}
	return modeErr
}

// repair replaces out-of-range camera numbers. A zero fov means the default.
func (cam *CameraConfig) repair() {
	def := DefaultConfig().Camera

	if !finite(cam.Position[:]...) {
		cam.Position = def.Position
	}
	if !finite(cam.YawDegrees) {
		cam.YawDegrees = 0
	}
	if !finite(cam.PitchDegrees) {
		cam.PitchDegrees = 0
	}
	if !(cam.FOVMinDegrees > 0 && cam.FOVMinDegrees < 180) {
		cam.FOVMinDegrees = def.FOVMinDegrees
	}
	if !(cam.FOVMaxDegrees > 0 && cam.FOVMaxDegrees < 180) {
		cam.FOVMaxDegrees = def.FOVMaxDegrees
	}
	if cam.FOVMinDegrees > cam.FOVMaxDegrees {
		cam.FOVMinDegrees, cam.FOVMaxDegrees = cam.FOVMaxDegrees, cam.FOVMinDegrees
	}
	if !finite(cam.FOVDegrees) || cam.FOVDegrees == 0 {
		cam.FOVDegrees = def.FOVDegrees
	}
	cam.FOVDegrees = clampFloat(cam.FOVDegrees, cam.FOVMinDegrees, cam.FOVMaxDegrees)
	if !(cam.FOVStepDegrees > 0) {
		cam.FOVStepDegrees = def.FOVStepDegrees
	}
	if !(cam.Near > 0) {
		cam.Near = def.Near
	}
	if !(cam.Far > cam.Near) || math.IsInf(cam.Far, 0) {
		cam.Far = math.Max(def.Far, cam.Near*10)
	}
	if !(cam.MoveStep > 0) || math.IsInf(cam.MoveStep, 0) {
		cam.MoveStep = def.MoveStep
	}
	if !(cam.Speed > 0) || math.IsInf(cam.Speed, 0) {
		cam.Speed = def.Speed
	}
	if !finite(cam.MouseSensitivity) || cam.MouseSensitivity == 0 {
		cam.MouseSensitivity = def.MouseSensitivity
	}
}
