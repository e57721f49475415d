package freelook3d

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "freelook.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 800

[camera]
position = [1.0, 2.0, 3.0]
fov_degrees = 60.0
movement = "held"

[scene]
rows = 3
seed = 42
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	def := DefaultConfig()
	if cfg.Window.Width != 800 || cfg.Window.Height != def.Window.Height {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Camera.Position != [3]float64{1, 2, 3} || cfg.Camera.FOVDegrees != 60 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Camera.Movement != MovementHeld {
		t.Errorf("movement = %q", cfg.Camera.Movement)
	}
	if cfg.Scene.Rows != 3 || cfg.Scene.Cols != def.Scene.Cols || cfg.Scene.Seed != 42 {
		t.Errorf("scene = %+v", cfg.Scene)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }},
		{"bad toml", func(t *testing.T) string { return writeConfig(t, "[camera\nfov_degrees = ") }},
		{"unknown movement", func(t *testing.T) string { return writeConfig(t, "[camera]\nmovement = \"teleport\"\n") }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(tc.path(t)); err == nil {
				t.Error("LoadConfig() error = nil")
			}
		})
	}
}

func TestValidateRepairs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = -1
	cfg.Camera.FOVMinDegrees = 120
	cfg.Camera.FOVMaxDegrees = 10
	cfg.Camera.FOVDegrees = 170
	cfg.Camera.Near = 0
	cfg.Camera.Far = 0.01
	cfg.Overview.Scale = 3
	cfg.Scene.Rows = -4

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	cam := cfg.Camera
	if cfg.Window.Width != DefaultConfig().Window.Width {
		t.Errorf("width = %d", cfg.Window.Width)
	}
	if cam.FOVMinDegrees != 10 || cam.FOVMaxDegrees != 120 || cam.FOVDegrees != 120 {
		t.Errorf("fov = %v in [%v, %v]", cam.FOVDegrees, cam.FOVMinDegrees, cam.FOVMaxDegrees)
	}
	if !(cam.Near > 0 && cam.Far > cam.Near) {
		t.Errorf("near %v far %v", cam.Near, cam.Far)
	}
	if cfg.Overview.Scale != DefaultConfig().Overview.Scale || cfg.Scene.Rows != 0 {
		t.Errorf("overview scale %v rows %d", cfg.Overview.Scale, cfg.Scene.Rows)
	}
}
