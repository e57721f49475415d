package freelook3d

import (
	"fmt"
	"image/color"
	"math/rand"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// ClearColor is the sky colour behind the scene.
var ClearColor = color.RGBA{R: 135, G: 204, B: 255, A: 255}

const objectScale = 0.2

// Scene holds everything a frame needs: cameras, the shading program, shared
// shapes, materials, lights, placed objects and the user toggles.
type Scene struct {
	cfg    Config
	logger *log.Logger

	freeCam  *FreeLookCamera
	overview *Camera

	prog    *Program
	batcher *Batcher

	bunny   *Shape
	teapot  *Shape
	ground  *Shape
	sun     *Shape
	frustum *Shape
	texture Texture

	materials []Material
	matIndex  int
	lights    []Light
	objects   []*Object

	overviewToggles int
	cull            bool
}

// NewScene builds the scene described by cfg. Meshes and the ground texture
// are read from cfg.Scene.ResourceDir when present, otherwise built in.
func NewScene(cfg Config, logger *log.Logger, batcher *Batcher) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("could not build scene: %w", err)
	}
	logger = orDiscard(logger)
	if batcher == nil {
		batcher = NewBatcher(nil)
	}

	s := &Scene{
		cfg:       cfg,
		logger:    logger,
		freeCam:   NewFreeLookCamera(cfg.Camera),
		overview:  NewCamera(),
		batcher:   batcher,
		materials: defaultMaterials(),
		lights:    defaultLights(),
	}
	s.overview.SetInitDistance(cfg.Overview.Distance)
	if cfg.Overview.Visible {
		s.overviewToggles = 1
	}
	s.prog = NewBlinnPhongProgram(batcher, logger)
	s.prog.SetVerbose(logger.GetLevel() <= log.DebugLevel)

	dir := cfg.Scene.ResourceDir
	s.bunny = LoadShape(logger, dir, "bunny.obj", func() *Shape { return NewUVSphere(1, 16, 10) })
	s.teapot = LoadShape(logger, dir, "teapot.obj", func() *Shape { return NewTorus(0.8, 0.35, 16, 8) })
	s.ground = LoadShape(logger, dir, "square.obj", func() *Shape { return NewSquare(32, 1) })
	s.sun = LoadShape(logger, dir, "sphere2.obj", func() *Shape { return NewUVSphere(1, 16, 12) })
	s.frustum = LoadShape(logger, dir, "frustum.obj", NewFrustumWireframe)
	s.texture = s.loadGroundTexture(dir)

	rng := rand.New(rand.NewSource(cfg.Scene.Seed))
	for i := 0; i < cfg.Scene.Rows; i++ {
		for j := 0; j < cfg.Scene.Cols; j++ {
			shape := s.teapot
			if j%2 == 0 {
				shape = s.bunny
			}
			obj := NewObject(shape, rng)
			obj.Scale = mgl64.Vec3{objectScale, objectScale, objectScale}
			obj.Translation = mgl64.Vec3{float64(j), -shape.MinY() * objectScale, float64(i)}
			s.objects = append(s.objects, obj)
		}
	}

	logger.Info("scene ready",
		"objects", len(s.objects),
		"movement", s.freeCam.Mode(),
		"resources", dir,
	)
	return s, nil
}

func (s *Scene) loadGroundTexture(dir string) Texture {
	checker := CheckerTexture{
		A:     mgl64.Vec3{0.25, 0.55, 0.2},
		B:     mgl64.Vec3{0.18, 0.42, 0.15},
		Tiles: 8,
	}
	if dir == "" {
		return checker
	}
	path := filepath.Join(dir, "grass2.jpg")
	tex, err := LoadTexture(path)
	if err != nil {
		s.logger.Warn("using checker ground texture", "file", path, "err", err)
		return checker
	}
	return tex
}

func (s *Scene) FreeCam() *FreeLookCamera { return s.freeCam }
func (s *Scene) Overview() *Camera        { return s.overview }
func (s *Scene) Objects() []*Object       { return s.objects }
func (s *Scene) Config() Config           { return s.cfg }

// OverviewVisible reports whether the top-down viewport is drawn. Every
// toggle flips it.
func (s *Scene) OverviewVisible() bool { return s.overviewToggles%2 != 0 }

func (s *Scene) ToggleOverview() {
	s.overviewToggles++
	s.logger.Debug("overview toggled",
		"visible", s.OverviewVisible(),
		"view", "\n"+formatMatrix(s.freeCam.ViewMatrix()),
	)
}

func (s *Scene) CullEnabled() bool { return s.cull }

func (s *Scene) ToggleCull() {
	s.cull = !s.cull
	s.logger.Debug("face culling toggled", "enabled", s.cull)
}

// Material is the material used for the object grid.
func (s *Scene) Material() Material { return s.materials[s.matIndex] }

// CycleMaterial switches the object grid to the next material.
func (s *Scene) CycleMaterial() {
	s.matIndex = (s.matIndex + 1) % len(s.materials)
	s.logger.Debug("material changed", "index", s.matIndex)
}
