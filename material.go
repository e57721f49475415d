package freelook3d

import "github.com/go-gl/mathgl/mgl64"

// Material holds Blinn-Phong coefficients.
type Material struct {
	Ambient  mgl64.Vec3
	Diffuse  mgl64.Vec3
	Specular mgl64.Vec3
	Shiny    float64
}

func defaultMaterials() []Material {
	return []Material{
		{
			Ambient:  mgl64.Vec3{0.2, 0.2, 0.2},
			Diffuse:  mgl64.Vec3{1.0, 0.0, 0.0},
			Specular: mgl64.Vec3{1.0, 0.9, 0.8},
			Shiny:    200,
		},
		{
			Ambient:  mgl64.Vec3{0.2, 0.2, 0.2},
			Diffuse:  mgl64.Vec3{0.0, 0.0, 0.8},
			Specular: mgl64.Vec3{0.0, 0.9, 0.0},
			Shiny:    200,
		},
		{
			Ambient:  mgl64.Vec3{0.1, 0.1, 0.1},
			Diffuse:  mgl64.Vec3{0.2, 0.2, 0.2},
			Specular: mgl64.Vec3{0.3, 0.3, 0.45},
			Shiny:    2,
		},
	}
}
