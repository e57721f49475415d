package freelook3d

import "github.com/go-gl/mathgl/mgl64"

// Light is a point light in world space.
type Light struct {
	Position mgl64.Vec3
	Color    mgl64.Vec3
}

func defaultLights() []Light {
	return []Light{
		{Position: mgl64.Vec3{5, 2, 3}, Color: mgl64.Vec3{1, 1, 1}},
	}
}
