package freelook3d

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	_ "golang.org/x/image/bmp"
)

// Texture returns a colour for texture coordinates. Coordinates outside
// [0, 1) repeat.
type Texture interface {
	Sample(u, v float64) mgl64.Vec3
}

// CheckerTexture alternates two colours in a Tiles x Tiles grid per unit.
type CheckerTexture struct {
	A, B  mgl64.Vec3
	Tiles float64
}

func (t CheckerTexture) Sample(u, v float64) mgl64.Vec3 {
	tiles := t.Tiles
	if tiles <= 0 {
		tiles = 1
	}
	cu := int(math.Floor(u * tiles))
	cv := int(math.Floor(v * tiles))
	if (cu+cv)%2 == 0 {
		return t.A
	}
	return t.B
}

// ImageTexture samples a decoded image with nearest filtering.
type ImageTexture struct {
	img image.Image
}

func NewImageTexture(img image.Image) *ImageTexture {
	return &ImageTexture{img: img}
}

// LoadTexture decodes a PNG, JPEG or BMP file.
func LoadTexture(path string) (*ImageTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode texture %s: %w", path, err)
	}
	return NewImageTexture(img), nil
}

func (t *ImageTexture) Sample(u, v float64) mgl64.Vec3 {
	b := t.img.Bounds()
	if b.Empty() {
		return mgl64.Vec3{}
	}
	u = u - math.Floor(u)
	v = v - math.Floor(v)
	x := b.Min.X + int(u*float64(b.Dx()))
	// image rows run top to bottom, texture v runs bottom to top
	y := b.Min.Y + int((1-v)*float64(b.Dy()))
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	r, g, bl, _ := t.img.At(x, y).RGBA()
	return mgl64.Vec3{float64(r) / 0xffff, float64(g) / 0xffff, float64(bl) / 0xffff}
}
