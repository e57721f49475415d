package freelook3d

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// NormalMatrix returns the inverse-transpose of the upper 3x3 of mv. It keeps
// normals perpendicular to their surfaces under non-uniform scale. A singular
// matrix yields the identity.
func NormalMatrix(mv mgl64.Mat4) mgl64.Mat3 {
	m := mv.Mat3()
	if math.Abs(m.Det()) < 1e-12 {
		return mgl64.Ident3()
	}
	return m.Inv().Transpose()
}

// TransformPoint applies m to p with w = 1 and returns the xyz part.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection applies the 3x3 part of m, ignoring translation. Suitable
// for direction vectors.
func TransformDirection(m mgl64.Mat4, d mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// wrapAngle maps a into [-pi, pi].
func wrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func radiansToDegrees(radians float64) float64 {
	return radians * (180 / math.Pi)
}

// formatMatrix prints m row by row, used in debug logging.
func formatMatrix(m mgl64.Mat4) string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < 4; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", m.At(row, col)))
		}
	}
	return sb.String()
}
