package freelook3d

import (
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// Uniform names understood by the shading stage.
const (
	UniformProjection   = "P"
	UniformModelView    = "MV"
	UniformNormalMatrix = "MVit"
	UniformLightPos     = "lightPos1"
	UniformLightColor   = "lightColor1"
	UniformAmbient      = "ka"
	UniformDiffuse      = "kd"
	UniformSpecular     = "ks"
	UniformShininess    = "s"
	UniformTexture      = "texture0"
)

type uniformValue struct {
	mat4 mgl64.Mat4
	vec3 mgl64.Vec3
	f    float64
	set  bool
}

// Program is a software stand-in for a linked shader program: a table of
// named uniforms plus a Blinn-Phong shading stage that writes to a Batcher.
type Program struct {
	name     string
	verbose  bool
	uniforms map[string]int
	values   []uniformValue
	out      *Batcher
	bound    bool
	texture  Texture
	logger   *log.Logger
}

func NewProgram(name string, out *Batcher, logger *log.Logger) *Program {
	return &Program{
		name:     name,
		uniforms: make(map[string]int),
		out:      out,
		logger:   orDiscard(logger),
	}
}

// NewBlinnPhongProgram registers every uniform the shading stage reads.
func NewBlinnPhongProgram(out *Batcher, logger *log.Logger) *Program {
	p := NewProgram("blinn-phong", out, logger)
	for _, name := range []string{
		UniformModelView, UniformProjection,
		UniformLightPos, UniformLightColor,
		UniformAmbient, UniformDiffuse, UniformSpecular, UniformShininess,
		UniformTexture, UniformNormalMatrix,
	} {
		p.AddUniform(name)
	}
	return p
}

func (p *Program) SetVerbose(v bool) { p.verbose = v }

func (p *Program) AddUniform(name string) {
	if _, ok := p.uniforms[name]; ok {
		return
	}
	p.uniforms[name] = len(p.values)
	p.values = append(p.values, uniformValue{})
}

// Uniform returns the location of name, or -1 if it was never added.
func (p *Program) Uniform(name string) int {
	loc, ok := p.uniforms[name]
	if !ok {
		if p.verbose {
			p.logger.Warn("uniform not found", "program", p.name, "uniform", name)
		}
		return -1
	}
	return loc
}

func (p *Program) Bind()       { p.bound = true }
func (p *Program) Unbind()     { p.bound = false }
func (p *Program) Bound() bool { return p.bound }

func (p *Program) valid(loc int) bool {
	return loc >= 0 && loc < len(p.values)
}

// Setters ignore location -1, as glUniform does.

func (p *Program) SetMatrix4(loc int, m mgl64.Mat4) {
	if p.valid(loc) {
		p.values[loc].mat4 = m
		p.values[loc].set = true
	}
}

func (p *Program) SetVec3(loc int, x, y, z float64) {
	if p.valid(loc) {
		p.values[loc].vec3 = mgl64.Vec3{x, y, z}
		p.values[loc].set = true
	}
}

func (p *Program) SetFloat(loc int, f float64) {
	if p.valid(loc) {
		p.values[loc].f = f
		p.values[loc].set = true
	}
}

// BindTexture attaches t to the sampler at loc.
func (p *Program) BindTexture(loc int, t Texture) {
	if p.valid(loc) {
		p.texture = t
		p.values[loc].set = true
	}
}

func (p *Program) UnbindTexture() {
	p.texture = nil
	if loc, ok := p.uniforms[UniformTexture]; ok {
		p.values[loc].set = false
	}
}

func (p *Program) mat4(name string) mgl64.Mat4 {
	if loc, ok := p.uniforms[name]; ok && p.values[loc].set {
		return p.values[loc].mat4
	}
	return mgl64.Ident4()
}

func (p *Program) vec3(name string) mgl64.Vec3 {
	if loc, ok := p.uniforms[name]; ok {
		return p.values[loc].vec3
	}
	return mgl64.Vec3{}
}

func (p *Program) float(name string) float64 {
	if loc, ok := p.uniforms[name]; ok {
		return p.values[loc].f
	}
	return 0
}

func (p *Program) ready() bool {
	if !p.bound {
		p.logger.Warn("draw with unbound program", "program", p.name)
		return false
	}
	return p.out != nil
}

// DrawTriangles shades and submits triangles. normals and uvs may be nil.
func (p *Program) DrawTriangles(positions, normals []mgl64.Vec3, uvs []mgl64.Vec2, tris [][3]int) {
	if !p.ready() {
		return
	}
	proj := p.mat4(UniformProjection)
	mv := p.mat4(UniformModelView)
	normalMat := p.mat4(UniformNormalMatrix).Mat3()

	view := make([]mgl64.Vec3, len(positions))
	clip := make([]mgl64.Vec4, len(positions))
	for i, pos := range positions {
		v := mv.Mul4x1(pos.Vec4(1))
		view[i] = v.Vec3()
		clip[i] = proj.Mul4x1(v)
	}

	poly := make([]mgl64.Vec4, 3)
	for _, t := range tris {
		a, b, c := t[0], t[1], t[2]
		if !inRange(len(positions), a, b, c) {
			continue
		}
		centre := view[a].Add(view[b]).Add(view[c]).Mul(1.0 / 3)

		var n mgl64.Vec3
		if inRange(len(normals), a, b, c) {
			n = normalMat.Mul3x1(normals[a].Add(normals[b]).Add(normals[c]))
		} else {
			n = view[b].Sub(view[a]).Cross(view[c].Sub(view[a]))
		}

		var uv mgl64.Vec2
		hasUV := inRange(len(uvs), a, b, c)
		if hasUV {
			uv = uvs[a].Add(uvs[b]).Add(uvs[c]).Mul(1.0 / 3)
		}

		poly[0], poly[1], poly[2] = clip[a], clip[b], clip[c]
		p.out.AddPolygon(poly, p.shade(centre, n, uv, hasUV))
	}
}

// DrawLines submits unlit segments coloured ka + kd.
func (p *Program) DrawLines(positions []mgl64.Vec3, segments [][2]int) {
	if !p.ready() {
		return
	}
	mvp := p.mat4(UniformProjection).Mul4(p.mat4(UniformModelView))
	clr := toRGBA(p.vec3(UniformAmbient).Add(p.vec3(UniformDiffuse)))
	for _, s := range segments {
		if !inRange(len(positions), s[0], s[1]) {
			continue
		}
		a := mvp.Mul4x1(positions[s[0]].Vec4(1))
		b := mvp.Mul4x1(positions[s[1]].Vec4(1))
		p.out.AddLine(a, b, clr)
	}
}

// shade evaluates Blinn-Phong at a view-space point. Faces are lit from
// whichever side the eye sees.
func (p *Program) shade(pos, n mgl64.Vec3, uv mgl64.Vec2, hasUV bool) color.RGBA {
	if n.Len() == 0 {
		n = mgl64.Vec3{0, 0, 1}
	}
	n = n.Normalize()
	eye := pos.Mul(-1)
	if eye.Len() > 0 {
		eye = eye.Normalize()
	}
	if n.Dot(eye) < 0 {
		n = n.Mul(-1)
	}

	light := p.vec3(UniformLightPos).Sub(pos)
	if light.Len() > 0 {
		light = light.Normalize()
	}
	half := light.Add(eye)
	if half.Len() > 0 {
		half = half.Normalize()
	}

	diffuse := p.vec3(UniformDiffuse)
	if p.texture != nil && hasUV {
		diffuse = diffuse.Add(p.texture.Sample(uv[0], uv[1]))
	}
	lightColor := p.vec3(UniformLightColor)

	lambert := math.Max(0, n.Dot(light))
	spec := 0.0
	if lambert > 0 {
		spec = math.Pow(math.Max(0, n.Dot(half)), math.Max(p.float(UniformShininess), 1))
	}

	c := p.vec3(UniformAmbient).
		Add(mulElem(diffuse, lightColor).Mul(lambert)).
		Add(mulElem(p.vec3(UniformSpecular), lightColor).Mul(spec))
	return toRGBA(c)
}

func mulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func toRGBA(c mgl64.Vec3) color.RGBA {
	conv := func(v float64) uint8 {
		if !finite(v) {
			return 0
		}
		return uint8(math.Round(clampFloat(v, 0, 1) * 255))
	}
	return color.RGBA{R: conv(c[0]), G: conv(c[1]), B: conv(c[2]), A: 255}
}

func inRange(n int, idx ...int) bool {
	for _, i := range idx {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}
