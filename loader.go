package freelook3d

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// objVertex identifies one position/uv/normal combination of an OBJ face
// corner. Indices are zero based, -1 when absent.
type objVertex [3]int

// objBuilder collects OBJ data and merges identical face corners into shared
// vertices.
type objBuilder struct {
	positions []mgl64.Vec3
	uvs       []mgl64.Vec2
	normals   []mgl64.Vec3

	shape      *Shape
	pointIndex map[objVertex]int
	hasUV      bool
	hasNormal  bool
}

func newObjBuilder(name string) *objBuilder {
	return &objBuilder{
		shape:      &Shape{Name: name},
		pointIndex: make(map[objVertex]int),
	}
}

// addPoint returns the shape index for a face corner, adding it on first use.
func (b *objBuilder) addPoint(key objVertex) int {
	if index, found := b.pointIndex[key]; found {
		return index
	}
	s := b.shape
	s.Positions = append(s.Positions, b.positions[key[0]])
	if key[1] >= 0 {
		s.UVs = append(s.UVs, b.uvs[key[1]])
	} else {
		s.UVs = append(s.UVs, mgl64.Vec2{})
	}
	if key[2] >= 0 {
		s.Normals = append(s.Normals, b.normals[key[2]])
	} else {
		s.Normals = append(s.Normals, mgl64.Vec3{})
	}
	index := len(s.Positions) - 1
	b.pointIndex[key] = index
	return index
}

// resolveIndex turns a 1-based or negative OBJ index into a zero-based one.
func resolveIndex(field string, count int) (int, error) {
	i, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("bad index %q: %w", field, err)
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (have %d)", i, count)
}

func (b *objBuilder) corner(field string) (objVertex, error) {
	key := objVertex{-1, -1, -1}
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return key, fmt.Errorf("bad face corner %q", field)
	}
	var err error
	if key[0], err = resolveIndex(parts[0], len(b.positions)); err != nil {
		return key, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if key[1], err = resolveIndex(parts[1], len(b.uvs)); err != nil {
			return key, err
		}
		b.hasUV = true
	}
	if len(parts) > 2 && parts[2] != "" {
		if key[2], err = resolveIndex(parts[2], len(b.normals)); err != nil {
			return key, err
		}
		b.hasNormal = true
	}
	return key, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s': %w", fields[i], err)
		}
		out[i] = v
	}
	return out, nil
}

// LoadOBJ reads a Wavefront OBJ mesh. Polygons are fan triangulated, "l"
// elements become line segments, and anything else (materials, groups,
// smoothing) is skipped.
func LoadOBJ(reader io.Reader, name string) (*Shape, error) {
	b := newObjBuilder(name)
	scanner := bufio.NewScanner(reader)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			b.positions = append(b.positions, mgl64.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			b.uvs = append(b.uvs, mgl64.Vec2{v[0], v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			b.normals = append(b.normals, mgl64.Vec3{v[0], v[1], v[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				key, err := b.corner(f)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, b.addPoint(key))
			}
			for i := 2; i < len(idx); i++ {
				b.shape.Faces = append(b.shape.Faces, [3]int{idx[0], idx[i-1], idx[i]})
			}
		case "l":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: line element needs at least 2 points", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				key, err := b.corner(f)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, b.addPoint(key))
			}
			for i := 1; i < len(idx); i++ {
				b.shape.Lines = append(b.shape.Lines, [2]int{idx[i-1], idx[i]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from OBJ source: %w", err)
	}
	if len(b.shape.Positions) == 0 {
		return nil, errors.New("OBJ source has no faces or lines")
	}

	s := b.shape
	if !b.hasUV {
		s.UVs = nil
	}
	if !b.hasNormal {
		s.Normals = nil
	}
	s.Init()
	return s, nil
}

// LoadPLY reads an ASCII PLY mesh with "vertex" and "face" elements. Extra
// vertex properties such as colour are ignored.
func LoadPLY(reader io.Reader, name string) (*Shape, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	headerDone := false
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			if len(parts) > 1 && parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", parts[1])
			}
		case "element":
			if len(parts) == 3 {
				n, err := strconv.Atoi(parts[2])
				if err != nil {
					return nil, fmt.Errorf("bad element count %q: %w", parts[2], err)
				}
				switch parts[1] {
				case "vertex":
					vertexCount = n
				case "face":
					faceCount = n
				}
			}
		case "end_header":
			headerDone = true
		}
		if headerDone {
			break
		}
	}
	if !headerDone {
		return nil, errors.New("unexpected end of file while reading PLY header")
	}

	s := &Shape{Name: name}
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		v, err := parseFloats(strings.Fields(scanner.Text()), 3)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex data on line %d: %w", i, err)
		}
		s.Positions = append(s.Positions, mgl64.Vec3{v[0], v[1], v[2]})
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil || n < 3 || len(parts) < n+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}
		idx := make([]int, n)
		for j := 0; j < n; j++ {
			k, err := strconv.Atoi(parts[j+1])
			if err != nil || k < 0 || k >= vertexCount {
				return nil, fmt.Errorf("invalid vertex index %q on face %d", parts[j+1], i)
			}
			idx[j] = k
		}
		for j := 2; j < n; j++ {
			s.Faces = append(s.Faces, [3]int{idx[0], idx[j-1], idx[j]})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	s.Init()
	return s, nil
}

// LoadShapeFile loads an .obj or .ply file.
func LoadShapeFile(fileName string) (*Shape, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %s: %w", fileName, err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	var s *Shape
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		s, err = LoadPLY(file, name)
	default:
		s, err = LoadOBJ(file, name)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh file %s: %w", fileName, err)
	}
	return s, nil
}

// LoadShape loads dir/fileName, or returns fallback() when dir is empty or
// the file cannot be used.
func LoadShape(logger *log.Logger, dir, fileName string, fallback func() *Shape) *Shape {
	logger = orDiscard(logger)
	if dir == "" {
		return fallback()
	}
	path := filepath.Join(dir, fileName)
	s, err := LoadShapeFile(path)
	if err != nil {
		s = fallback()
		logger.Warn("using built-in mesh", "file", path, "fallback", s.Name, "err", err)
		return s
	}
	logger.Debug("loaded mesh", "file", path, "vertices", len(s.Positions), "faces", len(s.Faces))
	return s
}
