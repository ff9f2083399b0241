package track

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"path"

	"gopkg.in/yaml.v3"

	"racer/internal/physics"
)

//go:embed tracks/*.yaml
var builtin embed.FS

var (
	ErrNotFound = errors.New("track not found")
	ErrInvalid  = errors.New("invalid track")
)

// Builtin returns the tracks compiled into the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "tracks")
	if err != nil {
		panic(err)
	}
	return sub
}

type ObjectKind string

const (
	KindRect    ObjectKind = "rect"
	KindPolygon ObjectKind = "polygon"
	KindRegular ObjectKind = "regular"
)

// Object is one entry of the object layer. Which geometry fields are used
// depends on Kind.
type Object struct {
	Name   string     `yaml:"name"`
	Kind   ObjectKind `yaml:"type"`
	Static bool       `yaml:"static"`

	Rect     []float64    `yaml:"rect"` // x, y, w, h
	Vertices [][2]float64 `yaml:"points"`
	Center   []float64    `yaml:"center"`
	Sides    int          `yaml:"sides"`
	Radius   float64      `yaml:"radius"`
	Rotation float64      `yaml:"rotation"` // degrees
}

// Points converts the object to polygon vertices in world coordinates.
func (o Object) Points() ([]physics.Vec2, error) {
	switch o.Kind {
	case KindRect:
		if len(o.Rect) != 4 || o.Rect[2] <= 0 || o.Rect[3] <= 0 {
			return nil, fmt.Errorf("%w: object %q: rect needs x, y, w, h with positive size", ErrInvalid, o.Name)
		}
		x, y, w, h := o.Rect[0], o.Rect[1], o.Rect[2], o.Rect[3]
		return []physics.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, nil
	case KindPolygon:
		if len(o.Vertices) < 3 {
			return nil, fmt.Errorf("%w: object %q: polygon needs at least 3 points", ErrInvalid, o.Name)
		}
		pts := make([]physics.Vec2, len(o.Vertices))
		for i, v := range o.Vertices {
			pts[i] = physics.Vec2{X: v[0], Y: v[1]}
		}
		return pts, nil
	case KindRegular:
		if len(o.Center) != 2 || o.Sides < 3 || o.Radius <= 0 {
			return nil, fmt.Errorf("%w: object %q: regular needs center, sides >= 3 and radius", ErrInvalid, o.Name)
		}
		c := physics.Vec2{X: o.Center[0], Y: o.Center[1]}
		return physics.RegularPolygon(c, o.Sides, o.Radius, o.Rotation), nil
	}
	return nil, fmt.Errorf("%w: object %q: unknown type %q", ErrInvalid, o.Name, o.Kind)
}

// Start is the vehicle pose at session start.
type Start struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"` // degrees, 0 faces +X
}

func (s Start) Pos() physics.Vec2 { return physics.Vec2{X: s.X, Y: s.Y} }

// HeadingRad is the heading in radians, ready for Vehicle.Rotate.
func (s Start) HeadingRad() float64 { return s.Heading * math.Pi / 180 }

type file struct {
	Name       string              `yaml:"name"`
	TileWidth  int                 `yaml:"tile_width"`
	TileHeight int                 `yaml:"tile_height"`
	Noise      float64             `yaml:"noise"`
	Palette    map[string][3]uint8 `yaml:"palette"`
	Rows       []string            `yaml:"rows"`
	Start      Start               `yaml:"start"`
	Objects    []Object            `yaml:"objects"`
}

// Map is a loaded track: the rasterised background and the object layer.
type Map struct {
	Name          string
	Width, Height int // pixels
	Cols, Rows    int // tiles
	Surface       *image.RGBA
	Objects       []Object
	Start         Start
}

// Bounds is the map rectangle in world coordinates.
func (m *Map) Bounds() physics.Rect {
	return physics.Rect{X1: float64(m.Width), Y1: float64(m.Height)}
}

// Load reads <name>.yaml from fsys and rasterises it.
func Load(fsys fs.FS, name string) (*Map, error) {
	if name == "" || path.Base(name) != name {
		return nil, fmt.Errorf("%w: bad track name %q", ErrInvalid, name)
	}
	data, err := fs.ReadFile(fsys, name+".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read track %s: %w", name, err)
	}
	return Parse(name, data)
}

// Parse decodes a track document. name is used when the document has none.
func Parse(name string, data []byte) (*Map, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
	}
	if f.Name == "" {
		f.Name = name
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	m := &Map{
		Name:    f.Name,
		Cols:    len(f.Rows[0]),
		Rows:    len(f.Rows),
		Objects: f.Objects,
		Start:   f.Start,
	}
	m.Width = m.Cols * f.TileWidth
	m.Height = m.Rows * f.TileHeight
	m.Surface = rasterize(&f, m.Width, m.Height)
	return m, nil
}

func (f *file) validate() error {
	if f.TileWidth <= 0 || f.TileHeight <= 0 {
		return fmt.Errorf("%w: %s: tile size %dx%d", ErrInvalid, f.Name, f.TileWidth, f.TileHeight)
	}
	if len(f.Rows) == 0 || len(f.Rows[0]) == 0 {
		return fmt.Errorf("%w: %s: no tiles", ErrInvalid, f.Name)
	}
	cols := len(f.Rows[0])
	for y, row := range f.Rows {
		if len(row) != cols {
			return fmt.Errorf("%w: %s: row %d has %d tiles, want %d", ErrInvalid, f.Name, y, len(row), cols)
		}
		for x := 0; x < len(row); x++ {
			if _, ok := f.Palette[string(row[x])]; !ok {
				return fmt.Errorf("%w: %s: tile %q at %d,%d has no palette entry", ErrInvalid, f.Name, row[x], x, y)
			}
		}
	}
	if f.Noise < 0 || f.Noise > 1 {
		return fmt.Errorf("%w: %s: noise %v", ErrInvalid, f.Name, f.Noise)
	}
	for _, o := range f.Objects {
		if _, err := o.Points(); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return nil
}
