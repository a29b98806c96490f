package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Entity type names understood by the level builder.
const (
	EntityFloor    = "floor"
	EntityGoomba   = "goomba"
	EntityCoin     = "coin"
	EntityMushroom = "mushroom"
	EntityCloud    = "cloud"
)

type Level struct {
	Name       string   `yaml:"name"`
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	KillPlane  float64  `yaml:"kill_plane"`
	Background string   `yaml:"background"`
	Spawn      Point    `yaml:"spawn"`
	Entities   []Entity `yaml:"entities"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Entity places one prefab. Props overrides prefab fields where the builder
// supports it (for example velocity_x on enemies).
type Entity struct {
	Type  string         `yaml:"type"`
	X     float64        `yaml:"x"`
	Y     float64        `yaml:"y"`
	Props map[string]any `yaml:"props,omitempty"`
}

var (
	ErrEmptyLevel   = errors.New("level has no entities")
	ErrBadDimension = errors.New("level dimensions must be positive")
)

// Load reads a level by name, preferring dir on disk over the embedded copy.
func Load(dir, name string) (*Level, error) {
	clean := cleanLevelName(name)
	var data []byte
	var err error
	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, clean))
	}
	if dir == "" || err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.KillPlane == 0 {
		lvl.KillPlane = lvl.Height
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: %q: %w", l.Name, ErrBadDimension)
	}
	if len(l.Entities) == 0 {
		return fmt.Errorf("levels: %q: %w", l.Name, ErrEmptyLevel)
	}
	for i, e := range l.Entities {
		switch e.Type {
		case EntityFloor, EntityGoomba, EntityCoin, EntityMushroom, EntityCloud:
		default:
			return fmt.Errorf("levels: %q: entity %d: unknown type %q", l.Name, i, e.Type)
		}
		if e.X < 0 || e.X > l.Width {
			return fmt.Errorf("levels: %q: entity %d (%s): x=%v outside 0..%v", l.Name, i, e.Type, e.X, l.Width)
		}
	}
	return nil
}

// Count returns how many entities of the given type the level places.
func (l *Level) Count(typ string) int {
	n := 0
	for _, e := range l.Entities {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	return out
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
