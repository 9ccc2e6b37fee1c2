package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// GameFile is the spec that tunes the session.
const GameFile = "game.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	Name        string          `yaml:"name"`
	TickHz      int             `yaml:"tick_hz"`
	Frame       FrameSpec       `yaml:"frame"`
	Projectile  ProjectileSpec  `yaml:"projectile"`
	HandMarker  HandMarkerSpec  `yaml:"hand_marker"`
	JointMarker JointMarkerSpec `yaml:"joint_marker"`
	Sensor      SensorSpec      `yaml:"sensor"`
}

type FrameSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ProjectileSpec struct {
	Radius       float64    `yaml:"radius"`
	Gravity      float64    `yaml:"gravity"`
	LaunchSpeedX float64    `yaml:"launch_speed_x"`
	LaunchSpeedY float64    `yaml:"launch_speed_y"`
	Sentinel     PointSpec  `yaml:"sentinel"`
	Color        *YAMLColor `yaml:"color"`
}

type HandMarkerSpec struct {
	Radius     float64    `yaml:"radius"`
	LeftColor  *YAMLColor `yaml:"left_color"`
	RightColor *YAMLColor `yaml:"right_color"`
}

type JointMarkerSpec struct {
	Show   bool       `yaml:"show"`
	Radius float64    `yaml:"radius"`
	Color  *YAMLColor `yaml:"color"`
}

type SensorSpec struct {
	DropRate    float64 `yaml:"drop_rate"`
	Script      string  `yaml:"script"`
	CursorDepth float64 `yaml:"cursor_depth"`
}

// LoadGameSpec loads and validates game.yaml.
func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", GameFile, err)
	}
	return &spec, nil
}

// ParseGameSpec decodes and validates a game spec from raw YAML.
func ParseGameSpec(data []byte) (*GameSpec, error) {
	var spec GameSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal game spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *GameSpec) Validate() error {
	switch {
	case s.TickHz <= 0:
		return fmt.Errorf("%w: tick_hz must be > 0, got %d", ErrInvalidSpec, s.TickHz)
	case s.Frame.Width <= 0 || s.Frame.Height <= 0:
		return fmt.Errorf("%w: frame must be positive, got %dx%d", ErrInvalidSpec, s.Frame.Width, s.Frame.Height)
	case s.Projectile.Radius <= 0:
		return fmt.Errorf("%w: projectile radius must be > 0, got %.1f", ErrInvalidSpec, s.Projectile.Radius)
	case s.HandMarker.Radius < 0 || s.JointMarker.Radius < 0:
		return fmt.Errorf("%w: marker radius must be >= 0", ErrInvalidSpec)
	case s.Sensor.DropRate < 0 || s.Sensor.DropRate > 1:
		return fmt.Errorf("%w: drop_rate must be in [0,1], got %.2f", ErrInvalidSpec, s.Sensor.DropRate)
	}

	// A struck projectile is parked at the sentinel until it respawns later in
	// the same step; it must never be visible there.
	if inside(s.Projectile.Sentinel, s.Frame) {
		return fmt.Errorf("%w: sentinel (%.0f,%.0f) is inside the frame", ErrInvalidSpec, s.Projectile.Sentinel.X, s.Projectile.Sentinel.Y)
	}
	return nil
}

func inside(p PointSpec, f FrameSpec) bool {
	return p.X >= 0 && p.X <= float64(f.Width) && p.Y >= 0 && p.Y <= float64(f.Height)
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

// Or returns the parsed color, or fallback when c was not set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
