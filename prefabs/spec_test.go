package prefabs

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadGameSpecDefaults(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}

	if spec.TickHz != 30 {
		t.Fatalf("expected 30 Hz, got %d", spec.TickHz)
	}
	p := spec.Projectile
	if p.Radius != 70 || p.Gravity != 0.6 || p.LaunchSpeedX != 15 || p.LaunchSpeedY != -30 {
		t.Fatalf("unexpected projectile tuning %+v", p)
	}
	if p.Sentinel.X != -100 || p.Sentinel.Y != -100 {
		t.Fatalf("unexpected sentinel %+v", p.Sentinel)
	}
	if spec.HandMarker.Radius != 15 {
		t.Fatalf("expected marker radius 15, got %v", spec.HandMarker.Radius)
	}
	if got := spec.Projectile.Color.Or(nil); got != (color.RGBA{R: 0xff, G: 0xff, A: 0xff}) {
		t.Fatalf("expected yellow projectile, got %v", got)
	}
	if spec.Sensor.Script == "" {
		t.Fatalf("expected a default hand script")
	}
}

func TestLoadDefaultScript(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	for _, name := range []string{spec.Sensor.Script, "scripts/" + spec.Sensor.Script, "prefabs/scripts/" + spec.Sensor.Script} {
		src, err := LoadScript(name)
		if err != nil {
			t.Fatalf("load script %q: %v", name, err)
		}
		if !strings.Contains(string(src), "bodies") {
			t.Fatalf("script %q does not define bodies", name)
		}
	}
}

func TestGameSpecValidate(t *testing.T) {
	valid := func() GameSpec {
		return GameSpec{
			TickHz:     30,
			Frame:      FrameSpec{Width: 640, Height: 480},
			Projectile: ProjectileSpec{Radius: 70, Gravity: 0.6, Sentinel: PointSpec{X: -100, Y: -100}},
			HandMarker: HandMarkerSpec{Radius: 15},
		}
	}

	cases := []struct {
		name   string
		mutate func(s *GameSpec)
		ok     bool
	}{
		{"valid", func(s *GameSpec) {}, true},
		{"zero_tick", func(s *GameSpec) { s.TickHz = 0 }, false},
		{"empty_frame", func(s *GameSpec) { s.Frame.Width = 0 }, false},
		{"zero_radius", func(s *GameSpec) { s.Projectile.Radius = 0 }, false},
		{"negative_marker", func(s *GameSpec) { s.HandMarker.Radius = -1 }, false},
		{"drop_rate_over_one", func(s *GameSpec) { s.Sensor.DropRate = 1.5 }, false},
		{"sentinel_on_screen", func(s *GameSpec) { s.Projectile.Sentinel = PointSpec{X: 10, Y: 10} }, false},
		{"sentinel_below", func(s *GameSpec) { s.Projectile.Sentinel = PointSpec{X: 100, Y: 5000} }, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := valid()
			c.mutate(&s)
			err := s.Validate()
			if c.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
		err  bool
	}{
		{"red", color.RGBA{R: 0xff, A: 0xff}, false},
		{"Blue", color.RGBA{B: 0xff, A: 0xff}, false},
		{"'#102030'", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"'#10203040'", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"notacolor", nil, true},
		{"'#zz0000'", nil, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got struct {
				C YAMLColor `yaml:"c"`
			}
			err := yaml.Unmarshal([]byte("c: "+c.in), &got)
			if c.err {
				if err == nil {
					t.Fatalf("expected error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %q: %v", c.in, err)
			}
			if got.C.Color != c.want {
				t.Fatalf("expected %v, got %v", c.want, got.C.Color)
			}
		})
	}

	var unset *YAMLColor
	if unset.Or(color.White) != color.White {
		t.Fatalf("expected fallback for nil color")
	}
}

func TestParseGameSpec(t *testing.T) {
	_, err := ParseGameSpec([]byte("tick_hz: 0\n"))
	if !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}

	_, err = ParseGameSpec([]byte("tick_hz: [\n"))
	if err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestClassifyChange(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/game.yaml", ChangeSpec, true},
		{"prefabs/GAME.YML", ChangeSpec, true},
		{"prefabs/scripts/sweep.tengo", ChangeScript, true},
		{"prefabs/game.yaml~", 0, false},
		{"prefabs/notes.txt", 0, false},
	}
	for _, c := range cases {
		kind, ok := classify(c.path)
		if ok != c.ok || kind != c.kind {
			t.Fatalf("classify(%q) = %v,%v want %v,%v", c.path, kind, ok, c.kind, c.ok)
		}
	}

	if (Change{Path: "prefabs/scripts/sweep.tengo"}).Name() != "sweep.tengo" {
		t.Fatalf("unexpected change name")
	}
}
