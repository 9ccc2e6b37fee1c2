package game

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinectninja/prefabs"
	"golang.org/x/image/colornames"
)

// Tuning holds every constant the simulation reads. Distances are screen pixels,
// time is frames.
type Tuning struct {
	Gravity        float64
	Radius         float64
	LaunchVelocity cp.Vector // launch from the left; mirrored on X for the right
	Sentinel       cp.Vector

	ProjectileColor color.Color
	MarkerRadius    float64
	LeftHandColor   color.Color
	RightHandColor  color.Color

	ShowJoints  bool
	JointRadius float64
	JointColor  color.Color
}

const (
	DefaultGravity      = 0.6
	DefaultRadius       = 70.0
	DefaultMarkerRadius = 15.0
)

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:         DefaultGravity,
		Radius:          DefaultRadius,
		LaunchVelocity:  cp.Vector{X: 15, Y: -30},
		Sentinel:        cp.Vector{X: -100, Y: -100},
		ProjectileColor: colornames.Yellow,
		MarkerRadius:    DefaultMarkerRadius,
		LeftHandColor:   colornames.Blue,
		RightHandColor:  colornames.Red,
		JointRadius:     DefaultMarkerRadius,
		JointColor:      colornames.Green,
	}
}

// TuningFromSpec converts a validated game spec. Colors missing from the spec
// keep their defaults.
func TuningFromSpec(spec *prefabs.GameSpec) Tuning {
	t := DefaultTuning()
	if spec == nil {
		return t
	}

	p := spec.Projectile
	t.Gravity = p.Gravity
	t.Radius = p.Radius
	t.LaunchVelocity = cp.Vector{X: p.LaunchSpeedX, Y: p.LaunchSpeedY}
	t.Sentinel = cp.Vector{X: p.Sentinel.X, Y: p.Sentinel.Y}
	t.ProjectileColor = p.Color.Or(t.ProjectileColor)

	t.MarkerRadius = spec.HandMarker.Radius
	t.LeftHandColor = spec.HandMarker.LeftColor.Or(t.LeftHandColor)
	t.RightHandColor = spec.HandMarker.RightColor.Or(t.RightHandColor)

	t.ShowJoints = spec.JointMarker.Show
	t.JointRadius = spec.JointMarker.Radius
	t.JointColor = spec.JointMarker.Color.Or(t.JointColor)
	return t
}
