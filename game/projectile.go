package game

import "github.com/jakecoffman/cp"

// Projectile is the single object the player has to hit.
type Projectile struct {
	Position cp.Vector
	Velocity cp.Vector
	Radius   float64
}

// Advance integrates one frame of motion: position first, then gravity.
func (p *Projectile) Advance(gravity float64) {
	p.Position = p.Position.Add(p.Velocity)
	p.Velocity.Y += gravity
}

// LaunchSide is the bottom corner a new projectile is thrown from.
type LaunchSide uint8

const (
	LaunchLeft LaunchSide = iota
	LaunchRight
)

func (s LaunchSide) String() string {
	if s == LaunchRight {
		return "right"
	}
	return "left"
}

// Launch builds the projectile thrown from side of a width x height frame.
func Launch(side LaunchSide, width, height float64, t Tuning) Projectile {
	p := Projectile{
		Position: cp.Vector{X: 0, Y: height},
		Velocity: t.LaunchVelocity,
		Radius:   t.Radius,
	}
	if side == LaunchRight {
		p.Position.X = width
		p.Velocity.X = -t.LaunchVelocity.X
	}
	return p
}
