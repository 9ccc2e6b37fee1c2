package game

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Circle is a filled circle in screen space.
type Circle struct {
	Center cp.Vector
	Radius float64
	Color  color.Color
}

// RenderCommands is everything the render sink needs to draw one body frame, in
// draw order: clear, joint and hand markers, projectile.
type RenderCommands struct {
	Width, Height float64
	Markers       []Circle
	Projectile    *Circle
	Score         int
	Struck        bool
}
