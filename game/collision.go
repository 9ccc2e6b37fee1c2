package game

import "github.com/jakecoffman/cp"

// CheckCollision reports whether hand lies strictly inside the projectile's
// circle. A hand exactly on the rim is a miss. Hands outside the visible frame
// are tested like any other.
func CheckCollision(hand cp.Vector, p Projectile) bool {
	return hand.Distance(p.Position) < p.Radius
}
