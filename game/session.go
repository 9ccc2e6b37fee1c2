package game

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinectninja/tracking"
)

// Session is the whole game state for one sensor session. It is not safe for
// concurrent use; a single dispatcher owns it.
type Session struct {
	width, height float64

	projectile Projectile
	score      int
	frames     int

	rand      RandomSource
	mapper    tracking.CoordinateMapper
	tuning    Tuning
	scheduler *Scheduler
}

// NewSession starts a session with the projectile launched from the left.
func NewSession(desc tracking.FrameDescription, mapper tracking.CoordinateMapper, rand RandomSource, tuning Tuning) *Session {
	s := &Session{
		width:  float64(desc.Width),
		height: float64(desc.Height),
		rand:   rand,
		mapper: mapper,
		tuning: tuning,
		scheduler: NewScheduler(
			HandSystem{},
			StrikeSystem{},
			MotionSystem{},
			BoundsSystem{},
		),
	}
	s.projectile = Launch(LaunchLeft, s.width, s.height, tuning)
	return s
}

func (s *Session) Projectile() Projectile { return s.projectile }

func (s *Session) Score() int { return s.score }

// Frames returns how many body frames have been stepped.
func (s *Session) Frames() int { return s.frames }

func (s *Session) Size() (width, height float64) { return s.width, s.height }

func (s *Session) Tuning() Tuning { return s.tuning }

// SetTuning swaps the tuning. Gravity and colors apply from the next step; the
// radius and launch speed apply from the next respawn.
func (s *Session) SetTuning(t Tuning) {
	s.tuning = t
}

// Contains reports whether p lies strictly inside the frame.
func (s *Session) Contains(p cp.Vector) bool {
	return p.X > 0 && p.X < s.width && p.Y > 0 && p.Y < s.height
}

// Respawn replaces the projectile with a fresh one from a random side.
func (s *Session) Respawn() LaunchSide {
	side := ChooseLaunchSide(s.rand)
	s.projectile = Launch(side, s.width, s.height, s.tuning)
	return side
}

func (s *Session) marker(f *Frame, center cp.Vector, radius float64, clr color.Color) {
	if radius <= 0 || !s.Contains(center) {
		return
	}
	f.Out.Markers = append(f.Out.Markers, Circle{Center: center, Radius: radius, Color: clr})
}
