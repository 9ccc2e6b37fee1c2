package game

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinectninja/tracking"
)

// Frame is the scratch state shared by the systems during one step.
type Frame struct {
	Body  *tracking.BodyFrame
	Hands []tracking.TrackedPoint
	Out   *RenderCommands
}

func screenVector(p tracking.ColorSpacePoint) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

// HandSystem maps both hands of every tracked body into screen space and emits
// their markers. Markers outside the frame are skipped; the hands are kept for
// collision regardless.
type HandSystem struct{}

func (HandSystem) Update(s *Session, f *Frame) {
	t := s.tuning
	for i := range f.Body.Bodies {
		body := &f.Body.Bodies[i]
		if !body.IsTracked {
			continue
		}

		if t.ShowJoints {
			for jt := tracking.JointType(0); int(jt) < tracking.JointCount; jt++ {
				j, ok := body.Joint(jt)
				if !ok {
					continue
				}
				pt := screenVector(s.mapper.MapCameraPointToColorSpace(j.Position))
				s.marker(f, pt, t.JointRadius, t.JointColor)
			}
		}

		for _, role := range []tracking.HandRole{tracking.RoleLeft, tracking.RoleRight} {
			j, ok := body.Joint(role.Joint())
			if !ok {
				continue
			}
			hand := tracking.TrackedPoint{
				Camera: j.Position,
				Screen: s.mapper.MapCameraPointToColorSpace(j.Position),
				Role:   role,
			}
			f.Hands = append(f.Hands, hand)

			clr := t.RightHandColor
			if role == tracking.RoleLeft {
				clr = t.LeftHandColor
			}
			s.marker(f, screenVector(hand.Screen), t.MarkerRadius, clr)
		}
	}
}

// StrikeSystem tests the hands against the projectile. The first hit moves the
// projectile to the sentinel and scores once; later hands in the same frame are
// not tested.
type StrikeSystem struct{}

func (StrikeSystem) Update(s *Session, f *Frame) {
	for _, hand := range f.Hands {
		if !CheckCollision(screenVector(hand.Screen), s.projectile) {
			continue
		}
		s.projectile.Position = s.tuning.Sentinel
		s.score++
		f.Out.Struck = true
		return
	}
}

// MotionSystem integrates the projectile.
type MotionSystem struct{}

func (MotionSystem) Update(s *Session, f *Frame) {
	s.projectile.Advance(s.tuning.Gravity)
}

// BoundsSystem draws the projectile while it is on screen and replaces it once
// it is not. A struck projectile is always replaced, wherever the sentinel and
// one frame of motion left it.
type BoundsSystem struct{}

func (BoundsSystem) Update(s *Session, f *Frame) {
	p := s.projectile
	if !f.Out.Struck && s.Contains(p.Position) {
		f.Out.Projectile = &Circle{Center: p.Position, Radius: p.Radius, Color: s.tuning.ProjectileColor}
		return
	}
	s.Respawn()
}
