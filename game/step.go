package game

import "github.com/milk9111/kinectninja/tracking"

// Step advances the session by one body frame and returns what to draw. A nil
// frame is a dropped frame: nothing changes and Step returns nil, so the sink
// keeps showing the previous overlay.
func (s *Session) Step(body *tracking.BodyFrame) *RenderCommands {
	if body == nil {
		return nil
	}

	f := &Frame{
		Body: body,
		Out:  &RenderCommands{Width: s.width, Height: s.height},
	}
	s.scheduler.Update(s, f)
	s.frames++
	f.Out.Score = s.score
	return f.Out
}
