// Package dispatch runs the frame handlers on one queue so the game session is
// never touched by two events at once.
package dispatch

import (
	"context"

	"github.com/milk9111/kinectninja/game"
	"github.com/milk9111/kinectninja/sensor"
	"github.com/milk9111/kinectninja/tracking"
)

// Source is the event side of an open sensor.
type Source interface {
	BodyFrameArrived() <-chan sensor.BodyFrameArrivedEvent
	ColorFrameArrived() <-chan sensor.ColorFrameArrivedEvent
}

// Sink receives what the handlers produce. Backdrop must copy the pixels it
// needs before returning; the frame goes back to the device afterwards.
type Sink interface {
	Present(cmds *game.RenderCommands)
	Backdrop(frame *tracking.ColorFrame)
}

// Discard is a Sink that draws nothing.
var Discard Sink = discard{}

type discard struct{}

func (discard) Present(*game.RenderCommands)  {}
func (discard) Backdrop(*tracking.ColorFrame) {}

// Loop owns a session and feeds it sensor events. Run and Pump must not be
// used at the same time.
type Loop struct {
	session *game.Session
	sink    Sink

	bodies <-chan sensor.BodyFrameArrivedEvent
	colors <-chan sensor.ColorFrameArrivedEvent

	// OnStep, if set, sees every non-dropped step after the sink does.
	OnStep func(cmds *game.RenderCommands)

	steps   int
	dropped int
}

func New(src Source, session *game.Session, sink Sink) *Loop {
	if sink == nil {
		sink = Discard
	}
	return &Loop{
		session: session,
		sink:    sink,
		bodies:  src.BodyFrameArrived(),
		colors:  src.ColorFrameArrived(),
	}
}

func (l *Loop) Session() *game.Session { return l.session }

// Stats returns how many body events were stepped and how many found their frame
// gone.
func (l *Loop) Stats() (steps, dropped int) { return l.steps, l.dropped }

// Closed reports whether both event channels have been closed.
func (l *Loop) Closed() bool {
	return l.bodies == nil && l.colors == nil
}

// Run handles events until both channels close or ctx is done. It returns nil
// when the sensor closed and ctx.Err() otherwise.
func (l *Loop) Run(ctx context.Context) error {
	for !l.Closed() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-l.bodies:
			if !ok {
				l.bodies = nil
				continue
			}
			l.handleBody(ev)
		case ev, ok := <-l.colors:
			if !ok {
				l.colors = nil
				continue
			}
			l.handleColor(ev)
		}
	}
	return nil
}

// Pump handles every event already queued and returns how many it handled. It
// never blocks.
func (l *Loop) Pump() int {
	n := 0
	for {
		select {
		case ev, ok := <-l.bodies:
			if !ok {
				l.bodies = nil
				continue
			}
			l.handleBody(ev)
		case ev, ok := <-l.colors:
			if !ok {
				l.colors = nil
				continue
			}
			l.handleColor(ev)
		default:
			return n
		}
		n++
	}
}

func (l *Loop) handleBody(ev sensor.BodyFrameArrivedEvent) {
	frame := ev.FrameReference.AcquireFrame()
	defer frame.Release()

	cmds := l.session.Step(frame)
	if cmds == nil {
		l.dropped++
		return
	}
	l.steps++

	l.sink.Present(cmds)
	if l.OnStep != nil {
		l.OnStep(cmds)
	}
}

func (l *Loop) handleColor(ev sensor.ColorFrameArrivedEvent) {
	frame := ev.FrameReference.AcquireFrame()
	defer frame.Release()

	if frame == nil {
		return
	}
	l.sink.Backdrop(frame)
}
