package tracking

import (
	"sync/atomic"
	"time"
)

// FrameDescription is the fixed geometry of the color stream.
type FrameDescription struct {
	Width         int
	Height        int
	BytesPerPixel int
}

// Size returns the number of bytes in one frame.
func (d FrameDescription) Size() int {
	return d.Width * d.Height * d.BytesPerPixel
}

// ReleaseFunc returns a frame buffer to whoever owns it.
type ReleaseFunc func(f any)

// BodyFrame is one snapshot of every body slot. It must be released once the
// handler is done with it; Release is safe on a nil frame and safe to repeat.
type BodyFrame struct {
	Bodies       []Body
	RelativeTime time.Duration

	owner    ReleaseFunc
	released atomic.Bool
}

// NewBodyFrame wraps bodies in a frame that calls release when it is released.
func NewBodyFrame(bodies []Body, at time.Duration, release ReleaseFunc) *BodyFrame {
	f := &BodyFrame{Bodies: bodies, RelativeTime: at}
	f.owner = release
	return f
}

// Reset prepares a pooled frame for reuse.
func (f *BodyFrame) Reset(at time.Duration, release ReleaseFunc) {
	f.Bodies = f.Bodies[:0]
	f.RelativeTime = at
	f.owner = release
	f.released.Store(false)
}

func (f *BodyFrame) Release() {
	if f == nil || !f.released.CompareAndSwap(false, true) {
		return
	}
	if f.owner != nil {
		f.owner(f)
	}
}

// Released reports whether Release has been called.
func (f *BodyFrame) Released() bool {
	return f != nil && f.released.Load()
}

// ColorFrame is one BGRA image from the color camera.
type ColorFrame struct {
	Description  FrameDescription
	Pixels       []byte
	RelativeTime time.Duration

	owner    ReleaseFunc
	released atomic.Bool
}

// NewColorFrame wraps a BGRA buffer.
func NewColorFrame(desc FrameDescription, pixels []byte, at time.Duration, release ReleaseFunc) *ColorFrame {
	f := &ColorFrame{Description: desc, Pixels: pixels, RelativeTime: at}
	f.owner = release
	return f
}

// Reset prepares a pooled frame for reuse.
func (f *ColorFrame) Reset(at time.Duration, release ReleaseFunc) {
	f.RelativeTime = at
	f.owner = release
	f.released.Store(false)
}

func (f *ColorFrame) Release() {
	if f == nil || !f.released.CompareAndSwap(false, true) {
		return
	}
	if f.owner != nil {
		f.owner(f)
	}
}

// Released reports whether Release has been called.
func (f *ColorFrame) Released() bool {
	return f != nil && f.released.Load()
}

// BodyFrameReference is delivered with each body-frame event. AcquireFrame returns
// nil when the frame is no longer available, which callers treat as a dropped frame.
type BodyFrameReference interface {
	AcquireFrame() *BodyFrame
}

// ColorFrameReference is delivered with each color-frame event.
type ColorFrameReference interface {
	AcquireFrame() *ColorFrame
}

// StaticBodyFrame is a reference that always yields the same frame (or nil).
type StaticBodyFrame struct {
	Frame *BodyFrame
}

func (r StaticBodyFrame) AcquireFrame() *BodyFrame { return r.Frame }

// StaticColorFrame is a reference that always yields the same frame (or nil).
type StaticColorFrame struct {
	Frame *ColorFrame
}

func (r StaticColorFrame) AcquireFrame() *ColorFrame { return r.Frame }
