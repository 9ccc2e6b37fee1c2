// Package sensor simulates a depth camera with a body tracker and a color stream.
// It delivers frames the way the real device does: an event per frame carrying a
// reference that must be acquired, and a pooled buffer that must be released.
package sensor

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milk9111/kinectninja/prefabs"
	"github.com/milk9111/kinectninja/tracking"
)

var ErrClosed = errors.New("sensor: closed")

const (
	DefaultTickHz = 30
	MaxTickHz     = 1000

	// eventBuffer is how many undelivered events of each kind the device holds
	// before it starts dropping them.
	eventBuffer = 4
)

// DefaultFrame is the Kinect v2 color stream: 1920x1080 BGRA.
var DefaultFrame = tracking.FrameDescription{Width: 1920, Height: 1080, BytesPerPixel: 4}

type Config struct {
	Frame  tracking.FrameDescription
	TickHz int

	// DropRate is the chance in [0, 1] that a frame is gone by the time its
	// reference is acquired.
	DropRate float64
	Seed     uint64

	Source       BodySource
	DisableColor bool
}

func (c Config) withDefaults() Config {
	if c.Frame.Width == 0 && c.Frame.Height == 0 {
		c.Frame = DefaultFrame
	}
	if c.Frame.BytesPerPixel == 0 {
		c.Frame.BytesPerPixel = 4
	}
	if c.TickHz == 0 {
		c.TickHz = DefaultTickHz
	}
	return c
}

func (c Config) validate() error {
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		return fmt.Errorf("sensor: invalid frame %dx%d", c.Frame.Width, c.Frame.Height)
	}
	if c.Frame.BytesPerPixel != 4 {
		return fmt.Errorf("sensor: only 4 bytes per pixel is supported, got %d", c.Frame.BytesPerPixel)
	}
	if c.TickHz <= 0 || c.TickHz > MaxTickHz {
		return fmt.Errorf("sensor: tick rate must be in (0,%d], got %d", MaxTickHz, c.TickHz)
	}
	if c.DropRate < 0 || c.DropRate > 1 {
		return fmt.Errorf("sensor: drop rate must be in [0,1], got %v", c.DropRate)
	}
	if c.Source == nil {
		return errors.New("sensor: no body source")
	}
	return nil
}

// ConfigFromSpec takes the frame, tick rate and drop rate from a game spec.
func ConfigFromSpec(spec *prefabs.GameSpec, src BodySource) Config {
	return Config{
		Frame:    tracking.FrameDescription{Width: spec.Frame.Width, Height: spec.Frame.Height, BytesPerPixel: 4},
		TickHz:   spec.TickHz,
		DropRate: spec.Sensor.DropRate,
		Source:   src,
	}
}

type BodyFrameArrivedEvent struct {
	FrameReference tracking.BodyFrameReference
}

type ColorFrameArrivedEvent struct {
	FrameReference tracking.ColorFrameReference
}

// Sensor is an open device session. Frames are produced on a background goroutine
// until Close.
type Sensor struct {
	cfg    Config
	mapper tracking.PinholeMapper

	bodyCh  chan BodyFrameArrivedEvent
	colorCh chan ColorFrameArrivedEvent

	bodies latest[*tracking.BodyFrame]
	colors latest[*tracking.ColorFrame]

	bodyPool  sync.Pool
	colorPool sync.Pool

	rng    *rand.Rand
	tick   int
	start  time.Time
	errMsg string

	seq       atomic.Uint64
	published atomic.Uint64
	dropped   atomic.Uint64

	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
	closed atomic.Bool
}

// Open starts a sensor session.
func Open(cfg Config) (*Sensor, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := newSensor(cfg)
	go s.run()
	return s, nil
}

func newSensor(cfg Config) *Sensor {
	s := &Sensor{
		cfg:     cfg,
		mapper:  tracking.DefaultPinholeMapper(cfg.Frame),
		bodyCh:  make(chan BodyFrameArrivedEvent, eventBuffer),
		colorCh: make(chan ColorFrameArrivedEvent, eventBuffer),
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d)),
		start:   time.Now(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.bodyPool.New = func() any {
		return &tracking.BodyFrame{Bodies: make([]tracking.Body, 0, 6)}
	}
	s.colorPool.New = func() any {
		return &tracking.ColorFrame{Description: cfg.Frame, Pixels: make([]byte, cfg.Frame.Size())}
	}
	return s
}

func (s *Sensor) BodyFrameArrived() <-chan BodyFrameArrivedEvent { return s.bodyCh }

func (s *Sensor) ColorFrameArrived() <-chan ColorFrameArrivedEvent { return s.colorCh }

// CoordinateMapper returns the projection of the color camera.
func (s *Sensor) CoordinateMapper() tracking.CoordinateMapper { return s.mapper }

func (s *Sensor) ColorFrameDescription() tracking.FrameDescription { return s.cfg.Frame }

func (s *Sensor) TickHz() int { return s.cfg.TickHz }

// Stats returns how many body frames were published and how many of those were
// dropped.
func (s *Sensor) Stats() (published, dropped uint64) {
	return s.published.Load(), s.dropped.Load()
}

// Close stops the device and closes both event channels. Frames already acquired
// stay valid until released.
func (s *Sensor) Close() error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.stop)
		<-s.done
		close(s.bodyCh)
		close(s.colorCh)
		s.bodies.clear()
		s.colors.clear()
	})
	return nil
}

func (s *Sensor) run() {
	defer close(s.done)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickHz))
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step produces one color frame and one body frame.
func (s *Sensor) step() {
	s.tick++
	at := time.Since(s.start)

	if !s.cfg.DisableColor {
		s.publishColor(at)
	}
	s.publishBody(at)
}

func (s *Sensor) publishBody(at time.Duration) {
	f := s.bodyPool.Get().(*tracking.BodyFrame)
	f.Reset(at, s.putBody)

	bodies, err := s.cfg.Source.Bodies(s.tick, f.Bodies)
	f.Bodies = bodies
	s.logSourceError(err)

	seq := s.seq.Add(1)
	s.published.Add(1)
	if s.dropNext() {
		s.dropped.Add(1)
		s.bodies.drop(seq)
		f.Release()
	} else {
		s.bodies.publish(seq, f)
	}

	select {
	case s.bodyCh <- BodyFrameArrivedEvent{FrameReference: bodyRef{s: s, seq: seq}}:
	default:
	}
}

func (s *Sensor) publishColor(at time.Duration) {
	f := s.colorPool.Get().(*tracking.ColorFrame)
	f.Reset(at, s.putColor)
	FillTestPattern(f.Pixels, f.Description, s.tick)

	seq := s.seq.Add(1)
	s.colors.publish(seq, f)

	select {
	case s.colorCh <- ColorFrameArrivedEvent{FrameReference: colorRef{s: s, seq: seq}}:
	default:
	}
}

func (s *Sensor) dropNext() bool {
	return s.cfg.DropRate > 0 && s.rng.Float64() < s.cfg.DropRate
}

// logSourceError logs each distinct source failure once.
func (s *Sensor) logSourceError(err error) {
	if err == nil {
		if s.errMsg != "" {
			log.Printf("sensor: body source recovered")
			s.errMsg = ""
		}
		return
	}
	if msg := err.Error(); msg != s.errMsg {
		log.Printf("sensor: body source: %v", err)
		s.errMsg = msg
	}
}

func (s *Sensor) putBody(f any) { s.bodyPool.Put(f) }

func (s *Sensor) putColor(f any) { s.colorPool.Put(f) }

type bodyRef struct {
	s   *Sensor
	seq uint64
}

func (r bodyRef) AcquireFrame() *tracking.BodyFrame { return r.s.bodies.acquire(r.seq) }

type colorRef struct {
	s   *Sensor
	seq uint64
}

func (r colorRef) AcquireFrame() *tracking.ColorFrame { return r.s.colors.acquire(r.seq) }

type releaser interface {
	comparable
	Release()
}

// latest holds the most recent unacquired frame of one stream. Publishing a newer
// frame releases the older one, so a stale reference acquires nothing.
type latest[F releaser] struct {
	mu    sync.Mutex
	seq   uint64
	frame F
}

func (l *latest[F]) publish(seq uint64, f F) {
	var zero F
	l.mu.Lock()
	old := l.frame
	l.seq, l.frame = seq, f
	l.mu.Unlock()

	if old != zero {
		old.Release()
	}
}

func (l *latest[F]) drop(seq uint64) {
	var zero F
	l.publish(seq, zero)
}

func (l *latest[F]) acquire(seq uint64) F {
	var zero F
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		return zero
	}
	f := l.frame
	l.frame = zero
	return f
}

func (l *latest[F]) clear() {
	var zero F
	l.mu.Lock()
	old := l.frame
	l.frame = zero
	l.mu.Unlock()

	if old != zero {
		old.Release()
	}
}
