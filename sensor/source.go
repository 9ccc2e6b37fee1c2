package sensor

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/kinectninja/prefabs"
	"github.com/milk9111/kinectninja/tracking"
)

// BodySource fills the body slots for one tick. Implementations append to dst and
// return it; dst may carry bodies and joint maps from an earlier frame to reuse.
type BodySource interface {
	Bodies(tick int, dst []tracking.Body) ([]tracking.Body, error)
}

// nextBody grows dst by one slot, reusing whatever joint map the slot held.
func nextBody(dst []tracking.Body) ([]tracking.Body, *tracking.Body) {
	n := len(dst)
	if n < cap(dst) {
		dst = dst[:n+1]
	} else {
		dst = append(dst, tracking.Body{})
	}
	b := &dst[n]
	joints := b.Joints
	if joints == nil {
		joints = make(map[tracking.JointType]tracking.Joint, 4)
	} else {
		clear(joints)
	}
	*b = tracking.Body{Joints: joints}
	return dst, b
}

// ScriptBodySource runs a tengo script each tick. The script sees the globals
// __tick and __hz and must leave an array named bodies, each entry a map with
// "tracked" (bool), an optional "id" (int) and "joints" (map of joint name to
// [x, y, z] in meters).
type ScriptBodySource struct {
	mu       sync.Mutex
	name     string
	hz       int
	compiled *tengo.Compiled
}

// LoadScriptBodySource compiles a script from the prefab scripts directory.
func LoadScriptBodySource(name string, hz int) (*ScriptBodySource, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return NewScriptBodySource(name, src, hz)
}

func NewScriptBodySource(name string, src []byte, hz int) (*ScriptBodySource, error) {
	if hz <= 0 {
		return nil, fmt.Errorf("script %s: tick rate must be positive, got %d", name, hz)
	}
	s := &ScriptBodySource{name: name, hz: hz}
	if err := s.Reload(src); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ScriptBodySource) Name() string { return s.name }

// Reload recompiles the script. On error the previous program keeps running.
func (s *ScriptBodySource) Reload(src []byte) error {
	script := tengo.NewScript(src)
	_ = script.Add("__tick", 0)
	_ = script.Add("__hz", s.hz)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}

	s.mu.Lock()
	s.compiled = compiled
	s.mu.Unlock()
	return nil
}

// Bodies runs the script once. On any failure, including a runtime panic inside
// the script, dst is returned at its original length.
func (s *ScriptBodySource) Bodies(tick int, dst []tracking.Body) (out []tracking.Body, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(dst)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script %s: %v", s.name, r)
		}
		if err != nil {
			out = dst[:n]
		}
	}()

	if err := s.compiled.Set("__tick", tick); err != nil {
		return nil, err
	}
	if err := s.compiled.Run(); err != nil {
		return nil, fmt.Errorf("script %s: %w", s.name, err)
	}
	if !s.compiled.IsDefined("bodies") {
		return nil, fmt.Errorf("script %s: bodies is not defined", s.name)
	}

	raw := s.compiled.Get("bodies").Value()
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("script %s: bodies must be an array, got %T", s.name, raw)
	}

	out = dst
	for i, item := range list {
		out, err = appendScriptBody(out, item)
		if err != nil {
			return nil, fmt.Errorf("script %s: body %d: %w", s.name, i, err)
		}
	}
	return out, nil
}

func appendScriptBody(dst []tracking.Body, item interface{}) ([]tracking.Body, error) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return dst, fmt.Errorf("expected map, got %T", item)
	}

	dst, b := nextBody(dst)
	if tracked, ok := m["tracked"].(bool); ok {
		b.IsTracked = tracked
	}
	if id, ok := m["id"].(int64); ok && id >= 0 {
		b.TrackingID = uint64(id)
	}

	joints, _ := m["joints"].(map[string]interface{})
	for name, v := range joints {
		jt, ok := tracking.ParseJointType(strings.ToLower(name))
		if !ok {
			return dst, fmt.Errorf("unknown joint %q", name)
		}
		pos, err := scriptPoint(v)
		if err != nil {
			return dst, fmt.Errorf("joint %s: %w", name, err)
		}
		b.Joints[jt] = tracking.Joint{Type: jt, Position: pos, TrackingState: tracking.Tracked}
	}
	return dst, nil
}

func scriptPoint(v interface{}) (tracking.CameraSpacePoint, error) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 3 {
		return tracking.CameraSpacePoint{}, fmt.Errorf("expected [x, y, z], got %v", v)
	}
	var xyz [3]float64
	for i, c := range arr {
		switch n := c.(type) {
		case float64:
			xyz[i] = n
		case int64:
			xyz[i] = float64(n)
		default:
			return tracking.CameraSpacePoint{}, fmt.Errorf("coordinate %d is %T", i, c)
		}
	}
	return tracking.CameraSpacePoint{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// CursorBodySource reports one tracked body whose right hand sits under a screen
// point, pushed in with MoveTo. Until the first MoveTo it reports nothing.
type CursorBodySource struct {
	mapper tracking.PinholeMapper
	depth  float64
	pos    atomic.Pointer[tracking.ColorSpacePoint]
}

func NewCursorBodySource(mapper tracking.PinholeMapper, depth float64) *CursorBodySource {
	if depth < tracking.MinDepth {
		depth = tracking.MinDepth
	}
	return &CursorBodySource{mapper: mapper, depth: depth}
}

// MoveTo may be called from any goroutine.
func (c *CursorBodySource) MoveTo(x, y float64) {
	c.pos.Store(&tracking.ColorSpacePoint{X: x, Y: y})
}

func (c *CursorBodySource) Bodies(tick int, dst []tracking.Body) ([]tracking.Body, error) {
	p := c.pos.Load()
	if p == nil {
		return dst, nil
	}
	dst, b := nextBody(dst)
	b.IsTracked = true
	b.TrackingID = cursorTrackingID
	b.Joints[tracking.HandRight] = tracking.Joint{
		Type:          tracking.HandRight,
		Position:      c.mapper.Unproject(*p, c.depth),
		TrackingState: tracking.Tracked,
	}
	return dst, nil
}

const cursorTrackingID = 1 << 32

// MultiBodySource concatenates the bodies of several sources in order. A failing
// source does not stop the others.
type MultiBodySource []BodySource

func (m MultiBodySource) Bodies(tick int, dst []tracking.Body) ([]tracking.Body, error) {
	var errs []error
	for _, src := range m {
		if src == nil {
			continue
		}
		var err error
		dst, err = src.Bodies(tick, dst)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return dst, errors.Join(errs...)
}
