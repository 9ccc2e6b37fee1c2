package tracking

import (
	"math"
	"testing"
)

func TestPinholeMapperIsTotal(t *testing.T) {
	m := DefaultPinholeMapper(FrameDescription{Width: 1920, Height: 1080, BytesPerPixel: 4})

	cases := []struct {
		name string
		p    CameraSpacePoint
	}{
		{"in_front", CameraSpacePoint{X: 0.3, Y: -0.2, Z: 2}},
		{"at_sensor", CameraSpacePoint{X: 0.3, Y: 0.2, Z: 0}},
		{"behind", CameraSpacePoint{X: -1, Y: 1, Z: -3}},
		{"nan_depth", CameraSpacePoint{X: 0.1, Y: 0.1, Z: math.NaN()}},
		{"inf_x", CameraSpacePoint{X: math.Inf(1), Y: 0, Z: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := m.MapCameraPointToColorSpace(c.p)
			if math.IsNaN(got.X) || math.IsInf(got.X, 0) || math.IsNaN(got.Y) || math.IsInf(got.Y, 0) {
				t.Fatalf("expected finite point, got %+v", got)
			}
		})
	}
}

func TestPinholeMapperCenterAndAxes(t *testing.T) {
	m := DefaultPinholeMapper(FrameDescription{Width: 1920, Height: 1080, BytesPerPixel: 4})

	center := m.MapCameraPointToColorSpace(CameraSpacePoint{Z: 2})
	if center.X != 960 || center.Y != 540 {
		t.Fatalf("expected optical axis at frame center, got %+v", center)
	}

	upRight := m.MapCameraPointToColorSpace(CameraSpacePoint{X: 0.5, Y: 0.5, Z: 2})
	if upRight.X <= center.X {
		t.Fatalf("expected +X to map right of center, got %v", upRight.X)
	}
	if upRight.Y >= center.Y {
		t.Fatalf("expected +Y to map above center, got %v", upRight.Y)
	}
}

func TestPinholeMapperUnproject(t *testing.T) {
	m := DefaultPinholeMapper(FrameDescription{Width: 1280, Height: 720, BytesPerPixel: 4})
	screen := ColorSpacePoint{X: 200, Y: 650}

	cam := m.Unproject(screen, 1.5)
	back := m.MapCameraPointToColorSpace(cam)
	if math.Abs(back.X-screen.X) > 1e-9 || math.Abs(back.Y-screen.Y) > 1e-9 {
		t.Fatalf("expected %+v after unproject/project, got %+v", screen, back)
	}
}

func TestMapperFunc(t *testing.T) {
	var m CoordinateMapper = MapperFunc(func(p CameraSpacePoint) ColorSpacePoint {
		return ColorSpacePoint{X: p.X * 10, Y: p.Y * 10}
	})
	got := m.MapCameraPointToColorSpace(CameraSpacePoint{X: 1, Y: 2})
	if got.X != 10 || got.Y != 20 {
		t.Fatalf("unexpected mapping %+v", got)
	}
}

func TestFrameReleaseOnce(t *testing.T) {
	calls := 0
	f := NewBodyFrame(nil, 0, func(any) { calls++ })

	f.Release()
	f.Release()
	if calls != 1 {
		t.Fatalf("expected owner to be called once, got %d", calls)
	}
	if !f.Released() {
		t.Fatalf("expected frame to report released")
	}

	var nilFrame *BodyFrame
	nilFrame.Release()

	var nilColor *ColorFrame
	nilColor.Release()
}

func TestParseJointType(t *testing.T) {
	for i := 0; i < JointCount; i++ {
		j := JointType(i)
		got, ok := ParseJointType(j.String())
		if !ok || got != j {
			t.Fatalf("expected %v to parse back, got %v ok=%v", j, got, ok)
		}
	}
	if _, ok := ParseJointType("tail"); ok {
		t.Fatalf("expected unknown joint to fail")
	}
	if RoleLeft.Joint() != HandLeft || RoleRight.Joint() != HandRight {
		t.Fatalf("unexpected hand joints")
	}
}
