package tracking

import "math"

// CoordinateMapper projects camera-space joints into the color frame. Implementations
// must be pure and total: any finite point maps to a finite point.
type CoordinateMapper interface {
	MapCameraPointToColorSpace(p CameraSpacePoint) ColorSpacePoint
}

// MapperFunc lets a plain function serve as a CoordinateMapper.
type MapperFunc func(p CameraSpacePoint) ColorSpacePoint

func (fn MapperFunc) MapCameraPointToColorSpace(p CameraSpacePoint) ColorSpacePoint {
	return fn(p)
}

const (
	// MinDepth keeps the projection finite for points at or behind the sensor.
	MinDepth = 0.05

	// colorFOVDegrees is the horizontal field of view of the Kinect v2 color camera.
	colorFOVDegrees = 84.1
)

// PinholeMapper is an ideal pinhole camera with no lens distortion.
type PinholeMapper struct {
	FocalX, FocalY   float64
	CenterX, CenterY float64
}

// DefaultPinholeMapper derives intrinsics for a color frame of the given size.
func DefaultPinholeMapper(desc FrameDescription) PinholeMapper {
	w := float64(desc.Width)
	h := float64(desc.Height)
	f := (w / 2) / math.Tan(colorFOVDegrees*math.Pi/360)
	return PinholeMapper{
		FocalX:  f,
		FocalY:  f,
		CenterX: w / 2,
		CenterY: h / 2,
	}
}

func (m PinholeMapper) MapCameraPointToColorSpace(p CameraSpacePoint) ColorSpacePoint {
	z := p.Z
	if !(z >= MinDepth) {
		z = MinDepth
	}
	x := finite(p.X)
	y := finite(p.Y)
	return ColorSpacePoint{
		X: m.CenterX + m.FocalX*x/z,
		Y: m.CenterY - m.FocalY*y/z,
	}
}

// Unproject returns the camera-space point at depth z that maps onto p.
func (m PinholeMapper) Unproject(p ColorSpacePoint, z float64) CameraSpacePoint {
	if !(z >= MinDepth) {
		z = MinDepth
	}
	fx, fy := m.FocalX, m.FocalY
	if fx == 0 || fy == 0 {
		return CameraSpacePoint{Z: z}
	}
	return CameraSpacePoint{
		X: (p.X - m.CenterX) * z / fx,
		Y: (m.CenterY - p.Y) * z / fy,
		Z: z,
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
