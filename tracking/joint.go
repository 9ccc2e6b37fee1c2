package tracking

import "fmt"

// JointType identifies a skeletal joint reported by the body tracker.
type JointType int

const (
	SpineBase JointType = iota
	SpineMid
	Neck
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight
	SpineShoulder
	HandTipLeft
	ThumbLeft
	HandTipRight
	ThumbRight

	JointCount int = iota
)

var jointNames = [...]string{
	SpineBase:     "spine_base",
	SpineMid:      "spine_mid",
	Neck:          "neck",
	Head:          "head",
	ShoulderLeft:  "shoulder_left",
	ElbowLeft:     "elbow_left",
	WristLeft:     "wrist_left",
	HandLeft:      "hand_left",
	ShoulderRight: "shoulder_right",
	ElbowRight:    "elbow_right",
	WristRight:    "wrist_right",
	HandRight:     "hand_right",
	HipLeft:       "hip_left",
	KneeLeft:      "knee_left",
	AnkleLeft:     "ankle_left",
	FootLeft:      "foot_left",
	HipRight:      "hip_right",
	KneeRight:     "knee_right",
	AnkleRight:    "ankle_right",
	FootRight:     "foot_right",
	SpineShoulder: "spine_shoulder",
	HandTipLeft:   "hand_tip_left",
	ThumbLeft:     "thumb_left",
	HandTipRight:  "hand_tip_right",
	ThumbRight:    "thumb_right",
}

func (j JointType) String() string {
	if j < 0 || int(j) >= len(jointNames) {
		return fmt.Sprintf("joint(%d)", int(j))
	}
	return jointNames[j]
}

// ParseJointType resolves a snake_case joint name as used by hand scripts.
func ParseJointType(name string) (JointType, bool) {
	for i, n := range jointNames {
		if n == name {
			return JointType(i), true
		}
	}
	return 0, false
}

// TrackingState is the per-joint confidence reported by the tracker.
type TrackingState uint8

const (
	NotTracked TrackingState = iota
	Inferred
	Tracked
)

// CameraSpacePoint is a 3D position in meters, sensor at the origin, +Y up, +Z away
// from the sensor.
type CameraSpacePoint struct {
	X, Y, Z float64
}

// ColorSpacePoint is a 2D pixel position in the color frame.
type ColorSpacePoint struct {
	X, Y float64
}

type Joint struct {
	Type          JointType
	Position      CameraSpacePoint
	TrackingState TrackingState
}

// Body is one skeleton slot of a body frame. Slots that are not tracked carry
// stale or zero joints and must be ignored.
type Body struct {
	IsTracked  bool
	TrackingID uint64
	Joints     map[JointType]Joint
}

// Joint returns the joint of type t and whether the body reported it.
func (b *Body) Joint(t JointType) (Joint, bool) {
	if b == nil || b.Joints == nil {
		return Joint{}, false
	}
	j, ok := b.Joints[t]
	return j, ok
}

// HandRole tags which hand a TrackedPoint came from.
type HandRole uint8

const (
	RoleLeft HandRole = iota
	RoleRight
)

func (r HandRole) String() string {
	if r == RoleLeft {
		return "left"
	}
	return "right"
}

// Joint returns the skeletal joint that backs the role.
func (r HandRole) Joint() JointType {
	if r == RoleLeft {
		return HandLeft
	}
	return HandRight
}

// TrackedPoint is a hand position for a single frame, before and after mapping.
type TrackedPoint struct {
	Camera CameraSpacePoint
	Screen ColorSpacePoint
	Role   HandRole
}
