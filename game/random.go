package game

import "math/rand/v2"

// RandomSource supplies the coin flips used to pick a launch side.
type RandomSource interface {
	Bool() bool
}

// RandomFunc lets a plain function serve as a RandomSource.
type RandomFunc func() bool

func (fn RandomFunc) Bool() bool { return fn() }

type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a seeded, reproducible source.
func NewRandomSource(seed uint64) RandomSource {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) Bool() bool {
	return s.rng.IntN(2) == 1
}

// ChooseLaunchSide flips r once. true throws from the right.
func ChooseLaunchSide(r RandomSource) LaunchSide {
	if r.Bool() {
		return LaunchRight
	}
	return LaunchLeft
}
