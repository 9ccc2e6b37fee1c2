package game

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCheckCollision(t *testing.T) {
	p := Projectile{Position: cp.Vector{X: 100, Y: 100}, Radius: 70}

	cases := []struct {
		name string
		hand cp.Vector
		want bool
	}{
		{"center", cp.Vector{X: 100, Y: 100}, true},
		{"inside", cp.Vector{X: 150, Y: 100}, true},
		{"diagonal_inside", cp.Vector{X: 140, Y: 140}, true},
		{"on_rim_x", cp.Vector{X: 170, Y: 100}, false},
		{"on_rim_y", cp.Vector{X: 100, Y: 30}, false},
		{"on_rim_345", cp.Vector{X: 100 + 42, Y: 100 + 56}, false},
		{"just_inside_rim", cp.Vector{X: 169.999, Y: 100}, true},
		{"outside", cp.Vector{X: 200, Y: 200}, false},
		{"off_screen_hand_far", cp.Vector{X: -10, Y: 100}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CheckCollision(c.hand, p); got != c.want {
				t.Fatalf("CheckCollision(%v) = %v, want %v", c.hand, got, c.want)
			}
		})
	}
}

func TestCheckCollisionOffScreenHand(t *testing.T) {
	p := Projectile{Position: cp.Vector{X: 30, Y: 100}, Radius: 70}

	if !CheckCollision(cp.Vector{X: -10, Y: 100}, p) {
		t.Fatalf("expected a hand left of the frame to hit a projectile near the edge")
	}
	if CheckCollision(cp.Vector{X: -40, Y: 100}, p) {
		t.Fatalf("expected a hand exactly one radius away to miss")
	}
}

func TestLaunchMirrorsVelocity(t *testing.T) {
	tun := DefaultTuning()

	left := Launch(LaunchLeft, 640, 480, tun)
	if left.Position != (cp.Vector{X: 0, Y: 480}) || left.Velocity != (cp.Vector{X: 15, Y: -30}) {
		t.Fatalf("unexpected left launch %+v", left)
	}

	right := Launch(LaunchRight, 640, 480, tun)
	if right.Position != (cp.Vector{X: 640, Y: 480}) || right.Velocity != (cp.Vector{X: -15, Y: -30}) {
		t.Fatalf("unexpected right launch %+v", right)
	}

	if left.Radius != 70 || right.Radius != 70 {
		t.Fatalf("expected radius 70, got %v and %v", left.Radius, right.Radius)
	}
}

func TestChooseLaunchSide(t *testing.T) {
	if ChooseLaunchSide(RandomFunc(func() bool { return true })) != LaunchRight {
		t.Fatalf("expected true to launch right")
	}
	if ChooseLaunchSide(RandomFunc(func() bool { return false })) != LaunchLeft {
		t.Fatalf("expected false to launch left")
	}
}
