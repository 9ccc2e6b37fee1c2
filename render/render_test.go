package render

import (
	"bytes"
	"testing"

	"github.com/milk9111/kinectninja/game"
	"github.com/milk9111/kinectninja/tracking"
)

func TestSwizzleBGRA(t *testing.T) {
	cases := []struct {
		name string
		src  []byte
		dst  int
		want []byte
	}{
		{"one_pixel", []byte{1, 2, 3, 0}, 4, []byte{3, 2, 1, 0xff}},
		{"two_pixels", []byte{10, 20, 30, 40, 50, 60, 70, 80}, 8, []byte{30, 20, 10, 0xff, 70, 60, 50, 0xff}},
		{"short_dst", []byte{1, 2, 3, 0, 4, 5, 6, 0}, 4, []byte{3, 2, 1, 0xff}},
		{"partial_pixel", []byte{1, 2, 3, 0, 9, 9}, 8, []byte{3, 2, 1, 0xff, 0, 0, 0, 0}},
		{"empty", nil, 0, []byte{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dst := make([]byte, c.dst)
			SwizzleBGRA(dst, c.src)
			if !bytes.Equal(dst, c.want) {
				t.Fatalf("SwizzleBGRA(%v) = %v, want %v", c.src, dst, c.want)
			}
		})
	}
}

func TestOverlayKeepsLastCommands(t *testing.T) {
	o := NewOverlay(tracking.FrameDescription{Width: 64, Height: 48, BytesPerPixel: 4})
	if o.Latest() != nil {
		t.Fatalf("expected no commands yet")
	}

	first := &game.RenderCommands{Width: 64, Height: 48, Score: 1}
	o.Present(first)
	o.Present(nil)
	if o.Latest() != first {
		t.Fatalf("expected nil present to keep the previous overlay")
	}

	second := &game.RenderCommands{Width: 64, Height: 48, Score: 2}
	o.Present(second)
	if o.Latest() != second {
		t.Fatalf("expected latest commands replaced")
	}

	o.Backdrop(nil)
	o.Backdrop(&tracking.ColorFrame{Description: tracking.FrameDescription{Width: 4, Height: 4}, Pixels: make([]byte, 8)})
	if o.backdrop != nil {
		t.Fatalf("expected short frames to be ignored")
	}
}

func TestScoreLabel(t *testing.T) {
	if got := scoreLabel(12); got != "Score: 12" {
		t.Fatalf("unexpected label %q", got)
	}
}
