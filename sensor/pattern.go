package sensor

import "github.com/milk9111/kinectninja/tracking"

// FillTestPattern paints a BGRA frame with a dark vertical gradient and a bright
// band that scrolls down one row-step per tick. The alpha byte is left at zero,
// as the camera does.
func FillTestPattern(pix []byte, desc tracking.FrameDescription, tick int) {
	w, h := desc.Width, desc.Height
	stride := w * 4
	if w <= 0 || h <= 0 || len(pix) < stride*h {
		return
	}

	band := (tick * 8) % h
	for y := 0; y < h; y++ {
		row := pix[y*stride : (y+1)*stride]

		shade := byte(24 + 48*y/h)
		b, g, r := shade+16, shade, byte(8)
		if d := y - band; d >= 0 && d < 24 {
			b, g, r = 90, 120, 60
		}

		if y > 0 && sameRow(pix[(y-1)*stride:y*stride], b, g, r) {
			copy(row, pix[(y-1)*stride:y*stride])
			continue
		}
		for x := 0; x < stride; x += 4 {
			row[x] = b
			row[x+1] = g
			row[x+2] = r
			row[x+3] = 0
		}
	}
}

func sameRow(prev []byte, b, g, r byte) bool {
	return prev[0] == b && prev[1] == g && prev[2] == r
}
