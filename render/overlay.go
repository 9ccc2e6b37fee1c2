// Package render draws the game with ebiten.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/kinectninja/game"
	"github.com/milk9111/kinectninja/tracking"
)

// Overlay keeps the latest camera image and render commands and draws them. It
// satisfies dispatch.Sink and must be used from the ebiten goroutine.
type Overlay struct {
	desc tracking.FrameDescription

	latest   *game.RenderCommands
	backdrop *ebiten.Image
	rgba     []byte

	// Dim darkens the camera image so the markers stand out. Zero leaves it as is.
	Dim float64
}

func NewOverlay(desc tracking.FrameDescription) *Overlay {
	return &Overlay{desc: desc, Dim: 0.25}
}

// Present replaces the commands drawn from now on. A nil step never reaches
// here, so a dropped frame keeps the previous overlay on screen.
func (o *Overlay) Present(cmds *game.RenderCommands) {
	if cmds == nil {
		return
	}
	o.latest = cmds
}

func (o *Overlay) Latest() *game.RenderCommands { return o.latest }

// Backdrop copies a BGRA camera frame into the backdrop image.
func (o *Overlay) Backdrop(frame *tracking.ColorFrame) {
	if frame == nil {
		return
	}
	d := frame.Description
	if d.Width <= 0 || d.Height <= 0 || len(frame.Pixels) < d.Width*d.Height*4 {
		return
	}

	if o.backdrop == nil || o.backdrop.Bounds().Dx() != d.Width || o.backdrop.Bounds().Dy() != d.Height {
		if o.backdrop != nil {
			o.backdrop.Deallocate()
		}
		o.backdrop = ebiten.NewImage(d.Width, d.Height)
		o.rgba = make([]byte, d.Width*d.Height*4)
	}

	SwizzleBGRA(o.rgba, frame.Pixels)
	o.backdrop.WritePixels(o.rgba)
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())

	if o.backdrop != nil {
		op := &ebiten.DrawImageOptions{}
		bw := float64(o.backdrop.Bounds().Dx())
		bh := float64(o.backdrop.Bounds().Dy())
		op.GeoM.Scale(sw/bw, sh/bh)
		if o.Dim > 0 {
			op.ColorScale.Scale(float32(1-o.Dim), float32(1-o.Dim), float32(1-o.Dim), 1)
		}
		screen.DrawImage(o.backdrop, op)
	}

	cmds := o.latest
	if cmds == nil || cmds.Width <= 0 || cmds.Height <= 0 {
		return
	}
	sx := sw / cmds.Width
	sy := sh / cmds.Height

	for _, m := range cmds.Markers {
		drawCircle(screen, m, sx, sy)
	}
	if cmds.Projectile != nil {
		drawCircle(screen, *cmds.Projectile, sx, sy)
	}
}

func drawCircle(screen *ebiten.Image, c game.Circle, sx, sy float64) {
	r := c.Radius * min(sx, sy)
	vector.DrawFilledCircle(screen, float32(c.Center.X*sx), float32(c.Center.Y*sy), float32(r), c.Color, true)
}
