package cpu

import (
	"context"
	"image/color"
	"image/draw"

	"github.com/vktec/slimecheck"
)

type Palette struct {
	Background, Slime color.Color
}

// DefaultPalette is a transparent background with slime chunks tinted the
// way map overlays usually show them.
var DefaultPalette = Palette{
	Background: color.RGBA{0, 0, 0, 0},
	Slime:      color.RGBA{60, 200, 20, 255},
}

// DrawArea draws slime chunks on an image, one pixel per chunk with the
// image's Y axis as Z. The search area comes from the image's Bounds.
// dst.Set is called concurrently for distinct pixels.
func (s *Scanner) DrawArea(ctx context.Context, dst draw.Image, worldSeed int64, p Palette) error {
	bounds := dst.Bounds()
	if bounds.Empty() {
		return nil
	}
	win := slimecheck.Window{
		X0: int32(bounds.Min.X), Z0: int32(bounds.Min.Y),
		X1: int32(bounds.Max.X - 1), Z1: int32(bounds.Max.Y - 1),
	}

	return s.run(ctx, win, World(worldSeed), func(_ context.Context, sec *Section) error {
		for z := int32(0); z < sec.H; z++ {
			for x := int32(0); x < sec.W; x++ {
				c := p.Background
				if sec.Get(x, z) {
					c = p.Slime
				}
				dst.Set(int(sec.X+x), int(sec.Z+z), c)
			}
		}
		return nil
	})
}
