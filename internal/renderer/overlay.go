package renderer

import (
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// LoadFont parses a TrueType font file at the given point size.
func LoadFont(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// DrawTitle draws the title centred near the top of the background. It is
// baked onto the fitted background once, before frame production starts, so
// the per-frame cost is zero and the shared canvas stays immutable.
func DrawTitle(img *image.RGBA, face font.Face, title string) {
	if title == "" || face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	bounds, _ := d.BoundString(title)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	d.Dot = freetype.Pt((w-textWidth)/2, h/10)
	d.DrawString(title)
}
