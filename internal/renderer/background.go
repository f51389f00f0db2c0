package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"golang.org/x/image/draw"

	_ "image/jpeg"
	_ "image/png"
)

// FitMode selects how a source image is fitted to the canvas.
type FitMode string

const (
	// FitCover scales the image to fill the canvas and crops the overflow.
	FitCover FitMode = "cover"
	// FitContain scales the image to fit inside the canvas and letterboxes
	// the remainder with black.
	FitContain FitMode = "contain"
)

// ParseFitMode converts a CLI string into a FitMode.
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(s) {
	case FitCover, FitContain:
		return FitMode(s), nil
	default:
		return "", fmt.Errorf("unknown fit mode %q (want cover or contain)", s)
	}
}

// LoadBackground decodes a PNG or JPEG file and fits it to w×h.
func LoadBackground(path string, w, h int, mode FitMode) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding background image %s: %w", path, err)
	}
	return FitImage(src, w, h, mode), nil
}

// FitImage scales src onto a w×h canvas, preserving its aspect ratio. Cover
// fills the canvas and centre-crops; contain letterboxes on black. Scaling
// uses Catmull-Rom resampling.
func FitImage(src image.Image, w, h int, mode FitMode) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	sb := src.Bounds()
	srcRatio := float64(sb.Dx()) / float64(sb.Dy())
	targetRatio := float64(w) / float64(h)

	var newW, newH int
	switch {
	case mode == FitContain && srcRatio > targetRatio,
		mode == FitCover && srcRatio < targetRatio:
		newW = w
		newH = int(math.Round(float64(w) / srcRatio))
	default:
		newH = h
		newW = int(math.Round(float64(h) * srcRatio))
	}

	// Centred in both modes; for cover the rectangle extends past the
	// canvas and the scaler clips it, which is the crop.
	x := (w - newW) / 2
	y := (h - newH) / 2
	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+newW, y+newH), src, sb, draw.Src, nil)
	return dst
}
