package renderer

import (
	"image"
	"math"

	"github.com/glowspoke/glowspoke/internal/config"
)

// barExponent is the perceptual shaping constant applied to every level
// before it becomes a bar length.
const barExponent = 0.9

// baseRingAlpha is the fixed translucency of the base circle outline.
const baseRingAlpha = 160

// Ring renders normalized band levels as radial white bars composited over a
// background image. The background is shared read-only; every Render works on
// the Ring's private frame buffer. A Ring owns mutable scratch state and must
// not be shared between goroutines — each render worker creates its own.
type Ring struct {
	cfg   config.Settings
	bg    *image.RGBA
	frame *image.RGBA
}

// NewRing creates a renderer for the given settings and fitted background.
// A nil background renders over black.
func NewRing(cfg config.Settings, bg *image.RGBA) *Ring {
	r := &Ring{
		cfg:   cfg,
		bg:    bg,
		frame: image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}
	if bg == nil {
		r.bg = image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
		for i := 3; i < len(r.bg.Pix); i += 4 {
			r.bg.Pix[i] = 0xff
		}
	}
	return r
}

// BarLength returns the bar length in pixels for a normalized level,
// following the power law h = min + extra·clamp(level,0,1)^0.9.
func BarLength(level, minLen, maxExtra float64) float64 {
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	return minLen + maxExtra*math.Pow(level, barExponent)
}

// GlowSchedule returns per-pass line widths and alphas for passes 1..n,
// outermost first: width grows by expand per pass while alpha falls linearly
// from baseAlpha towards baseAlpha/n. With n <= 0 both slices are empty.
func GlowSchedule(thickness, n, expand int, baseAlpha uint8) (widths []int, alphas []uint8) {
	for i := 1; i <= n; i++ {
		widths = append(widths, thickness+i*expand)
		a := int(float64(baseAlpha) * (1 - float64(i-1)/float64(n)))
		if a < 0 {
			a = 0
		}
		alphas = append(alphas, uint8(a))
	}
	return widths, alphas
}

// Render draws one frame of band levels and returns the Ring's internal
// buffer. The slice behind the returned image is reused by the next Render
// call. Compositing order: background copy, base circle, glow passes from
// widest to narrowest, then the sharp pass at full opacity.
func (r *Ring) Render(levels []float64) *image.RGBA {
	copy(r.frame.Pix, r.bg.Pix)

	cfg := r.cfg
	if cfg.BaseRingOn && cfg.BaseRingWidth > 0 {
		r.strokeCircle(cfg.CenterX, cfg.CenterY, cfg.BaseRadius, cfg.BaseRingWidth, baseRingAlpha)
	}

	if cfg.GlowOn && cfg.GlowPasses > 0 {
		widths, alphas := GlowSchedule(cfg.BarThickness, cfg.GlowPasses, cfg.GlowExpand, cfg.GlowAlpha)
		for p := range widths {
			r.drawSpokes(levels, widths[p], alphas[p])
		}
	}

	r.drawSpokes(levels, cfg.BarThickness, 0xff)
	return r.frame
}

// drawSpokes draws every band's bar once at the given line width and alpha.
func (r *Ring) drawSpokes(levels []float64, width int, alpha uint8) {
	if len(levels) == 0 || alpha == 0 {
		return
	}
	cfg := r.cfg
	step := 2 * math.Pi / float64(len(levels))
	for i, level := range levels {
		theta := float64(i) * step
		sin, cos := math.Sincos(theta)
		h := BarLength(level, cfg.BarMinLength, cfg.BarMaxExtraLength)
		x0 := cfg.CenterX + cfg.BaseRadius*cos
		y0 := cfg.CenterY + cfg.BaseRadius*sin
		x1 := cfg.CenterX + (cfg.BaseRadius+h)*cos
		y1 := cfg.CenterY + (cfg.BaseRadius+h)*sin
		r.drawLine(x0, y0, x1, y1, width, alpha)
	}
}

// drawLine rasterizes a thick segment as a capsule: every pixel whose centre
// lies within width/2 of the segment is blended exactly once, so a single
// draw never double-composites its own pixels.
func (r *Ring) drawLine(x0, y0, x1, y1 float64, width int, alpha uint8) {
	if width < 1 {
		width = 1
	}
	half := float64(width) / 2

	minX := int(math.Floor(math.Min(x0, x1) - half))
	maxX := int(math.Ceil(math.Max(x0, x1) + half))
	minY := int(math.Floor(math.Min(y0, y1) - half))
	maxY := int(math.Ceil(math.Max(y0, y1) + half))

	dx := x1 - x0
	dy := y1 - y0
	lenSq := dx*dx + dy*dy
	rSq := half * half

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5

			t := 0.0
			if lenSq > 0 {
				t = ((px-x0)*dx + (py-y0)*dy) / lenSq
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
			}
			ddx := px - (x0 + t*dx)
			ddy := py - (y0 + t*dy)
			if ddx*ddx+ddy*ddy <= rSq {
				r.blendWhite(x, y, alpha)
			}
		}
	}
}

// strokeCircle blends a circle outline of the given line width.
func (r *Ring) strokeCircle(cx, cy, radius float64, width int, alpha uint8) {
	half := float64(width) / 2
	outer := radius + half

	minX := int(math.Floor(cx - outer))
	maxX := int(math.Ceil(cx + outer))
	minY := int(math.Floor(cy - outer))
	maxY := int(math.Ceil(cy + outer))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if math.Abs(d-radius) <= half {
				r.blendWhite(x, y, alpha)
			}
		}
	}
}

// blendWhite composites white at the given alpha over one frame pixel.
func (r *Ring) blendWhite(x, y int, alpha uint8) {
	if x < 0 || y < 0 || x >= r.cfg.Width || y >= r.cfg.Height {
		return
	}
	o := y*r.frame.Stride + x*4
	a := uint32(alpha)
	inv := 255 - a
	pix := r.frame.Pix
	pix[o] = uint8((255*a + uint32(pix[o])*inv) / 255)
	pix[o+1] = uint8((255*a + uint32(pix[o+1])*inv) / 255)
	pix[o+2] = uint8((255*a + uint32(pix[o+2])*inv) / 255)
	pix[o+3] = 0xff
}
