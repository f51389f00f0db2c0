package config

import "fmt"

// Settings holds every knob for one render run. It is built once in main,
// validated, and then passed by value into the components that need it;
// nothing in the pipeline reads mutable global state.
type Settings struct {
	// Output video
	Width        int
	Height       int
	FPS          int
	VideoBitrate string
	AudioBitrate string

	// Ring geometry. The centre defaults to (Width/2, Height/2.5) so the
	// ring sits slightly above the middle of the frame.
	CenterX           float64
	CenterY           float64
	BaseRadius        float64
	Bands             int
	BarThickness      int
	BarMinLength      float64
	BarMaxExtraLength float64

	// Base circle beneath the bars
	BaseRingOn    bool
	BaseRingWidth int

	// Glow: wider, more transparent redraws beneath the sharp pass
	GlowOn     bool
	GlowPasses int
	GlowAlpha  uint8 // alpha of the outermost-but-one pass, fades per pass
	GlowExpand int   // extra line width added per glow pass

	// Audio analysis
	WindowSec  float64 // analysis window per frame, seconds
	LowHz      float64
	HighHz     float64
	SampleRate int // analysis resample rate
}

// Default returns the settings for a 4K 60 fps render, matching the visual
// style the tool shipped with: a 220 px ring of 360 white spokes analysed
// over 30 Hz to 12 kHz.
func Default() Settings {
	s := Settings{
		Width:        3840,
		Height:       2160,
		FPS:          60,
		VideoBitrate: "12M",
		AudioBitrate: "192k",

		BaseRadius:        220,
		Bands:             360,
		BarThickness:      2,
		BarMinLength:      4,
		BarMaxExtraLength: 70,

		BaseRingOn:    true,
		BaseRingWidth: 1,

		GlowOn:     false,
		GlowPasses: 3,
		GlowAlpha:  80,
		GlowExpand: 2,

		WindowSec:  0.10,
		LowHz:      30,
		HighHz:     12000,
		SampleRate: 44100,
	}
	return s.WithSize(s.Width, s.Height)
}

// WithSize returns a copy resized to w×h with the ring centre re-derived.
func (s Settings) WithSize(w, h int) Settings {
	s.Width = w
	s.Height = h
	s.CenterX = float64(w) / 2
	s.CenterY = float64(h) / 2.5
	return s
}

// Validate rejects settings no render could satisfy. Frequency cutoffs are
// deliberately not checked here; the band edge calculator clamps them.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", s.Width, s.Height)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("invalid frame rate: %d", s.FPS)
	}
	if s.Bands < 1 {
		return fmt.Errorf("invalid band count: %d", s.Bands)
	}
	if s.SampleRate <= 2 {
		return fmt.Errorf("invalid analysis sample rate: %d", s.SampleRate)
	}
	if s.WindowSec <= 0 {
		return fmt.Errorf("invalid analysis window: %gs", s.WindowSec)
	}
	return nil
}
