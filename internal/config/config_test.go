package config

import (
	"math"
	"testing"
)

// TestDefault verifies the shipped 4K profile.
func TestDefault(t *testing.T) {
	s := Default()

	if s.Width != 3840 || s.Height != 2160 {
		t.Errorf("Default size %dx%d, expected 3840x2160", s.Width, s.Height)
	}
	if s.FPS != 60 {
		t.Errorf("Default FPS %d, expected 60", s.FPS)
	}
	if s.Bands != 360 {
		t.Errorf("Default bands %d, expected 360", s.Bands)
	}
	if s.CenterX != 1920 {
		t.Errorf("CenterX %.1f, expected 1920", s.CenterX)
	}
	if want := 2160.0 / 2.5; math.Abs(s.CenterY-want) > 1e-9 {
		t.Errorf("CenterY %.1f, expected %.1f", s.CenterY, want)
	}
	if s.GlowOn {
		t.Error("Glow should default to off")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Default settings must validate: %v", err)
	}
}

// TestWithSize verifies the centre is re-derived from the new dimensions.
func TestWithSize(t *testing.T) {
	s := Default().WithSize(1280, 720)

	if s.Width != 1280 || s.Height != 720 {
		t.Fatalf("Size %dx%d, expected 1280x720", s.Width, s.Height)
	}
	if s.CenterX != 640 {
		t.Errorf("CenterX %.1f, expected 640", s.CenterX)
	}
	if want := 720.0 / 2.5; math.Abs(s.CenterY-want) > 1e-9 {
		t.Errorf("CenterY %.1f, expected %.1f", s.CenterY, want)
	}
	// Other knobs survive the resize.
	if s.Bands != 360 || s.BaseRadius != 220 {
		t.Error("WithSize must not disturb unrelated settings")
	}
}

// TestValidate walks the rejection table.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"zero width", func(s *Settings) { s.Width = 0 }, true},
		{"negative height", func(s *Settings) { s.Height = -1 }, true},
		{"zero fps", func(s *Settings) { s.FPS = 0 }, true},
		{"zero bands", func(s *Settings) { s.Bands = 0 }, true},
		{"sample rate too low", func(s *Settings) { s.SampleRate = 2 }, true},
		{"zero window", func(s *Settings) { s.WindowSec = 0 }, true},
		{"cutoffs unchecked", func(s *Settings) { s.LowHz = 99999; s.HighHz = 1 }, false},
		{"one band allowed", func(s *Settings) { s.Bands = 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
