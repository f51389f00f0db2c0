package audio

import (
	"math"
	"testing"
)

// TestTrack_Duration verifies the duration arithmetic.
func TestTrack_Duration(t *testing.T) {
	track := NewTrack(make([]float64, 44100*3), 44100)
	if d := track.Duration(); math.Abs(d-3.0) > 1e-12 {
		t.Errorf("Duration %.6f, expected 3.0", d)
	}
	if sr := track.SampleRate(); sr != 44100 {
		t.Errorf("SampleRate %d, expected 44100", sr)
	}
}

// TestReadMonoWindow_SameRate checks that reading at the native rate returns
// the underlying samples unchanged.
func TestReadMonoWindow_SameRate(t *testing.T) {
	const rate = 1000
	samples := make([]float64, rate)
	for i := range samples {
		samples[i] = float64(i)
	}
	track := NewTrack(samples, rate)

	out := track.ReadMonoWindow(0.1, 0.2, rate)
	if len(out) != 100 {
		t.Fatalf("Expected 100 samples, got %d", len(out))
	}
	for i, v := range out {
		if want := float64(100 + i); math.Abs(v-want) > 1e-9 {
			t.Fatalf("Sample %d is %.6f, expected %.6f", i, v, want)
		}
	}
}

// TestReadMonoWindow_Resample verifies length and interpolation when the
// analysis rate differs from the native rate.
func TestReadMonoWindow_Resample(t *testing.T) {
	const native = 1000
	samples := make([]float64, native)
	for i := range samples {
		samples[i] = float64(i) // a ramp interpolates exactly
	}
	track := NewTrack(samples, native)

	out := track.ReadMonoWindow(0, 0.5, 2000)
	if len(out) != 1000 {
		t.Fatalf("Expected 1000 samples at 2 kHz over 0.5 s, got %d", len(out))
	}
	// Upsampling a ramp by 2 yields half-steps.
	for i := 0; i < 900; i++ {
		if want := float64(i) / 2; math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("Sample %d is %.6f, expected %.6f", i, out[i], want)
		}
	}
	t.Logf("Resampled 500 native samples into %d at 2 kHz", len(out))
}

// TestReadMonoWindow_Bounds covers clipping and empty ranges.
func TestReadMonoWindow_Bounds(t *testing.T) {
	track := NewTrack(make([]float64, 1000), 1000)

	tests := []struct {
		name       string
		start, end float64
		sr         int
		wantEmpty  bool
	}{
		{"negative start clips", -0.5, 0.1, 1000, false},
		{"end past duration clips", 0.9, 5.0, 1000, false},
		{"inverted range", 0.5, 0.2, 1000, true},
		{"fully past end", 2.0, 3.0, 1000, true},
		{"zero sample rate", 0.1, 0.2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := track.ReadMonoWindow(tt.start, tt.end, tt.sr)
			if tt.wantEmpty && len(out) != 0 {
				t.Errorf("Expected empty window, got %d samples", len(out))
			}
			if !tt.wantEmpty && len(out) == 0 {
				t.Error("Expected samples, got empty window")
			}
		})
	}
}

// TestReadMonoWindow_LastSampleClamp verifies reads right at the track edge
// clamp to the final sample instead of indexing past it.
func TestReadMonoWindow_LastSampleClamp(t *testing.T) {
	samples := []float64{0, 0, 0, 0.9}
	track := NewTrack(samples, 4) // 1 second

	out := track.ReadMonoWindow(0.75, 1.0, 8)
	if len(out) == 0 {
		t.Fatal("Expected samples near the track end")
	}
	last := out[len(out)-1]
	if math.Abs(last-0.9) > 1e-9 {
		t.Errorf("Edge read %.6f, expected clamp to final sample 0.9", last)
	}
}
