package audio

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// minWindowSec is the floor used to rescue a degenerate analysis window when
// the frame interval would be even shorter.
const minWindowSec = 0.01

// ExtractWindow returns the Hann-tapered mono samples for the analysis window
// of winSec seconds centred on timestamp t, resampled to sr. The window is
// clipped to the track bounds; a degenerate range is extended by at least one
// frame interval, and a range that still yields nothing falls back to a
// zero-filled window of the nominal length. Neither case is an error.
func ExtractWindow(track *Track, t, winSec float64, sr, fps int) []float64 {
	half := winSec / 2
	start := math.Max(0, t-half)
	end := math.Min(track.Duration(), t+half)
	if end <= start {
		end = math.Min(track.Duration(), start+math.Max(1/float64(fps), minWindowSec))
	}

	sig := track.ReadMonoWindow(start, end, sr)
	if len(sig) == 0 {
		return make([]float64, int(float64(sr)*winSec))
	}
	if len(sig) > 1 {
		window.Hann(sig)
	}
	return sig
}
