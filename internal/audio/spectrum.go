package audio

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyzer computes one-sided magnitude spectra of real signals. FFT plans
// are cached per window length, since every frame away from the track edges
// uses the nominal window size. An Analyzer is not safe for concurrent use;
// each render worker owns its own.
type Analyzer struct {
	plans map[int]*fourier.FFT
}

// NewAnalyzer returns an Analyzer with an empty plan cache.
func NewAnalyzer() *Analyzer {
	return &Analyzer{plans: make(map[int]*fourier.FFT)}
}

// MagnitudeSpectrum returns paired frequency and magnitude slices of length
// n/2+1 for a signal sampled at sr Hz. A signal of one sample or fewer
// produces a single zero bin.
func (a *Analyzer) MagnitudeSpectrum(sig []float64, sr int) (freqs, mags []float64) {
	n := len(sig)
	if n <= 1 {
		return []float64{0}, []float64{0}
	}

	plan, ok := a.plans[n]
	if !ok {
		plan = fourier.NewFFT(n)
		a.plans[n] = plan
	}

	coeffs := plan.Coefficients(nil, sig)
	freqs = make([]float64, len(coeffs))
	mags = make([]float64, len(coeffs))
	binWidth := float64(sr) / float64(n)
	for i, c := range coeffs {
		freqs[i] = float64(i) * binWidth
		mags[i] = cmplx.Abs(c)
	}
	return freqs, mags
}
