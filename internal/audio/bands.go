package audio

import (
	"math"
	"sort"
)

// Fixed constants of the visual style: the peak-normalization guard and the
// moving-average width that stops adjacent spokes flickering.
const (
	normEpsilon = 1e-8
	smoothWidth = 9
)

// BandEdges returns bands+1 strictly increasing frequency boundaries,
// geometrically spaced between low and high. The cutoffs are clamped so that
// the top edge stays below Nyquist and the bottom edge stays at or above
// 1 Hz; the result is always a valid monotonic sequence.
func BandEdges(sampleRate, low, high float64, bands int) []float64 {
	nyquist := sampleRate / 2
	hi := math.Min(high, nyquist-1)
	lo := math.Max(1, math.Min(low, hi-1))
	if hi <= lo {
		hi = lo + 1
	}

	edges := make([]float64, bands+1)
	logRatio := math.Log(hi / lo)
	for i := range edges {
		edges[i] = lo * math.Exp(logRatio*float64(i)/float64(bands))
	}
	return edges
}

// AggregateBands folds a magnitude spectrum into one normalized level per
// band. Bin magnitudes are summed into the band whose edges bracket their
// frequency, compressed with log1p, smoothed with a centred moving average
// when there are enough bands, and divided by the peak. Output values are in
// [0, 1]; a spectrum with no bins inside the configured range yields all
// zeros.
func AggregateBands(freqs, mags, edges []float64) []float64 {
	bands := len(edges) - 1
	out := make([]float64, bands)

	hit := false
	for k, f := range freqs {
		if f < edges[0] || f > edges[bands] {
			continue
		}
		hit = true
		// Band i covers edges[i] < f <= edges[i+1].
		idx := sort.Search(len(edges), func(i int) bool { return edges[i] > f }) - 1
		if idx < 0 {
			idx = 0
		} else if idx > bands-1 {
			idx = bands - 1
		}
		out[idx] += mags[k]
	}
	if !hit {
		return out
	}

	for i := range out {
		out[i] = math.Log1p(out[i])
	}

	if bands >= smoothWidth {
		out = movingAverage(out, smoothWidth)
	}

	var peak float64
	for _, v := range out {
		if v > peak {
			peak = v
		}
	}
	if peak > normEpsilon {
		for i := range out {
			out[i] /= peak
		}
	}
	return out
}

// movingAverage applies a centred box filter with edge-replicated padding so
// the output length matches the input.
func movingAverage(in []float64, width int) []float64 {
	pad := width / 2
	padded := make([]float64, len(in)+2*pad)
	for i := 0; i < pad; i++ {
		padded[i] = in[0]
		padded[len(padded)-1-i] = in[len(in)-1]
	}
	copy(padded[pad:], in)

	out := make([]float64, len(in))
	inv := 1 / float64(width)
	for i := range out {
		var sum float64
		for j := 0; j < width; j++ {
			sum += padded[i+j]
		}
		out[i] = sum * inv
	}
	return out
}
