package audio

import (
	"fmt"
	"io"
	"math"
)

const loadChunkSize = 8192

// Track is an immutable mono view of a whole audio file. It is loaded once at
// startup and shared read-only across render workers; every accessor is safe
// for concurrent use.
type Track struct {
	samples []float64
	rate    int
}

// LoadTrack decodes the file into memory via the decoder matching its
// extension. A track with no samples is a configuration error.
func LoadTrack(path string) (*Track, error) {
	dec, err := OpenDecoder(path)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var samples []float64
	for {
		chunk, err := dec.ReadChunk(loadChunkSize)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		samples = append(samples, chunk...)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("audio track %s has no duration", path)
	}
	return &Track{samples: samples, rate: dec.SampleRate()}, nil
}

// NewTrack wraps already-decoded mono samples. Used by tests and callers that
// synthesize signals.
func NewTrack(samples []float64, rate int) *Track {
	return &Track{samples: samples, rate: rate}
}

// Duration returns the track length in seconds.
func (t *Track) Duration() float64 {
	return float64(len(t.samples)) / float64(t.rate)
}

// SampleRate returns the native sample rate.
func (t *Track) SampleRate() int {
	return t.rate
}

// ReadMonoWindow returns the signal over [start, end) seconds resampled to sr
// via linear interpolation. The range is clipped to the track bounds, so the
// result may be shorter than requested near the edges and is empty when the
// range lies wholly outside the track.
func (t *Track) ReadMonoWindow(start, end float64, sr int) []float64 {
	if start < 0 {
		start = 0
	}
	if d := t.Duration(); end > d {
		end = d
	}
	if end <= start || sr <= 0 {
		return nil
	}

	n := int(math.Round((end - start) * float64(sr)))
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	step := float64(t.rate) / float64(sr)
	base := start * float64(t.rate)
	for i := range out {
		pos := base + float64(i)*step
		j := int(pos)
		if j >= len(t.samples)-1 {
			out[i] = t.samples[len(t.samples)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = t.samples[j]*(1-frac) + t.samples[j+1]*frac
	}
	return out
}
