package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements Decoder for FLAC files.
type FLACDecoder struct {
	stream   *flac.Stream
	file     *os.File
	rate     int
	channels int
	scale    float64

	// Samples decoded from the current FLAC frame but not yet handed out.
	pending []float64
}

// NewFLACDecoder opens a FLAC file and reads its StreamInfo block.
func NewFLACDecoder(path string) (*FLACDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating FLAC decoder: %w", err)
	}

	info := stream.Info
	return &FLACDecoder{
		stream:   stream,
		file:     f,
		rate:     int(info.SampleRate),
		channels: int(info.NChannels),
		scale:    1 / float64(int64(1)<<(info.BitsPerSample-1)),
	}, nil
}

// ReadChunk reads up to numSamples mono samples, averaging channels.
func (d *FLACDecoder) ReadChunk(numSamples int) ([]float64, error) {
	for len(d.pending) < numSamples {
		frame, err := d.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("parsing FLAC frame: %w", err)
		}

		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			var sum float64
			for _, sub := range frame.Subframes {
				sum += float64(sub.Samples[i]) * d.scale
			}
			d.pending = append(d.pending, sum/float64(len(frame.Subframes)))
		}
	}

	if len(d.pending) == 0 {
		return nil, io.EOF
	}
	if numSamples > len(d.pending) {
		numSamples = len(d.pending)
	}
	samples := make([]float64, numSamples)
	copy(samples, d.pending[:numSamples])
	d.pending = d.pending[numSamples:]
	return samples, nil
}

// SampleRate returns the native sample rate.
func (d *FLACDecoder) SampleRate() int {
	return d.rate
}

// NumChannels returns the channel count of the source file.
func (d *FLACDecoder) NumChannels() int {
	return d.channels
}

// Close closes the stream and the underlying file.
func (d *FLACDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
