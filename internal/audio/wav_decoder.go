package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder implements Decoder for PCM WAV files.
type WAVDecoder struct {
	decoder  *wav.Decoder
	file     *os.File
	rate     int
	channels int
	scale    float64 // 1 / max sample value for the bit depth
}

// NewWAVDecoder opens a WAV file and positions the reader at the PCM data.
func NewWAVDecoder(path string) (*WAVDecoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("seeking to PCM data: %w", err)
	}

	return &WAVDecoder{
		decoder:  dec,
		file:     f,
		rate:     int(dec.SampleRate),
		channels: int(dec.NumChans),
		scale:    1 / float64(goaudio.IntMaxSignedValue(int(dec.BitDepth))),
	}, nil
}

// ReadChunk reads up to numSamples mono samples, averaging channels.
func (d *WAVDecoder) ReadChunk(numSamples int) ([]float64, error) {
	buf := &goaudio.IntBuffer{
		Data: make([]int, numSamples*d.channels),
		Format: &goaudio.Format{
			NumChannels: d.channels,
			SampleRate:  d.rate,
		},
	}

	n, err := d.decoder.PCMBuffer(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading PCM buffer: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	if d.channels == 1 {
		samples := make([]float64, n)
		for i := 0; i < n; i++ {
			samples[i] = float64(buf.Data[i]) * d.scale
		}
		return samples, nil
	}

	// Interleaved multichannel: average each frame down to one sample.
	frames := n / d.channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < d.channels; ch++ {
			sum += float64(buf.Data[i*d.channels+ch]) * d.scale
		}
		samples[i] = sum / float64(d.channels)
	}
	return samples, nil
}

// SampleRate returns the native sample rate.
func (d *WAVDecoder) SampleRate() int {
	return d.rate
}

// NumChannels returns the channel count of the source file.
func (d *WAVDecoder) NumChannels() int {
	return d.channels
}

// Close closes the underlying file.
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
