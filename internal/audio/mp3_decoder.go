package audio

import (
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// MP3Decoder implements Decoder for MP3 files. go-mp3 always emits
// interleaved 16-bit little-endian stereo, so each time sample is four bytes.
type MP3Decoder struct {
	decoder *mp3.Decoder
	file    *os.File
	rate    int
}

// NewMP3Decoder opens an MP3 file.
func NewMP3Decoder(path string) (*MP3Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating MP3 decoder: %w", err)
	}

	return &MP3Decoder{decoder: dec, file: f, rate: dec.SampleRate()}, nil
}

// ReadChunk reads up to numSamples mono samples, averaging left and right.
func (d *MP3Decoder) ReadChunk(numSamples int) ([]float64, error) {
	buf := make([]byte, numSamples*4)
	n, err := d.decoder.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading MP3 data: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	frames := n / 4
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left := int16(buf[i*4]) | int16(buf[i*4+1])<<8
		right := int16(buf[i*4+2]) | int16(buf[i*4+3])<<8
		samples[i] = (float64(left) + float64(right)) / (2 * 32768.0)
	}
	return samples, nil
}

// SampleRate returns the native sample rate.
func (d *MP3Decoder) SampleRate() int {
	return d.rate
}

// NumChannels returns 2; go-mp3 output is always stereo.
func (d *MP3Decoder) NumChannels() int {
	return 2
}

// Close closes the underlying file.
func (d *MP3Decoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
