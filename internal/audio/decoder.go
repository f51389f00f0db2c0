package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Decoder is the interface all audio format decoders implement. ReadChunk
// returns mono float64 samples in [-1, 1]; multichannel sources are downmixed
// by averaging the channels. Implementations return io.EOF once the stream is
// exhausted.
type Decoder interface {
	// ReadChunk reads up to numSamples mono samples. A shorter slice is
	// returned at the end of the stream.
	ReadChunk(numSamples int) ([]float64, error)

	// SampleRate returns the native sample rate in Hz.
	SampleRate() int

	// NumChannels returns the channel count of the source file. ReadChunk
	// output is always mono regardless.
	NumChannels() int

	// Close releases the underlying file.
	Close() error
}

// OpenDecoder picks a decoder from the file extension.
func OpenDecoder(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return NewWAVDecoder(path)
	case ".mp3":
		return NewMP3Decoder(path)
	case ".flac":
		return NewFLACDecoder(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", path)
	}
}
