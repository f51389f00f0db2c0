package audio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes a 16-bit PCM WAV of a sine wave and returns its path.
func writeTestWAV(t *testing.T, channels int, rate int, durationSec float64, freq float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Creating test WAV: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)

	frames := int(durationSec * float64(rate))
	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		v := int(0.5 * 32767 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		for ch := 0; ch < channels; ch++ {
			data[i*channels+ch] = v
		}
	}

	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Writing test WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Closing test WAV: %v", err)
	}
	return path
}

// TestWAVDecoder_MonoRoundTrip encodes a mono sine and checks the decoder
// reports its format and reproduces the samples in [-1, 1].
func TestWAVDecoder_MonoRoundTrip(t *testing.T) {
	path := writeTestWAV(t, 1, 44100, 0.5, 440)

	dec, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("Opening decoder: %v", err)
	}
	defer dec.Close()

	if dec.SampleRate() != 44100 {
		t.Errorf("SampleRate %d, expected 44100", dec.SampleRate())
	}
	if dec.NumChannels() != 1 {
		t.Errorf("NumChannels %d, expected 1", dec.NumChannels())
	}

	var samples []float64
	for {
		chunk, err := dec.ReadChunk(4096)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadChunk: %v", err)
		}
		samples = append(samples, chunk...)
	}

	wantFrames := int(0.5 * 44100)
	if len(samples) != wantFrames {
		t.Fatalf("Decoded %d samples, expected %d", len(samples), wantFrames)
	}

	var peak float64
	for _, s := range samples {
		if s < -1 || s > 1 {
			t.Fatalf("Sample out of range: %v", s)
		}
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	t.Logf("Decoded %d samples, peak %.4f", len(samples), peak)
	if peak < 0.4 || peak > 0.6 {
		t.Errorf("Peak %.4f, expected about 0.5", peak)
	}
}

// TestWAVDecoder_StereoDownmix verifies that a stereo file with identical
// channels decodes to the same mono signal as the mono file.
func TestWAVDecoder_StereoDownmix(t *testing.T) {
	monoPath := writeTestWAV(t, 1, 44100, 0.1, 440)
	stereoPath := writeTestWAV(t, 2, 44100, 0.1, 440)

	readAll := func(path string) []float64 {
		dec, err := NewWAVDecoder(path)
		if err != nil {
			t.Fatalf("Opening %s: %v", path, err)
		}
		defer dec.Close()
		var out []float64
		for {
			chunk, err := dec.ReadChunk(1024)
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Reading %s: %v", path, err)
			}
			out = append(out, chunk...)
		}
		return out
	}

	mono := readAll(monoPath)
	stereo := readAll(stereoPath)

	if len(mono) != len(stereo) {
		t.Fatalf("Mono %d frames, stereo downmix %d frames", len(mono), len(stereo))
	}
	for i := range mono {
		if math.Abs(mono[i]-stereo[i]) > 1e-9 {
			t.Fatalf("Downmix differs at %d: %.9f vs %.9f", i, mono[i], stereo[i])
		}
	}
}

// TestOpenDecoder_UnsupportedFormat checks the extension dispatch rejects
// unknown formats with a useful error.
func TestOpenDecoder_UnsupportedFormat(t *testing.T) {
	if _, err := OpenDecoder("song.ogg"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

// TestLoadTrack_WAV runs the full file-to-track path.
func TestLoadTrack_WAV(t *testing.T) {
	path := writeTestWAV(t, 2, 22050, 1.0, 220)

	track, err := LoadTrack(path)
	if err != nil {
		t.Fatalf("LoadTrack: %v", err)
	}
	if track.SampleRate() != 22050 {
		t.Errorf("SampleRate %d, expected 22050", track.SampleRate())
	}
	if d := track.Duration(); math.Abs(d-1.0) > 0.01 {
		t.Errorf("Duration %.4f, expected about 1.0", d)
	}
}

// TestLoadTrack_InvalidFile verifies a non-WAV payload is rejected.
func TestLoadTrack_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTrack(path); err == nil {
		t.Error("Expected error for invalid WAV data")
	}
}
