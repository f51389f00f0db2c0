// Package encoder muxes raw video frames and the source audio file into an
// MP4 by piping rawvideo into an ffmpeg child process. Any encode failure is
// fatal to the whole run; there is no partial-output recovery.
package encoder

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// Config holds the encoder configuration.
type Config struct {
	OutputPath string // path to the output MP4 file
	Width      int    // video width in pixels
	Height     int    // video height in pixels
	Framerate  int    // frames per second
	AudioPath  string // source audio file muxed alongside the video

	VideoBitrate string // e.g. "12M"
	AudioBitrate string // e.g. "192k"
	FFmpegPath   string // ffmpeg binary; empty means $PATH lookup
}

// Encoder drives one ffmpeg process for one render run.
type Encoder struct {
	cfg       Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stderr    bytes.Buffer
	frameSize int
	closed    bool
}

// New validates the configuration and prepares an encoder. Start must be
// called before the first WriteFrame.
func New(cfg Config) (*Encoder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Framerate <= 0 {
		return nil, fmt.Errorf("invalid framerate: %d", cfg.Framerate)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}
	if cfg.VideoBitrate == "" {
		cfg.VideoBitrate = "12M"
	}
	if cfg.AudioBitrate == "" {
		cfg.AudioBitrate = "192k"
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	return &Encoder{
		cfg:       cfg,
		frameSize: cfg.Width * cfg.Height * 4, // RGBA
	}, nil
}

// Start launches the ffmpeg process: RGBA rawvideo on stdin, the audio file
// as a second input, H.264 + AAC out.
func (e *Encoder) Start() error {
	ffmpeg, err := exec.LookPath(e.cfg.FFmpegPath)
	if err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}

	args := []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", e.cfg.Width, e.cfg.Height),
		"-framerate", strconv.Itoa(e.cfg.Framerate),
		"-i", "-",
	}
	if e.cfg.AudioPath != "" {
		args = append(args, "-i", e.cfg.AudioPath, "-map", "0:v:0", "-map", "1:a:0")
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "medium",
		"-b:v", e.cfg.VideoBitrate,
		"-pix_fmt", "yuv420p",
	)
	if e.cfg.AudioPath != "" {
		args = append(args, "-c:a", "aac", "-b:a", e.cfg.AudioBitrate, "-shortest")
	}
	args = append(args, "-movflags", "+faststart", e.cfg.OutputPath)

	cmd := exec.Command(ffmpeg, args...)
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("creating ffmpeg stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	return nil
}

// WriteFrame pushes one RGBA frame (Width×Height×4 bytes) to the encoder.
func (e *Encoder) WriteFrame(pix []byte) error {
	if e.cmd == nil {
		return fmt.Errorf("encoder not started")
	}
	if len(pix) != e.frameSize {
		return fmt.Errorf("frame size %d does not match expected %d", len(pix), e.frameSize)
	}
	if _, err := e.stdin.Write(pix); err != nil {
		return fmt.Errorf("writing frame to ffmpeg: %w%s", err, e.stderrTail())
	}
	return nil
}

// Close flushes the stream and waits for ffmpeg to finalize the container.
// Safe to call more than once.
func (e *Encoder) Close() error {
	if e.cmd == nil || e.closed {
		return nil
	}
	e.closed = true

	if err := e.stdin.Close(); err != nil {
		return fmt.Errorf("closing ffmpeg stdin: %w", err)
	}
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w%s", err, e.stderrTail())
	}
	return nil
}

// stderrTail returns the last chunk of ffmpeg's stderr for error messages.
func (e *Encoder) stderrTail() string {
	s := e.stderr.String()
	const max = 512
	if len(s) > max {
		s = s[len(s)-max:]
	}
	if s == "" {
		return ""
	}
	return "\nffmpeg output:\n" + s
}
