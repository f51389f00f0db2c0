package pipeline

import (
	"image"

	"github.com/glowspoke/glowspoke/internal/audio"
	"github.com/glowspoke/glowspoke/internal/config"
	"github.com/glowspoke/glowspoke/internal/renderer"
)

// Sink receives finished frames in strictly increasing frame order. The image
// is only valid for the duration of the call. A non-nil error stops the run.
type Sink func(frameIndex int, img *image.RGBA) error

// Progress is called after a frame has been accepted by the sink, with the
// levels that produced it.
type Progress func(frameIndex, totalFrames int, levels []float64)

// Sequencer produces the frame sequence for a track: for each timestamp it
// runs window extraction, spectral analysis, band aggregation and the ring
// render. Every frame is a pure function of (timestamp, track, background,
// settings), so frames are computed by a pool of workers and re-ordered for
// the sequential sink.
type Sequencer struct {
	cfg   config.Settings
	track *audio.Track
	bg    *image.RGBA
	edges []float64
}

// New wires a sequencer. Band edges are computed once here and shared
// read-only by all workers.
func New(cfg config.Settings, track *audio.Track, bg *image.RGBA) *Sequencer {
	return &Sequencer{
		cfg:   cfg,
		track: track,
		bg:    bg,
		edges: audio.BandEdges(float64(cfg.SampleRate), cfg.LowHz, cfg.HighHz, cfg.Bands),
	}
}

// NumFrames returns the total frame count: one frame per 1/fps step in
// [0, duration).
func (s *Sequencer) NumFrames() int {
	return int(s.track.Duration() * float64(s.cfg.FPS))
}

// Levels computes the normalized band levels at timestamp t using the
// caller's analyzer. Deterministic: equal timestamps yield equal levels.
func (s *Sequencer) Levels(an *audio.Analyzer, t float64) []float64 {
	sig := audio.ExtractWindow(s.track, t, s.cfg.WindowSec, s.cfg.SampleRate, s.cfg.FPS)
	freqs, mags := an.MagnitudeSpectrum(sig, s.cfg.SampleRate)
	return audio.AggregateBands(freqs, mags, s.edges)
}

// RenderFrame produces the frame at index k using the caller's renderer
// scratch. The returned image is owned by the ring.
func (s *Sequencer) RenderFrame(an *audio.Analyzer, ring *renderer.Ring, k int) (*image.RGBA, []float64) {
	t := float64(k) / float64(s.cfg.FPS)
	levels := s.Levels(an, t)
	return ring.Render(levels), levels
}

type result struct {
	k      int
	levels []float64
	img    *image.RGBA
}

// Run produces every frame and hands them to sink in frame order. Frames are
// rendered by the given number of workers; frame k goes to worker k mod
// workers, so the emitter collects results round-robin and no reorder buffer
// is needed. Each worker blocks until the sink has consumed its previous
// frame before reusing its buffer. The first sink error stops production and
// is returned; partially produced output is the caller's problem, since
// frames are regenerable.
func (s *Sequencer) Run(workers int, sink Sink, progress Progress) error {
	total := s.NumFrames()
	if total == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	done := make(chan struct{})
	outs := make([]chan result, workers)
	acks := make([]chan struct{}, workers)
	for w := range outs {
		outs[w] = make(chan result)
		acks[w] = make(chan struct{})
	}

	for w := 0; w < workers; w++ {
		go func(w int) {
			defer close(outs[w])
			an := audio.NewAnalyzer()
			ring := renderer.NewRing(s.cfg, s.bg)
			for k := w; k < total; k += workers {
				img, levels := s.RenderFrame(an, ring, k)
				select {
				case outs[w] <- result{k: k, levels: levels, img: img}:
				case <-done:
					return
				}
				// Wait for the sink before rendering into the same
				// buffer again.
				select {
				case <-acks[w]:
				case <-done:
					return
				}
			}
		}(w)
	}

	var err error
	for k := 0; k < total; k++ {
		res, ok := <-outs[k%workers]
		if !ok {
			break
		}
		if err = sink(res.k, res.img); err != nil {
			break
		}
		if progress != nil {
			progress(res.k, total, res.levels)
		}
		acks[k%workers] <- struct{}{}
	}

	close(done)
	for _, out := range outs {
		for range out {
		}
	}
	return err
}
