package main

import (
	"fmt"
	"image"
	"os"
	"runtime"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glowspoke/glowspoke/internal/audio"
	"github.com/glowspoke/glowspoke/internal/cli"
	"github.com/glowspoke/glowspoke/internal/config"
	"github.com/glowspoke/glowspoke/internal/encoder"
	"github.com/glowspoke/glowspoke/internal/pipeline"
	"github.com/glowspoke/glowspoke/internal/renderer"
	"github.com/glowspoke/glowspoke/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Audio      string `arg:"" name:"audio" help:"Audio file (WAV, MP3 or FLAC)" optional:""`
	Background string `arg:"" name:"background" help:"Background image (PNG or JPEG)" optional:""`
	Fit        string `arg:"" name:"fit" help:"Background fit: cover or contain" enum:"cover,contain" default:"cover" optional:""`

	Output     string `help:"Output MP4 file" short:"o" default:"spokes.mp4"`
	Width      int    `help:"Video width in pixels" default:"3840"`
	Height     int    `help:"Video height in pixels" default:"2160"`
	FPS        int    `help:"Frames per second" default:"60"`
	Bands      int    `help:"Number of frequency bands (spokes)" default:"360"`
	Glow       bool   `help:"Draw a soft glow beneath the spokes"`
	GlowPasses int    `help:"Glow passes when --glow is set" default:"3"`
	Title      string `help:"Title text drawn onto the background"`
	Font       string `help:"TrueType font file for --title"`
	Workers    int    `help:"Render workers (0 = number of CPUs)" default:"0"`
	NoProgress bool   `help:"Disable the progress UI"`
	Version    bool   `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("glowspoke"),
		kong.Description("Turn a track and a backdrop into a glowing ring-of-spokes MP4."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if CLI.Audio == "" || CLI.Background == "" {
		cli.PrintError("<audio> and <background> are required")
		os.Exit(1)
	}
	if _, err := os.Stat(CLI.Audio); os.IsNotExist(err) {
		cli.PrintError(fmt.Sprintf("audio file does not exist: %s", CLI.Audio))
		os.Exit(1)
	}
	if _, err := os.Stat(CLI.Background); os.IsNotExist(err) {
		cli.PrintError(fmt.Sprintf("background image does not exist: %s", CLI.Background))
		os.Exit(1)
	}

	fit, err := renderer.ParseFitMode(CLI.Fit)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	cfg := config.Default().WithSize(CLI.Width, CLI.Height)
	cfg.FPS = CLI.FPS
	cfg.Bands = CLI.Bands
	cfg.GlowOn = CLI.Glow
	cfg.GlowPasses = CLI.GlowPasses
	if err := cfg.Validate(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	workers := CLI.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	generateVideo(cfg, fit, workers)
}

func generateVideo(cfg config.Settings, fit renderer.FitMode, workers int) {
	track, err := audio.LoadTrack(CLI.Audio)
	if err != nil {
		cli.PrintError(fmt.Sprintf("loading audio: %v", err))
		os.Exit(1)
	}

	bg, err := renderer.LoadBackground(CLI.Background, cfg.Width, cfg.Height, fit)
	if err != nil {
		cli.PrintError(fmt.Sprintf("loading background: %v", err))
		os.Exit(1)
	}

	if CLI.Title != "" {
		if CLI.Font == "" {
			cli.PrintError("--title requires --font")
			os.Exit(1)
		}
		face, err := renderer.LoadFont(CLI.Font, float64(cfg.Height)/20)
		if err != nil {
			cli.PrintError(fmt.Sprintf("loading font: %v", err))
			os.Exit(1)
		}
		renderer.DrawTitle(bg, face, CLI.Title)
	}

	enc, err := encoder.New(encoder.Config{
		OutputPath:   CLI.Output,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Framerate:    cfg.FPS,
		AudioPath:    CLI.Audio,
		VideoBitrate: cfg.VideoBitrate,
		AudioBitrate: cfg.AudioBitrate,
	})
	if err != nil {
		cli.PrintError(fmt.Sprintf("creating encoder: %v", err))
		os.Exit(1)
	}
	if err := enc.Start(); err != nil {
		cli.PrintError(fmt.Sprintf("starting encoder: %v", err))
		os.Exit(1)
	}

	seq := pipeline.New(cfg, track, bg)
	total := seq.NumFrames()
	start := time.Now()

	sink := func(_ int, img *image.RGBA) error {
		return enc.WriteFrame(img.Pix)
	}

	if CLI.NoProgress {
		err = seq.Run(workers, sink, nil)
		finish(enc, err, total, start)
		return
	}

	p := tea.NewProgram(ui.NewModel())

	go func() {
		runErr := seq.Run(workers, sink, func(k, total int, levels []float64) {
			// Throttle updates; a 4K render produces frames far faster
			// than a terminal repaints.
			if k%3 != 0 && k != total-1 {
				return
			}
			var size int64
			if fi, err := os.Stat(CLI.Output); err == nil {
				size = fi.Size()
			}
			meter := make([]float64, len(levels))
			copy(meter, levels)
			p.Send(ui.FrameProgress{
				Frame:       k,
				TotalFrames: total,
				Elapsed:     time.Since(start),
				Levels:      meter,
				FileSize:    size,
			})
		})
		if runErr == nil {
			runErr = enc.Close()
		}
		if runErr != nil {
			err = runErr
			p.Send(ui.RenderFailed{Err: runErr})
			return
		}
		var size int64
		if fi, statErr := os.Stat(CLI.Output); statErr == nil {
			size = fi.Size()
		}
		p.Send(ui.RenderComplete{
			OutputFile:  CLI.Output,
			TotalFrames: total,
			Duration:    time.Since(start),
			FileSize:    size,
		})
	}()

	if _, uiErr := p.Run(); uiErr != nil {
		cli.PrintError(fmt.Sprintf("running UI: %v", uiErr))
		os.Exit(1)
	}
	if err != nil {
		enc.Close()
		cli.PrintError(fmt.Sprintf("rendering: %v", err))
		os.Exit(1)
	}
}

func finish(enc *encoder.Encoder, err error, total int, start time.Time) {
	if err == nil {
		err = enc.Close()
	}
	if err != nil {
		enc.Close()
		cli.PrintError(fmt.Sprintf("rendering: %v", err))
		os.Exit(1)
	}
	cli.PrintSuccess(fmt.Sprintf("Rendered %d frames in %s → %s",
		total, cli.FormatDuration(time.Since(start)), CLI.Output))
}
