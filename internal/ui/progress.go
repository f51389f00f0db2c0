package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glowspoke/glowspoke/internal/cli"
)

// FrameProgress is sent after each frame has been handed to the encoder.
type FrameProgress struct {
	Frame       int
	TotalFrames int
	Elapsed     time.Duration
	Levels      []float64 // band levels of the frame, for the meter
	FileSize    int64     // output size so far
}

// RenderComplete signals that the whole sequence was encoded.
type RenderComplete struct {
	OutputFile  string
	TotalFrames int
	Duration    time.Duration
	FileSize    int64
}

// RenderFailed aborts the UI; the caller reports the error after Run returns.
type RenderFailed struct {
	Err error
}

const meterWidth = 48

var (
	meterStyle = lipgloss.NewStyle().Foreground(cli.GlowCyan)
	statStyle  = lipgloss.NewStyle().Foreground(cli.CoolGray)
	doneStyle  = lipgloss.NewStyle().Bold(true).Foreground(cli.GlowWhite)
)

// Model is the bubbletea model for render progress.
type Model struct {
	progress progress.Model
	last     FrameProgress
	complete *RenderComplete
	failed   bool
}

// NewModel creates the progress model.
func NewModel() *Model {
	return &Model{
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(48),
			progress.WithoutPercentage(),
		),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case FrameProgress:
		m.last = msg
		return m, nil

	case RenderComplete:
		m.complete = &msg
		return m, tea.Quit

	case RenderFailed:
		m.failed = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.failed {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(cli.Banner())
	sb.WriteString("\n\n")

	if m.complete != nil {
		sb.WriteString(doneStyle.Render("✓ Render complete"))
		sb.WriteString("\n")
		sb.WriteString(statStyle.Render(fmt.Sprintf(
			"%d frames in %s → %s (%s)",
			m.complete.TotalFrames,
			cli.FormatDuration(m.complete.Duration),
			m.complete.OutputFile,
			cli.FormatBytes(m.complete.FileSize),
		)))
		sb.WriteString("\n")
		return sb.String()
	}

	if m.last.TotalFrames == 0 {
		sb.WriteString(statStyle.Render("Preparing…"))
		sb.WriteString("\n")
		return sb.String()
	}

	pct := float64(m.last.Frame+1) / float64(m.last.TotalFrames)
	sb.WriteString(m.progress.ViewAs(pct))
	sb.WriteString(fmt.Sprintf(" %3.0f%%\n", pct*100))

	fps := 0.0
	if m.last.Elapsed > 0 {
		fps = float64(m.last.Frame+1) / m.last.Elapsed.Seconds()
	}
	eta := time.Duration(0)
	if fps > 0 {
		remaining := m.last.TotalFrames - m.last.Frame - 1
		eta = time.Duration(float64(remaining)/fps) * time.Second
	}
	sb.WriteString(statStyle.Render(fmt.Sprintf(
		"frame %d/%d · %.1f fps · eta %s · %s",
		m.last.Frame+1, m.last.TotalFrames, fps,
		cli.FormatDuration(eta),
		cli.FormatBytes(m.last.FileSize),
	)))
	sb.WriteString("\n\n")

	sb.WriteString(meterStyle.Render(levelMeter(m.last.Levels, meterWidth)))
	sb.WriteString("\n")
	return sb.String()
}

// meterGlyphs are the eight partial-block characters used by the level meter.
var meterGlyphs = []rune("▁▂▃▄▅▆▇█")

// levelMeter renders band levels as a fixed-width block sparkline, averaging
// neighbouring bands down to the meter width.
func levelMeter(levels []float64, width int) string {
	if len(levels) == 0 {
		return strings.Repeat(string(meterGlyphs[0]), width)
	}

	out := make([]rune, width)
	for i := range out {
		lo := i * len(levels) / width
		hi := (i + 1) * len(levels) / width
		if hi <= lo {
			hi = lo + 1
		}
		var sum float64
		for _, v := range levels[lo:min(hi, len(levels))] {
			sum += v
		}
		avg := sum / float64(hi-lo)
		g := int(avg * float64(len(meterGlyphs)))
		if g >= len(meterGlyphs) {
			g = len(meterGlyphs) - 1
		}
		if g < 0 {
			g = 0
		}
		out[i] = meterGlyphs[g]
	}
	return string(out)
}
