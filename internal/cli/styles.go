package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(GlowCyan).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(CoolGray).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AA00"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF4444"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(CoolGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(GlowWhite)
)

// Banner returns the application banner line.
func Banner() string {
	return TitleStyle.Render("Glowspoke ✨")
}

// PrintBanner prints the application banner.
func PrintBanner() {
	fmt.Println(Banner())
	fmt.Println(SubtitleStyle.Render("Turn a track and a backdrop into a glowing ring-of-spokes MP4."))
	fmt.Println()
}

// PrintVersion prints version information.
func PrintVersion(version string) {
	fmt.Println(Banner())
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints a key/value line.
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// FormatDuration formats a duration for status lines.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

// FormatBytes formats bytes into human-readable form.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
