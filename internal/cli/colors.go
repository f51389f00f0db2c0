package cli

import "github.com/charmbracelet/lipgloss"

// Glow colour palette
// Shared theme colours for consistent branding across CLI and progress UI
var (
	GlowWhite  = lipgloss.Color("#F8F8FF") // Near-white, the spoke colour
	GlowCyan   = lipgloss.Color("#7FDBFF") // Icy cyan accent
	GlowBlue   = lipgloss.Color("#4169E1") // Royal blue
	GlowViolet = lipgloss.Color("#9370DB") // Medium purple

	CoolGray = lipgloss.Color("#8899AA") // Subtle text
)
