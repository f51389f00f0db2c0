package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(GlowCyan)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(CoolGray).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(GlowBlue).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(GlowCyan).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(GlowViolet).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(CoolGray).
				Italic(true)
)

// StyledHelpPrinter creates a kong help printer using the glow theme.
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return kong.HelpPrinter(func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render("Glowspoke ✨"))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render("Turn a track and a backdrop into a glowing ring-of-spokes MP4."))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(fmt.Sprintf("%s <audio> <background> [cover|contain] [flags]", ctx.Model.Name))
		sb.WriteString("\n")

		if args := ctx.Model.Node.Positional; len(args) > 0 {
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range args {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(arg.Summary()))
				if arg.Help != "" {
					sb.WriteString("  ")
					sb.WriteString(arg.Help)
				}
				sb.WriteString("\n")
			}
		}

		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n  ")
		sb.WriteString(helpFlagStyle.Render("-h, --help"))
		sb.WriteString("  Show context-sensitive help.\n")
		for _, f := range ctx.Model.Node.Flags {
			if f.Name == "help" {
				continue
			}
			flagStr := "--" + f.Name
			if f.Short != 0 {
				flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}
			sb.WriteString("  ")
			sb.WriteString(helpFlagStyle.Render(flagStr))
			if f.Help != "" {
				sb.WriteString("  ")
				sb.WriteString(f.Help)
			}
			if f.HasDefault && !f.IsBool() && f.Default != "" {
				sb.WriteString(" ")
				sb.WriteString(helpDefaultStyle.Render("(default: " + f.Default + ")"))
			}
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	})
}
