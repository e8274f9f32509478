package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors for light and dark terminals. Light values are tuned for
// contrast on white backgrounds.
var (
	ColorText      = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#8BE9FD"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
	ColorSelBg     = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
)

// Theme bundles the renderer and the pre-computed styles the widget uses.
// Styles are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	Base      lipgloss.Style
	Selected  lipgloss.Style
	Branch    lipgloss.Style // tree prefix glyphs
	Indicator lipgloss.Style // expand/collapse markers
	TagText   lipgloss.Style
	MutedText lipgloss.Style
	TitleBold lipgloss.Style
	StatusBar lipgloss.Style
	ErrorText lipgloss.Style
}

// DefaultTheme builds the standard theme against the given renderer. Tests
// pass lipgloss.NewRenderer(io.Discard) for deterministic plain output.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Renderer: r,

		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Highlight: ColorHighlight,
		Muted:     ColorMuted,
		Danger:    ColorDanger,

		Base:      r.NewStyle().Foreground(ColorText),
		Selected:  r.NewStyle().Background(ColorSelBg).Bold(true),
		Branch:    r.NewStyle().Foreground(ColorMuted),
		Indicator: r.NewStyle().Foreground(ColorSecondary),
		TagText:   r.NewStyle().Foreground(ColorWarning),
		MutedText: r.NewStyle().Foreground(ColorMuted),
		TitleBold: r.NewStyle().Foreground(ColorPrimary).Bold(true),
		StatusBar: r.NewStyle().Foreground(ColorMuted),
		ErrorText: r.NewStyle().Foreground(ColorDanger),
	}
}
