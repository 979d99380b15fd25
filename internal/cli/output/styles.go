package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles commands render with. When color is
// disabled every style degrades to plain text.
type Styles struct {
	Header1  lipgloss.Style
	Header2  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	FilePath lipgloss.Style
}

// newStyles builds the style set. The color profile is pinned explicitly so
// rendering never depends on environment detection against test buffers.
func newStyles(out io.Writer, color bool) *Styles {
	lr := lipgloss.NewRenderer(out)
	if color {
		lr.SetColorProfile(termenv.ANSI)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header1:  lr.NewStyle().Bold(true).Underline(true),
		Header2:  lr.NewStyle().Bold(true),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success:  lr.NewStyle().Foreground(lipgloss.Color("2")),
		Warning:  lr.NewStyle().Foreground(lipgloss.Color("3")),
		Error:    lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Info:     lr.NewStyle().Foreground(lipgloss.Color("4")),
		FilePath: lr.NewStyle().Foreground(lipgloss.Color("6")),
	}
}
