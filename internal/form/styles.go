package form

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles shared by the plain loop and the TUI.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Count   lipgloss.Style
	Prompt  lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Confirm lipgloss.Style
	Field   lipgloss.Style
	Bold    lipgloss.Style
	Thanks  lipgloss.Style

	MenuAdd  lipgloss.Style
	MenuPath lipgloss.Style
	MenuExit lipgloss.Style
}

// NewStyles returns styles rendered for w. With color false every style is a
// no-op, so output carries no escape sequences at all.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return Styles{
			Header: plain, Label: plain, Count: plain, Prompt: plain,
			Hint: plain, Error: plain, Success: plain, Info: plain,
			Confirm: plain, Field: plain, Bold: plain, Thanks: plain,
			MenuAdd: plain, MenuPath: plain, MenuExit: plain,
		}
	}

	var (
		cyan        = lipgloss.AdaptiveColor{Light: "6", Dark: "14"}
		blue        = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
		green       = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
		red         = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
		yellow      = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
		magenta     = lipgloss.AdaptiveColor{Light: "5", Dark: "13"}
		white       = lipgloss.AdaptiveColor{Light: "0", Dark: "7"}
		brightGreen = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	)

	return Styles{
		Header:  r.NewStyle().Bold(true).Foreground(cyan),
		Label:   r.NewStyle().Foreground(white),
		Count:   r.NewStyle().Bold(true).Foreground(brightGreen),
		Prompt:  r.NewStyle().Foreground(blue),
		Hint:    r.NewStyle().Foreground(yellow),
		Error:   r.NewStyle().Bold(true).Foreground(red),
		Success: r.NewStyle().Bold(true).Foreground(brightGreen),
		Info:    r.NewStyle().Bold(true).Foreground(blue),
		Confirm: r.NewStyle().Bold(true).Foreground(magenta),
		Field:   r.NewStyle().Foreground(cyan),
		Bold:    r.NewStyle().Bold(true),
		Thanks:  r.NewStyle().Foreground(cyan),

		MenuAdd:  r.NewStyle().Foreground(green),
		MenuPath: r.NewStyle().Foreground(blue),
		MenuExit: r.NewStyle().Foreground(red),
	}
}
