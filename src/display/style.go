package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Dracula colors, shared with the TUI
var (
	Foreground = lipgloss.Color("#f8f8f2")
	Comment    = lipgloss.Color("#6272a4")
	Cyan       = lipgloss.Color("#8be9fd")
	Green      = lipgloss.Color("#50fa7b")
	Orange     = lipgloss.Color("#ffb86c")
	Pink       = lipgloss.Color("#ff79c6")
	Purple     = lipgloss.Color("#bd93f9")
	Red        = lipgloss.Color("#ff5555")
	Yellow     = lipgloss.Color("#f1fa8c")
)

// Styler renders text with colour when enabled and returns it untouched otherwise
type Styler struct {
	enabled bool

	title   lipgloss.Style
	label   lipgloss.Style
	weak    lipgloss.Style // takes more damage
	heavy   lipgloss.Style // takes four times or more
	strong  lipgloss.Style // takes less damage
	immune  lipgloss.Style
	neutral lipgloss.Style
}

// NewStyler returns a Styler; a disabled Styler never emits escape codes
func NewStyler(enabled bool) *Styler {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	// Tabs stay tabs so styled lines align like plain ones
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return &Styler{
		enabled: enabled,
		title:   base.Foreground(Purple).Bold(true),
		label:   base.Foreground(Cyan),
		weak:    base.Foreground(Orange),
		heavy:   base.Foreground(Red).Bold(true),
		strong:  base.Foreground(Green),
		immune:  base.Foreground(Comment),
		neutral: base.Foreground(Foreground),
	}
}

// Plain is a disabled Styler
func Plain() *Styler {
	return NewStyler(false)
}

// Enabled reports whether the Styler colours its output
func (s *Styler) Enabled() bool {
	return s != nil && s.enabled
}

// Title styles a heading line
func (s *Styler) Title(text string) string {
	if !s.Enabled() {
		return text
	}
	return s.title.Render(text)
}

// Label styles a field label such as "Types:"
func (s *Styler) Label(text string) string {
	if !s.Enabled() {
		return text
	}
	return s.label.Render(text)
}

// Multiplier styles text by the damage multiplier it describes
func (s *Styler) Multiplier(m float64, text string) string {
	if !s.Enabled() {
		return text
	}
	switch {
	case m == 0:
		return s.immune.Render(text)
	case m >= 4:
		return s.heavy.Render(text)
	case m > 1:
		return s.weak.Render(text)
	case m < 1:
		return s.strong.Render(text)
	default:
		return s.neutral.Render(text)
	}
}
