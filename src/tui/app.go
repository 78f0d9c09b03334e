// Package tui is the interactive lookup: type a name, pick a kind with Tab,
// press Enter.
package tui

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apimgr/pokedex/src/display"
	"github.com/apimgr/pokedex/src/lookup"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(display.Purple).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(display.Comment).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(display.Comment).
			Padding(0, 1)

	activeKindStyle = lipgloss.NewStyle().
			Foreground(display.Pink).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(display.Comment)

	errorStyle = lipgloss.NewStyle().
			Foreground(display.Red)
)

// chrome is the number of lines around the viewport
const chrome = 9

type model struct {
	ctx       context.Context
	service   *lookup.Service
	input     textinput.Model
	viewport  viewport.Model
	kind      int // index into lookup.Kinds
	output    string
	err       error
	searching bool
	width     int
	height    int
}

type lookupResultMsg struct {
	output string
	err    error
}

func initialModel(ctx context.Context, service *lookup.Service) model {
	ti := textinput.New()
	ti.Placeholder = "Enter a name..."
	ti.Focus()
	ti.Width = 50

	return model{
		ctx:      ctx,
		service:  service,
		input:    ti,
		viewport: viewport.New(80, 24-chrome),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.kind = (m.kind + 1) % len(lookup.Kinds)
			return m, nil
		case "shift+tab":
			m.kind = (m.kind + len(lookup.Kinds) - 1) % len(lookup.Kinds)
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.searching {
				return m, nil
			}
			m.searching = true
			return m, m.doLookup(m.currentKind(), text)
		case "esc":
			m.input.SetValue("")
			m.output = ""
			m.err = nil
			m.viewport.SetContent("")
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, max(msg.Height-chrome, 1))
		m.viewport.SetContent(m.renderResult())

	case lookupResultMsg:
		m.searching = false
		m.output = msg.output
		m.err = msg.err
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) currentKind() lookup.Kind {
	return lookup.Kinds[m.kind]
}

// doLookup runs the lookup off the update loop
func (m model) doLookup(kind lookup.Kind, text string) tea.Cmd {
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		var buf bytes.Buffer
		if err := service.Run(ctx, kind, text, &buf); err != nil {
			return lookupResultMsg{err: err}
		}
		return lookupResultMsg{output: buf.String()}
	}
}

func (m model) renderResult() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.output == "" {
		return helpStyle.Render("Nothing looked up yet")
	}
	// The viewport measures tabs as one cell
	return strings.ReplaceAll(m.output, "\t", "    ")
}

func (m model) renderKinds() string {
	tabs := make([]string, len(lookup.Kinds))
	for i, k := range lookup.Kinds {
		if i == m.kind {
			tabs[i] = activeKindStyle.Render(string(k))
		} else {
			tabs[i] = kindStyle.Render(string(k))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Pokédex"))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderKinds())
	sb.WriteString("\n")

	sb.WriteString(inputStyle.Render(m.input.View()))
	sb.WriteString("\n\n")

	if m.searching {
		sb.WriteString(helpStyle.Render("Looking up..."))
	} else {
		sb.WriteString(m.viewport.View())
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: look up • Tab: change kind • Esc: clear • Ctrl+C: quit"))

	return sb.String()
}

// Run starts the TUI application
func Run(ctx context.Context, service *lookup.Service) error {
	p := tea.NewProgram(initialModel(ctx, service), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
