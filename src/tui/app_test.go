package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/apimgr/pokedex/src/api"
	"github.com/apimgr/pokedex/src/api/apitest"
	"github.com/apimgr/pokedex/src/lookup"
)

func newModel(t *testing.T) model {
	t.Helper()
	srv := apitest.NewServer(t)
	svc := lookup.New(api.NewClient(api.Options{BaseURL: srv.BaseURL()}))
	return initialModel(context.Background(), svc)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestInitialModel(t *testing.T) {
	m := newModel(t)

	if !m.input.Focused() {
		t.Error("input should be focused initially")
	}
	if m.currentKind() != lookup.KindPokemon {
		t.Errorf("initial kind = %q, want pokemon", m.currentKind())
	}
	if m.Init() == nil {
		t.Error("Init() should return the cursor blink command")
	}
}

func TestTabCyclesKinds(t *testing.T) {
	m := newModel(t)

	for _, want := range []lookup.Kind{lookup.KindAbility, lookup.KindMove, lookup.KindItem, lookup.KindType, lookup.KindPokemon} {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.currentKind() != want {
			t.Errorf("after tab kind = %q, want %q", m.currentKind(), want)
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentKind() != lookup.KindType {
		t.Errorf("after shift+tab kind = %q, want type", m.currentKind())
	}
}

func TestEnterRunsLookup(t *testing.T) {
	m := newModel(t)
	m.input.SetValue("charizard")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.searching {
		t.Error("searching should be true after Enter")
	}
	if cmd == nil {
		t.Fatal("Enter should return the lookup command")
	}

	msg, ok := cmd().(lookupResultMsg)
	if !ok {
		t.Fatalf("lookup command returned %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("lookup error = %v", msg.err)
	}

	m, _ = update(t, m, msg)
	if m.searching {
		t.Error("searching should be false after the result")
	}
	if !strings.Contains(m.output, "×0.25\tGrass") {
		t.Errorf("output = %q", m.output)
	}
	if !strings.Contains(m.renderResult(), "×0.25    Grass") {
		t.Errorf("renderResult() should expand tabs, got %q", m.renderResult())
	}
}

func TestEnterUsesSelectedKind(t *testing.T) {
	m := newModel(t)
	m.kind = 4 // type
	m.input.SetValue("ghost normal")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(lookupResultMsg)
	if msg.err != nil {
		t.Fatalf("lookup error = %v", msg.err)
	}
	if !strings.HasPrefix(msg.output, "Types:\tGhost, Normal\n") {
		t.Errorf("output = %q", msg.output)
	}
}

func TestEnterWithoutText(t *testing.T) {
	m := newModel(t)
	m.input.SetValue("   ")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching || cmd != nil {
		t.Error("Enter without text should do nothing")
	}
}

func TestLookupError(t *testing.T) {
	m := newModel(t)
	m.input.SetValue("missingno")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(lookupResultMsg)

	var re *lookup.ResolveError
	if !errors.As(msg.err, &re) {
		t.Fatalf("lookup error = %v, want ResolveError", msg.err)
	}

	m, _ = update(t, m, msg)
	if !strings.Contains(m.renderResult(), "failed to resolve pokemon 'missingno'") {
		t.Errorf("renderResult() = %q", m.renderResult())
	}
}

func TestEscClears(t *testing.T) {
	m := newModel(t)
	m.input.SetValue("blaze")
	m.output = "Blaze (Generation III)"
	m.err = errors.New("boom")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.input.Value() != "" || m.output != "" || m.err != nil {
		t.Errorf("Esc should clear input, output and error: %+v", m)
	}
}

func TestWindowSize(t *testing.T) {
	m := newModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})
	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
	if m.viewport.Height != 50-chrome {
		t.Errorf("viewport height = %d", m.viewport.Height)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 3})
	if m.viewport.Height != 1 {
		t.Errorf("viewport height = %d, want 1 on tiny terminals", m.viewport.Height)
	}
}

func TestView(t *testing.T) {
	m := newModel(t)

	view := m.View()
	for _, want := range []string{"Pokédex", "pokemon", "ability", "type", "Tab: change kind"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m.searching = true
	if !strings.Contains(m.View(), "Looking up...") {
		t.Error("View() should show progress while searching")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
