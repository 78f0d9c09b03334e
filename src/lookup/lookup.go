// Package lookup resolves a search term against PokéAPI and renders the
// record as text.
//
// Every lookup renders into a buffer first and writes it out in one go, so a
// failure part-way through never leaves a half-printed record behind.
package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/apimgr/pokedex/src/api"
	"github.com/apimgr/pokedex/src/display"
	"github.com/apimgr/pokedex/src/matchup"
)

// Kind selects what a search term names
type Kind string

const (
	KindPokemon Kind = "pokemon"
	KindAbility Kind = "ability"
	KindMove    Kind = "move"
	KindItem    Kind = "item"
	KindType    Kind = "type"
)

// Kinds lists every search kind in display order
var Kinds = []Kind{KindPokemon, KindAbility, KindMove, KindItem, KindType}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown search kind %q", s)
}

// ResolveError reports a lookup that could not be completed
type ResolveError struct {
	Kind  Kind
	Query string
	Err   error
}

func (e *ResolveError) Error() string {
	// A failed type already names the type it could not resolve
	var tre *matchup.TypeResolutionError
	if e.Kind == KindType && errors.As(e.Err, &tre) {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed to resolve %s '%s': %v", e.Kind, e.Query, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Service runs lookups against the API
type Service struct {
	Client   *api.Client
	Styler   *display.Styler
	Parallel int // concurrent type fetches, defaults to the client's setting
	Logger   *slog.Logger
}

// New creates a Service with plain output
func New(client *api.Client) *Service {
	return &Service{Client: client, Styler: display.Plain()}
}

// Run dispatches text to the lookup for kind. For KindType, text holds one
// or more type names separated by whitespace.
func (s *Service) Run(ctx context.Context, kind Kind, text string, w io.Writer) error {
	switch kind {
	case KindPokemon:
		return s.Pokemon(ctx, text, w)
	case KindAbility:
		return s.Ability(ctx, text, w)
	case KindMove:
		return s.Move(ctx, text, w)
	case KindItem:
		return s.Item(ctx, text, w)
	case KindType:
		return s.Types(ctx, w, strings.Fields(text)...)
	default:
		return fmt.Errorf("unknown search kind %q", kind)
	}
}

// Pokemon prints species, types, weight and the defensive matchup
func (s *Service) Pokemon(ctx context.Context, text string, w io.Writer) error {
	return s.render(ctx, KindPokemon, text, w, s.pokemon)
}

// Ability prints an ability and its effect
func (s *Service) Ability(ctx context.Context, text string, w io.Writer) error {
	return s.render(ctx, KindAbility, text, w, s.ability)
}

// Move prints a move's stats and its effect
func (s *Service) Move(ctx context.Context, text string, w io.Writer) error {
	return s.render(ctx, KindMove, text, w, s.move)
}

// Item prints an item, its fling behaviour and its effect
func (s *Service) Item(ctx context.Context, text string, w io.Writer) error {
	return s.render(ctx, KindItem, text, w, s.item)
}

// Types prints the combined defensive matchup of the named types
func (s *Service) Types(ctx context.Context, w io.Writer, names ...string) error {
	query := strings.Join(names, " ")
	return s.render(ctx, KindType, query, w, func(ctx context.Context, _ string, buf *bytes.Buffer) error {
		return s.types(ctx, names, buf)
	})
}

type renderFunc func(ctx context.Context, text string, buf *bytes.Buffer) error

func (s *Service) render(ctx context.Context, kind Kind, text string, w io.Writer, fn renderFunc) error {
	start := time.Now()
	var buf bytes.Buffer
	if err := fn(ctx, text, &buf); err != nil {
		s.logger().Debug("lookup failed", "kind", kind, "query", text, "error", err)
		return &ResolveError{Kind: kind, Query: text, Err: err}
	}
	s.logger().Debug("lookup", "kind", kind, "query", text, "duration", time.Since(start))

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &matchup.OutputError{Err: err}
	}
	return nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) language() string {
	if s.Client.Language != "" {
		return s.Client.Language
	}
	return api.DefaultLanguage
}

func (s *Service) parallel() int {
	if s.Parallel > 0 {
		return s.Parallel
	}
	if s.Client.Parallel > 0 {
		return s.Client.Parallel
	}
	return api.DefaultParallel
}
