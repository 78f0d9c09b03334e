package lookup

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/apimgr/pokedex/src/api"
	"github.com/apimgr/pokedex/src/matchup"
)

func (s *Service) pokemon(ctx context.Context, text string, buf *bytes.Buffer) error {
	p, err := s.Client.Pokemon(ctx, Normalize(text))
	if err != nil {
		return err
	}

	species, err := api.Follow[api.PokemonSpecies](ctx, s.Client, p.Species)
	if err != nil {
		return fmt.Errorf("species %s: %w", p.Species.Name, err)
	}
	name, err := api.LocalizedName(species.Names, s.language())
	if err != nil {
		return fmt.Errorf("species %s: %w", species.Name, err)
	}
	generation, err := s.generation(ctx, species.Generation)
	if err != nil {
		return err
	}

	slots := slices.Clone(p.Types)
	slices.SortFunc(slots, func(a, b api.PokemonType) int { return cmp.Compare(a.Slot, b.Slot) })

	provider := api.TypeProvider{Client: s.Client}
	table, types, err := s.matchup(ctx, len(slots), func(ctx context.Context, i int) (matchup.Type, error) {
		ref := slots[i].Type
		t, err := provider.TypeByRef(ctx, ref.URL)
		if err != nil {
			return matchup.Type{}, &matchup.TypeResolutionError{Name: ref.Name, Err: err}
		}
		return t, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(buf, "%s\n\n", s.Styler.Title(name+" ("+generation+")"))
	fmt.Fprintf(buf, "%s\t%s\n", s.Styler.Label("Types:"), joinNames(types))
	fmt.Fprintf(buf, "%s\t%s kg\n\n", s.Styler.Label("Weight:"), strconv.FormatFloat(float64(p.Weight)/10, 'f', -1, 64))
	return s.report(buf, table)
}

func (s *Service) types(ctx context.Context, names []string, buf *bytes.Buffer) error {
	if len(names) == 0 {
		return errors.New("no type names given")
	}

	provider := api.TypeProvider{Client: s.Client}
	table, types, err := s.matchup(ctx, len(names), func(ctx context.Context, i int) (matchup.Type, error) {
		t, err := provider.TypeByName(ctx, Normalize(names[i]))
		if err != nil {
			return matchup.Type{}, &matchup.TypeResolutionError{Name: names[i], Err: err}
		}
		return t, nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(buf, "%s\t%s\n\n", s.Styler.Label("Types:"), joinNames(types))
	return s.report(buf, table)
}

// matchup lists the catalog and fetches the n contributing types
// concurrently, then applies their relations one type at a time in
// index order.
func (s *Service) matchup(ctx context.Context, n int, fetch func(ctx context.Context, i int) (matchup.Type, error)) (*matchup.Table, []matchup.Type, error) {
	var table *matchup.Table
	types := make([]matchup.Type, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel())
	g.Go(func() error {
		t, err := matchup.New(gctx, api.TypeProvider{Client: s.Client})
		if err != nil {
			return err
		}
		table = t
		return nil
	})
	for i := range n {
		g.Go(func() error {
			t, err := fetch(gctx, i)
			if err != nil {
				return err
			}
			types[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for _, t := range types {
		table.ApplyRelations(t.Relations)
	}
	return table, types, nil
}

// report writes the matchup groups, coloured by multiplier when styling is on
func (s *Service) report(w io.Writer, table *matchup.Table) error {
	if !s.Styler.Enabled() {
		return table.Print(w)
	}
	for m, names := range table.All() {
		line := "×" + matchup.FormatMultiplier(m) + "\t" + strings.Join(names, ", ")
		if _, err := fmt.Fprintln(w, s.Styler.Multiplier(m, line)); err != nil {
			return &matchup.OutputError{Err: err}
		}
	}
	return nil
}

func joinNames(types []matchup.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
