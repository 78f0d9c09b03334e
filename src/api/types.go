package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/apimgr/pokedex/src/matchup"
)

// TypeProvider serves elemental types to the matchup aggregator
type TypeProvider struct {
	Client *Client
}

var _ matchup.Provider = TypeProvider{}

// ListTypes fetches every elemental type concurrently, keeping listing order
func (p TypeProvider) ListTypes(ctx context.Context) ([]matchup.Type, error) {
	refs, err := p.Client.TypeList(ctx)
	if err != nil {
		return nil, err
	}

	types := make([]matchup.Type, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Client.Parallel)
	for i, ref := range refs {
		// Placeholder types past the cutoff are dropped by the table; skip their details.
		if id, ok := ref.ID(); ok && id >= matchup.BaseTypeCutoff {
			types[i] = matchup.Type{ID: id, Name: ref.Name}
			continue
		}
		g.Go(func() error {
			t, err := Follow[Type](gctx, p.Client, ref)
			if err != nil {
				return fmt.Errorf("type %s: %w", ref.Name, err)
			}
			types[i], err = p.convert(gctx, t)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return types, nil
}

// TypeByName fetches a type by API name
func (p TypeProvider) TypeByName(ctx context.Context, name string) (matchup.Type, error) {
	t, err := p.Client.Type(ctx, name)
	if err != nil {
		return matchup.Type{}, err
	}
	return p.convert(ctx, t)
}

// TypeByRef fetches a type by resource URL
func (p TypeProvider) TypeByRef(ctx context.Context, ref string) (matchup.Type, error) {
	t, err := Follow[Type](ctx, p.Client, NamedAPIResource{Name: ref, URL: ref})
	if err != nil {
		return matchup.Type{}, err
	}
	return p.convert(ctx, t)
}

func (p TypeProvider) convert(ctx context.Context, t *Type) (matchup.Type, error) {
	name, err := LocalizedName(t.Names, p.Client.Language)
	if err != nil {
		return matchup.Type{}, fmt.Errorf("type %s: %w", t.Name, err)
	}

	var rel matchup.Relations
	lists := []struct {
		dst *[]int
		src []NamedAPIResource
	}{
		{&rel.NoDamageFrom, t.DamageRelations.NoDamageFrom},
		{&rel.DoubleDamageFrom, t.DamageRelations.DoubleDamageFrom},
		{&rel.HalfDamageFrom, t.DamageRelations.HalfDamageFrom},
	}
	for _, l := range lists {
		ids, err := p.ids(ctx, l.src)
		if err != nil {
			return matchup.Type{}, err
		}
		*l.dst = ids
	}

	return matchup.Type{ID: t.ID, Name: name, Relations: rel}, nil
}

// ids maps relation links to type identifiers, fetching the link only when
// its URL does not carry the identifier.
func (p TypeProvider) ids(ctx context.Context, refs []NamedAPIResource) ([]int, error) {
	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		if id, ok := ref.ID(); ok {
			ids = append(ids, id)
			continue
		}
		t, err := Follow[Type](ctx, p.Client, ref)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", ref.Name, err)
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}
