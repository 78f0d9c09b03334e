package lookup

import (
	"bytes"
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/apimgr/pokedex/src/api"
)

func (s *Service) ability(ctx context.Context, text string, buf *bytes.Buffer) error {
	a, err := s.Client.Ability(ctx, Normalize(text))
	if err != nil {
		return err
	}

	name, err := api.LocalizedName(a.Names, s.language())
	if err != nil {
		return fmt.Errorf("ability %s: %w", a.Name, err)
	}
	generation, err := s.generation(ctx, a.Generation)
	if err != nil {
		return err
	}
	effect, err := api.LocalizedEffect(a.EffectEntries, s.language())
	if err != nil {
		return fmt.Errorf("ability %s effect: %w", a.Name, err)
	}

	fmt.Fprintf(buf, "%s\n\n---\n\n%s\n", s.Styler.Title(name+" ("+generation+")"), effect)
	return nil
}

func (s *Service) move(ctx context.Context, text string, buf *bytes.Buffer) error {
	m, err := s.Client.Move(ctx, Normalize(text))
	if err != nil {
		return err
	}

	name, err := api.LocalizedName(m.Names, s.language())
	if err != nil {
		return fmt.Errorf("move %s: %w", m.Name, err)
	}
	generation, err := s.generation(ctx, m.Generation)
	if err != nil {
		return err
	}

	class, err := api.Follow[api.MoveDamageClass](ctx, s.Client, m.DamageClass)
	if err != nil {
		return fmt.Errorf("damage class %s: %w", m.DamageClass.Name, err)
	}
	className, err := api.LocalizedName(class.Names, s.language())
	if err != nil {
		return fmt.Errorf("damage class %s: %w", class.Name, err)
	}

	typ, err := api.Follow[api.Type](ctx, s.Client, m.Type)
	if err != nil {
		return fmt.Errorf("type %s: %w", m.Type.Name, err)
	}
	typeName, err := api.LocalizedName(typ.Names, s.language())
	if err != nil {
		return fmt.Errorf("type %s: %w", typ.Name, err)
	}

	target, err := api.Follow[api.MoveTarget](ctx, s.Client, m.Target)
	if err != nil {
		return fmt.Errorf("target %s: %w", m.Target.Name, err)
	}
	targetName, err := api.LocalizedName(target.Names, s.language())
	if err != nil {
		return fmt.Errorf("target %s: %w", target.Name, err)
	}

	effect, err := api.MoveEffect(m, s.language())
	if err != nil {
		return fmt.Errorf("move %s effect: %w", m.Name, err)
	}

	fmt.Fprintf(buf, "%s\n\n", s.Styler.Title(name+" ("+generation+")"))
	fmt.Fprintf(buf, "%s\t\t%s\n", s.Styler.Label("Class:"), capitalize(className))
	fmt.Fprintf(buf, "%s\t\t%s\n", s.Styler.Label("Type:"), typeName)
	fmt.Fprintf(buf, "%s\t\t%s\n", s.Styler.Label("PP:"), optional(m.PP))
	fmt.Fprintf(buf, "%s\t\t%s\n", s.Styler.Label("Power:"), optional(m.Power))
	fmt.Fprintf(buf, "%s\t%s\n", s.Styler.Label("Accuracy:"), optional(m.Accuracy))
	if m.Priority != 0 {
		fmt.Fprintf(buf, "%s\t%d\n", s.Styler.Label("Priority:"), m.Priority)
	}
	fmt.Fprintf(buf, "%s %s\n\n---\n\n%s\n", s.Styler.Label("Target:"), targetName, effect)
	return nil
}

func (s *Service) item(ctx context.Context, text string, buf *bytes.Buffer) error {
	it, err := s.Client.Item(ctx, Normalize(text))
	if err != nil {
		return err
	}

	name, err := api.LocalizedName(it.Names, s.language())
	if err != nil {
		return fmt.Errorf("item %s: %w", it.Name, err)
	}
	category, err := api.Follow[api.ItemCategory](ctx, s.Client, it.Category)
	if err != nil {
		return fmt.Errorf("category %s: %w", it.Category.Name, err)
	}
	categoryName, err := api.LocalizedName(category.Names, s.language())
	if err != nil {
		return fmt.Errorf("category %s: %w", category.Name, err)
	}

	// An item can only be flung when it has both a power and an effect
	var fling string
	if it.FlingEffect != nil && it.FlingPower != nil {
		fe, err := api.Follow[api.ItemFlingEffect](ctx, s.Client, *it.FlingEffect)
		if err != nil {
			return fmt.Errorf("fling effect %s: %w", it.FlingEffect.Name, err)
		}
		flung, err := api.LocalizedFlingEffect(fe.EffectEntries, s.language())
		if err != nil {
			return fmt.Errorf("fling effect %s: %w", fe.Name, err)
		}
		fling = fmt.Sprintf("Thrown with fling (%d power)\n:   %s\n\n", *it.FlingPower, flung)
	}

	effect, err := api.LocalizedEffect(it.EffectEntries, s.language())
	if err != nil {
		return fmt.Errorf("item %s effect: %w", it.Name, err)
	}

	fmt.Fprintf(buf, "%s\n\n---\n\n%s%s\n", s.Styler.Title(name+" ("+categoryName+")"), fling, effect)
	return nil
}

func (s *Service) generation(ctx context.Context, ref api.NamedAPIResource) (string, error) {
	g, err := api.Follow[api.Generation](ctx, s.Client, ref)
	if err != nil {
		return "", fmt.Errorf("generation %s: %w", ref.Name, err)
	}
	name, err := api.LocalizedName(g.Names, s.language())
	if err != nil {
		return "", fmt.Errorf("generation %s: %w", g.Name, err)
	}
	return name, nil
}

func optional(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
