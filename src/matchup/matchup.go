// Package matchup aggregates type-effectiveness multipliers for one or more
// defending types and reports them grouped by final multiplier.
package matchup

import (
	"context"
	"fmt"
	"io"
	"iter"
	"math"
	"sort"
	"strconv"
	"strings"
)

// BaseTypeCutoff excludes the placeholder types the API lists beyond the
// standard set (unknown and shadow sit at 10001 and 10002).
const BaseTypeCutoff = 10000

// Type is an elemental type as seen by the aggregator.
type Type struct {
	ID        int
	Name      string
	Relations Relations
}

// Relations holds the defending-side damage relations of one source type,
// as identifiers of the attacking types.
type Relations struct {
	NoDamageFrom     []int
	DoubleDamageFrom []int
	HalfDamageFrom   []int
}

// Provider resolves elemental types. TypeByRef takes a resource reference
// (an API URL) rather than a name.
type Provider interface {
	ListTypes(ctx context.Context) ([]Type, error)
	TypeByName(ctx context.Context, name string) (Type, error)
	TypeByRef(ctx context.Context, ref string) (Type, error)
}

// Effect is a single damage relation kind.
type Effect int

const (
	NoDamage Effect = iota
	DoubleDamage
	HalfDamage
)

// String returns the relation name as the API spells it
func (e Effect) String() string {
	switch e {
	case NoDamage:
		return "no_damage_from"
	case DoubleDamage:
		return "double_damage_from"
	case HalfDamage:
		return "half_damage_from"
	default:
		return "unknown"
	}
}

// Group is one line of the report: every type sharing a multiplier.
type Group struct {
	Multiplier float64
	Names      []string
}

type entry struct {
	name       string
	multiplier float64
}

// Table maps every base type to its current damage multiplier.
// A Table is not safe for concurrent mutation.
type Table struct {
	provider Provider
	entries  map[int]*entry

	report []Group
	dirty  bool
	builds int
}

// New builds a table holding every base type from the provider's catalog
// at multiplier 1.
func New(ctx context.Context, provider Provider) (*Table, error) {
	types, err := provider.ListTypes(ctx)
	if err != nil {
		return nil, &CatalogFetchError{Err: err}
	}

	t := &Table{
		provider: provider,
		entries:  make(map[int]*entry, len(types)),
		dirty:    true,
	}
	for _, ty := range types {
		if ty.ID >= BaseTypeCutoff {
			continue
		}
		t.entries[ty.ID] = &entry{name: ty.Name, multiplier: 1}
	}
	return t, nil
}

// Len returns the number of types in the table
func (t *Table) Len() int {
	return len(t.entries)
}

// Multiplier returns the current multiplier of a type
func (t *Table) Multiplier(id int) (float64, bool) {
	e, ok := t.entries[id]
	if !ok {
		return 0, false
	}
	return e.multiplier, true
}

// Apply applies one effect to one type. It reports whether the type was
// present; unknown identifiers are ignored.
func (t *Table) Apply(effect Effect, id int) bool {
	e, ok := t.entries[id]
	if !ok {
		return false
	}

	switch effect {
	case NoDamage:
		e.multiplier = 0
	case DoubleDamage:
		e.multiplier *= 2
	case HalfDamage:
		e.multiplier /= 2
	default:
		return false
	}
	t.dirty = true
	return true
}

// NoDamageFrom sets the multiplier of id to exactly zero.
func (t *Table) NoDamageFrom(id int) {
	t.Apply(NoDamage, id)
}

// DoubleDamageFrom doubles the multiplier of id.
func (t *Table) DoubleDamageFrom(id int) {
	t.Apply(DoubleDamage, id)
}

// HalfDamageFrom halves the multiplier of id.
func (t *Table) HalfDamageFrom(id int) {
	t.Apply(HalfDamage, id)
}

// ApplyRelations applies one source type's relations. The no-damage list
// runs first, then double, then half.
func (t *Table) ApplyRelations(r Relations) {
	for _, id := range r.NoDamageFrom {
		t.Apply(NoDamage, id)
	}
	for _, id := range r.DoubleDamageFrom {
		t.Apply(DoubleDamage, id)
	}
	for _, id := range r.HalfDamageFrom {
		t.Apply(HalfDamage, id)
	}
}

// ApplyName resolves a type by name and applies effect to it.
func (t *Table) ApplyName(ctx context.Context, effect Effect, name string) error {
	ty, err := t.byName(ctx, name)
	if err != nil {
		return err
	}
	t.Apply(effect, ty.ID)
	return nil
}

// ApplyRef resolves a type by reference and applies effect to it.
func (t *Table) ApplyRef(ctx context.Context, effect Effect, ref string) error {
	ty, err := t.byRef(ctx, ref)
	if err != nil {
		return err
	}
	t.Apply(effect, ty.ID)
	return nil
}

// AddType resolves a type by name and applies its whole relation set.
func (t *Table) AddType(ctx context.Context, name string) (Type, error) {
	ty, err := t.byName(ctx, name)
	if err != nil {
		return Type{}, err
	}
	t.ApplyRelations(ty.Relations)
	return ty, nil
}

// AddRef resolves a type by reference and applies its whole relation set.
func (t *Table) AddRef(ctx context.Context, ref string) (Type, error) {
	ty, err := t.byRef(ctx, ref)
	if err != nil {
		return Type{}, err
	}
	t.ApplyRelations(ty.Relations)
	return ty, nil
}

func (t *Table) byName(ctx context.Context, name string) (Type, error) {
	ty, err := t.provider.TypeByName(ctx, name)
	if err != nil {
		return Type{}, &TypeResolutionError{Name: name, Err: err}
	}
	return ty, nil
}

func (t *Table) byRef(ctx context.Context, ref string) (Type, error) {
	ty, err := t.provider.TypeByRef(ctx, ref)
	if err != nil {
		return Type{}, &TypeResolutionError{Name: ref, Err: err}
	}
	return ty, nil
}

// Get returns the report, highest multiplier first. The result is cached
// until the table changes and must not be modified by the caller.
func (t *Table) Get() []Group {
	if t.dirty || t.report == nil {
		t.report = t.build()
		t.dirty = false
	}
	return t.report
}

// All iterates over the report as (multiplier, names) pairs.
func (t *Table) All() iter.Seq2[float64, []string] {
	report := t.Get()
	return func(yield func(float64, []string) bool) {
		for _, g := range report {
			if !yield(g.Multiplier, g.Names) {
				return
			}
		}
	}
}

// build groups entries on their multiplier rounded to hundredths so that
// repeated halving cannot split a group on float error.
func (t *Table) build() []Group {
	t.builds++

	buckets := make(map[int64]map[string]struct{})
	for _, e := range t.entries {
		key := int64(math.Round(e.multiplier * 100))
		names, ok := buckets[key]
		if !ok {
			names = make(map[string]struct{})
			buckets[key] = names
		}
		names[e.name] = struct{}{}
	}

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })

	report := make([]Group, 0, len(keys))
	for _, k := range keys {
		names := make([]string, 0, len(buckets[k]))
		for name := range buckets[k] {
			names = append(names, name)
		}
		sort.Strings(names)
		report = append(report, Group{Multiplier: float64(k) / 100, Names: names})
	}
	return report
}

// Print writes one line per group: the multiplier, a tab, then the names.
func (t *Table) Print(w io.Writer) error {
	for _, g := range t.Get() {
		line := "×" + FormatMultiplier(g.Multiplier) + "\t" + strings.Join(g.Names, ", ") + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return &OutputError{Err: err}
		}
	}
	return nil
}

// FormatMultiplier renders a multiplier without trailing zeros ("0.5", "2", "0").
func FormatMultiplier(m float64) string {
	return strconv.FormatFloat(math.Round(m*100)/100, 'f', -1, 64)
}

// String implements fmt.Stringer for debugging output
func (g Group) String() string {
	return fmt.Sprintf("×%s %v", FormatMultiplier(g.Multiplier), g.Names)
}
