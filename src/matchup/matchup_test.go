package matchup

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	fire  = 10
	water = 11
	grass = 12
)

type fakeProvider struct {
	types     []Type
	byName    map[string]Type
	listErr   error
	listCalls int
	nameCalls int
}

func (p *fakeProvider) ListTypes(ctx context.Context) ([]Type, error) {
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.types, nil
}

func (p *fakeProvider) TypeByName(ctx context.Context, name string) (Type, error) {
	p.nameCalls++
	ty, ok := p.byName[name]
	if !ok {
		return Type{}, errors.New("not found")
	}
	return ty, nil
}

func (p *fakeProvider) TypeByRef(ctx context.Context, ref string) (Type, error) {
	return p.TypeByName(ctx, ref)
}

func starterProvider() *fakeProvider {
	fireType := Type{
		ID:   fire,
		Name: "Fire",
		Relations: Relations{
			NoDamageFrom:     []int{grass},
			DoubleDamageFrom: []int{water},
		},
	}
	return &fakeProvider{
		types: []Type{
			{ID: fire, Name: "Fire"},
			{ID: water, Name: "Water"},
			{ID: grass, Name: "Grass"},
		},
		byName: map[string]Type{
			"fire":  fireType,
			"water": {ID: water, Name: "Water", Relations: Relations{HalfDamageFrom: []int{fire, water}}},
		},
	}
}

func newTable(t *testing.T, p Provider) *Table {
	t.Helper()
	table, err := New(context.Background(), p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return table
}

func TestNewFiltersByCutoff(t *testing.T) {
	p := &fakeProvider{types: []Type{
		{ID: 1, Name: "Normal"},
		{ID: 18, Name: "Fairy"},
		{ID: 19, Name: "Stellar"},
		{ID: 10001, Name: "???"},
		{ID: 10002, Name: "Shadow"},
	}}
	table := newTable(t, p)

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	for _, id := range []int{1, 18, 19} {
		m, ok := table.Multiplier(id)
		if !ok || m != 1 {
			t.Errorf("Multiplier(%d) = %v, %v, want 1, true", id, m, ok)
		}
	}
	for _, id := range []int{10001, 10002} {
		if _, ok := table.Multiplier(id); ok {
			t.Errorf("Multiplier(%d) should not exist", id)
		}
	}
}

func TestNewCatalogError(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := New(context.Background(), &fakeProvider{listErr: cause})

	var catErr *CatalogFetchError
	if !errors.As(err, &catErr) {
		t.Fatalf("New() error = %v, want *CatalogFetchError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("CatalogFetchError should wrap the provider error")
	}
}

func TestApplyRelationsSingleSource(t *testing.T) {
	p := starterProvider()
	table := newTable(t, p)

	table.ApplyRelations(p.byName["fire"].Relations)

	want := []Group{
		{Multiplier: 2, Names: []string{"Water"}},
		{Multiplier: 1, Names: []string{"Fire"}},
		{Multiplier: 0, Names: []string{"Grass"}},
	}
	if diff := cmp.Diff(want, table.Get()); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestNoDamageOverwrites(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Table)
	}{
		{"from default", func(*Table) {}},
		{"from doubled", func(tb *Table) { tb.DoubleDamageFrom(fire); tb.DoubleDamageFrom(fire) }},
		{"from halved", func(tb *Table) { tb.HalfDamageFrom(fire) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := newTable(t, starterProvider())
			tt.setup(table)
			table.NoDamageFrom(fire)

			if m, _ := table.Multiplier(fire); m != 0 {
				t.Errorf("Multiplier = %v, want 0", m)
			}
		})
	}
}

func TestZeroIsSticky(t *testing.T) {
	table := newTable(t, starterProvider())

	table.ApplyRelations(Relations{NoDamageFrom: []int{grass}})
	table.ApplyRelations(Relations{DoubleDamageFrom: []int{grass}})

	if m, _ := table.Multiplier(grass); m != 0 {
		t.Errorf("Multiplier(grass) = %v, want 0", m)
	}
}

func TestFixedOrderWithinCall(t *testing.T) {
	table := newTable(t, starterProvider())

	// Listed as half, double, none; applied as none, double, half.
	table.ApplyRelations(Relations{
		HalfDamageFrom:   []int{water},
		DoubleDamageFrom: []int{water},
		NoDamageFrom:     []int{water},
	})
	if m, _ := table.Multiplier(water); m != 0 {
		t.Errorf("Multiplier(water) = %v, want 0", m)
	}

	// Zero survives every later mutator.
	other := newTable(t, starterProvider())
	other.DoubleDamageFrom(water)
	other.NoDamageFrom(water)
	other.HalfDamageFrom(water)
	other.DoubleDamageFrom(water)
	if m, _ := other.Multiplier(water); m != 0 {
		t.Errorf("Multiplier(water) = %v, want 0", m)
	}
}

func TestDoubleThenHalfRestores(t *testing.T) {
	table := newTable(t, starterProvider())
	table.HalfDamageFrom(fire)
	before, _ := table.Multiplier(fire)

	table.ApplyRelations(Relations{DoubleDamageFrom: []int{fire}})
	table.ApplyRelations(Relations{HalfDamageFrom: []int{fire}})

	after, _ := table.Multiplier(fire)
	if math.Abs(after-before) > 1e-9 {
		t.Errorf("Multiplier = %v, want %v", after, before)
	}
}

func TestUnknownIdentifierIgnored(t *testing.T) {
	table := newTable(t, starterProvider())
	table.Get()

	table.ApplyRelations(Relations{
		NoDamageFrom:     []int{999},
		DoubleDamageFrom: []int{10001},
		HalfDamageFrom:   []int{-1},
	})

	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if _, ok := table.Multiplier(999); ok {
		t.Error("unknown identifier should not be inserted")
	}
	if table.Apply(NoDamage, 999) {
		t.Error("Apply() on unknown identifier should report false")
	}
}

func TestEmptyRelationsSingleGroup(t *testing.T) {
	table := newTable(t, starterProvider())
	table.ApplyRelations(Relations{})
	table.ApplyRelations(Relations{})

	want := []Group{{Multiplier: 1, Names: []string{"Fire", "Grass", "Water"}}}
	if diff := cmp.Diff(want, table.Get()); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCached(t *testing.T) {
	p := starterProvider()
	table := newTable(t, p)

	first := table.Get()
	second := table.Get()

	if table.builds != 1 {
		t.Errorf("builds = %d, want 1", table.builds)
	}
	if p.listCalls != 1 {
		t.Errorf("ListTypes calls = %d, want 1", p.listCalls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second Get() differs:\n%s", diff)
	}
}

func TestGetInvalidatedOnMutation(t *testing.T) {
	table := newTable(t, starterProvider())
	table.Get()

	table.DoubleDamageFrom(water)
	report := table.Get()

	if table.builds != 2 {
		t.Errorf("builds = %d, want 2", table.builds)
	}
	if report[0].Multiplier != 2 || report[0].Names[0] != "Water" {
		t.Errorf("Get()[0] = %v, want ×2 [Water]", report[0])
	}
}

func TestDuplicateNamesCollapse(t *testing.T) {
	p := &fakeProvider{types: []Type{
		{ID: 1, Name: "Normal"},
		{ID: 2, Name: "Normal"},
		{ID: 3, Name: "normal"},
	}}
	table := newTable(t, p)

	want := []Group{{Multiplier: 1, Names: []string{"Normal", "normal"}}}
	if diff := cmp.Diff(want, table.Get()); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrdering(t *testing.T) {
	p := &fakeProvider{types: []Type{
		{ID: 1, Name: "Ice"},
		{ID: 2, Name: "Bug"},
		{ID: 3, Name: "Rock"},
		{ID: 4, Name: "Dark"},
		{ID: 5, Name: "Fairy"},
	}}
	table := newTable(t, p)
	table.ApplyRelations(Relations{DoubleDamageFrom: []int{1, 3}, HalfDamageFrom: []int{2, 4}})
	table.ApplyRelations(Relations{DoubleDamageFrom: []int{3}, HalfDamageFrom: []int{4}})

	report := table.Get()
	for i := 1; i < len(report); i++ {
		if report[i-1].Multiplier <= report[i].Multiplier {
			t.Errorf("groups not descending at %d: %v then %v", i, report[i-1], report[i])
		}
	}
	for _, g := range report {
		for i := 1; i < len(g.Names); i++ {
			if g.Names[i-1] >= g.Names[i] {
				t.Errorf("names not ascending in %v", g)
			}
		}
	}

	want := []float64{4, 2, 1, 0.5, 0.25}
	var got []float64
	for m := range table.All() {
		got = append(got, m)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() multipliers mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundingKeepsGroupsTogether(t *testing.T) {
	p := &fakeProvider{types: []Type{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	table := newTable(t, p)

	for range 3 {
		table.HalfDamageFrom(1)
	}
	for range 3 {
		table.DoubleDamageFrom(1)
	}

	report := table.Get()
	if len(report) != 1 {
		t.Fatalf("Get() = %v, want single group", report)
	}
}

func TestResolvingVariants(t *testing.T) {
	p := starterProvider()
	table := newTable(t, p)
	ctx := context.Background()

	if err := table.ApplyName(ctx, DoubleDamage, "water"); err != nil {
		t.Fatalf("ApplyName() error = %v", err)
	}
	if err := table.ApplyRef(ctx, HalfDamage, "fire"); err != nil {
		t.Fatalf("ApplyRef() error = %v", err)
	}
	ty, err := table.AddType(ctx, "water")
	if err != nil {
		t.Fatalf("AddType() error = %v", err)
	}
	if ty.Name != "Water" {
		t.Errorf("AddType() name = %q, want Water", ty.Name)
	}

	if m, _ := table.Multiplier(water); m != 1 {
		t.Errorf("Multiplier(water) = %v, want 1", m)
	}
	if m, _ := table.Multiplier(fire); m != 0.25 {
		t.Errorf("Multiplier(fire) = %v, want 0.25", m)
	}
}

func TestResolutionError(t *testing.T) {
	table := newTable(t, starterProvider())

	_, err := table.AddType(context.Background(), "typo")
	var resErr *TypeResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("AddType() error = %v, want *TypeResolutionError", err)
	}
	if resErr.Name != "typo" {
		t.Errorf("Name = %q, want typo", resErr.Name)
	}

	if err := table.ApplyName(context.Background(), NoDamage, "typo"); err == nil {
		t.Error("ApplyName() should fail for an unknown type")
	}
	if table.Get()[0].Multiplier != 1 {
		t.Error("failed resolution should not mutate the table")
	}
}

func TestPrint(t *testing.T) {
	p := &fakeProvider{types: []Type{
		{ID: 1, Name: "Ice"},
		{ID: 2, Name: "Bug"},
		{ID: 3, Name: "Ghost"},
		{ID: 4, Name: "Dark"},
	}}
	table := newTable(t, p)
	table.ApplyRelations(Relations{NoDamageFrom: []int{3}, DoubleDamageFrom: []int{1, 1}, HalfDamageFrom: []int{2}})

	var buf bytes.Buffer
	if err := table.Print(&buf); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	want := "×4\tIce\n×1\tDark\n×0.5\tBug\n×0\tGhost\n"
	if buf.String() != want {
		t.Errorf("Print() = %q, want %q", buf.String(), want)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestPrintOutputError(t *testing.T) {
	table := newTable(t, starterProvider())

	err := table.Print(failWriter{})
	var outErr *OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("Print() error = %v, want *OutputError", err)
	}
}

func TestPrintEmptyTable(t *testing.T) {
	table := newTable(t, &fakeProvider{})

	var buf bytes.Buffer
	if err := table.Print(&buf); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Print() = %q, want empty", buf.String())
	}
}

func TestFormatMultiplier(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.25, "0.25"},
		{0.5, "0.5"},
		{1, "1"},
		{2, "2"},
		{4, "4"},
		{0.125, "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMultiplier(tt.in); got != tt.want {
				t.Errorf("FormatMultiplier(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEffectString(t *testing.T) {
	if NoDamage.String() != "no_damage_from" {
		t.Errorf("NoDamage.String() = %q", NoDamage.String())
	}
	if Effect(42).String() != "unknown" {
		t.Errorf("Effect(42).String() = %q", Effect(42).String())
	}
}
