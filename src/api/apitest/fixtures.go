package apitest

import (
	"fmt"
	"strings"
)

type typeFixture struct {
	id      int
	name    string
	display string
	no      []string
	double  []string
	half    []string
}

// typeIndex is a trimmed-down type chart with real relations restricted to
// the types listed here, plus the two placeholder types the API exposes.
var typeIndex = []typeFixture{
	{1, "normal", "Normal", []string{"ghost"}, []string{"fighting"}, nil},
	{2, "fighting", "Fighting", nil, []string{"flying"}, nil},
	{3, "flying", "Flying", nil, nil, []string{"fighting", "grass"}},
	{8, "ghost", "Ghost", []string{"normal", "fighting"}, []string{"ghost"}, nil},
	{10, "fire", "Fire", nil, []string{"water"}, []string{"fire", "grass"}},
	{11, "water", "Water", nil, []string{"grass"}, []string{"fire", "water"}},
	{12, "grass", "Grass", nil, []string{"fire", "flying"}, []string{"water", "grass"}},
	{10001, "unknown", "???", nil, nil, nil},
	{10002, "shadow", "Shadow", nil, nil, nil},
}

var fixtures = map[string]string{}

func init() {
	for _, t := range typeIndex {
		body := typeJSON(t)
		fixtures["/type/"+t.name] = body
		fixtures[fmt.Sprintf("/type/%d", t.id)] = body
	}
	for path, body := range static {
		fixtures[path] = body
	}
}

func typeID(name string) int {
	for _, t := range typeIndex {
		if t.name == name {
			return t.id
		}
	}
	panic("apitest: unknown type " + name)
}

func refs(names []string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, fmt.Sprintf(`{"name":%q,"url":"{{base}}/type/%d/"}`, n, typeID(n)))
	}
	return "[" + strings.Join(out, ",") + "]"
}

func typeJSON(t typeFixture) string {
	return fmt.Sprintf(`{
  "id": %d,
  "name": %q,
  "names": [
    {"name": "%s (ja)", "language": {"name": "ja-Hrkt", "url": "{{base}}/language/1/"}},
    {"name": %q, "language": {"name": "en", "url": "{{base}}/language/9/"}}
  ],
  "damage_relations": {
    "no_damage_from": %s,
    "double_damage_from": %s,
    "half_damage_from": %s,
    "no_damage_to": [],
    "double_damage_to": [],
    "half_damage_to": []
  }
}`, t.id, t.name, t.display, t.display, refs(t.no), refs(t.double), refs(t.half))
}

var static = map[string]string{
	"/pokemon/charizard": `{
  "id": 6,
  "name": "charizard",
  "height": 17,
  "weight": 905,
  "species": {"name": "charizard", "url": "{{base}}/pokemon-species/6/"},
  "types": [
    {"slot": 2, "type": {"name": "flying", "url": "{{base}}/type/3/"}},
    {"slot": 1, "type": {"name": "fire", "url": "{{base}}/type/10/"}}
  ]
}`,
	"/pokemon-species/6": `{
  "id": 6,
  "name": "charizard",
  "names": [{"name": "Charizard", "language": {"name": "en", "url": "{{base}}/language/9/"}}],
  "generation": {"name": "generation-i", "url": "{{base}}/generation/1/"}
}`,
	"/generation/1": `{
  "id": 1,
  "name": "generation-i",
  "names": [
    {"name": "Génération I", "language": {"name": "fr", "url": "{{base}}/language/5/"}},
    {"name": "Generation I", "language": {"name": "en", "url": "{{base}}/language/9/"}}
  ]
}`,
	"/generation/3": `{
  "id": 3,
  "name": "generation-iii",
  "names": [{"name": "Generation III", "language": {"name": "en", "url": "{{base}}/language/9/"}}]
}`,
	"/pokemon/mr-mime": `{
  "id": 122,
  "name": "mr-mime",
  "height": 13,
  "weight": 545,
  "species": {"name": "mr-mime", "url": "{{base}}/pokemon-species/122/"},
  "types": [{"slot": 1, "type": {"name": "normal", "url": "{{base}}/type/1/"}}]
}`,
	"/pokemon-species/122": `{
  "id": 122,
  "name": "mr-mime",
  "names": [{"name": "Mr. Mime", "language": {"name": "en", "url": "{{base}}/language/9/"}}],
  "generation": {"name": "generation-i", "url": "{{base}}/generation/1/"}
}`,
	"/ability/blaze": `{
  "id": 66,
  "name": "blaze",
  "names": [{"name": "Blaze", "language": {"name": "en", "url": "{{base}}/language/9/"}}],
  "generation": {"name": "generation-iii", "url": "{{base}}/generation/3/"},
  "effect_entries": [
    {"effect": "Feuer-Attacken werden verstärkt.", "short_effect": "", "language": {"name": "de", "url": "{{base}}/language/6/"}},
    {"effect": "Strengthens fire moves to 1.5× their power when this Pokémon has 1/3 or less of its max HP.", "short_effect": "Strengthens fire moves when HP is low.", "language": {"name": "en", "url": "{{base}}/language/9/"}}
  ]
}`,
	"/move/flamethrower": `{
  "id": 53,
  "name": "flamethrower",
  "names": [{"name": "Flamethrower", "language": {"name": "en", "url": "{{base}}/language/9/"}}],
  "generation": {"name": "generation-i", "url": "{{base}}/generation/1/"},
  "damage_class": {"name": "special", "url": "{{base}}/move-damage-class/3/"},
  "type": {"name": "fire", "url": "{{base}}/type/10/"},
  "target": {"name": "selected-pokemon", "url": "{{base}}/move-target/10/"},
  "pp": 15,
  "power": 90,
  "accuracy": 100,
  "priority": 0,
  "effect_chance": 10,
  "effect_entries": [{"effect": "Inflicts regular damage. Has a $effect_chance% chance to burn the target.", "short_effect": "", "language": {"name": "en", "url": "{{base}}/language/9/"}}]
}`,
	"/move/protect": `{
  "id": 182,
  "name": "protect",
  "names": [{"name": "Protect", "language": {"name": "en", "url": "{{base}}/language/9/"}}],
  "generation": {"name": "generation-i", "url": "{{base}}/generation/1/"},
  "damage_class": {"name": "status", "url": "{{base}}/move-damage-class/1/"},
  "type": {"name": "normal", "url": "{{base}}/type/1/"},
  "target": {"name": "user", "url": "{{base}}/move-target/7/"},
  "pp": 10,
  "power": null,
  "accuracy": null,
  "priority": 4,
  "effect_chance": null,
  "effect_entries": [{"effect": "No moves can hit the user this turn.", "short_effect": "", "language": {"name": "en", "url": "{{base}}/language/9/"}}]
}`,
	"/move-damage-class/1": `{"id": 1, "name": "status", "names": [{"name": "status", "language": {"name": "en", "url": "{{base}}/language/9/"}}]}`,
	"/move-damage-class/3": `{"id": 3, "name": "special", "names": [{"name": "special", "language": {"name": "en", "url": "{{base}}/language/9/"}}]}`,
	"/move-target/7":       `{"id": 7, "name": "user", "names": [{"name": "User", "language": {"name": "en", "url": "{{base}}/language/9/"}}]}`,
	"/move-target/10":      `{"id": 10, "name": "selected-pokemon", "names": [{"name": "Selected Pokémon", "language": {"name": "en", "url": "{{base}}/language/9/"}}]}`,
	"/item/kings-rock": `{
  "id": 221,
  "name": "kings-rock",
  "names": [{"name": "King's Rock", "language": {"name": "en", "url": "{{base}}/language/9/"}}],
  "cost": 10000,
  "category": {"name": "held-items", "url": "{{base}}/item-category/12/"},
  "fling_power": 30,
  "fling_effect": {"name": "flinch", "url": "{{base}}/item-fling-effect/7/"},
  "effect_entries": [{"effect": "Holder's damaging moves have a 10% chance to make their target flinch.", "short_effect": "", "language": {"name": "en", "url": "{{base}}/language/9/"}}]
}`,
	"/item/master-ball": `{
  "id": 1,
  "name": "master-ball",
  "names": [{"name": "Master Ball", "language": {"name": "en", "url": "{{base}}/language/9/"}}],
  "cost": 0,
  "category": {"name": "standard-balls", "url": "{{base}}/item-category/34/"},
  "fling_power": null,
  "fling_effect": null,
  "effect_entries": [{"effect": "Catches a wild Pokémon every time.", "short_effect": "", "language": {"name": "en", "url": "{{base}}/language/9/"}}]
}`,
	"/item-category/12":    `{"id": 12, "name": "held-items", "names": [{"name": "Held items", "language": {"name": "en", "url": "{{base}}/language/9/"}}]}`,
	"/item-category/34":    `{"id": 34, "name": "standard-balls", "names": [{"name": "Standard balls", "language": {"name": "en", "url": "{{base}}/language/9/"}}]}`,
	"/item-fling-effect/7": `{"id": 7, "name": "flinch", "effect_entries": [{"effect": "Target flinches.", "language": {"name": "en", "url": "{{base}}/language/9/"}}]}`,
}
