package api

import (
	"strconv"
	"strings"
)

// NamedAPIResource is a link to another API resource
type NamedAPIResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID parses the trailing identifier of the resource URL
// (".../type/10/" yields 10). It returns false if the URL has none.
func (r NamedAPIResource) ID() (int, bool) {
	path := strings.TrimRight(r.URL, "/")
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return 0, false
	}
	id, err := strconv.Atoi(path[i+1:])
	if err != nil {
		return 0, false
	}
	return id, true
}

// NamedAPIResourceList is one page of a resource listing
type NamedAPIResourceList struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []NamedAPIResource `json:"results"`
}

// Name is a localized name
type Name struct {
	Name     string           `json:"name"`
	Language NamedAPIResource `json:"language"`
}

// Effect is a localized effect text
type Effect struct {
	Effect   string           `json:"effect"`
	Language NamedAPIResource `json:"language"`
}

// VerboseEffect is a localized effect text with a short form
type VerboseEffect struct {
	Effect      string           `json:"effect"`
	ShortEffect string           `json:"short_effect"`
	Language    NamedAPIResource `json:"language"`
}

// Pokemon is a single pokemon form
type Pokemon struct {
	ID      int              `json:"id"`
	Name    string           `json:"name"`
	Height  int              `json:"height"` // decimetres
	Weight  int              `json:"weight"` // hectograms
	Species NamedAPIResource `json:"species"`
	Types   []PokemonType    `json:"types"`
}

// PokemonType is one type slot of a pokemon
type PokemonType struct {
	Slot int              `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

// PokemonSpecies holds species-level data
type PokemonSpecies struct {
	ID         int              `json:"id"`
	Name       string           `json:"name"`
	Names      []Name           `json:"names"`
	Generation NamedAPIResource `json:"generation"`
}

// Generation is a game generation
type Generation struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

// Type is an elemental type
type Type struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	Names           []Name            `json:"names"`
	DamageRelations TypeRelations     `json:"damage_relations"`
	Generation      NamedAPIResource  `json:"generation"`
	MoveDamageClass *NamedAPIResource `json:"move_damage_class"`
}

// TypeRelations lists how a type interacts with others
type TypeRelations struct {
	NoDamageTo       []NamedAPIResource `json:"no_damage_to"`
	HalfDamageTo     []NamedAPIResource `json:"half_damage_to"`
	DoubleDamageTo   []NamedAPIResource `json:"double_damage_to"`
	NoDamageFrom     []NamedAPIResource `json:"no_damage_from"`
	HalfDamageFrom   []NamedAPIResource `json:"half_damage_from"`
	DoubleDamageFrom []NamedAPIResource `json:"double_damage_from"`
}

// Ability is a pokemon ability
type Ability struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Names         []Name           `json:"names"`
	Generation    NamedAPIResource `json:"generation"`
	EffectEntries []VerboseEffect  `json:"effect_entries"`
}

// Move is a pokemon move. Nil pointers mean the value does not apply.
type Move struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Names         []Name           `json:"names"`
	Generation    NamedAPIResource `json:"generation"`
	DamageClass   NamedAPIResource `json:"damage_class"`
	Type          NamedAPIResource `json:"type"`
	Target        NamedAPIResource `json:"target"`
	PP            *int             `json:"pp"`
	Power         *int             `json:"power"`
	Accuracy      *int             `json:"accuracy"`
	Priority      int              `json:"priority"`
	EffectChance  *int             `json:"effect_chance"`
	EffectEntries []VerboseEffect  `json:"effect_entries"`
}

// MoveDamageClass is physical, special or status
type MoveDamageClass struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

// MoveTarget describes what a move can hit
type MoveTarget struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

// Item is a held or bag item
type Item struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Names         []Name            `json:"names"`
	Cost          int               `json:"cost"`
	Category      NamedAPIResource  `json:"category"`
	FlingPower    *int              `json:"fling_power"`
	FlingEffect   *NamedAPIResource `json:"fling_effect"`
	EffectEntries []VerboseEffect   `json:"effect_entries"`
}

// ItemCategory groups items
type ItemCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

// ItemFlingEffect is what happens when an item is flung
type ItemFlingEffect struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	EffectEntries []Effect `json:"effect_entries"`
}
