package api

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultLanguage is the language used for display names and effect texts
const DefaultLanguage = "en"

// ErrNoNames is returned when a localized list is empty
var ErrNoNames = errors.New("no localized entries")

// localized picks the entry whose language matches lang, falling back
// to the first entry.
func localized[T any](list []T, lang string, language func(T) NamedAPIResource) (T, error) {
	for _, v := range list {
		if language(v).Name == lang {
			return v, nil
		}
	}
	if len(list) > 0 {
		return list[0], nil
	}
	var zero T
	return zero, ErrNoNames
}

// LocalizedName returns the name for lang, or the first name if none matches
func LocalizedName(names []Name, lang string) (string, error) {
	n, err := localized(names, lang, func(n Name) NamedAPIResource { return n.Language })
	if err != nil {
		return "", err
	}
	return n.Name, nil
}

// EnglishName returns the English name, or the first name if none is English
func EnglishName(names []Name) (string, error) {
	return LocalizedName(names, DefaultLanguage)
}

// LocalizedEffect returns the effect text for lang, or the first entry
func LocalizedEffect(entries []VerboseEffect, lang string) (string, error) {
	e, err := localized(entries, lang, func(e VerboseEffect) NamedAPIResource { return e.Language })
	if err != nil {
		return "", err
	}
	return e.Effect, nil
}

// LocalizedFlingEffect returns the fling effect text for lang, or the first entry
func LocalizedFlingEffect(entries []Effect, lang string) (string, error) {
	e, err := localized(entries, lang, func(e Effect) NamedAPIResource { return e.Language })
	if err != nil {
		return "", err
	}
	return e.Effect, nil
}

// MoveEffect returns the move's effect text with $effect_chance filled in
func MoveEffect(m *Move, lang string) (string, error) {
	text, err := LocalizedEffect(m.EffectEntries, lang)
	if err != nil {
		return "", err
	}
	if m.EffectChance != nil {
		text = strings.ReplaceAll(text, "$effect_chance", strconv.Itoa(*m.EffectChance))
	}
	return text, nil
}
