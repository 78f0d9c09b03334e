package lookup

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var symbols = strings.NewReplacer(
	"♀", "-f",
	"♂", "-m",
	".", "",
	"'", "",
	"’", "",
	":", "",
)

// Normalize turns user input into an API resource name:
// "Mr. Mime" becomes "mr-mime", "Flabébé" becomes "flabebe" and
// "Nidoran♀" becomes "nidoran-f".
func Normalize(text string) string {
	text = symbols.Replace(strings.TrimSpace(text))
	text = stripAccents(text)
	text = strings.ToLower(strings.Join(strings.Fields(text), "-"))

	for strings.Contains(text, "--") {
		text = strings.ReplaceAll(text, "--", "-")
	}
	return strings.Trim(text, "-")
}

// stripAccents removes combining marks, keeping the base letters.
// Transformers carry state, so each call builds its own chain.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
