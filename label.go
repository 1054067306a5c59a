package fundledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that do not decompose into an ASCII base and a combining mark.
var undecomposable = strings.NewReplacer(
	"ı", "i",
	"ß", "ss",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
)

// Transliterate returns s with diacritics stripped and non-ASCII characters
// removed. "YAPI KREDİ PORTFÖY" becomes "YAPI KREDI PORTFOY".
func Transliterate(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, undecomposable.Replace(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}
