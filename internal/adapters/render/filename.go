package render

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// unsafeFileChars are removed from names before they become file names.
const unsafeFileChars = `[]/\;,><&*:%=+@!#^()|?`

// SafeFileName transliterates name to ASCII ("Käärijä" -> "Kaarija",
// "Дмитрий" -> "Dmitrii", "Straße" -> "Strasse") and strips characters
// that are unsafe in file names.
func SafeFileName(name string) string {
	// composed form so decomposed input transliterates the same way
	ascii := unidecode.Unidecode(norm.NFC.String(name))

	safe := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeFileChars, r) {
			return -1
		}
		return r
	}, ascii)

	safe = strings.Join(strings.Fields(safe), " ")
	if safe == "" {
		return "untitled"
	}
	return safe
}
