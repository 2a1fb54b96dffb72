package symbols

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldStrings returns, for every s, its upper-case spelling, its lower-case
// spelling, the lower case of its upper case, and s itself. Lower-of-upper
// keeps both lower-case forms of scripts whose folding is not involutive,
// such as Greek final sigma.
func FoldStrings(words []string) []string {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	out := make([]string, 0, 4*len(words))
	for _, w := range words {
		u := upper.String(w)
		out = append(out, u, lower.String(w), lower.String(u), w)
	}
	return dedup(out)
}

// FoldRunes expands every r to itself, its lower case, its upper case and
// the lower case of its upper case. Mappings that do not yield a single code
// point are dropped.
func FoldRunes(rs []rune) []rune {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	out := make([]rune, 0, 4*len(rs))
	for _, r := range rs {
		out = append(out, r)
		s := string(r)
		u := upper.String(s)
		for _, v := range []string{lower.String(s), u, lower.String(u)} {
			if c, n := utf8.DecodeRuneInString(v); n == len(v) && c != utf8.RuneError {
				out = append(out, c)
			}
		}
	}
	return dedup(out)
}
