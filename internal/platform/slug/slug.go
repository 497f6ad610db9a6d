package slug

import (
	"strings"
	"unicode"
)

// MaxLen bounds a slug so exported note names stay short.
const MaxLen = 48

// Make turns a lab title into a lowercase, dash-separated file name part.
// Runs of anything other than ASCII letters and digits become one dash, and
// long titles are cut at the last dash that fits in MaxLen.
func Make(input string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(input) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	s := b.String()
	if len(s) > MaxLen {
		s = s[:MaxLen]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
	}
	if s == "" {
		return "lab"
	}
	return s
}
