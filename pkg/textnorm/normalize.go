package textnorm

import (
	"strings"
	"time"
	"unicode"
)

// honorifics stripped from the front of a first name before matching
var honorifics = map[string]bool{
	"dr":        true,
	"mr":        true,
	"ms":        true,
	"mrs":       true,
	"miss":      true,
	"prof":      true,
	"professor": true,
}

// Fold lower-cases and trims a string
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Insight normalizes an insight string for grouping: lowercase, trim,
// strip trailing punctuation
func Insight(s string) string {
	s = Fold(s)
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r)
	})
}

// NamePart normalizes one name component: lowercase, trim, drop a leading
// honorific, remove non-letter characters, collapse whitespace
func NamePart(s string) string {
	fields := strings.Fields(Fold(s))
	if len(fields) > 0 && honorifics[strings.Trim(fields[0], ".")] {
		fields = fields[1:]
	}

	var b strings.Builder
	for i, f := range fields {
		var kept []rune
		for _, r := range f {
			if unicode.IsLetter(r) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(kept))
	}
	return b.String()
}

// NameKey builds the exact-match index key for a first+last name pair
func NameKey(first, last string) string {
	return NamePart(first) + "_" + NamePart(last)
}

// FullName builds the normalized "first last" form used for fuzzy comparison
func FullName(first, last string) string {
	return strings.TrimSpace(NamePart(first) + " " + NamePart(last))
}

// Email normalizes an email address for exact matching
func Email(s string) string {
	return Fold(s)
}

// DateKey normalizes a timestamp to its calendar day, no time component
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
