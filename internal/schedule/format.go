package schedule

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultNameLimit is the default number of characters kept by Truncate.
const DefaultNameLimit = 30

// Ellipsis marks a truncated name.
const Ellipsis = "..."

// Truncate returns s unchanged when it has at most limit characters,
// otherwise its first limit characters followed by Ellipsis.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}

// FormatNumber writes a task number the way the schedule's numeric column
// prints it: whole numbers keep one decimal place ("2.0"), others use the
// shortest form ("2.1", "10.25").
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e16 {
		return strconv.FormatFloat(n, 'f', 1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// DisplayName returns "<number>) <truncated name>". Apply it to the
// original record only; formatting an already formatted name prefixes twice.
func DisplayName(r Record, limit int) string {
	return FormatNumber(r.Number) + ") " + Truncate(r.Name, limit)
}

// NormalizeName trims a cell and composes it to NFC so that character counts
// match what the user sees. Internal line breaks become spaces.
func NormalizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
	return norm.NFC.String(strings.TrimFunc(s, unicode.IsSpace))
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
