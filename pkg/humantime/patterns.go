package humantime

import "regexp"

// Building blocks shared by every unit pattern. A match is a number, at most
// one whitespace character, a unit label, and then either the end of input or
// a character that cannot continue a word. Go's regexp engine has no
// lookahead, so the boundary character is consumed and only the number
// submatch is used.
const (
	numberExpr   = `([0-9]+(?:[.,][0-9]+)?)`
	spaceExpr    = `[\s\v\x{85}\p{Z}]?`
	boundaryExpr = `(?:[^\p{L}\p{Mn}\p{Nd}\p{Pc}]|$)`
)

// labelSet holds the label alternation for each unit of one language.
// Abbreviations are case-sensitive; spelled-out words are wrapped in (?i:...).
type labelSet struct {
	millisecond string
	second      string
	minute      string
	hour        string
	day         string
}

func (s labelSet) forUnit(u Unit) string {
	switch u {
	case Millisecond:
		return s.millisecond
	case Second:
		return s.second
	case Minute:
		return s.minute
	case Hour:
		return s.hour
	case Day:
		return s.day
	default:
		return ""
	}
}

var labelSets = map[Language]labelSet{
	English: {
		millisecond: `ms|(?i:milliseconds?)`,
		second:      `s|(?i:sec(?:onds?)?)`,
		minute:      `m|(?i:min(?:utes?)?)`,
		hour:        `h(?:rs)?|(?i:hours?)`,
		day:         `d|(?i:days?)`,
	},
	German: {
		millisecond: `ms|(?i:millisekunden?)`,
		second:      `s|(?i:sek(?:unden?)?)`,
		minute:      `m|(?i:min(?:uten?)?)`,
		hour:        `h|Std?\.|(?i:stunden?)`,
		day:         `d|(?i:tagen?)`,
	},
}

type patternKey struct {
	lang Language
	unit Unit
}

// patterns is built once at init and only read afterwards.
var patterns = compilePatterns(labelSets)

func compilePatterns(sets map[Language]labelSet) map[patternKey]*regexp.Regexp {
	out := make(map[patternKey]*regexp.Regexp, len(sets)*len(units))
	for lang, set := range sets {
		for _, u := range units {
			expr := numberExpr + spaceExpr + `(?:` + set.forUnit(u) + `)` + boundaryExpr
			out[patternKey{lang: lang, unit: u}] = regexp.MustCompile(expr)
		}
	}
	return out
}
