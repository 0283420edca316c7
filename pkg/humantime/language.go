package humantime

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage is returned when a language name cannot be resolved.
var ErrUnknownLanguage = errors.New("unknown language")

// Language selects the set of unit labels recognized by Parse.
type Language int

const (
	English Language = iota
	German
)

var languageNames = map[string]Language{
	"en":      English,
	"english": English,
	"de":      German,
	"german":  German,
	"deutsch": German,
}

// Languages returns every supported language.
func Languages() []Language {
	return []Language{English, German}
}

// ParseLanguage resolves a language from its name or ISO 639-1 code,
// ignoring case.
func ParseLanguage(s string) (Language, error) {
	if l, ok := languageNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("%w: %q (use english or german)", ErrUnknownLanguage, s)
}

func (l Language) String() string {
	switch l {
	case English:
		return "english"
	case German:
		return "german"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	if _, ok := labelSets[l]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLanguage, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
