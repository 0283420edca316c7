// Package humantime extracts durations from free-form, human-written text
// such as "1h 30m" or "2,5 Std. 10 Sek.".
//
// Parsing looks for at most one number per unit (milliseconds, seconds,
// minutes, hours, days) using the labels of an explicitly selected
// Language, and sums the matches. Only the first occurrence of each unit
// counts: "1h 2h" is one hour. Both "," and "." are accepted as decimal
// separators regardless of the host locale.
//
// Parse never fails. Units that are absent, or whose number cannot be
// represented, contribute nothing; Explain reports why.
package humantime

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoMatch marks a unit whose label does not appear in the input.
	ErrNoMatch = errors.New("no match")
	// ErrNumber marks a matched token that could not be parsed as a number.
	ErrNumber = errors.New("invalid number")
)

var logger atomic.Pointer[slog.Logger]

// SetLogger overrides the package logger used for debug output.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

func pkgLogger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Component is the contribution of a single unit to a parse result.
type Component struct {
	Unit Unit
	// Token is the number as it appeared in the input, before the decimal
	// separator is normalized. Empty when the unit did not match.
	Token string
	Ticks Duration
	// Err is ErrNoMatch, an error wrapping ErrNumber, or nil.
	Err error
}

// Matched reports whether the unit's label was found in the input.
func (c Component) Matched() bool {
	return c.Token != ""
}

// Parse returns the sum of all unit contributions found in input for lang.
// The sum saturates at MaxDuration.
func Parse(input string, lang Language) Duration {
	var total Duration
	for _, c := range Explain(input, lang) {
		total = total.Add(c.Ticks)
	}
	return total
}

// Explain returns one Component per unit, in unit order.
func Explain(input string, lang Language) []Component {
	components := make([]Component, 0, len(units))
	for _, u := range units {
		components = append(components, extract(input, lang, u))
	}
	return components
}

func extract(input string, lang Language, u Unit) Component {
	c := Component{Unit: u}

	re, ok := patterns[patternKey{lang: lang, unit: u}]
	if !ok {
		c.Err = ErrNoMatch
		return c
	}
	m := re.FindStringSubmatch(input)
	if m == nil {
		c.Err = ErrNoMatch
		return c
	}
	c.Token = m[1]

	ticks, err := toTicks(strings.ReplaceAll(c.Token, ",", "."), u)
	if err != nil {
		pkgLogger().Debug("token_rejected", "unit", u.String(), "token", c.Token, "error", err)
		c.Err = err
		return c
	}
	c.Ticks = ticks
	return c
}

var (
	maxTokenValue = decimal.NewFromInt(math.MaxInt64)
	minTokenValue = decimal.NewFromInt(math.MinInt64)
)

// toTicks converts a normalized token ("." separator only) to ticks of u.
// Decimal results are truncated toward zero.
func toTicks(token string, u Unit) (Duration, error) {
	ratio := u.Ticks()

	if !strings.Contains(token, ".") {
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %w", ErrNumber, token, err)
		}
		return scale(n, ratio), nil
	}

	v, err := decimal.NewFromString(token)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrNumber, token, err)
	}
	if v.GreaterThan(maxTokenValue) || v.LessThan(minTokenValue) {
		return 0, fmt.Errorf("%w %q: value out of range", ErrNumber, token)
	}

	t := v.Mul(decimal.NewFromInt(int64(ratio))).Truncate(0)
	switch {
	case t.GreaterThan(maxTokenValue):
		return MaxDuration, nil
	case t.LessThan(minTokenValue):
		return MinDuration, nil
	}
	return Duration(t.IntPart()), nil
}
