package util

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/lucrnz/humanspan/pkg/humantime"
)

// ParseGoDuration parses a duration in Go syntax plus days (d) and weeks (w).
// Examples: "1h", "1h30m", "2d", "1w2d3h", "300s"
func ParseGoDuration(s string) (humantime.Duration, error) {
	d, err := str2duration.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return humantime.FromStd(d), nil
}

// HumanDuration renders d in words, e.g. "2 hours 15 minutes".
func HumanDuration(d humantime.Duration) string {
	if d == 0 {
		return "0 seconds"
	}
	return durafmt.Parse(d.Std()).String()
}

// GroupDigits formats n with thousands separators, e.g. "81,000,000,000".
func GroupDigits(n int64) string {
	return humanize.Comma(n)
}
