// Package parser turns loosely written clock times into canonical HH:MM.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/manav03panchal/alarmbook/internal/errors"
)

// ClockLayout is the canonical alarm time layout.
const ClockLayout = "15:04"

var (
	// strictClockRegex matches canonical HH:MM (00:00 - 23:59).
	strictClockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	// looseClockRegex matches 8:00, 8.00, 8h00 and 0800.
	looseClockRegex = regexp.MustCompile(`^(\d{1,2})[:.hH]?(\d{2})$`)

	// meridiemRegex matches 7am, 7:30 pm, 12 AM.
	meridiemRegex = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?$`)
)

// IsClock reports whether s is already a canonical HH:MM time.
func IsClock(s string) bool {
	return strictClockRegex.MatchString(s)
}

// NormalizeClock converts input into canonical HH:MM. It accepts canonical
// times, unpadded or differently separated digits ("8:00", "0730"),
// 12-hour times ("7am", "7:30 pm") and, as a last resort, any expression
// go-dateparser understands.
func NormalizeClock(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", errors.ErrInvalidTime
	}

	if IsClock(s) {
		return s, nil
	}

	if m := looseClockRegex.FindStringSubmatch(s); m != nil {
		return clock(m[1], m[2], "")
	}

	if m := meridiemRegex.FindStringSubmatch(s); m != nil {
		return clock(m[1], m[2], strings.ToLower(m[3]))
	}

	return parseNatural(s)
}

// SuggestClock returns the canonical form of input when it differs from
// input and can be normalised, or an empty string.
func SuggestClock(input string) string {
	normalized, err := NormalizeClock(input)
	if err != nil || normalized == strings.TrimSpace(input) {
		return ""
	}
	return normalized
}

func clock(hourStr, minuteStr, meridiem string) (string, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", errors.ErrInvalidTime
	}
	minute := 0
	if minuteStr != "" {
		if minute, err = strconv.Atoi(minuteStr); err != nil {
			return "", errors.ErrInvalidTime
		}
	}

	switch meridiem {
	case "a":
		if hour < 1 || hour > 12 {
			return "", errors.ErrInvalidTime
		}
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour < 1 || hour > 12 {
			return "", errors.ErrInvalidTime
		}
		if hour != 12 {
			hour += 12
		}
	}

	if hour > 23 || minute > 59 {
		return "", errors.ErrInvalidTime
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// parseNatural hands the input to go-dateparser and keeps only the time of
// day. Inputs that carry no time component ("tomorrow") are rejected.
func parseNatural(s string) (string, error) {
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)
	cfg := &dateparser.Configuration{
		CurrentTime: ref,
	}

	result, err := dateparser.Parse(cfg, s)
	if err != nil || result.Time.IsZero() {
		return "", errors.ErrInvalidTime
	}

	t := result.Time
	if t.Hour() == 0 && t.Minute() == 0 && !strings.Contains(strings.ToLower(s), "midnight") {
		return "", errors.ErrInvalidTime
	}
	return t.Format(ClockLayout), nil
}
