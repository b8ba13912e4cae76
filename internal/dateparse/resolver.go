// Package dateparse resolves natural-language date expressions, Indonesian
// and English, against a reference date. Resolution is pure calendar
// arithmetic: the same (text, reference) pair always yields the same result
// regardless of locale or environment.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayFirstPattern  = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})`)
	yearFirstPattern = regexp.MustCompile(`(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})`)
	daysAgoPattern   = regexp.MustCompile(`(\d+)\s+(?:hari\s+(?:yang\s+)?lalu|days?\s+ago)`)
)

// Ordered so that resolution stays deterministic when a text happens to
// mention more than one weekday name.
var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"senin", time.Monday},
	{"monday", time.Monday},
	{"selasa", time.Tuesday},
	{"tuesday", time.Tuesday},
	{"rabu", time.Wednesday},
	{"wednesday", time.Wednesday},
	{"kamis", time.Thursday},
	{"thursday", time.Thursday},
	{"jumat", time.Friday},
	{"friday", time.Friday},
	{"sabtu", time.Saturday},
	{"saturday", time.Saturday},
	{"minggu", time.Sunday},
	{"sunday", time.Sunday},
}

// Resolve extracts a calendar date from text relative to ref. The boolean is
// false when no supported expression matched; callers default to ref in that
// case. Rules are evaluated in fixed precedence order and the first match
// wins.
func Resolve(text string, ref time.Time) (time.Time, bool) {
	text = strings.ToLower(text)
	ref = midnight(ref)

	if d, ok := resolveLiteral(text); ok {
		return d, true
	}

	if d, ok := resolveNamedDay(text, ref); ok {
		return d, true
	}

	if m := daysAgoPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return ref.AddDate(0, 0, -n), true
		}
	}

	if strings.Contains(text, "minggu lalu") || strings.Contains(text, "last week") {
		return ref.AddDate(0, 0, -7), true
	}

	if d, ok := resolveWeekday(text, ref); ok {
		return d, true
	}

	return ref, false
}

// resolveLiteral matches day-first (31/12/2023) and year-first (2023-12-31)
// numeric dates. Invalid calendar dates are rejected so resolution can
// continue with the remaining rules.
func resolveLiteral(text string) (time.Time, bool) {
	if m := dayFirstPattern.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[3], m[2], m[1]); ok {
			return d, true
		}
	}
	if m := yearFirstPattern.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

func resolveNamedDay(text string, ref time.Time) (time.Time, bool) {
	switch {
	case strings.Contains(text, "kemarin") || strings.Contains(text, "yesterday"):
		return ref.AddDate(0, 0, -1), true
	// "day after tomorrow" contains "tomorrow", so it is checked first.
	case strings.Contains(text, "lusa") || strings.Contains(text, "day after tomorrow"):
		return ref.AddDate(0, 0, 2), true
	case strings.Contains(text, "besok") || strings.Contains(text, "tomorrow"):
		return ref.AddDate(0, 0, 1), true
	case strings.Contains(text, "hari ini") || strings.Contains(text, "today") ||
		strings.Contains(text, "sekarang") || strings.Contains(text, "now"):
		return ref, true
	}
	return time.Time{}, false
}

// resolveWeekday maps a weekday name to a concrete date. Unqualified names
// resolve to the most recent occurrence on or before ref. "lalu"/"last"
// resolves strictly before ref, "depan"/"next" strictly after.
func resolveWeekday(text string, ref time.Time) (time.Time, bool) {
	for _, w := range weekdays {
		name, day := w.name, w.day
		if !strings.Contains(text, name) {
			continue
		}

		if strings.Contains(text, "depan") || strings.Contains(text, "next") {
			diff := (int(day) - int(ref.Weekday()) + 7) % 7
			if diff == 0 {
				diff = 7
			}
			return ref.AddDate(0, 0, diff), true
		}

		diff := (int(ref.Weekday()) - int(day) + 7) % 7
		if diff == 0 && (strings.Contains(text, "lalu") || strings.Contains(text, "last")) {
			diff = 7
		}
		return ref.AddDate(0, 0, -diff), true
	}
	return time.Time{}, false
}

func makeDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; a round-trip mismatch
	// means the literal was not a real calendar date.
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
