package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var (
	validate   = validator.New()
	timeOfDay  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	dateLayout = []string{DateLayout, time.RFC3339}
)

// NormalizeName trims the value and collapses inner whitespace runs.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TeamNameKey is the form team names are compared by for uniqueness.
func TeamNameKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func ValidURL(s string) bool {
	return validate.Var(s, "required,url") == nil
}

// ValidTimeOfDay reports whether s is a 24-hour HH:MM value.
func ValidTimeOfDay(s string) bool {
	return timeOfDay.MatchString(s)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns midnight UTC of that day.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayout {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return DateOf(parsed), true
		}
	}
	return time.Time{}, false
}

// DateOf truncates t to the calendar day it falls on, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// At combines a calendar day with an HH:MM value in loc.
func At(day time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
