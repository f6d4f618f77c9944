// Package stamp formats and parses the timestamp shapes RelStamp reads and writes.
package stamp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Layout is the compact form stored in settings and front matter.
	Layout = "20060102150405"
	// ClockLayout is the absolute time shown next to a relative phrase.
	ClockLayout = "03:04 PM"
)

var (
	// ErrInvalidStamp indicates a value that is not a compact timestamp.
	ErrInvalidStamp = errors.New("invalid timestamp")
	// ErrInvalidClock indicates text that is not a clock time like "03:04 PM".
	ErrInvalidClock = errors.New("invalid clock time")
)

var clockLayouts = []string{"3:04 PM", "3:04PM"}

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (clock FixedClock) Now() time.Time {
	return time.Time(clock)
}

// Format renders t in the compact layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a compact timestamp in loc.
func Parse(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(value) != len(Layout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStamp, value)
	}
	parsed, err := time.ParseInLocation(Layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStamp, value)
	}
	return parsed, nil
}

// Valid reports whether value is a well-formed compact timestamp.
func Valid(value string) bool {
	_, err := Parse(value, time.UTC)
	return err == nil
}

// FormatClock renders the time of day as "03:04 PM".
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// ParseClock reads a time of day and places it on the date of on.
func ParseClock(text string, on time.Time) (time.Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		year, month, day := on.Date()
		return time.Date(year, month, day, parsed.Hour(), parsed.Minute(), 0, 0, on.Location()), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, text)
}
