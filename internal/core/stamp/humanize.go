package stamp

import (
	"fmt"
	"math"
	"time"
)

// Thresholds match moment.js relative time defaults.
const (
	secondsThreshold = 44
	minutesThreshold = 45
	hoursThreshold   = 22
	daysThreshold    = 26
	monthsThreshold  = 11
)

// Humanize renders d as an English relative phrase.
// Negative durations lie in the past ("3 hours ago"), positive in the future ("in 3 hours").
func Humanize(d time.Duration) string {
	phrase := humanizeMagnitude(d)
	if d > 0 {
		return "in " + phrase
	}
	return phrase + " ago"
}

func humanizeMagnitude(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := d.Hours() / 24
	months := days * 4800 / 146097

	seconds := round(d.Seconds())
	minutes := round(d.Minutes())
	hours := round(d.Hours())

	switch {
	case seconds <= secondsThreshold:
		return "a few seconds"
	case minutes <= 1:
		return "a minute"
	case minutes < minutesThreshold:
		return fmt.Sprintf("%d minutes", minutes)
	case hours <= 1:
		return "an hour"
	case hours < hoursThreshold:
		return fmt.Sprintf("%d hours", hours)
	case round(days) <= 1:
		return "a day"
	case round(days) < daysThreshold:
		return fmt.Sprintf("%d days", round(days))
	case round(months) <= 1:
		return "a month"
	case round(months) < monthsThreshold:
		return fmt.Sprintf("%d months", round(months))
	case round(months/12) <= 1:
		return "a year"
	default:
		return fmt.Sprintf("%d years", round(months/12))
	}
}

func round(value float64) int64 {
	return int64(math.Floor(value + 0.5))
}
