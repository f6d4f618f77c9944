package stamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	day := 24 * time.Hour
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"zero", 0, "a few seconds ago"},
		{"seconds past", -30 * time.Second, "a few seconds ago"},
		{"seconds future", 44 * time.Second, "in a few seconds"},
		{"one minute", -45 * time.Second, "a minute ago"},
		{"minutes", -5 * time.Minute, "5 minutes ago"},
		{"minutes future", 44 * time.Minute, "in 44 minutes"},
		{"one hour", -45 * time.Minute, "an hour ago"},
		{"hours", -3 * time.Hour, "3 hours ago"},
		{"hours future", 3 * time.Hour, "in 3 hours"},
		{"one day", -22 * time.Hour, "a day ago"},
		{"days", -2 * day, "2 days ago"},
		{"one month", -26 * day, "a month ago"},
		{"months", -90 * day, "3 months ago"},
		{"one year", -330 * day, "a year ago"},
		{"years", -3 * 365 * day, "3 years ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Humanize(tc.duration))
		})
	}
}
