package marketdata

import (
	"fmt"
	"strings"

	"github.com/polygon-io/client-go/rest/models"
)

// Interval is the sampling granularity of a price bar, expressed with the
// codes the chart API understands.
type Interval string

const (
	IntervalOneDay      Interval = "1d"
	IntervalFiveDays    Interval = "5d"
	IntervalOneWeek     Interval = "1wk"
	IntervalOneMonth    Interval = "1mo"
	IntervalThreeMonths Interval = "3mo"
)

// Intervals returns the supported intervals in display order.
func Intervals() []Interval {
	return []Interval{
		IntervalOneDay,
		IntervalFiveDays,
		IntervalOneWeek,
		IntervalOneMonth,
		IntervalThreeMonths,
	}
}

// ParseInterval parses an interval code. Matching is case-insensitive.
func ParseInterval(s string) (Interval, error) {
	candidate := Interval(strings.ToLower(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}

	return "", fmt.Errorf("unsupported interval %q", s)
}

// Valid reports whether i is one of the supported intervals.
func (i Interval) Valid() bool {
	for _, known := range Intervals() {
		if i == known {
			return true
		}
	}

	return false
}

// Description returns a short human readable label.
func (i Interval) Description() string {
	switch i {
	case IntervalOneDay:
		return "daily bars"
	case IntervalFiveDays:
		return "5 day bars"
	case IntervalOneWeek:
		return "weekly bars"
	case IntervalOneMonth:
		return "monthly bars"
	case IntervalThreeMonths:
		return "quarterly bars"
	default:
		return string(i)
	}
}

// Multiplier returns the aggregate multiplier used by Polygon for this interval.
func (i Interval) Multiplier() int {
	switch i {
	case IntervalFiveDays:
		return 5
	case IntervalThreeMonths:
		return 3
	default:
		return 1
	}
}

// Timespan returns the Polygon aggregate timespan for this interval.
func (i Interval) Timespan() models.Timespan {
	switch i {
	case IntervalOneDay, IntervalFiveDays:
		return models.Day
	case IntervalOneWeek:
		return models.Week
	case IntervalOneMonth, IntervalThreeMonths:
		return models.Month
	default:
		return models.Day
	}
}
