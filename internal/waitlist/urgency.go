package waitlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/seatwise/floor-service/internal/models"
)

type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencySoon    Urgency = "soon"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyOverdue Urgency = "overdue"
)

// ParseTimeRange splits a "HH:MM-HH:MM" range into start and end instants on
// the given date, in the date's location.
func ParseTimeRange(date time.Time, timeRange string) (time.Time, time.Time, error) {
	parts := strings.SplitN(timeRange, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed time range %q", timeRange)
	}
	start, err := atTime(date, strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := atTime(date, strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("time range %q ends before it starts", timeRange)
	}
	return start, end, nil
}

func atTime(date time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed time %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location()), nil
}

// ClassifyUrgency grades how close a waitlist entry is to its desired seating
// time. It is a pure function of (target - now):
//
//	minutes until target < 0   -> overdue
//	0..15                      -> urgent
//	>15..30                    -> soon
//	otherwise                  -> normal
//
// An unparseable range classifies as normal rather than failing the panel.
func ClassifyUrgency(entry models.WaitlistEntry, now time.Time) Urgency {
	target, _, err := ParseTimeRange(entry.DesiredDate, entry.DesiredTimeRange)
	if err != nil {
		return UrgencyNormal
	}

	minutesUntil := target.Sub(now).Minutes()
	switch {
	case minutesUntil < 0:
		return UrgencyOverdue
	case minutesUntil <= 15:
		return UrgencyUrgent
	case minutesUntil <= 30:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}
