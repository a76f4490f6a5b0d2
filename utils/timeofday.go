package utils

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// TimeOfDayLayout is the HH:mm:ss wire format for times of day.
const TimeOfDayLayout = "15:04:05"

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:mm:ss")

var timeOfDayPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// TimeOfDayOn places an HH:mm:ss value on the calendar day of day, as seen in loc.
func TimeOfDayOn(value string, day time.Time, loc *time.Location) (time.Time, error) {
	if !timeOfDayPattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}
	clock, err := time.Parse(TimeOfDayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, value)
	}

	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, loc), nil
}

// FormatTimeOfDay renders t as HH:mm:ss in loc. A nil t stays nil.
func FormatTimeOfDay(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(TimeOfDayLayout)
	return &s
}
