package services

import (
	"time"

	"github.com/JeffersonNayron/Turma-B/models"
)

// DefaultActivityDuration is how long an activity lasts when no end is given.
const DefaultActivityDuration = 75 * time.Minute

// Evaluate derives a status from the activity window [start, end) and now.
// A nil start means the activity has not begun; a nil end means
// start + duration. It is a pure function and never fails.
func Evaluate(now time.Time, start, end *time.Time, duration time.Duration) models.Status {
	if start == nil {
		return models.StatusNotStarted
	}

	finish := start.Add(duration)
	if end != nil {
		finish = *end
	}

	switch {
	case now.Before(*start):
		return models.StatusNotStarted
	case now.Before(finish):
		return models.StatusInProgress
	default:
		return models.StatusFinished
	}
}
