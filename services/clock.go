package services

import "time"

// Clock supplies the current time in the service's civil time zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type zoneClock struct {
	loc *time.Location
}

// NewClock returns the wall clock viewed from loc.
func NewClock(loc *time.Location) Clock {
	return zoneClock{loc: loc}
}

func (c zoneClock) Now() time.Time { return time.Now().In(c.loc) }

func (c zoneClock) Location() *time.Location { return c.loc }
