package models

import "time"

// PersonResponse is a person as clients see it, with times of day rendered
// in the service time zone and the status derived at read time.
type PersonResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Status    Status  `json:"status"`
	Message   string  `json:"message"`
}

// SessionResponse describes the caller's current login.
type SessionResponse struct {
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type VersionResponse struct {
	Version string `json:"version"`
}
