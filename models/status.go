package models

import (
	"encoding/json"
	"fmt"
)

// Status is the derived state of a person's activity window.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusFinished
)

var statusNames = map[Status]string{
	StatusNotStarted: "not_started",
	StatusInProgress: "in_progress",
	StatusFinished:   "finished",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
