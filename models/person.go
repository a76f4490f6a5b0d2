package models

import (
	"time"
)

// Person is one tracked attendee. Status is never stored; it is derived from
// StartTime, EndTime and the current time on every read.
type Person struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"type:varchar(120);not null" json:"name"`
	Location  string     `gorm:"type:varchar(120);not null" json:"location"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Message   string     `gorm:"type:text" json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName pins the table name used by the store.
func (Person) TableName() string {
	return "people"
}
