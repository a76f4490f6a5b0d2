package models

import (
	"fmt"
	"time"
)

// Role is the privilege level a login grants.
type Role string

const (
	RoleAdmin Role = "adm"
	RoleTeam  Role = "equipe"
)

// ParseRole accepts the stored role names.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeam:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is a login account. Accounts are identified by password alone.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
