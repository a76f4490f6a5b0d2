// Package store persists people and user accounts through gorm.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// tableExists checks sqlite_master for name, case-insensitively like SQLite itself.
func tableExists(tx *gorm.DB, name string) (bool, error) {
	var count int64
	err := tx.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name COLLATE NOCASE = ?", name).
		Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
