package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JeffersonNayron/Turma-B/models"

	"gorm.io/gorm"
)

// PersonStore owns the people table, including its id sequence.
type PersonStore struct {
	db *gorm.DB
}

func NewPersonStore(db *gorm.DB) *PersonStore {
	return &PersonStore{db: db}
}

func (s *PersonStore) Create(ctx context.Context, person *models.Person) error {
	if err := s.db.WithContext(ctx).Create(person).Error; err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

func (s *PersonStore) Get(ctx context.Context, id uint) (models.Person, error) {
	var person models.Person
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&person).Error; err != nil {
		return models.Person{}, translate(err)
	}
	return person, nil
}

// List returns every person ordered by id.
func (s *PersonStore) List(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	if err := s.db.WithContext(ctx).Order("id").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// SetTiming stores the activity window. Both values may be nil.
func (s *PersonStore) SetTiming(ctx context.Context, id uint, start, end *time.Time) error {
	return s.update(ctx, id, map[string]any{
		"start_time": start,
		"end_time":   end,
	})
}

func (s *PersonStore) SetLocation(ctx context.Context, id uint, location string) error {
	return s.update(ctx, id, map[string]any{"location": location})
}

func (s *PersonStore) SetMessage(ctx context.Context, id uint, message string) error {
	return s.update(ctx, id, map[string]any{"message": message})
}

func (s *PersonStore) update(ctx context.Context, id uint, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(&models.Person{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update person %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PersonStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Person{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete person %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetAll clears the activity window and message of every person and
// returns how many rows were touched.
func (s *PersonStore) ResetAll(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&models.Person{}).
		Updates(map[string]any{
			"start_time": nil,
			"end_time":   nil,
			"message":    "",
		})
	if result.Error != nil {
		return 0, fmt.Errorf("reset people: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Purge removes every person and restarts the id sequence at 1.
func (s *PersonStore) Purge(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Person{}).Error; err != nil {
			return fmt.Errorf("purge people: %w", err)
		}

		// sqlite_sequence only exists once an AUTOINCREMENT table has had a row.
		exists, err := tableExists(tx, "sqlite_sequence")
		if err != nil {
			return fmt.Errorf("check id sequence: %w", err)
		}
		if !exists {
			return nil
		}
		if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", models.Person{}.TableName()).Error; err != nil {
			return fmt.Errorf("reset id sequence: %w", err)
		}
		return nil
	})
}
