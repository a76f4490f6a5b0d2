package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/models"
	"github.com/JeffersonNayron/Turma-B/utils"
)

// ErrValidation marks input the caller must fix before retrying.
var ErrValidation = errors.New("validation failed")

// PeopleRepository is the storage the attendance service needs.
type PeopleRepository interface {
	Create(ctx context.Context, person *models.Person) error
	Get(ctx context.Context, id uint) (models.Person, error)
	List(ctx context.Context) ([]models.Person, error)
	SetTiming(ctx context.Context, id uint, start, end *time.Time) error
	SetLocation(ctx context.Context, id uint, location string) error
	SetMessage(ctx context.Context, id uint, message string) error
	Delete(ctx context.Context, id uint) error
	ResetAll(ctx context.Context) (int64, error)
	Purge(ctx context.Context) error
}

// AttendanceService registers people, records their activity windows and
// reports each person's status as of the moment it is read.
type AttendanceService struct {
	people   PeopleRepository
	clock    Clock
	duration time.Duration
}

func NewAttendanceService(people PeopleRepository, clock Clock, duration time.Duration) *AttendanceService {
	if duration <= 0 {
		duration = DefaultActivityDuration
	}
	return &AttendanceService{
		people:   people,
		clock:    clock,
		duration: duration,
	}
}

func (s *AttendanceService) List(ctx context.Context) ([]models.PersonResponse, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]models.PersonResponse, len(people))
	for i, person := range people {
		views[i] = s.view(person, now)
	}
	return views, nil
}

func (s *AttendanceService) Get(ctx context.Context, id uint) (models.PersonResponse, error) {
	person, err := s.people.Get(ctx, id)
	if err != nil {
		return models.PersonResponse{}, err
	}
	return s.view(person, s.clock.Now()), nil
}

func (s *AttendanceService) Add(ctx context.Context, name, location string) (models.PersonResponse, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || location == "" {
		return models.PersonResponse{}, fmt.Errorf("%w: name and location are required", ErrValidation)
	}

	person := models.Person{Name: name, Location: location}
	if err := s.people.Create(ctx, &person); err != nil {
		config.Logger.Errorw("failed to add person", "error", err, "name", name)
		return models.PersonResponse{}, err
	}

	config.Logger.Infow("person added", "personID", person.ID, "location", location)
	return s.view(person, s.clock.Now()), nil
}

// Start opens a fresh activity window at the current time.
func (s *AttendanceService) Start(ctx context.Context, id uint) (models.PersonResponse, error) {
	now := s.clock.Now()
	end := now.Add(s.duration)
	if err := s.people.SetTiming(ctx, id, &now, &end); err != nil {
		return models.PersonResponse{}, err
	}

	config.Logger.Infow("activity started", "personID", id, "start", now, "end", end)
	return s.Get(ctx, id)
}

// EditTime replaces the activity window with HH:mm:ss values. The window is
// placed on the day of the current start, or today when there is none. An
// empty endValue means start plus the activity duration; an end earlier than
// the start falls on the following day.
func (s *AttendanceService) EditTime(ctx context.Context, id uint, startValue, endValue string) (models.PersonResponse, error) {
	person, err := s.people.Get(ctx, id)
	if err != nil {
		return models.PersonResponse{}, err
	}

	loc := s.clock.Location()
	day := s.clock.Now()
	if person.StartTime != nil {
		day = *person.StartTime
	}

	start, err := utils.TimeOfDayOn(strings.TrimSpace(startValue), day, loc)
	if err != nil {
		return models.PersonResponse{}, fmt.Errorf("%w: start time: %v", ErrValidation, err)
	}

	end := start.Add(s.duration)
	if endValue = strings.TrimSpace(endValue); endValue != "" {
		end, err = utils.TimeOfDayOn(endValue, start, loc)
		if err != nil {
			return models.PersonResponse{}, fmt.Errorf("%w: end time: %v", ErrValidation, err)
		}
		if end.Equal(start) {
			return models.PersonResponse{}, fmt.Errorf("%w: end time must differ from start time", ErrValidation)
		}
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
	}

	if err := s.people.SetTiming(ctx, id, &start, &end); err != nil {
		return models.PersonResponse{}, err
	}

	config.Logger.Infow("activity window edited", "personID", id, "start", start, "end", end)
	person.StartTime, person.EndTime = &start, &end
	return s.view(person, s.clock.Now()), nil
}

func (s *AttendanceService) EditLocation(ctx context.Context, id uint, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if err := s.people.SetLocation(ctx, id, location); err != nil {
		return err
	}

	config.Logger.Infow("location edited", "personID", id, "location", location)
	return nil
}

// SendMessage sets the person's annotation. Callers gate it to admins.
func (s *AttendanceService) SendMessage(ctx context.Context, id uint, message string) error {
	if err := s.people.SetMessage(ctx, id, strings.TrimSpace(message)); err != nil {
		return err
	}

	config.Logger.Infow("message set", "personID", id)
	return nil
}

func (s *AttendanceService) Delete(ctx context.Context, id uint) error {
	if err := s.people.Delete(ctx, id); err != nil {
		return err
	}

	config.Logger.Infow("person deleted", "personID", id)
	return nil
}

// Reset clears every activity window and message but keeps the people.
func (s *AttendanceService) Reset(ctx context.Context) (int64, error) {
	n, err := s.people.ResetAll(ctx)
	if err != nil {
		config.Logger.Errorw("failed to reset people", "error", err)
		return 0, err
	}

	config.Logger.Infow("attendance reset", "people", n)
	return n, nil
}

// Purge deletes every person and restarts ids at 1.
func (s *AttendanceService) Purge(ctx context.Context) error {
	if err := s.people.Purge(ctx); err != nil {
		config.Logger.Errorw("failed to purge people", "error", err)
		return err
	}

	config.Logger.Warnw("all people purged")
	return nil
}

func (s *AttendanceService) view(person models.Person, now time.Time) models.PersonResponse {
	loc := s.clock.Location()
	return models.PersonResponse{
		ID:        person.ID,
		Name:      person.Name,
		Location:  person.Location,
		StartTime: utils.FormatTimeOfDay(person.StartTime, loc),
		EndTime:   utils.FormatTimeOfDay(person.EndTime, loc),
		Status:    Evaluate(now, person.StartTime, person.EndTime, s.duration),
		Message:   person.Message,
	}
}
