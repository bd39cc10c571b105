package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
)

type calendarService struct {
	calendars repository.CalendarRepo
	events    repository.EventRepo
}

func NewCalendarService(calendars repository.CalendarRepo, events repository.EventRepo) CalendarService {
	return &calendarService{calendars: calendars, events: events}
}

func (s *calendarService) Create(ctx context.Context, c *domain.Calendar) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Source == "" {
		c.Source = domain.SourceManual
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := c.Validate(); err != nil {
		return err
	}
	return s.calendars.Create(ctx, c)
}

func (s *calendarService) GetByID(ctx context.Context, id string) (*domain.Calendar, error) {
	return s.calendars.GetByID(ctx, id)
}

func (s *calendarService) GetByName(ctx context.Context, name string) (*domain.Calendar, error) {
	return s.calendars.GetByName(ctx, name)
}

func (s *calendarService) List(ctx context.Context) ([]*domain.Calendar, error) {
	return s.calendars.List(ctx)
}

func (s *calendarService) Update(ctx context.Context, c *domain.Calendar) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.calendars.Update(ctx, c)
}

// Delete removes the calendar and, through the schema's cascade, every
// event on it.
func (s *calendarService) Delete(ctx context.Context, id string) error {
	if _, err := s.calendars.GetByID(ctx, id); err != nil {
		return fmt.Errorf("loading calendar: %w", err)
	}
	return s.calendars.Delete(ctx, id)
}
