package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pmerrell/atrium/internal/config"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/layout"
	"github.com/pmerrell/atrium/internal/repository"
)

type eventService struct {
	events    repository.EventRepo
	calendars repository.CalendarRepo
	cfg       *config.Config
}

func NewEventService(events repository.EventRepo, calendars repository.CalendarRepo, cfg *config.Config) EventService {
	return &eventService{events: events, calendars: calendars, cfg: cfg}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = domain.EventConfirmed
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := e.Validate(); err != nil {
		return err
	}
	if _, err := s.calendars.GetByID(ctx, e.CalendarID); err != nil {
		return fmt.Errorf("loading calendar %s: %w", e.CalendarID, err)
	}
	return s.events.Create(ctx, e)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	return s.events.ListBetween(ctx, from, to)
}

func (s *eventService) Update(ctx context.Context, e *domain.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC()
	return s.events.Update(ctx, e)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func (s *eventService) DayGrid(ctx context.Context, day time.Time) (*DayGrid, error) {
	loc := s.cfg.Location()
	dayStart, dayEnd := dayBounds(day, loc)

	events, err := s.events.ListBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("loading events for %s: %w", dayStart.Format("2006-01-02"), err)
	}
	return buildDayGrid(dayStart, events), nil
}

func (s *eventService) WeekGrid(ctx context.Context, day time.Time) (*WeekGrid, error) {
	loc := s.cfg.Location()
	start := weekStart(day.In(loc), s.cfg.WeekStart)
	end := start.AddDate(0, 0, 7)

	events, err := s.events.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading events for week of %s: %w", start.Format("2006-01-02"), err)
	}

	grid := &WeekGrid{Start: start, Days: make([]DayGrid, 0, 7)}
	for i := 0; i < 7; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var dayEvents []*domain.Event
		for _, ev := range events {
			if intersectsWindow(ev, dayStart, dayEnd) {
				dayEvents = append(dayEvents, ev)
			}
		}
		grid.Days = append(grid.Days, *buildDayGrid(dayStart, dayEvents))
	}
	return grid, nil
}

// buildDayGrid separates all-day banners from timed events and lays the
// timed ones out into columns.
func buildDayGrid(dayStart time.Time, events []*domain.Event) *DayGrid {
	grid := &DayGrid{Day: dayStart}

	byID := make(map[string]*domain.Event, len(events))
	var items []layout.Item
	for _, ev := range events {
		if ev.AllDay {
			grid.AllDay = append(grid.AllDay, ev)
			continue
		}
		byID[ev.ID] = ev
		items = append(items, layout.Item{ID: ev.ID, Start: ev.Start, End: ev.End})
	}

	for _, p := range layout.Layout(items) {
		grid.Items = append(grid.Items, GridItem{
			Event:        byID[p.ID],
			Column:       p.Column,
			TotalColumns: p.TotalColumns,
		})
	}
	grid.Busy = layout.Spans(items)
	return grid
}
