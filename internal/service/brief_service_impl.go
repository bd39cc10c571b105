package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/config"
)

const briefRecentLimit = 5

type briefService struct {
	events    EventService
	alerts    AlertService
	documents DocumentService
	cfg       *config.Config
	obs       UseCaseObserver
}

func NewBriefService(events EventService, alerts AlertService, documents DocumentService, cfg *config.Config, observers ...UseCaseObserver) BriefService {
	return &briefService{
		events:    events,
		alerts:    alerts,
		documents: documents,
		cfg:       cfg,
		obs:       useCaseObserverOrNoop(observers),
	}
}

// Generate assembles the daily brief for the day containing now: the
// laid-out schedule, alerts needing attention, alerts still to fire
// today, and quick-access documents.
func (s *briefService) Generate(ctx context.Context, now time.Time) (*Brief, error) {
	var brief *Brief
	err := observe(ctx, s.obs, "brief.generate", map[string]any{"day": now.Format("2006-01-02")}, func() error {
		var genErr error
		brief, genErr = s.generate(ctx, now)
		return genErr
	})
	return brief, err
}

func (s *briefService) generate(ctx context.Context, now time.Time) (*Brief, error) {
	loc := s.cfg.Location()
	dayStart, dayEnd := dayBounds(now, loc)

	grid, err := s.events.DayGrid(ctx, now)
	if err != nil {
		return nil, err
	}

	due, err := s.alerts.Due(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("loading due alerts: %w", err)
	}
	upcoming, err := s.alerts.Upcoming(ctx, now, dayEnd.Sub(now))
	if err != nil {
		return nil, fmt.Errorf("loading upcoming alerts: %w", err)
	}

	pinned, err := s.documents.ListPinned(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pinned documents: %w", err)
	}
	recent, err := s.documents.ListRecent(ctx, briefRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("loading recent documents: %w", err)
	}

	workStart := dayStart.Add(time.Duration(s.cfg.DayStartHour) * time.Hour)
	workEnd := dayStart.Add(time.Duration(s.cfg.DayEndHour) * time.Hour)

	return &Brief{
		GeneratedAt: now,
		Day:         dayStart,
		AllDay:      grid.AllDay,
		Events:      grid.Items,
		DueAlerts:   due,
		Upcoming:    upcoming,
		Pinned:      pinned,
		Recent:      recent,
		Busy:        grid.Busy,
		Free:        freeSlots(grid.Busy, workStart, workEnd),
	}, nil
}
