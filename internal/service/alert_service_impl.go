package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
)

// levelRank orders alert levels most urgent first.
var levelRank = map[domain.AlertLevel]int{
	domain.AlertUrgent: 0,
	domain.AlertWarn:   1,
	domain.AlertInfo:   2,
}

type alertService struct {
	alerts repository.AlertRepo
}

func NewAlertService(alerts repository.AlertRepo) AlertService {
	return &alertService{alerts: alerts}
}

func (s *alertService) Create(ctx context.Context, a *domain.Alert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Level == "" {
		a.Level = domain.AlertInfo
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.validate(a); err != nil {
		return err
	}
	return s.alerts.Create(ctx, a)
}

func (s *alertService) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	return s.alerts.GetByID(ctx, id)
}

func (s *alertService) List(ctx context.Context) ([]*domain.Alert, error) {
	return s.alerts.List(ctx)
}

func (s *alertService) Update(ctx context.Context, a *domain.Alert) error {
	if err := s.validate(a); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	return s.alerts.Update(ctx, a)
}

// Ack silences a one-shot alert for good; a recurring alert re-arms at
// its next scheduled occurrence.
func (s *alertService) Ack(ctx context.Context, id string) error {
	if _, err := s.alerts.GetByID(ctx, id); err != nil {
		return err
	}
	return s.alerts.Ack(ctx, id, time.Now().UTC())
}

func (s *alertService) Delete(ctx context.Context, id string) error {
	return s.alerts.Delete(ctx, id)
}

func (s *alertService) Due(ctx context.Context, now time.Time) ([]*domain.Alert, error) {
	all, err := s.alerts.List(ctx)
	if err != nil {
		return nil, err
	}

	var due []*domain.Alert
	for _, a := range all {
		fired, err := firedAt(a, now)
		if err != nil {
			return nil, err
		}
		if fired {
			due = append(due, a)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if levelRank[due[i].Level] != levelRank[due[j].Level] {
			return levelRank[due[i].Level] < levelRank[due[j].Level]
		}
		ti, tj := dueInstant(due[i], now), dueInstant(due[j], now)
		return ti.Before(tj)
	})
	return due, nil
}

func (s *alertService) Upcoming(ctx context.Context, now time.Time, within time.Duration) ([]UpcomingAlert, error) {
	all, err := s.alerts.List(ctx)
	if err != nil {
		return nil, err
	}

	horizon := now.Add(within)
	var upcoming []UpcomingAlert
	for _, a := range all {
		next, ok, err := nextFire(a, now)
		if err != nil {
			return nil, err
		}
		if ok && next.Before(horizon) {
			upcoming = append(upcoming, UpcomingAlert{Alert: a, At: next})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].At.Before(upcoming[j].At)
	})
	return upcoming, nil
}

func (s *alertService) validate(a *domain.Alert) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Recurring() {
		if _, err := cron.ParseStandard(a.Schedule); err != nil {
			return fmt.Errorf("invalid alert schedule %q: %w", a.Schedule, err)
		}
	}
	return nil
}

// firedAt reports whether the alert has fired and not been acknowledged
// since. Recurring alerts measure from the later of creation and the last
// acknowledgement.
func firedAt(a *domain.Alert, now time.Time) (bool, error) {
	if !a.Recurring() {
		if a.Acked() || a.DueAt == nil {
			return false, nil
		}
		return !a.DueAt.After(now), nil
	}

	sched, err := cron.ParseStandard(a.Schedule)
	if err != nil {
		return false, fmt.Errorf("invalid alert schedule %q: %w", a.Schedule, err)
	}
	baseline := a.CreatedAt
	if a.AckedAt != nil && a.AckedAt.After(baseline) {
		baseline = *a.AckedAt
	}
	return !sched.Next(baseline).After(now), nil
}

// nextFire returns the alert's next fire instant strictly after now, if
// one exists.
func nextFire(a *domain.Alert, now time.Time) (time.Time, bool, error) {
	if !a.Recurring() {
		if a.Acked() || a.DueAt == nil || !a.DueAt.After(now) {
			return time.Time{}, false, nil
		}
		return *a.DueAt, true, nil
	}

	sched, err := cron.ParseStandard(a.Schedule)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid alert schedule %q: %w", a.Schedule, err)
	}
	return sched.Next(now), true, nil
}

// dueInstant picks a representative fire time for ordering fired alerts.
func dueInstant(a *domain.Alert, now time.Time) time.Time {
	if !a.Recurring() && a.DueAt != nil {
		return *a.DueAt
	}
	return now
}
