package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pmerrell/atrium/internal/config"
	"github.com/pmerrell/atrium/internal/db"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
)

// SyncResult summarizes one feed sync.
type SyncResult struct {
	CalendarID string
	FeedName   string
	Imported   int
	FromCache  bool
}

// Importer syncs configured ICS feeds into their backing calendars. Each
// sync replaces the calendar's imported occurrences wholesale inside one
// transaction, so a half-failed import never leaves a mixed state.
type Importer struct {
	fetcher   *Fetcher
	uow       db.UnitOfWork
	calendars repository.CalendarRepo
	observer  Observer
	now       func() time.Time
}

// NewImporter creates an Importer. A nil observer is replaced with the
// no-op observer.
func NewImporter(fetcher *Fetcher, uow db.UnitOfWork, calendars repository.CalendarRepo, obs Observer) *Importer {
	if obs == nil {
		obs = NoopObserver{}
	}
	return &Importer{
		fetcher:   fetcher,
		uow:       uow,
		calendars: calendars,
		observer:  obs,
		now:       time.Now,
	}
}

// SyncAll syncs every configured feed. Individual feed failures do not
// stop the remaining feeds; all errors are joined into the return value.
func (im *Importer) SyncAll(ctx context.Context, cfg *config.Config) ([]SyncResult, error) {
	var (
		results []SyncResult
		errs    []error
	)
	for _, f := range cfg.Feeds {
		res, err := im.SyncFeed(ctx, cfg, f)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %q: %w", f.Name, err))
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// SyncFeed syncs a single feed into its backing calendar, creating the
// calendar on first sync. Expansion covers yesterday through the
// configured horizon so events spanning midnight stay visible.
func (im *Importer) SyncFeed(ctx context.Context, cfg *config.Config, f config.Feed) (SyncResult, error) {
	im.observer.SyncStarted(f.Name)
	started := im.now()

	res, err := im.syncFeed(ctx, cfg, f)
	if err != nil {
		im.observer.SyncFailed(f.Name, err)
		return SyncResult{}, err
	}
	im.observer.SyncFinished(f.Name, res.Imported, res.FromCache, im.now().Sub(started))
	return res, nil
}

func (im *Importer) syncFeed(ctx context.Context, cfg *config.Config, f config.Feed) (SyncResult, error) {
	cal, err := im.ensureCalendar(ctx, f)
	if err != nil {
		return SyncResult{}, err
	}

	fetched, err := im.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return SyncResult{}, err
	}

	now := im.now()
	if fetched.NotModified {
		// Nothing changed upstream; just record the sync time.
		cal.LastSyncedAt = &now
		if err := im.calendars.Update(ctx, cal); err != nil {
			return SyncResult{}, err
		}
		return SyncResult{CalendarID: cal.ID, FeedName: f.Name, FromCache: true}, nil
	}

	parsed, err := Parse(fetched.Body)
	if err != nil {
		return SyncResult{}, err
	}

	loc := cfg.Location()
	local := now.In(loc)
	windowStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	windowEnd := windowStart.AddDate(0, 0, cfg.HorizonDays+1)

	occurrences, err := Expand(parsed, ExpandConfig{
		Location:   loc,
		RangeStart: windowStart,
		RangeEnd:   windowEnd,
	})
	if err != nil {
		return SyncResult{}, err
	}

	events := make([]*domain.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		events = append(events, occurrenceToEvent(cal.ID, occ, now))
	}

	err = im.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		eventRepo := repository.NewSQLiteEventRepo(tx)
		if err := eventRepo.DeleteImported(ctx, cal.ID); err != nil {
			return err
		}
		for _, ev := range events {
			if err := eventRepo.Create(ctx, ev); err != nil {
				return err
			}
		}

		cal.LastSyncedAt = &now
		return repository.NewSQLiteCalendarRepo(tx).Update(ctx, cal)
	})
	if err != nil {
		return SyncResult{}, err
	}

	return SyncResult{CalendarID: cal.ID, FeedName: f.Name, Imported: len(events)}, nil
}

// ensureCalendar finds the feed's backing calendar by name, creating it on
// first sync. A manual calendar with the same name is an error rather than
// something to silently overwrite.
func (im *Importer) ensureCalendar(ctx context.Context, f config.Feed) (*domain.Calendar, error) {
	cal, err := im.calendars.GetByName(ctx, f.Name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		now := im.now()
		cal = &domain.Calendar{
			ID:        uuid.NewString(),
			Name:      f.Name,
			Color:     f.Color,
			Source:    domain.SourceFeed,
			FeedURL:   f.URL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := cal.Validate(); err != nil {
			return nil, err
		}
		if err := im.calendars.Create(ctx, cal); err != nil {
			return nil, err
		}
		return cal, nil
	case err != nil:
		return nil, err
	}

	if !cal.IsFeed() {
		return nil, fmt.Errorf("calendar %q already exists as a manual calendar", f.Name)
	}
	if cal.FeedURL != f.URL || (f.Color != "" && cal.Color != f.Color) {
		cal.FeedURL = f.URL
		if f.Color != "" {
			cal.Color = f.Color
		}
		if err := im.calendars.Update(ctx, cal); err != nil {
			return nil, err
		}
	}
	return cal, nil
}

func occurrenceToEvent(calendarID string, occ Occurrence, now time.Time) *domain.Event {
	title := occ.Summary
	if title == "" {
		title = "(untitled)"
	}
	return &domain.Event{
		ID:          uuid.NewString(),
		CalendarID:  calendarID,
		Title:       title,
		Location:    occ.Location,
		Notes:       occ.Description,
		Start:       occ.Start,
		End:         occ.End,
		AllDay:      occ.AllDay,
		Status:      domain.EventConfirmed,
		FeedUID:     occ.UID,
		InstanceKey: occ.InstanceKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
