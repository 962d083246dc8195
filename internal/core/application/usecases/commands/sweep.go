package commands

import (
	"context"
	"errors"
	"log/slog"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/pkg/errs"
)

// SweepResult summarizes one scheduler pass.
type SweepResult struct {
	Scanned    int
	Escalated  int
	Conflicted int
	Failed     int
}

// sweeper re-reads each candidate in its own transaction so a conflict or
// failure on one event never affects the others.
type sweeper struct {
	uowFactory EventUoWFactory
	notifier   *WarningNotifier
	logger     *slog.Logger
}

type eventMutation func(event *offroute.Event) (bool, error)

func (s sweeper) run(ctx context.Context, ids []kernel.UUID, mutate eventMutation) SweepResult {
	result := SweepResult{Scanned: len(ids)}

	for _, id := range ids {
		warnings, changed, err := s.advance(ctx, id, mutate)
		switch {
		case errors.Is(err, errs.ErrVersionIsInvalid):
			result.Conflicted++
			s.logger.InfoContext(ctx, "event changed concurrently, skipped", "eventId", id.String())
		case err != nil:
			result.Failed++
			s.logger.ErrorContext(ctx, "failed to advance off-route event", "eventId", id.String(), "error", err)
		case changed:
			result.Escalated++
			s.notifier.Notify(ctx, warnings, nil)
		}
	}

	return result
}

func (s sweeper) advance(ctx context.Context, id kernel.UUID, mutate eventMutation) ([]offroute.WarningRaised, bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OffRouteEventRepository()
	event, err := repo.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	changed, err := mutate(event)
	if err != nil || !changed {
		return nil, false, err
	}

	if err = repo.Update(ctx, event); err != nil {
		return nil, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return event.PullWarnings(), true, nil
}

func (s sweeper) list(ctx context.Context, load func(ctx context.Context, uow EventUoW) ([]*offroute.Event, error)) ([]kernel.UUID, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events, err := load(ctx, uow)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID())
	}
	return ids, nil
}
