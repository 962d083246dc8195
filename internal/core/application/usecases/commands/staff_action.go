package commands

import (
	"context"
	"errors"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/pkg/errs"
)

const maxNotesLength = 1000

// staffAction holds the fields every staff command carries.
type staffAction struct {
	eventID kernel.UUID
	staffID kernel.UUID
	at      time.Time
}

func newStaffAction(eventID, staffID kernel.UUID, at time.Time) (staffAction, error) {
	var errList []error
	if err := eventID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("eventID", err))
	}
	if err := staffID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("staffID", err))
	}
	if at.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("at"))
	}
	if err := errors.Join(errList...); err != nil {
		return staffAction{}, err
	}
	return staffAction{eventID: eventID, staffID: staffID, at: at}, nil
}

func (a staffAction) EventID() kernel.UUID { return a.eventID }
func (a staffAction) StaffID() kernel.UUID { return a.staffID }
func (a staffAction) At() time.Time        { return a.at }

func validateNotes(param, notes string) error {
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError(param+" length", len(notes), 0, maxNotesLength)
	}
	return nil
}

// applyToEvent loads the event, lets mutate validate and apply the
// transition, and stores it with a version check. Conflicts are returned to
// the caller untouched, never retried.
func applyToEvent(
	ctx context.Context,
	uowFactory EventUoWFactory,
	eventID kernel.UUID,
	mutate func(event *offroute.Event) error,
) (*offroute.Event, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OffRouteEventRepository()
	event, err := repo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err = mutate(event); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}
