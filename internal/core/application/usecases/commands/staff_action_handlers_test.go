package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"offroute/internal/core/application/usecases/commands"
	"offroute/internal/core/domain/model/incident"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmSafe(t *testing.T, f *fixture, eventID kernel.UUID, notes string, at time.Time) (*offroute.Event, error) {
	t.Helper()
	cmd, err := commands.NewConfirmSafeCommand(eventID, kernel.NewUUID(), notes, at)
	require.NoError(t, err)
	h := commands.NewConfirmSafeCommandHandler(eventUoWFactory{f.uow})
	return h.Handle(t.Context(), cmd)
}

func createIssue(t *testing.T, f *fixture, eventID kernel.UUID, description string, at time.Time) (*offroute.Event, *incident.Incident, error) {
	t.Helper()
	cmd, err := commands.NewCreateIssueFromEventCommand(eventID, kernel.NewUUID(), description, at)
	require.NoError(t, err)
	h := commands.NewCreateIssueFromEventCommandHandler(issueUoWFactory{f.uow}, f.directory, discardLogger())
	return h.Handle(t.Context(), cmd)
}

func TestConfirmSafeCommandHandler(t *testing.T) {
	t.Run("resolves with default reason", func(t *testing.T) {
		f := newFixture(t)
		opened := f.openEvent(t, 150)

		e, err := confirmSafe(t, f, opened.ID(), "", t0.Add(3*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, offroute.ResolvedSafe, e.Status())
		assert.Equal(t, offroute.ReasonConfirmedSafe, e.ResolvedReason())
		stored := f.store.load(t, opened.ID())
		assert.Equal(t, offroute.ResolvedSafe, stored.Status())
		require.NotNil(t, stored.CanContactDriver())
		assert.True(t, *stored.CanContactDriver())
		assert.Equal(t, int64(2), stored.Version())
	})

	t.Run("notes become the reason", func(t *testing.T) {
		f := newFixture(t)
		opened := f.openEvent(t, 150)

		e, err := confirmSafe(t, f, opened.ID(), "  detour around a closed bridge ", t0.Add(3*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, "detour around a closed bridge", e.ResolvedReason())
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)

		_, err := confirmSafe(t, f, kernel.NewUUID(), "", t0)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("conflict is returned without retry", func(t *testing.T) {
		f := newFixture(t)
		opened := f.openEvent(t, 150)
		f.store.failNextUpdates(1)

		_, err := confirmSafe(t, f, opened.ID(), "", t0.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		assert.Equal(t, 1, f.store.updates)
		assert.Equal(t, offroute.YellowWarning, f.store.load(t, opened.ID()).Status())
	})
}

func TestConfirmSafeCommandHandler_AfterIssueCreated(t *testing.T) {
	f := newFixture(t)
	f.incidents.On("Create", mock.Anything, mock.Anything).Return(nil)
	opened := f.openEvent(t, 150)
	_, _, err := createIssue(t, f, opened.ID(), "", t0.Add(5*time.Minute))
	require.NoError(t, err)

	_, err = confirmSafe(t, f, opened.ID(), "", t0.Add(6*time.Minute))

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	stored := f.store.load(t, opened.ID())
	assert.Equal(t, offroute.IssueCreated, stored.Status())
	assert.Equal(t, offroute.ReasonIssueCreated, stored.ResolvedReason())
}

func TestMarkNoContactCommandHandler(t *testing.T) {
	f := newFixture(t)
	opened := f.openEvent(t, 150)
	cmd, err := commands.NewMarkNoContactCommand(opened.ID(), kernel.NewUUID(), "phone switched off", t0.Add(4*time.Minute))
	require.NoError(t, err)
	h := commands.NewMarkNoContactCommandHandler(eventUoWFactory{f.uow})

	e, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, offroute.ContactFailed, e.Status())
	assert.Equal(t, offroute.ReasonNoContact, e.ResolvedReason())
	assert.Equal(t, "phone switched off", e.ContactNotes())
	require.NotNil(t, e.CanContactDriver())
	assert.False(t, *e.CanContactDriver())
	assert.True(t, e.Status().IsTerminal())
}

func TestConfirmContactCommandHandler(t *testing.T) {
	f := newFixture(t)
	opened := f.openEvent(t, 150)
	at := t0.Add(2 * time.Minute)
	staffID := kernel.NewUUID()
	cmd, err := commands.NewConfirmContactCommand(opened.ID(), staffID, at)
	require.NoError(t, err)
	h := commands.NewConfirmContactCommandHandler(eventUoWFactory{f.uow}, f.policy)

	e, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, offroute.ContactedWaitingReturn, e.Status())
	require.NotNil(t, e.GracePeriodExpiresAt())
	assert.Equal(t, at.Add(offroute.DefaultGracePeriod), *e.GracePeriodExpiresAt())
	require.NotNil(t, e.ContactedBy())
	assert.True(t, e.ContactedBy().IsEqual(staffID))
	assert.Empty(t, f.dispatcher.sent())
}

func TestExtendGracePeriodCommandHandler_Limit(t *testing.T) {
	f := newFixture(t)
	opened := f.openEvent(t, 150)
	contactAt := t0.Add(time.Minute)
	confirm(t, f, opened.ID(), contactAt)
	h := commands.NewExtendGracePeriodCommandHandler(eventUoWFactory{f.uow}, f.policy)

	extend := func(at time.Time) (*offroute.Event, error) {
		cmd, err := commands.NewExtendGracePeriodCommand(opened.ID(), kernel.NewUUID(), at)
		require.NoError(t, err)
		return h.Handle(t.Context(), cmd)
	}

	for i := 1; i <= offroute.DefaultMaxGraceExtensions; i++ {
		e, err := extend(contactAt.Add(time.Duration(i) * time.Minute))
		require.NoError(t, err)
		assert.Equal(t, i, e.GracePeriodExtensionCount())
	}

	_, err := extend(contactAt.Add(10 * time.Minute))

	require.ErrorIs(t, err, errs.ErrLimitExceeded)
	stored := f.store.load(t, opened.ID())
	assert.Equal(t, offroute.DefaultMaxGraceExtensions, stored.GracePeriodExtensionCount())
	require.NotNil(t, stored.GracePeriodExpiresAt())
	want := contactAt.Add(offroute.DefaultGracePeriod + offroute.DefaultMaxGraceExtensions*offroute.DefaultGraceExtension)
	assert.Equal(t, want, *stored.GracePeriodExpiresAt())
}

func TestExtendGracePeriodCommandHandler_RequiresContact(t *testing.T) {
	f := newFixture(t)
	opened := f.openEvent(t, 150)
	cmd, err := commands.NewExtendGracePeriodCommand(opened.ID(), kernel.NewUUID(), t0.Add(time.Minute))
	require.NoError(t, err)
	h := commands.NewExtendGracePeriodCommandHandler(eventUoWFactory{f.uow}, f.policy)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestCreateIssueFromEventCommandHandler(t *testing.T) {
	t.Run("default description from trip context", func(t *testing.T) {
		f := newFixture(t)
		f.incidents.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		opened := f.openEvent(t, 150)

		e, issue, err := createIssue(t, f, opened.ID(), "", t0.Add(12*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, offroute.IssueCreated, e.Status())
		require.NotNil(t, e.IssueID())
		assert.True(t, e.IssueID().IsEqual(issue.ID()))
		assert.True(t, issue.EventID().IsEqual(opened.ID()))
		assert.True(t, issue.TripID().IsEqual(f.tripID))
		assert.Equal(t, incident.StatusOpen, issue.Status())
		assert.True(t, strings.Contains(issue.Description(), "Order: ORD-1001"))
		assert.True(t, strings.Contains(issue.Description(), "Vehicle: 29A-12345"))
		assert.True(t, strings.Contains(issue.Description(), "Off route for 12 minutes"))
		assert.True(t, strings.HasSuffix(issue.Description(), "driver was not contacted"))
		f.incidents.AssertExpectations(t)
		assert.Equal(t, 1, f.uow.committed)
	})

	t.Run("custom description is kept", func(t *testing.T) {
		f := newFixture(t)
		f.incidents.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		opened := f.openEvent(t, 150)

		_, issue, err := createIssue(t, f, opened.ID(), "Driver stopped at an unknown warehouse", t0.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, "Driver stopped at an unknown warehouse", issue.Description())
		f.directory.AssertNotCalled(t, "GetTripSummary", mock.Anything, mock.Anything)
	})

	t.Run("missing trip context falls back to placeholders", func(t *testing.T) {
		f := newFixture(t)
		f.directory.ExpectedCalls = nil
		f.directory.On("GetTripSummary", mock.Anything, f.tripID).Return(trip.Summary{}, errors.New("timeout"))
		f.incidents.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		opened := f.openEvent(t, 150)

		_, issue, err := createIssue(t, f, opened.ID(), "", t0.Add(time.Minute))

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(issue.Description(), "Driver left the planned route."))
	})

	t.Run("closed event creates no incident", func(t *testing.T) {
		f := newFixture(t)
		opened := f.openEvent(t, 150)
		_, err := confirmSafe(t, f, opened.ID(), "", t0.Add(time.Minute))
		require.NoError(t, err)

		_, _, err = createIssue(t, f, opened.ID(), "", t0.Add(2*time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		f.incidents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("incident store failure leaves event open", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("insert failed")
		f.incidents.On("Create", mock.Anything, mock.Anything).Return(boom).Once()
		opened := f.openEvent(t, 150)

		_, _, err := createIssue(t, f, opened.ID(), "", t0.Add(time.Minute))

		require.ErrorIs(t, err, boom)
		assert.Equal(t, offroute.YellowWarning, f.store.load(t, opened.ID()).Status())
		assert.Zero(t, f.uow.committed)
	})
}

func TestResetOffRouteEventCommandHandler(t *testing.T) {
	t.Run("closes active event", func(t *testing.T) {
		f := newFixture(t)
		opened := f.openEvent(t, 150)
		cmd, err := commands.NewResetOffRouteEventCommand(f.tripID, t0.Add(time.Minute))
		require.NoError(t, err)
		h := commands.NewResetOffRouteEventCommandHandler(eventUoWFactory{f.uow}, discardLogger())

		e, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, offroute.BackOnRoute, e.Status())
		assert.Equal(t, offroute.ReasonAdminReset, e.ResolvedReason())
		assert.Nil(t, e.ResolvedBy())
		assert.Equal(t, offroute.BackOnRoute, f.store.load(t, opened.ID()).Status())
	})

	t.Run("nothing to reset", func(t *testing.T) {
		f := newFixture(t)
		cmd, err := commands.NewResetOffRouteEventCommand(f.tripID, t0)
		require.NoError(t, err)
		h := commands.NewResetOffRouteEventCommandHandler(eventUoWFactory{f.uow}, discardLogger())

		e, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Nil(t, e)
		assert.Zero(t, f.uow.committed)
	})
}
