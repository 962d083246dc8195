package commands_test

import (
	"strings"
	"testing"
	"time"

	"offroute/internal/core/application/usecases/commands"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessLocationUpdateCommand(t *testing.T) {
	tripID := kernel.NewUUID()
	speed := 42.5

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewProcessLocationUpdateCommand(tripID, 21.03, 105.85, &speed, nil, t0)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, tripID, cmd.TripID())
		assert.InDelta(t, 21.03, cmd.Point().Lat(), 1e-9)
		assert.Equal(t, t0, cmd.At())
		require.NotNil(t, cmd.Position().SpeedKmh())
		assert.InDelta(t, speed, *cmd.Position().SpeedKmh(), 1e-9)
		assert.Nil(t, cmd.Position().BearingDeg())
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := commands.NewProcessLocationUpdateCommand(tripID, 91, 105.85, nil, nil, t0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("missing trip", func(t *testing.T) {
		_, err := commands.NewProcessLocationUpdateCommand(kernel.UUID{}, 21, 105, nil, nil, t0)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var cmd commands.ProcessLocationUpdateCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrProcessLocationUpdateCommandIsNotConstructed)
	})
}

func TestStaffCommands_RequireIdentifiers(t *testing.T) {
	eventID, staffID := kernel.NewUUID(), kernel.NewUUID()

	tests := []struct {
		name string
		make func(eventID, staffID kernel.UUID, at time.Time) error
	}{
		{"confirm safe", func(e, s kernel.UUID, at time.Time) error {
			_, err := commands.NewConfirmSafeCommand(e, s, "", at)
			return err
		}},
		{"mark no contact", func(e, s kernel.UUID, at time.Time) error {
			_, err := commands.NewMarkNoContactCommand(e, s, "", at)
			return err
		}},
		{"confirm contact", func(e, s kernel.UUID, at time.Time) error {
			_, err := commands.NewConfirmContactCommand(e, s, at)
			return err
		}},
		{"extend grace period", func(e, s kernel.UUID, at time.Time) error {
			_, err := commands.NewExtendGracePeriodCommand(e, s, at)
			return err
		}},
		{"create issue", func(e, s kernel.UUID, at time.Time) error {
			_, err := commands.NewCreateIssueFromEventCommand(e, s, "", at)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.make(eventID, staffID, t0))
			require.ErrorIs(t, tt.make(kernel.UUID{}, staffID, t0), errs.ErrValueIsRequired)
			require.ErrorIs(t, tt.make(eventID, kernel.UUID{}, t0), errs.ErrValueIsRequired)
			require.ErrorIs(t, tt.make(eventID, staffID, time.Time{}), errs.ErrValueIsRequired)
		})
	}
}

func TestNewConfirmSafeCommand_Notes(t *testing.T) {
	eventID, staffID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewConfirmSafeCommand(eventID, staffID, "  fuel stop  ", t0)
	require.NoError(t, err)
	assert.Equal(t, "fuel stop", cmd.Notes())
	assert.Equal(t, eventID, cmd.EventID())
	assert.Equal(t, staffID, cmd.StaffID())
	assert.Equal(t, t0, cmd.At())

	_, err = commands.NewConfirmSafeCommand(eventID, staffID, strings.Repeat("x", 1001), t0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewResetOffRouteEventCommand(t *testing.T) {
	_, err := commands.NewResetOffRouteEventCommand(kernel.UUID{}, time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	tripID := kernel.NewUUID()
	cmd, err := commands.NewResetOffRouteEventCommand(tripID, t0)
	require.NoError(t, err)
	assert.Equal(t, tripID, cmd.TripID())
	assert.NoError(t, cmd.Validate())
}

func TestZeroValueStaffCommandsAreRejected(t *testing.T) {
	assert.ErrorIs(t, commands.ConfirmSafeCommand{}.Validate(), commands.ErrConfirmSafeCommandIsNotConstructed)
	assert.ErrorIs(t, commands.MarkNoContactCommand{}.Validate(), commands.ErrMarkNoContactCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ConfirmContactCommand{}.Validate(), commands.ErrConfirmContactCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ExtendGracePeriodCommand{}.Validate(), commands.ErrExtendGracePeriodCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CreateIssueFromEventCommand{}.Validate(), commands.ErrCreateIssueFromEventCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ResetOffRouteEventCommand{}.Validate(), commands.ErrResetOffRouteEventCommandIsNotConstructed)
}
