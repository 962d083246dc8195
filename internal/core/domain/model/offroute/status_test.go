package offroute_test

import (
	"slices"
	"testing"

	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := map[offroute.Status]string{
		offroute.None:                   "NONE",
		offroute.YellowWarning:          "YELLOW_WARNING",
		offroute.RedWarning:             "RED_WARNING",
		offroute.ContactedWaitingReturn: "CONTACTED_WAITING_RETURN",
		offroute.BackOnRoute:            "BACK_ON_ROUTE",
		offroute.ResolvedSafe:           "RESOLVED_SAFE",
		offroute.ContactFailed:          "CONTACT_FAILED",
		offroute.IssueCreated:           "ISSUE_CREATED",
		offroute.Unknown:                "UNKNOWN",
		offroute.Status(42):             "UNKNOWN",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	for _, status := range offroute.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			parsed, err := offroute.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := offroute.StatusFromString("UNKNOWN")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = offroute.StatusFromString("yellow")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range offroute.AllStatuses() {
		require.NoError(t, status.Validate())
	}
	require.Error(t, offroute.Unknown.Validate())
	require.Error(t, offroute.Status(99).Validate())
}

func TestStatus_TerminalAndActiveArePartitioned(t *testing.T) {
	for _, status := range offroute.AllStatuses() {
		assert.False(t, status.IsTerminal() && status.IsActive(), status.String())
	}
	assert.ElementsMatch(t,
		[]offroute.Status{offroute.YellowWarning, offroute.RedWarning, offroute.ContactedWaitingReturn},
		offroute.ActiveStatuses())
}

func TestStatus_Apply_TerminalStatusesRejectEveryTrigger(t *testing.T) {
	for _, status := range offroute.AllStatuses() {
		if !status.IsTerminal() {
			continue
		}
		for _, trigger := range offroute.AllTriggers() {
			t.Run(status.String()+"/"+trigger.String(), func(t *testing.T) {
				next, err := status.Apply(trigger)

				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Equal(t, offroute.Unknown, next)
			})
		}
	}
}

func TestStatus_Apply_Table(t *testing.T) {
	type want struct {
		to      offroute.Status
		invalid bool
	}
	hold := func(s offroute.Status) want { return want{to: s} }
	to := func(s offroute.Status) want { return want{to: s} }
	reject := want{invalid: true}

	table := map[offroute.Status]map[offroute.Trigger]want{
		offroute.None: {
			offroute.FarSample:           to(offroute.YellowWarning),
			offroute.VeryFarSample:       to(offroute.YellowWarning),
			offroute.ReturnedSample:      hold(offroute.None),
			offroute.HoldSample:          hold(offroute.None),
			offroute.SustainedDeviation:  hold(offroute.None),
			offroute.GraceExpired:        hold(offroute.None),
			offroute.StaffConfirmSafe:    reject,
			offroute.StaffConfirmContact: reject,
			offroute.StaffMarkNoContact:  reject,
			offroute.StaffExtendGrace:    reject,
			offroute.StaffCreateIssue:    reject,
			offroute.AdminReset:          reject,
		},
		offroute.YellowWarning: {
			offroute.FarSample:           hold(offroute.YellowWarning),
			offroute.VeryFarSample:       to(offroute.RedWarning),
			offroute.ReturnedSample:      to(offroute.BackOnRoute),
			offroute.HoldSample:          hold(offroute.YellowWarning),
			offroute.SustainedDeviation:  to(offroute.RedWarning),
			offroute.GraceExpired:        hold(offroute.YellowWarning),
			offroute.StaffConfirmSafe:    to(offroute.ResolvedSafe),
			offroute.StaffConfirmContact: to(offroute.ContactedWaitingReturn),
			offroute.StaffMarkNoContact:  to(offroute.ContactFailed),
			offroute.StaffExtendGrace:    reject,
			offroute.StaffCreateIssue:    to(offroute.IssueCreated),
			offroute.AdminReset:          to(offroute.BackOnRoute),
		},
		offroute.RedWarning: {
			offroute.FarSample:           hold(offroute.RedWarning),
			offroute.VeryFarSample:       hold(offroute.RedWarning),
			offroute.ReturnedSample:      to(offroute.BackOnRoute),
			offroute.HoldSample:          hold(offroute.RedWarning),
			offroute.SustainedDeviation:  hold(offroute.RedWarning),
			offroute.GraceExpired:        hold(offroute.RedWarning),
			offroute.StaffConfirmSafe:    to(offroute.ResolvedSafe),
			offroute.StaffConfirmContact: to(offroute.ContactedWaitingReturn),
			offroute.StaffMarkNoContact:  to(offroute.ContactFailed),
			offroute.StaffExtendGrace:    reject,
			offroute.StaffCreateIssue:    to(offroute.IssueCreated),
			offroute.AdminReset:          to(offroute.BackOnRoute),
		},
		offroute.ContactedWaitingReturn: {
			offroute.FarSample:           hold(offroute.ContactedWaitingReturn),
			offroute.VeryFarSample:       hold(offroute.ContactedWaitingReturn),
			offroute.ReturnedSample:      to(offroute.BackOnRoute),
			offroute.HoldSample:          hold(offroute.ContactedWaitingReturn),
			offroute.SustainedDeviation:  hold(offroute.ContactedWaitingReturn),
			offroute.GraceExpired:        to(offroute.RedWarning),
			offroute.StaffConfirmSafe:    to(offroute.ResolvedSafe),
			offroute.StaffConfirmContact: reject,
			offroute.StaffMarkNoContact:  to(offroute.ContactFailed),
			offroute.StaffExtendGrace:    to(offroute.ContactedWaitingReturn),
			offroute.StaffCreateIssue:    to(offroute.IssueCreated),
			offroute.AdminReset:          to(offroute.BackOnRoute),
		},
	}

	for from, row := range table {
		require.Len(t, row, len(offroute.AllTriggers()), "row %s must cover every trigger", from)
		for trigger, w := range row {
			t.Run(from.String()+"/"+trigger.String(), func(t *testing.T) {
				next, err := from.Apply(trigger)

				if w.invalid {
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, w.to, next)
			})
		}
	}
}

func TestStatus_Apply_RejectsInvalidInput(t *testing.T) {
	_, err := offroute.Unknown.Apply(offroute.FarSample)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = offroute.YellowWarning.Apply(offroute.UnknownTrigger)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTrigger_IsAutomatic(t *testing.T) {
	automatic := []offroute.Trigger{
		offroute.FarSample, offroute.VeryFarSample, offroute.ReturnedSample,
		offroute.HoldSample, offroute.SustainedDeviation, offroute.GraceExpired,
	}
	for _, trigger := range offroute.AllTriggers() {
		assert.Equal(t, slices.Contains(automatic, trigger), trigger.IsAutomatic(), trigger.String())
	}
}
