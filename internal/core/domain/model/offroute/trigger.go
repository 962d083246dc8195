package offroute

import (
	"fmt"

	"offroute/internal/pkg/errs"
)

// Trigger is an input to the off-route state machine.
type Trigger int

const (
	UnknownTrigger Trigger = iota

	// Automatic triggers, produced by samples and the scheduler.
	FarSample
	VeryFarSample
	ReturnedSample
	HoldSample
	SustainedDeviation
	GraceExpired

	// Staff and administrative triggers.
	StaffConfirmSafe
	StaffConfirmContact
	StaffMarkNoContact
	StaffExtendGrace
	StaffCreateIssue
	AdminReset
)

func getTriggerStrings() map[Trigger]string {
	return map[Trigger]string{
		UnknownTrigger:      "Unknown",
		FarSample:           "FarSample",
		VeryFarSample:       "VeryFarSample",
		ReturnedSample:      "ReturnedSample",
		HoldSample:          "HoldSample",
		SustainedDeviation:  "SustainedDeviation",
		GraceExpired:        "GraceExpired",
		StaffConfirmSafe:    "ConfirmSafe",
		StaffConfirmContact: "ConfirmContact",
		StaffMarkNoContact:  "MarkNoContact",
		StaffExtendGrace:    "ExtendGracePeriod",
		StaffCreateIssue:    "CreateIssue",
		AdminReset:          "Reset",
	}
}

// AllTriggers lists every valid trigger.
func AllTriggers() []Trigger {
	return []Trigger{
		FarSample, VeryFarSample, ReturnedSample, HoldSample, SustainedDeviation, GraceExpired,
		StaffConfirmSafe, StaffConfirmContact, StaffMarkNoContact, StaffExtendGrace, StaffCreateIssue, AdminReset,
	}
}

func (t Trigger) Validate() error {
	if t <= UnknownTrigger || t > AdminReset {
		return errs.NewValueIsInvalidErrorWithCause("trigger", fmt.Errorf("%d is not a valid trigger", t))
	}
	return nil
}

func (t Trigger) String() string {
	if str, ok := getTriggerStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// IsAutomatic reports whether the trigger comes from a location sample or
// the scheduler rather than from a person.
func (t Trigger) IsAutomatic() bool {
	return t >= FarSample && t <= GraceExpired
}
