package offroute

import (
	"fmt"

	"offroute/internal/pkg/errs"
)

// Status is the warning state of an off-route episode.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// None means the trip has no active event.
	None

	YellowWarning
	RedWarning

	// ContactedWaitingReturn means staff reached the driver and a grace
	// period is running.
	ContactedWaitingReturn

	BackOnRoute
	ResolvedSafe
	ContactFailed
	IssueCreated
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                "UNKNOWN",
		None:                   "NONE",
		YellowWarning:          "YELLOW_WARNING",
		RedWarning:             "RED_WARNING",
		ContactedWaitingReturn: "CONTACTED_WAITING_RETURN",
		BackOnRoute:            "BACK_ON_ROUTE",
		ResolvedSafe:           "RESOLVED_SAFE",
		ContactFailed:          "CONTACT_FAILED",
		IssueCreated:           "ISSUE_CREATED",
	}
}

// AllStatuses lists every valid status, terminal ones included.
func AllStatuses() []Status {
	return []Status{
		None, YellowWarning, RedWarning, ContactedWaitingReturn,
		BackOnRoute, ResolvedSafe, ContactFailed, IssueCreated,
	}
}

// ActiveStatuses lists the statuses an open event can be in.
func ActiveStatuses() []Status {
	return []Status{YellowWarning, RedWarning, ContactedWaitingReturn}
}

// StatusFromString parses the persisted representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > IssueCreated {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) IsTerminal() bool {
	switch s {
	case BackOnRoute, ResolvedSafe, ContactFailed, IssueCreated:
		return true
	default:
		return false
	}
}

func (s Status) IsActive() bool {
	switch s {
	case YellowWarning, RedWarning, ContactedWaitingReturn:
		return true
	default:
		return false
	}
}

// transitions holds every transition that changes state or is explicitly
// allowed to keep it. Anything missing is a hold for automatic triggers and
// a rejection for staff triggers.
var transitions = map[Status]map[Trigger]Status{
	None: {
		FarSample:     YellowWarning,
		VeryFarSample: YellowWarning,
	},
	YellowWarning: {
		VeryFarSample:       RedWarning,
		SustainedDeviation:  RedWarning,
		ReturnedSample:      BackOnRoute,
		StaffConfirmSafe:    ResolvedSafe,
		StaffConfirmContact: ContactedWaitingReturn,
		StaffMarkNoContact:  ContactFailed,
		StaffCreateIssue:    IssueCreated,
		AdminReset:          BackOnRoute,
	},
	RedWarning: {
		ReturnedSample:      BackOnRoute,
		StaffConfirmSafe:    ResolvedSafe,
		StaffConfirmContact: ContactedWaitingReturn,
		StaffMarkNoContact:  ContactFailed,
		StaffCreateIssue:    IssueCreated,
		AdminReset:          BackOnRoute,
	},
	ContactedWaitingReturn: {
		ReturnedSample:     BackOnRoute,
		GraceExpired:       RedWarning,
		StaffExtendGrace:   ContactedWaitingReturn,
		StaffConfirmSafe:   ResolvedSafe,
		StaffMarkNoContact: ContactFailed,
		StaffCreateIssue:   IssueCreated,
		AdminReset:         BackOnRoute,
	},
}

// Apply returns the status reached by firing trigger from s.
//
// Terminal statuses reject every trigger. Automatic triggers that do not
// apply leave the status unchanged. Staff triggers that do not apply are
// rejected with an InvalidTransitionError.
func (s Status) Apply(trigger Trigger) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := trigger.Validate(); err != nil {
		return Unknown, err
	}

	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError(s.String(), trigger.String())
	}

	if next, ok := transitions[s][trigger]; ok {
		return next, nil
	}

	if trigger.IsAutomatic() {
		return s, nil
	}

	return Unknown, errs.NewInvalidTransitionError(s.String(), trigger.String())
}

// CanApply reports whether trigger would change or explicitly keep the
// status, without mutating anything.
func (s Status) CanApply(trigger Trigger) bool {
	_, ok := transitions[s][trigger]
	return ok
}
