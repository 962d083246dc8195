package offroute

import (
	"errors"
	"fmt"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

const (
	ReasonReturnedToRoute = "Driver returned to planned route automatically"
	ReasonConfirmedSafe   = "Staff confirmed driver is safe"
	ReasonNoContact       = "Driver could not be contacted"
	ReasonIssueCreated    = "Incident created from off-route event"
	ReasonAdminReset      = "Reset by administrator"
)

// Event is the aggregate root of one off-route episode of a trip.
//
// Invariants:
//   - distance and previous distance always reflect the two latest samples
//   - the grace period extension count never exceeds the policy maximum
//   - once terminal, the event never changes again
type Event struct {
	id      kernel.UUID
	tripID  kernel.UUID
	orderID kernel.UUID

	lastKnownPosition      kernel.GeoPoint
	distanceMeters         float64
	previousDistanceMeters *float64
	lastLocationUpdateAt   time.Time

	offRouteStartTime         time.Time
	yellowWarningSentAt       *time.Time
	redWarningSentAt          *time.Time
	gracePeriodExpiresAt      *time.Time
	gracePeriodExtendedAt     *time.Time
	gracePeriodExtensionCount int

	status Status

	canContactDriver     *bool
	lastContactAttemptAt *time.Time
	contactNotes         string
	contactedAt          *time.Time
	contactedBy          *kernel.UUID

	resolvedAt     *time.Time
	resolvedReason string
	resolvedBy     *kernel.UUID
	issueID        *kernel.UUID

	// version is the optimistic concurrency marker, bumped by every store write.
	version int64

	warnings []WarningRaised

	isConstructed bool
}

// NewEvent opens an episode from the first sample at or beyond the yellow
// threshold. A first sample beyond the red threshold still opens in
// YellowWarning; the next sample or sweep escalates it.
func NewEvent(id, tripID, orderID kernel.UUID, first Sample, policy Policy) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		tripID.Validate(),
		orderID.Validate(),
		first.Position().Validate(),
		policy.Validate(),
	); err != nil {
		return nil, err
	}

	next, err := None.Apply(policy.Classify(first.DistanceMeters()))
	if err != nil {
		return nil, err
	}
	if next != YellowWarning {
		return nil, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf(
			"%.2f m is below the yellow threshold %.2f m", first.DistanceMeters(), policy.YellowThresholdMeters()))
	}

	e := &Event{
		id:                   id,
		tripID:               tripID,
		orderID:              orderID,
		lastKnownPosition:    first.Position(),
		distanceMeters:       first.DistanceMeters(),
		lastLocationUpdateAt: first.At(),
		offRouteStartTime:    first.At(),
		status:               None,
		version:              1,
		isConstructed:        true,
	}
	e.moveTo(next, first.At())

	return e, nil
}

// EventState carries every persisted field of an Event. It is used only to
// rehydrate aggregates from storage.
type EventState struct {
	ID                        kernel.UUID
	TripID                    kernel.UUID
	OrderID                   kernel.UUID
	LastKnownPosition         kernel.GeoPoint
	DistanceMeters            float64
	PreviousDistanceMeters    *float64
	LastLocationUpdateAt      time.Time
	OffRouteStartTime         time.Time
	YellowWarningSentAt       *time.Time
	RedWarningSentAt          *time.Time
	GracePeriodExpiresAt      *time.Time
	GracePeriodExtendedAt     *time.Time
	GracePeriodExtensionCount int
	Status                    Status
	CanContactDriver          *bool
	LastContactAttemptAt      *time.Time
	ContactNotes              string
	ContactedAt               *time.Time
	ContactedBy               *kernel.UUID
	ResolvedAt                *time.Time
	ResolvedReason            string
	ResolvedBy                *kernel.UUID
	IssueID                   *kernel.UUID
	Version                   int64
}

// RestoreEvent rebuilds an Event from storage without raising warnings.
func RestoreEvent(s EventState) (*Event, error) {
	errList := []error{
		s.ID.Validate(),
		s.TripID.Validate(),
		s.OrderID.Validate(),
		s.LastKnownPosition.Validate(),
		s.Status.Validate(),
	}
	if s.Status == None {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("status",
			errors.New("a stored event cannot be in NONE")))
	}
	if s.GracePeriodExtensionCount < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("grace period extension count",
			s.GracePeriodExtensionCount, 0, "policy maximum"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Event{
		id:                        s.ID,
		tripID:                    s.TripID,
		orderID:                   s.OrderID,
		lastKnownPosition:         s.LastKnownPosition,
		distanceMeters:            s.DistanceMeters,
		previousDistanceMeters:    s.PreviousDistanceMeters,
		lastLocationUpdateAt:      s.LastLocationUpdateAt,
		offRouteStartTime:         s.OffRouteStartTime,
		yellowWarningSentAt:       s.YellowWarningSentAt,
		redWarningSentAt:          s.RedWarningSentAt,
		gracePeriodExpiresAt:      s.GracePeriodExpiresAt,
		gracePeriodExtendedAt:     s.GracePeriodExtendedAt,
		gracePeriodExtensionCount: s.GracePeriodExtensionCount,
		status:                    s.Status,
		canContactDriver:          s.CanContactDriver,
		lastContactAttemptAt:      s.LastContactAttemptAt,
		contactNotes:              s.ContactNotes,
		contactedAt:               s.ContactedAt,
		contactedBy:               s.ContactedBy,
		resolvedAt:                s.ResolvedAt,
		resolvedReason:            s.ResolvedReason,
		resolvedBy:                s.ResolvedBy,
		issueID:                   s.IssueID,
		version:                   s.Version,
		isConstructed:             true,
	}, nil
}

// State returns a copy of the persisted fields. Pending warnings are not
// part of it.
func (e *Event) State() EventState {
	return EventState{
		ID:                        e.id,
		TripID:                    e.tripID,
		OrderID:                   e.orderID,
		LastKnownPosition:         e.lastKnownPosition,
		DistanceMeters:            e.distanceMeters,
		PreviousDistanceMeters:    e.previousDistanceMeters,
		LastLocationUpdateAt:      e.lastLocationUpdateAt,
		OffRouteStartTime:         e.offRouteStartTime,
		YellowWarningSentAt:       e.yellowWarningSentAt,
		RedWarningSentAt:          e.redWarningSentAt,
		GracePeriodExpiresAt:      e.gracePeriodExpiresAt,
		GracePeriodExtendedAt:     e.gracePeriodExtendedAt,
		GracePeriodExtensionCount: e.gracePeriodExtensionCount,
		Status:                    e.status,
		CanContactDriver:          e.canContactDriver,
		LastContactAttemptAt:      e.lastContactAttemptAt,
		ContactNotes:              e.contactNotes,
		ContactedAt:               e.contactedAt,
		ContactedBy:               e.contactedBy,
		ResolvedAt:                e.resolvedAt,
		ResolvedReason:            e.resolvedReason,
		ResolvedBy:                e.resolvedBy,
		IssueID:                   e.issueID,
		Version:                   e.version,
	}
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID                      { return e.id }
func (e *Event) TripID() kernel.UUID                  { return e.tripID }
func (e *Event) OrderID() kernel.UUID                 { return e.orderID }
func (e *Event) LastKnownPosition() kernel.GeoPoint   { return e.lastKnownPosition }
func (e *Event) DistanceMeters() float64              { return e.distanceMeters }
func (e *Event) PreviousDistanceMeters() *float64     { return e.previousDistanceMeters }
func (e *Event) LastLocationUpdateAt() time.Time      { return e.lastLocationUpdateAt }
func (e *Event) OffRouteStartTime() time.Time         { return e.offRouteStartTime }
func (e *Event) YellowWarningSentAt() *time.Time      { return e.yellowWarningSentAt }
func (e *Event) RedWarningSentAt() *time.Time         { return e.redWarningSentAt }
func (e *Event) GracePeriodExpiresAt() *time.Time     { return e.gracePeriodExpiresAt }
func (e *Event) GracePeriodExtendedAt() *time.Time    { return e.gracePeriodExtendedAt }
func (e *Event) GracePeriodExtensionCount() int       { return e.gracePeriodExtensionCount }
func (e *Event) Status() Status                       { return e.status }
func (e *Event) CanContactDriver() *bool              { return e.canContactDriver }
func (e *Event) LastContactAttemptAt() *time.Time     { return e.lastContactAttemptAt }
func (e *Event) ContactNotes() string                 { return e.contactNotes }
func (e *Event) ContactedAt() *time.Time              { return e.contactedAt }
func (e *Event) ContactedBy() *kernel.UUID            { return e.contactedBy }
func (e *Event) ResolvedAt() *time.Time               { return e.resolvedAt }
func (e *Event) ResolvedReason() string               { return e.resolvedReason }
func (e *Event) ResolvedBy() *kernel.UUID             { return e.resolvedBy }
func (e *Event) IssueID() *kernel.UUID                { return e.issueID }
func (e *Event) Version() int64                       { return e.version }
func (e *Event) IsActive() bool                       { return e.status.IsActive() }

// OffRouteDuration is the time since the episode started, frozen at
// resolution for terminal events.
func (e *Event) OffRouteDuration(now time.Time) time.Duration {
	end := now
	if e.resolvedAt != nil {
		end = *e.resolvedAt
	}
	if d := end.Sub(e.offRouteStartTime); d > 0 {
		return d
	}
	return 0
}

// IsTrendingAway reports whether the latest sample is farther from the
// route than the one before it.
func (e *Event) IsTrendingAway() bool {
	return e.previousDistanceMeters != nil && e.distanceMeters > *e.previousDistanceMeters
}

// RecordSample stores the latest position and evaluates the sample against
// the policy. Samples not newer than the last recorded one are ignored, so
// replaying a sample never changes state or raises a second warning.
// It reports whether the status changed.
func (e *Event) RecordSample(s Sample, policy Policy) (bool, error) {
	if err := errors.Join(e.Validate(), s.Position().Validate(), policy.Validate()); err != nil {
		return false, err
	}
	if e.status.IsTerminal() {
		return false, errs.NewInvalidTransitionError(e.status.String(), "LocationSample")
	}
	if !s.At().After(e.lastLocationUpdateAt) {
		return false, nil
	}

	previous := e.distanceMeters
	e.previousDistanceMeters = &previous
	e.distanceMeters = s.DistanceMeters()
	e.lastKnownPosition = s.Position()
	e.lastLocationUpdateAt = s.At()

	trigger := policy.Classify(s.DistanceMeters())
	if trigger == FarSample && e.deviationSustained(s.At(), policy) {
		trigger = SustainedDeviation
	}

	return e.fire(trigger, s.At())
}

// RecordPosition stores a position whose distance from the route is
// unknown. Distances and status are left as they are. It reports whether
// the position was newer than the last recorded one.
func (e *Event) RecordPosition(p kernel.GeoPoint, at time.Time) (bool, error) {
	if err := errors.Join(e.Validate(), p.Validate()); err != nil {
		return false, err
	}
	if e.status.IsTerminal() {
		return false, errs.NewInvalidTransitionError(e.status.String(), "LocationSample")
	}
	if !at.After(e.lastLocationUpdateAt) {
		return false, nil
	}
	e.lastKnownPosition = p
	e.lastLocationUpdateAt = at
	return true, nil
}

// EscalateIfSustained escalates a yellow warning whose deviation has lasted
// at least the policy's red-after duration and is still beyond the yellow
// threshold. It reports whether the status changed.
func (e *Event) EscalateIfSustained(now time.Time, policy Policy) (bool, error) {
	if err := errors.Join(e.Validate(), policy.Validate()); err != nil {
		return false, err
	}
	if e.status != YellowWarning || !e.deviationSustained(now, policy) {
		return false, nil
	}
	return e.fire(SustainedDeviation, now)
}

// ExpireGracePeriod re-escalates a contacted event whose grace period ended
// before now. The extension count is left untouched.
func (e *Event) ExpireGracePeriod(now time.Time) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	if e.status != ContactedWaitingReturn || e.gracePeriodExpiresAt == nil || !now.After(*e.gracePeriodExpiresAt) {
		return false, nil
	}
	return e.fire(GraceExpired, now)
}

// ConfirmSafe resolves the event after staff verified the driver is fine.
// Non-empty notes become the resolution reason.
func (e *Event) ConfirmSafe(staffID kernel.UUID, notes string, at time.Time) error {
	next, err := e.staffTransition(StaffConfirmSafe, staffID)
	if err != nil {
		return err
	}

	reachable := true
	e.canContactDriver = &reachable
	e.lastContactAttemptAt = &at
	e.contactNotes = notes

	reason := ReasonConfirmedSafe
	if notes != "" {
		reason = notes
	}
	e.resolve(next, at, reason, &staffID)
	return nil
}

// MarkNoContact closes the event because staff could not reach the driver.
func (e *Event) MarkNoContact(staffID kernel.UUID, notes string, at time.Time) error {
	next, err := e.staffTransition(StaffMarkNoContact, staffID)
	if err != nil {
		return err
	}

	reachable := false
	e.canContactDriver = &reachable
	e.lastContactAttemptAt = &at
	e.contactNotes = notes

	e.resolve(next, at, ReasonNoContact, &staffID)
	return nil
}

// ConfirmContact records that staff reached the driver and starts the
// grace period.
func (e *Event) ConfirmContact(staffID kernel.UUID, at time.Time, policy Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	next, err := e.staffTransition(StaffConfirmContact, staffID)
	if err != nil {
		return err
	}

	reachable := true
	expires := at.Add(policy.GracePeriod())
	e.canContactDriver = &reachable
	e.lastContactAttemptAt = &at
	e.contactedAt = &at
	e.contactedBy = &staffID
	e.gracePeriodExpiresAt = &expires
	e.status = next
	return nil
}

// ExtendGracePeriod pushes the grace period expiry forward by one extension.
// Once the policy maximum is reached it fails with a LimitExceededError and
// leaves the event untouched.
func (e *Event) ExtendGracePeriod(staffID kernel.UUID, at time.Time, policy Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	next, err := e.staffTransition(StaffExtendGrace, staffID)
	if err != nil {
		return err
	}
	if e.gracePeriodExtensionCount >= policy.MaxGraceExtensions() {
		return errs.NewLimitExceededError("grace period extensions", policy.MaxGraceExtensions())
	}

	base := at
	if e.gracePeriodExpiresAt != nil && e.gracePeriodExpiresAt.After(at) {
		base = *e.gracePeriodExpiresAt
	}
	expires := base.Add(policy.GraceExtension())

	e.gracePeriodExpiresAt = &expires
	e.gracePeriodExtendedAt = &at
	e.gracePeriodExtensionCount++
	e.status = next
	return nil
}

// CreateIssue links the incident opened for this event and closes it.
func (e *Event) CreateIssue(incidentID, staffID kernel.UUID, at time.Time) error {
	if err := incidentID.Validate(); err != nil {
		return err
	}
	next, err := e.staffTransition(StaffCreateIssue, staffID)
	if err != nil {
		return err
	}

	e.issueID = &incidentID
	e.resolve(next, at, ReasonIssueCreated, &staffID)
	return nil
}

// Reset closes an active event administratively.
func (e *Event) Reset(at time.Time) error {
	if err := e.Validate(); err != nil {
		return err
	}
	next, err := e.status.Apply(AdminReset)
	if err != nil {
		return err
	}

	e.resolve(next, at, ReasonAdminReset, nil)
	return nil
}

// PullWarnings returns the warnings raised since the last call and clears them.
func (e *Event) PullWarnings() []WarningRaised {
	out := e.warnings
	e.warnings = nil
	return out
}

// AdvanceVersion is called by the store after a successful write.
func (e *Event) AdvanceVersion() {
	e.version++
}

func (e *Event) deviationSustained(now time.Time, policy Policy) bool {
	return policy.IsDeviating(e.distanceMeters) && now.Sub(e.offRouteStartTime) >= policy.RedAfter()
}

func (e *Event) staffTransition(trigger Trigger, staffID kernel.UUID) (Status, error) {
	if err := errors.Join(e.Validate(), staffID.Validate()); err != nil {
		return Unknown, err
	}
	return e.status.Apply(trigger)
}

// fire applies an automatic trigger and runs its side effects.
func (e *Event) fire(trigger Trigger, at time.Time) (bool, error) {
	next, err := e.status.Apply(trigger)
	if err != nil {
		return false, err
	}
	if next == e.status {
		return false, nil
	}

	if next == BackOnRoute {
		e.resolve(next, at, ReasonReturnedToRoute, nil)
		return true, nil
	}

	e.moveTo(next, at)
	return true, nil
}

func (e *Event) moveTo(next Status, at time.Time) {
	previous := e.status
	e.status = next

	switch next { //nolint:exhaustive // only warning statuses notify
	case YellowWarning:
		e.yellowWarningSentAt = &at
		e.raise(KindOffRouteWarning, SeverityYellow, at)
	case RedWarning:
		e.redWarningSentAt = &at
		kind := KindOffRouteWarning
		if previous == ContactedWaitingReturn {
			kind = KindEscalation
		}
		e.raise(kind, SeverityRed, at)
	}
}

func (e *Event) resolve(next Status, at time.Time, reason string, by *kernel.UUID) {
	e.status = next
	e.resolvedAt = &at
	e.resolvedReason = reason
	e.resolvedBy = by
}

func (e *Event) raise(kind WarningKind, severity Severity, at time.Time) {
	e.warnings = append(e.warnings, WarningRaised{
		EventID:          e.id,
		TripID:           e.tripID,
		OrderID:          e.orderID,
		Kind:             kind,
		Severity:         severity,
		Status:           e.status,
		Position:         e.lastKnownPosition,
		DistanceMeters:   e.distanceMeters,
		OffRouteDuration: e.OffRouteDuration(at),
		RaisedAt:         at,
	})
}
