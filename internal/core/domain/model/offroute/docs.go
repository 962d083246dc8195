// Package offroute contains the off-route event aggregate and the escalation
// state machine that drives it.
//
// A trip with no active event is in status None. The first sample at or
// beyond the yellow threshold opens an Event in YellowWarning. From there the
// event escalates to RedWarning (farther sample or sustained deviation),
// may wait in ContactedWaitingReturn after staff reach the driver, and ends in
// one of the terminal statuses BackOnRoute, ResolvedSafe, ContactFailed or
// IssueCreated.
//
// Every mutation goes through Status.Apply, so location ingest, the scheduler
// and staff actions share a single transition table:
//
//	None ──far──> Yellow ──very far / sustained──> Red
//	               │  ▲                             │
//	               │  └──────────── grace expired ──┤
//	               │                                │
//	               └──── staff confirm contact ──> ContactedWaitingReturn
//
//	any active ──returned / safe / no contact / issue / reset──> terminal
package offroute
