// Package commands contains the operations that change off-route state:
// location ingest, scheduler sweeps and staff actions. Each handler runs in
// its own unit of work and dispatches warnings only after commit.
package commands

import (
	"context"

	"offroute/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	EventRepoFactory interface {
		OffRouteEventRepository() ports.OffRouteEventRepository
	}

	IncidentRepoFactory interface {
		IncidentRepository() ports.IncidentRepository
	}

	PositionRepoFactory interface {
		TripPositionRepository() ports.TripPositionRepository
	}

	// EventUoW is used by scheduler sweeps and most staff actions.
	EventUoW interface {
		TxManager
		EventRepoFactory
	}

	EventUoWFactory interface {
		Create() EventUoW
	}

	// IngestUoW stores the event and the trip's last position atomically.
	IngestUoW interface {
		TxManager
		EventRepoFactory
		PositionRepoFactory
	}

	IngestUoWFactory interface {
		Create() IngestUoW
	}

	// IssueUoW creates the incident and links it to the event atomically.
	IssueUoW interface {
		TxManager
		EventRepoFactory
		IncidentRepoFactory
	}

	IssueUoWFactory interface {
		Create() IssueUoW
	}
)
