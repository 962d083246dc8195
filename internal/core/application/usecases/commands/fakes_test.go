package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"offroute/internal/core/application/usecases/commands"
	"offroute/internal/core/domain/model/incident"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/core/domain/services"
	"offroute/internal/core/ports"
	"offroute/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryEventStore keeps event snapshots and enforces the version check the
// way the postgres repository does.
type memoryEventStore struct {
	mu             sync.Mutex
	states         map[kernel.UUID]offroute.EventState
	order          []kernel.UUID
	conflictsAhead int
	updates        int
	listErr        error
}

func newMemoryEventStore() *memoryEventStore {
	return &memoryEventStore{states: map[kernel.UUID]offroute.EventState{}}
}

// failNextUpdates makes the next n updates fail as if another writer won.
func (s *memoryEventStore) failNextUpdates(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflictsAhead = n
}

func (s *memoryEventStore) put(t *testing.T, e *offroute.Event) {
	t.Helper()
	require.NoError(t, s.Add(context.Background(), e))
}

func (s *memoryEventStore) load(t *testing.T, id kernel.UUID) *offroute.Event {
	t.Helper()
	e, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	return e
}

func (s *memoryEventStore) Add(_ context.Context, e *offroute.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.states {
		if st.TripID.IsEqual(e.TripID()) && st.Status.IsActive() {
			return errs.NewVersionIsInvalidError("event", nil)
		}
	}
	s.states[e.ID()] = e.State()
	s.order = append(s.order, e.ID())
	return nil
}

func (s *memoryEventStore) Update(_ context.Context, e *offroute.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	stored, ok := s.states[e.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("event", e.ID())
	}
	if s.conflictsAhead > 0 {
		s.conflictsAhead--
		return errs.NewVersionIsInvalidErrorWithCause("event")
	}
	if stored.Version != e.Version() {
		return errs.NewVersionIsInvalidErrorWithCause("event")
	}
	e.AdvanceVersion()
	s.states[e.ID()] = e.State()
	return nil
}

func (s *memoryEventStore) Get(_ context.Context, id kernel.UUID) (*offroute.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("event", id)
	}
	return offroute.RestoreEvent(st)
}

func (s *memoryEventStore) GetActiveByTrip(_ context.Context, tripID kernel.UUID) (*offroute.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.states {
		if st.TripID.IsEqual(tripID) && st.Status.IsActive() {
			return offroute.RestoreEvent(st)
		}
	}
	return nil, nil
}

func (s *memoryEventStore) GetAllActive(_ context.Context) ([]*offroute.Event, error) {
	return s.filter(func(st offroute.EventState) bool { return st.Status.IsActive() })
}

func (s *memoryEventStore) GetByStatusAndGraceExpiredBefore(
	_ context.Context,
	status offroute.Status,
	now time.Time,
) ([]*offroute.Event, error) {
	return s.filter(func(st offroute.EventState) bool {
		return st.Status == status && st.GracePeriodExpiresAt != nil && st.GracePeriodExpiresAt.Before(now)
	})
}

func (s *memoryEventStore) GetByOrder(_ context.Context, orderID kernel.UUID) ([]*offroute.Event, error) {
	return s.filter(func(st offroute.EventState) bool { return st.OrderID.IsEqual(orderID) })
}

func (s *memoryEventStore) filter(keep func(offroute.EventState) bool) ([]*offroute.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*offroute.Event
	for _, id := range s.order {
		st := s.states[id]
		if !keep(st) {
			continue
		}
		e, err := offroute.RestoreEvent(st)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

type MockIncidentRepository struct{ mock.Mock }

func (m *MockIncidentRepository) Create(ctx context.Context, i *incident.Incident) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockIncidentRepository) Get(ctx context.Context, id kernel.UUID) (*incident.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*incident.Incident), args.Error(1)
}

type MockTripPositionRepository struct{ mock.Mock }

func (m *MockTripPositionRepository) Save(ctx context.Context, p trip.Position) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTripPositionRepository) Get(ctx context.Context, tripID kernel.UUID) (trip.Position, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(trip.Position), args.Error(1)
}

type MockTripDirectory struct{ mock.Mock }

func (m *MockTripDirectory) GetTripSummary(ctx context.Context, tripID kernel.UUID) (trip.Summary, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(trip.Summary), args.Error(1)
}

type MockRouteGeometryProvider struct{ mock.Mock }

func (m *MockRouteGeometryProvider) GetCurrentLegGeometry(ctx context.Context, tripID kernel.UUID) (kernel.RouteGeometry, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(kernel.RouteGeometry), args.Error(1)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) SendWarning(ctx context.Context, payload ports.WarningPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// sent returns the payloads passed to SendWarning, in call order.
func (m *MockNotificationDispatcher) sent() []ports.WarningPayload {
	var out []ports.WarningPayload
	for _, c := range m.Calls {
		if c.Method == "SendWarning" {
			out = append(out, c.Arguments.Get(1).(ports.WarningPayload))
		}
	}
	return out
}

// fakeUoW satisfies every unit of work shape used by the handlers.
type fakeUoW struct {
	events    *memoryEventStore
	incidents ports.IncidentRepository
	positions ports.TripPositionRepository

	begun, committed, rolledBack int
	commitErr                    error
}

func (u *fakeUoW) Begin(context.Context) error {
	u.begun++
	return nil
}

func (u *fakeUoW) Commit(context.Context) error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed++
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	u.rolledBack++
	return nil
}

func (u *fakeUoW) OffRouteEventRepository() ports.OffRouteEventRepository { return u.events }
func (u *fakeUoW) IncidentRepository() ports.IncidentRepository          { return u.incidents }
func (u *fakeUoW) TripPositionRepository() ports.TripPositionRepository  { return u.positions }

type eventUoWFactory struct{ uow *fakeUoW }

func (f eventUoWFactory) Create() commands.EventUoW { return f.uow }

type ingestUoWFactory struct{ uow *fakeUoW }

func (f ingestUoWFactory) Create() commands.IngestUoW { return f.uow }

type issueUoWFactory struct{ uow *fakeUoW }

func (f issueUoWFactory) Create() commands.IssueUoW { return f.uow }

// fixture wires the handlers to shared fakes for one trip.
type fixture struct {
	tripID     kernel.UUID
	orderID    kernel.UUID
	summary    trip.Summary
	store      *memoryEventStore
	positions  *MockTripPositionRepository
	incidents  *MockIncidentRepository
	directory  *MockTripDirectory
	geometry   *MockRouteGeometryProvider
	dispatcher *MockNotificationDispatcher
	uow        *fakeUoW
	notifier   *commands.WarningNotifier
	policy     offroute.Policy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tripID:     kernel.NewUUID(),
		orderID:    kernel.NewUUID(),
		store:      newMemoryEventStore(),
		positions:  new(MockTripPositionRepository),
		incidents:  new(MockIncidentRepository),
		directory:  new(MockTripDirectory),
		geometry:   new(MockRouteGeometryProvider),
		dispatcher: new(MockNotificationDispatcher),
		policy:     offroute.DefaultPolicy(),
	}
	f.summary = trip.Summary{
		TripID:       f.tripID,
		OrderID:      f.orderID,
		OrderCode:    "ORD-1001",
		DriverName:   "Tran Van B",
		DriverPhone:  "+84900000001",
		VehiclePlate: "29A-12345",
		VehicleType:  "VAN",
		PackageCount: 4,
	}
	f.uow = &fakeUoW{events: f.store, incidents: f.incidents, positions: f.positions}
	f.notifier = commands.NewWarningNotifier(f.directory, f.dispatcher, discardLogger())

	f.directory.On("GetTripSummary", mock.Anything, f.tripID).Return(f.summary, nil).Maybe()
	f.positions.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.dispatcher.On("SendWarning", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

// straightRoute runs due east along latitude 21.0 so that a point at
// latitude 21.0+d lies roughly d*111195 meters from it.
func straightRoute(t *testing.T) kernel.RouteGeometry {
	t.Helper()
	g, err := kernel.NewRouteGeometry([]kernel.GeoPoint{
		kernel.MustGeoPoint(21.0, 105.80),
		kernel.MustGeoPoint(21.0, 105.90),
	})
	require.NoError(t, err)
	return g
}

// latAtMeters returns the latitude that lies about meters north of the route.
func latAtMeters(meters float64) float64 {
	return 21.0 + meters/111195.0
}

func (f *fixture) withRoute(t *testing.T) {
	t.Helper()
	f.geometry.On("GetCurrentLegGeometry", mock.Anything, f.tripID).Return(straightRoute(t), nil).Maybe()
}

func (f *fixture) ingestHandler() commands.ProcessLocationUpdateCommandHandler {
	return commands.NewProcessLocationUpdateCommandHandler(
		ingestUoWFactory{f.uow}, f.geometry, f.directory, services.NewDeviationCalculator(), f.policy, f.notifier, discardLogger(),
	)
}

func (f *fixture) ingest(t *testing.T, meters float64, at time.Time) (*float64, error) {
	t.Helper()
	cmd, err := commands.NewProcessLocationUpdateCommand(f.tripID, latAtMeters(meters), 105.85, nil, nil, at)
	require.NoError(t, err)
	h := f.ingestHandler()
	return h.Handle(t.Context(), cmd)
}

// openEvent stores a yellow event for the fixture trip opened at t0.
func (f *fixture) openEvent(t *testing.T, meters float64) *offroute.Event {
	t.Helper()
	return f.openEventFor(t, f.tripID, f.orderID, meters)
}

func (f *fixture) openEventFor(t *testing.T, tripID, orderID kernel.UUID, meters float64) *offroute.Event {
	t.Helper()
	sample, err := offroute.NewSample(kernel.MustGeoPoint(latAtMeters(meters), 105.85), meters, t0)
	require.NoError(t, err)
	e, err := offroute.NewEvent(kernel.NewUUID(), tripID, orderID, sample, f.policy)
	require.NoError(t, err)
	e.PullWarnings()
	f.store.put(t, e)
	return f.store.load(t, e.ID())
}
