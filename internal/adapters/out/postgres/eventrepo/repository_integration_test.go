package eventrepo_test

import (
	"context"
	"testing"
	"time"

	"offroute/internal/adapters/out/postgres/eventrepo"
	"offroute/internal/adapters/out/postgres/pgtest"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

type EventRepositoryTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *eventrepo.GormEventRepository
}

func (suite *EventRepositoryTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repo = eventrepo.NewGormEventRepository(database.DB)
}

func (suite *EventRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate(context.Background()))
}

func (suite *EventRepositoryTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *EventRepositoryTestSuite) TestAddAndGet_RoundTripsEveryField() {
	ctx := context.Background()
	e := openEvent(suite.T(), kernel.NewUUID(), kernel.NewUUID(), t0)
	staffID := kernel.NewUUID()
	suite.Require().NoError(e.ConfirmContact(staffID, t0.Add(time.Minute), offroute.DefaultPolicy()))
	suite.Require().NoError(e.ExtendGracePeriod(staffID, t0.Add(2*time.Minute), offroute.DefaultPolicy()))

	suite.Require().NoError(suite.repo.Add(ctx, e))
	stored, err := suite.repo.Get(ctx, e.ID())

	suite.Require().NoError(err)
	suite.Equal(e.State(), stored.State())
}

func (suite *EventRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *EventRepositoryTestSuite) TestAdd_SecondActiveEventForTripIsRejected() {
	ctx := context.Background()
	tripID := kernel.NewUUID()
	suite.Require().NoError(suite.repo.Add(ctx, openEvent(suite.T(), tripID, kernel.NewUUID(), t0)))

	err := suite.repo.Add(ctx, openEvent(suite.T(), tripID, kernel.NewUUID(), t0.Add(time.Minute)))

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *EventRepositoryTestSuite) TestAdd_NewEventAllowedAfterPreviousClosed() {
	ctx := context.Background()
	tripID := kernel.NewUUID()
	first := openEvent(suite.T(), tripID, kernel.NewUUID(), t0)
	suite.Require().NoError(suite.repo.Add(ctx, first))
	suite.Require().NoError(first.Reset(t0.Add(time.Minute)))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	second := openEvent(suite.T(), tripID, kernel.NewUUID(), t0.Add(2*time.Minute))

	suite.Require().NoError(suite.repo.Add(ctx, second))
	active, err := suite.repo.GetActiveByTrip(ctx, tripID)
	suite.Require().NoError(err)
	suite.Require().NotNil(active)
	suite.True(active.ID().IsEqual(second.ID()))
}

func (suite *EventRepositoryTestSuite) TestUpdate_VersionCheck() {
	ctx := context.Background()
	e := openEvent(suite.T(), kernel.NewUUID(), kernel.NewUUID(), t0)
	suite.Require().NoError(suite.repo.Add(ctx, e))

	stale, err := suite.repo.Get(ctx, e.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(e.ConfirmSafe(kernel.NewUUID(), "", t0.Add(time.Minute)))
	suite.Require().NoError(suite.repo.Update(ctx, e))
	suite.Equal(int64(2), e.Version())

	suite.Require().NoError(stale.MarkNoContact(kernel.NewUUID(), "", t0.Add(2*time.Minute)))
	err = suite.repo.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	stored, err := suite.repo.Get(ctx, e.ID())
	suite.Require().NoError(err)
	suite.Equal(offroute.ResolvedSafe, stored.Status())
	suite.Equal(int64(2), stored.Version())
}

func (suite *EventRepositoryTestSuite) TestUpdate_ClearsNullableColumns() {
	ctx := context.Background()
	e := openEvent(suite.T(), kernel.NewUUID(), kernel.NewUUID(), t0)
	suite.Require().NoError(suite.repo.Add(ctx, e))

	sample, err := offroute.NewSample(kernel.MustGeoPoint(21.03, 105.84), 120, t0.Add(time.Minute))
	suite.Require().NoError(err)
	_, err = e.RecordSample(sample, offroute.DefaultPolicy())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, e))

	stored, err := suite.repo.Get(ctx, e.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.PreviousDistanceMeters())
	suite.InDelta(150, *stored.PreviousDistanceMeters(), 1e-9)
	suite.InDelta(120, stored.DistanceMeters(), 1e-9)
}

func (suite *EventRepositoryTestSuite) TestQueries() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	yellow := openEvent(suite.T(), kernel.NewUUID(), orderID, t0)
	contacted := openEvent(suite.T(), kernel.NewUUID(), orderID, t0.Add(time.Minute))
	suite.Require().NoError(contacted.ConfirmContact(kernel.NewUUID(), t0.Add(2*time.Minute), offroute.DefaultPolicy()))
	closed := openEvent(suite.T(), kernel.NewUUID(), kernel.NewUUID(), t0.Add(2*time.Minute))
	suite.Require().NoError(closed.Reset(t0.Add(3 * time.Minute)))

	for _, e := range []*offroute.Event{yellow, contacted, closed} {
		suite.Require().NoError(suite.repo.Add(ctx, e))
	}

	active, err := suite.repo.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 2)
	suite.True(active[0].ID().IsEqual(yellow.ID()))

	byOrder, err := suite.repo.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(byOrder, 2)
	suite.True(byOrder[0].ID().IsEqual(contacted.ID()), "newest first")

	expiresAt := *contacted.GracePeriodExpiresAt()
	due, err := suite.repo.GetByStatusAndGraceExpiredBefore(ctx, offroute.ContactedWaitingReturn, expiresAt)
	suite.Require().NoError(err)
	suite.Empty(due, "expiry is exclusive")

	due, err = suite.repo.GetByStatusAndGraceExpiredBefore(ctx, offroute.ContactedWaitingReturn, expiresAt.Add(time.Second))
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.True(due[0].ID().IsEqual(contacted.ID()))

	none, err := suite.repo.GetActiveByTrip(ctx, closed.TripID())
	suite.Require().NoError(err)
	suite.Nil(none)
}

func TestEventRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EventRepositoryTestSuite))
}

func openEvent(t *testing.T, tripID, orderID kernel.UUID, at time.Time) *offroute.Event {
	t.Helper()
	sample, err := offroute.NewSample(kernel.MustGeoPoint(21.0278, 105.8342), 150, at)
	require.NoError(t, err)
	e, err := offroute.NewEvent(kernel.NewUUID(), tripID, orderID, sample, offroute.DefaultPolicy())
	require.NoError(t, err)
	return e
}
