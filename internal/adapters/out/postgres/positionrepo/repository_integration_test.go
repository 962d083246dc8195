package positionrepo_test

import (
	"context"
	"testing"
	"time"

	"offroute/internal/adapters/out/postgres/pgtest"
	"offroute/internal/adapters/out/postgres/positionrepo"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

type PositionRepositoryTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *positionrepo.GormPositionRepository
}

func (suite *PositionRepositoryTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repo = positionrepo.NewGormPositionRepository(database.DB)
}

func (suite *PositionRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate(context.Background()))
}

func (suite *PositionRepositoryTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *PositionRepositoryTestSuite) position(tripID kernel.UUID, lat float64, at time.Time) trip.Position {
	speed := 35.0
	p, err := trip.NewPosition(tripID, kernel.MustGeoPoint(lat, 105.85), &speed, nil, at)
	suite.Require().NoError(err)
	return p
}

func (suite *PositionRepositoryTestSuite) TestSave_InsertsThenReplacesWithNewer() {
	ctx := context.Background()
	tripID := kernel.NewUUID()

	suite.Require().NoError(suite.repo.Save(ctx, suite.position(tripID, 21.00, t0)))
	suite.Require().NoError(suite.repo.Save(ctx, suite.position(tripID, 21.01, t0.Add(time.Minute))))

	got, err := suite.repo.Get(ctx, tripID)
	suite.Require().NoError(err)
	suite.InDelta(21.01, got.Point().Lat(), 1e-9)
	suite.Equal(t0.Add(time.Minute), got.ReportedAt())
	suite.Require().NotNil(got.SpeedKmh())
	suite.Nil(got.BearingDeg())
}

func (suite *PositionRepositoryTestSuite) TestSave_OlderPositionDoesNotRewind() {
	ctx := context.Background()
	tripID := kernel.NewUUID()

	suite.Require().NoError(suite.repo.Save(ctx, suite.position(tripID, 21.01, t0.Add(time.Minute))))
	suite.Require().NoError(suite.repo.Save(ctx, suite.position(tripID, 21.00, t0)))

	got, err := suite.repo.Get(ctx, tripID)
	suite.Require().NoError(err)
	suite.InDelta(21.01, got.Point().Lat(), 1e-9)
}

func (suite *PositionRepositoryTestSuite) TestGet_Unknown() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestPositionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PositionRepositoryTestSuite))
}
