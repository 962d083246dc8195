package triprepo_test

import (
	"context"
	"testing"

	"offroute/internal/adapters/out/postgres/pgtest"
	"offroute/internal/adapters/out/postgres/triprepo"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type TripRepositoryTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *triprepo.GormTripRepository
}

func (suite *TripRepositoryTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repo = triprepo.NewGormTripRepository(database.DB)
}

func (suite *TripRepositoryTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *TripRepositoryTestSuite) TestGetTripSummary() {
	tripID, orderID := kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(suite.database.DB.Create(&triprepo.SummaryDTO{
		TripID:       tripID.Google(),
		OrderID:      orderID.Google(),
		OrderCode:    "ORD-1001",
		DriverName:   "Tran Van B",
		VehiclePlate: "29A-12345",
		PackageCount: 4,
	}).Error)

	s, err := suite.repo.GetTripSummary(context.Background(), tripID)

	suite.Require().NoError(err)
	suite.True(s.OrderID.IsEqual(orderID))
	suite.Equal("ORD-1001", s.OrderCode)
	suite.Equal("29A-12345", s.VehiclePlate)
	suite.Equal(4, s.PackageCount)
	suite.Empty(s.SenderName)
}

func (suite *TripRepositoryTestSuite) TestUnknownTrip() {
	_, err := suite.repo.GetTripSummary(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestTripRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TripRepositoryTestSuite))
}
