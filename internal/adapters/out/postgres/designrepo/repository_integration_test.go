package designrepo_test

import (
	"context"
	"testing"
	"time"

	"printfloor/internal/adapters/out/postgres/designrepo"
	"printfloor/internal/adapters/out/postgres/pgtest"
	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type DesignRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *designrepo.GormDesignRepository
}

func (suite *DesignRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), &designrepo.ArtifactDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *DesignRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = designrepo.NewGormDesignRepository(suite.database.DB, tracker)
}

func (suite *DesignRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *DesignRepositoryIntegrationTestSuite) TestApprovalSurvivesRoundTrip() {
	// Given
	ctx := context.Background()
	orderID := kernel.NewUUID()
	created := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	a, err := design.NewArtifact(kernel.NewUUID(), orderID, "art-77", 3, created)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, a))

	// When
	a.Approve(created.Add(time.Hour))
	suite.Require().NoError(suite.repository.Update(ctx, a))
	got, err := suite.repository.GetByOrder(ctx, orderID)

	// Then
	suite.Require().NoError(err)
	suite.Equal(a.ID(), got.ID())
	suite.True(got.IsApproved())
	suite.Equal("art-77", got.ExternalID())
	suite.Equal(3, got.PageCount())
	suite.Require().NotNil(got.ApprovedAt())
	suite.True(got.ApprovedAt().Equal(created.Add(time.Hour)))
}

func (suite *DesignRepositoryIntegrationTestSuite) TestGet_UnknownIsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDesignRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DesignRepositoryIntegrationTestSuite))
}
