package gangsheetrepo_test

import (
	"context"
	"testing"
	"time"

	"printfloor/internal/adapters/out/postgres/gangsheetrepo"
	"printfloor/internal/adapters/out/postgres/pgtest"
	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/job"
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

type GangSheetRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *gangsheetrepo.GormGangSheetRepository
	tracker    *MockAggregateTracker
}

func (suite *GangSheetRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), &gangsheetrepo.GangSheetDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *GangSheetRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.tracker = new(MockAggregateTracker)
	suite.repository = gangsheetrepo.NewGormGangSheetRepository(suite.database.DB, suite.tracker)
}

func (suite *GangSheetRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *GangSheetRepositoryIntegrationTestSuite) member(width, height float64) *job.Job {
	size, err := kernel.NewDimensions(width, height)
	suite.Require().NoError(err)
	j, err := job.NewJob(kernel.NewUUID(), job.Attributes{
		OrderID:     kernel.NewUUID(),
		Size:        size,
		ProductType: job.ProductDTF,
		Quantity:    1,
		DPI:         job.DefaultDPI,
		Priority:    job.PriorityStandard,
	}, time.Now())
	suite.Require().NoError(err)
	return j
}

func (suite *GangSheetRepositoryIntegrationTestSuite) TestAddAndGet_KeepsMetricsAndOrder() {
	// Given
	ctx := context.Background()
	sheet, err := kernel.NewDimensions(10, 12)
	suite.Require().NoError(err)
	a, b := suite.member(5, 8), suite.member(6, 10)
	batch, err := gangsheet.NewBatch(kernel.NewUUID(), sheet, []*job.Job{a, b}, time.Now().UTC())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", batch.ID(), batch).Once()

	// When
	suite.Require().NoError(suite.repository.Add(ctx, batch))
	got, err := suite.repository.Get(ctx, batch.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{a.ID(), b.ID()}, got.JobIDs())
	suite.InDelta(batch.FillRate(), got.FillRate(), 1e-9)
	suite.InDelta(20.0, got.WasteArea(), 1e-9)
	suite.True(got.MultiOrder())
	suite.Equal(2, got.OrderCount())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *GangSheetRepositoryIntegrationTestSuite) TestGet_UnknownIsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GangSheetRepositoryIntegrationTestSuite) TestUpdate_PersistsCompletion() {
	// Given
	ctx := context.Background()
	sheet, err := kernel.NewDimensions(22, 24)
	suite.Require().NoError(err)
	batch, err := gangsheet.NewBatch(kernel.NewUUID(), sheet, []*job.Job{suite.member(5, 8)}, time.Now().UTC())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", batch.ID(), batch)
	suite.Require().NoError(suite.repository.Add(ctx, batch))
	completedAt := time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
	suite.Require().True(batch.Complete(completedAt))

	// When
	suite.Require().NoError(suite.repository.Update(ctx, batch))

	// Then
	got, err := suite.repository.Get(ctx, batch.ID())
	suite.Require().NoError(err)
	suite.Require().True(got.IsComplete())
	suite.True(got.CompletedAt().Equal(completedAt))
	suite.Equal(batch.JobIDs(), got.JobIDs())
}

func (suite *GangSheetRepositoryIntegrationTestSuite) TestUpdate_UnknownIsNotFound() {
	sheet, err := kernel.NewDimensions(22, 24)
	suite.Require().NoError(err)
	batch, err := gangsheet.NewBatch(kernel.NewUUID(), sheet, []*job.Job{suite.member(5, 8)}, time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), batch)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGangSheetRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(GangSheetRepositoryIntegrationTestSuite))
}
