package intakerepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"printfloor/internal/adapters/out/postgres/intakerepo"
	"printfloor/internal/adapters/out/postgres/pgtest"
	"printfloor/internal/core/domain/model/intake"
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

type IntakeRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	records  *intakerepo.GormIntakeRepository
	slots    *intakerepo.GormSlotRepository
}

func (suite *IntakeRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), &intakerepo.SlotDTO{}, &intakerepo.IntakeDTO{})
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *IntakeRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.records = intakerepo.NewGormIntakeRepository(suite.database.DB, tracker)
	suite.slots = intakerepo.NewGormSlotRepository(suite.database.DB)
}

func (suite *IntakeRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *IntakeRepositoryIntegrationTestSuite) newRecord() *intake.Record {
	r, err := intake.NewRecord(kernel.NewUUID(), kernel.NewUUID(), "cust-1", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.records.Add(context.Background(), r))
	return r
}

func (suite *IntakeRepositoryIntegrationTestSuite) newSlot(label string, active bool) *intake.Slot {
	s, err := intake.NewSlot(kernel.NewUUID(), label, active)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.slots.Add(context.Background(), s))
	return s
}

func (suite *IntakeRepositoryIntegrationTestSuite) TestGetByCode_IgnoresCaseAndPadding() {
	ctx := context.Background()
	r := suite.newRecord()

	got, err := suite.records.GetByCode(ctx, "  "+strings.ToLower(r.Code())+"\n")

	suite.Require().NoError(err)
	suite.Equal(r.ID(), got.ID())
	suite.Equal(intake.StatusPending, got.Status())
}

func (suite *IntakeRepositoryIntegrationTestSuite) TestGetByOrder_UnknownIsNotFound() {
	_, err := suite.records.GetByOrder(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *IntakeRepositoryIntegrationTestSuite) TestListLoads_CountsReadyRecordsPerSlot() {
	// Given
	ctx := context.Background()
	busy := suite.newSlot("A-1", true)
	suite.newSlot("A-2", true)
	suite.newSlot("B-1", false)
	for range 2 {
		r := suite.newRecord()
		suite.Require().NoError(r.MarkReady(busy, time.Now()))
		suite.Require().NoError(suite.records.Update(ctx, r))
	}
	done := suite.newRecord()
	suite.Require().NoError(done.MarkReady(busy, time.Now()))
	done.Complete(time.Now())
	suite.Require().NoError(suite.records.Update(ctx, done))

	// When
	loads, err := suite.slots.ListLoads(ctx)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(loads, 3)
	suite.Equal("A-1", loads[0].Slot.Label())
	suite.Equal(2, loads[0].Assigned)
	suite.Equal(0, loads[1].Assigned)
	suite.False(loads[2].Slot.Active())
	suite.Equal("A-2", intake.LeastLoaded(loads).Label())
}

func (suite *IntakeRepositoryIntegrationTestSuite) TestListInFlight_ExcludesCompleted() {
	ctx := context.Background()
	open := suite.newRecord()
	closed := suite.newRecord()
	closed.Complete(time.Now())
	suite.Require().NoError(suite.records.Update(ctx, closed))

	inFlight, err := suite.records.ListInFlight(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(inFlight, 1)
	suite.Equal(open.ID(), inFlight[0].ID())
}

func (suite *IntakeRepositoryIntegrationTestSuite) TestListLoads_CompletionFreesSlot() {
	// Given
	ctx := context.Background()
	slot := suite.newSlot("C-1", true)
	r := suite.newRecord()
	suite.Require().NoError(r.MarkReady(slot, time.Now()))
	suite.Require().NoError(suite.records.Update(ctx, r))
	before, err := suite.slots.ListLoads(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(before, 1)
	suite.Require().Equal(1, before[0].Assigned)

	// When
	suite.Require().True(r.Complete(time.Now()))
	suite.Require().NoError(suite.records.Update(ctx, r))

	// Then
	after, err := suite.slots.ListLoads(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(after, 1)
	suite.Equal(0, after[0].Assigned)
}

func TestIntakeRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntakeRepositoryIntegrationTestSuite))
}
