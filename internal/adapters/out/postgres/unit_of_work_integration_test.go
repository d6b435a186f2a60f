package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "printfloor/internal/adapters/out/postgres"
	"printfloor/internal/adapters/out/postgres/pgtest"
	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	db       *gorm.DB
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background(), postgres_adapter.Models()...)
	suite.Require().NoError(err)
	suite.database = database
	suite.db = database.DB
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newJob(orderID kernel.UUID) *job.Job {
	size, err := kernel.NewDimensions(12, 18)
	suite.Require().NoError(err)
	j, err := job.NewJob(kernel.NewUUID(), job.Attributes{
		OrderID:     orderID,
		OwnerID:     "cust-1",
		Title:       "Logo transfer",
		Size:        size,
		ProductType: job.ProductDTF,
		Quantity:    2,
		DPI:         job.DefaultDPI,
		Priority:    job.PriorityRush,
	}, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return j
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitSpansRepositories() {
	// Given
	ctx := context.Background()
	orderID := kernel.NewUUID()
	j := suite.newJob(orderID)
	record, err := intake.NewRecord(kernel.NewUUID(), orderID, "cust-1", time.Now())
	suite.Require().NoError(err)
	artifact, err := design.NewArtifact(kernel.NewUUID(), orderID, "art-1", 1, time.Now())
	suite.Require().NoError(err)

	// When
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JobRepository().Add(ctx, j))
	suite.Require().NoError(uow.IntakeRepository().Add(ctx, record))
	suite.Require().NoError(uow.DesignRepository().Add(ctx, artifact))
	suite.Require().NoError(uow.Commit(ctx))

	// Then
	reader := suite.factory.Create()
	jobs, err := reader.JobRepository().ListByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Len(jobs, 1)
	_, err = reader.IntakeRepository().GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	_, err = reader.DesignRepository().GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(3, uow.(*postgres_adapter.GormUnitOfWork).TrackedCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	// Given
	ctx := context.Background()
	orderID := kernel.NewUUID()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JobRepository().Add(ctx, suite.newJob(orderID)))
	record, err := intake.NewRecord(kernel.NewUUID(), orderID, "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.IntakeRepository().Add(ctx, record))

	// When
	suite.Require().NoError(uow.Rollback(ctx))

	// Then
	reader := suite.factory.Create()
	jobs, err := reader.JobRepository().ListByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Empty(jobs)
	_, err = reader.IntakeRepository().GetByOrder(ctx, orderID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Zero(uow.(*postgres_adapter.GormUnitOfWork).TrackedCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UncommittedWritesAreIsolated() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer func() {
		_ = writer.Rollback(ctx)
	}()
	suite.Require().NoError(writer.JobRepository().Add(ctx, suite.newJob(orderID)))

	outside, err := suite.factory.Create().JobRepository().ListByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Empty(outside)

	inside, err := writer.JobRepository().ListByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Len(inside, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEnsureSlots_IsIdempotent() {
	ctx := context.Background()

	created, err := postgres_adapter.EnsureSlots(ctx, suite.db, []string{"A-1", "A-2", " "})
	suite.Require().NoError(err)
	suite.Equal(2, created)

	created, err = postgres_adapter.EnsureSlots(ctx, suite.db, []string{"A-2", "B-1"})
	suite.Require().NoError(err)
	suite.Equal(1, created)

	loads, err := suite.factory.Create().SlotRepository().ListLoads(ctx)
	suite.Require().NoError(err)
	suite.Len(loads, 3)
	suite.Equal("A-1", loads[0].Slot.Label())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
