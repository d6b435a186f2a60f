// Package postgres wires the gorm repositories into a unit of work.
//
// A unit of work hands out repositories bound to its transaction once Begin
// has been called, and bound to the plain connection before that, so read-only
// callers can skip the transaction entirely:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.JobRepository().Update(ctx, j); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after Commit is a no-op returning gorm.ErrInvalidTransaction, which
// callers ignore. Each unit of work must stay on one goroutine.
package postgres

import (
	"context"

	"printfloor/internal/adapters/out/postgres/designrepo"
	"printfloor/internal/adapters/out/postgres/gangsheetrepo"
	"printfloor/internal/adapters/out/postgres/intakerepo"
	"printfloor/internal/adapters/out/postgres/jobrepo"
	"printfloor/internal/adapters/out/postgres/printerrepo"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one gorm transaction across every repository.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while one is open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PrinterRepository() ports.PrinterRepository {
	return printerrepo.NewGormPrinterRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) GangSheetRepository() ports.GangSheetRepository {
	return gangsheetrepo.NewGormGangSheetRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) IntakeRepository() ports.IntakeRepository {
	return intakerepo.NewGormIntakeRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SlotRepository() ports.SlotRepository {
	return intakerepo.NewGormSlotRepository(uow.conn())
}

func (uow *GormUnitOfWork) DesignRepository() ports.DesignRepository {
	return designrepo.NewGormDesignRepository(uow.conn(), uow)
}

// TrackAggregate records an aggregate written through one of this unit's repositories.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregate writes the unit has seen since it
// was created or last rolled back.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
