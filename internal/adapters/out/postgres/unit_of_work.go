// Package postgres provides the GORM-based Unit of Work and database bootstrap
// for the fulfillment console.
//
// A unit of work hands out order and fulfillment repositories. Repositories
// obtained after Begin share its transaction; repositories obtained without
// Begin run every call on its own, which is how the label pipeline reads.
//
// Basic transaction management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//	for _, f := range fulfillments {
//	    if err := uow.FulfillmentRepository().Add(ctx, f); err != nil {
//	        return err
//	    }
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is confined to one goroutine; concurrent work
// creates one instance per unit. Tracking rows are not written here; see
// trackingrepo.
package postgres

import (
	"context"
	"sync"

	"fulfillment/internal/adapters/out/postgres/fulfillmentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

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

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	mu                sync.Mutex
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin twice keeps the first transaction.
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

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open, which
// is the normal outcome of a deferred Rollback after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// FulfillmentRepository provides access to fulfillment persistence within the unit of work.
// Repository operations run inside the current transaction when one is active.
func (uow *GormUnitOfWork) FulfillmentRepository() ports.FulfillmentRepository {
	return fulfillmentrepo.NewGormFulfillmentRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregateIDs lists the ids written so far, in write order.
func (uow *GormUnitOfWork) TrackedAggregateIDs() []kernel.UUID {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
