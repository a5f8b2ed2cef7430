// Package postgres provides the GORM-based Unit of Work and the schema of the
// freight store. The same code runs against PostgreSQL in production and
// SQLite in development and tests.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // publishes the shipment's status events
//
// Each UnitOfWork instance holds at most one transaction and must not be
// shared between goroutines.
package postgres

import (
	"context"
	"errors"

	"freight/internal/adapters/out/postgres/invoicerepo"
	"freight/internal/adapters/out/postgres/pricingrepo"
	"freight/internal/adapters/out/postgres/sequencerepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one database handle.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.ShipmentEventPublisher
	logger    *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. publisher may be nil, in which case no events leave the process.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.ShipmentEventPublisher, logger *zap.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "unit_of_work")),
	}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and remembers the
// aggregates its repositories wrote, so that their events can be published
// once the transaction is durable.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.ShipmentEventPublisher
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Calling Begin on an instance with an open transaction is a no-op.
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

// Commit finalizes the transaction and then publishes the status events of
// every tracked shipment. A publishing failure is logged; the commit stands.
//
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if err != nil {
		return err
	}

	uow.publish(ctx, tracked)
	return nil
}

// Rollback discards the transaction and everything tracked in it.
//
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = make([]trackedAggregate, 0)
	return err
}

// Savepoint runs fn under a savepoint of the open transaction. When fn fails
// the transaction is rolled back to the savepoint, so statements issued
// before it survive and the transaction stays usable even after a failed
// statement aborted it on PostgreSQL.
func (uow *GormUnitOfWork) Savepoint(ctx context.Context, name string, fn func() error) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.tx.WithContext(ctx).SavePoint(name).Error; err != nil {
		return err
	}

	if err := fn(); err != nil {
		if rbErr := uow.tx.WithContext(ctx).RollbackTo(name).Error; rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return nil
}

// PricingRuleRepository returns the pricing catalog bound to the current
// transaction, or to the plain connection when none is open.
func (uow *GormUnitOfWork) PricingRuleRepository() ports.PricingRuleRepository {
	return pricingrepo.NewGormPricingRuleRepository(uow.conn())
}

// ShipmentRepository returns a ShipmentRepository that reports written
// shipments to this unit of work.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn())
}

func (uow *GormUnitOfWork) DocumentSequenceRepository() ports.DocumentSequenceRepository {
	return sequencerepo.NewGormDocumentSequenceRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Tracking the same aggregate twice keeps a single entry.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	for i, t := range uow.trackedAggregates {
		if t.ID == id {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context, tracked []trackedAggregate) {
	if uow.publisher == nil {
		return
	}

	var events []shipment.StatusChanged
	for _, t := range tracked {
		if s, ok := t.Aggregate.(*shipment.Shipment); ok {
			events = append(events, s.RecordedEvents()...)
		}
	}
	if len(events) == 0 {
		return
	}

	if err := uow.publisher.PublishStatusChanged(ctx, events...); err != nil {
		uow.logger.Error("publishing shipment events failed",
			zap.Int("events", len(events)),
			zap.Error(err),
		)
	}
}
