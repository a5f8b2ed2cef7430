package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks the aggregates written through
// its repositories so that their events can be published after Commit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the events of
	// tracked aggregates. A publishing failure does not undo the commit.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Savepoint runs fn inside the open transaction and undoes only fn's
	// writes when it returns an error.
	Savepoint(ctx context.Context, name string, fn func() error) error

	PricingRuleRepository() PricingRuleRepository
	ShipmentRepository() ShipmentRepository
	InvoiceRepository() InvoiceRepository
	DocumentSequenceRepository() DocumentSequenceRepository
}
