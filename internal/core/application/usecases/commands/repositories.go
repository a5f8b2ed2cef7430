// Package commands contains business operations that modify system state.
// Every command follows the same pattern: constructor validation, a unit of
// work scoped to the operation, domain calls, persistence, commit.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SavepointManager scopes part of a transaction so that its failure can be
	// undone without losing the rest.
	SavepointManager interface {
		Savepoint(ctx context.Context, name string, fn func() error) error
	}

	PricingRuleRepoFactory interface {
		PricingRuleRepository() ports.PricingRuleRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	DocumentSequenceRepoFactory interface {
		DocumentSequenceRepository() ports.DocumentSequenceRepository
	}

	// BookingUoW covers shipment booking: rule lookup, numbering and the
	// shipment insert share one transaction.
	BookingUoW interface {
		TxManager
		PricingRuleRepoFactory
		ShipmentRepoFactory
		DocumentSequenceRepoFactory
	}

	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// InvoicingUoW covers operations that read or change a shipment and may
	// issue its invoice in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   s, err := uow.ShipmentRepository().Get(ctx, id)
	//   seq, err := uow.DocumentSequenceRepository().Next(ctx, document.InvoicePrefix, day)
	//   // ... build and add the invoice
	//
	//   err = uow.Commit(ctx)
	InvoicingUoW interface {
		TxManager
		SavepointManager
		ShipmentRepoFactory
		InvoiceRepoFactory
		DocumentSequenceRepoFactory
	}

	InvoicingUoWFactory interface {
		Create() InvoicingUoW
	}

	// InvoiceUoW manages transactions for invoice-only operations.
	InvoiceUoW interface {
		TxManager
		InvoiceRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// PricingUoW manages transactions for pricing catalog maintenance.
	PricingUoW interface {
		TxManager
		PricingRuleRepoFactory
	}

	PricingUoWFactory interface {
		Create() PricingUoW
	}
)
