package commands

import (
	"errors"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	DefaultOverdueBatchSize = 100
	MaxOverdueBatchSize     = 1000
)

var ErrMarkOverdueInvoicesCommandIsNotConstructed = errors.New(
	"MarkOverdueInvoicesCommand must be created via NewMarkOverdueInvoicesCommand constructor",
)

// MarkOverdueInvoicesCommand moves up to BatchSize Pending invoices whose due
// date has passed to Overdue.
type MarkOverdueInvoicesCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewMarkOverdueInvoicesCommand(batchSize int) (MarkOverdueInvoicesCommand, error) {
	if batchSize < 1 || batchSize > MaxOverdueBatchSize {
		return MarkOverdueInvoicesCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxOverdueBatchSize)
	}

	return MarkOverdueInvoicesCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOverdueInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrMarkOverdueInvoicesCommandIsNotConstructed)
}

func (c MarkOverdueInvoicesCommand) BatchSize() int {
	return c.batchSize
}
