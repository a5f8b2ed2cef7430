package commands

import (
	"context"

	"freight/internal/pkg/clock"
	"freight/internal/pkg/metrics"
)

// MarkOverdueInvoicesCommandHandler re-derives the Overdue state of invoices
// from the clock. One batch is one transaction.
type MarkOverdueInvoicesCommandHandler struct {
	uowFactory InvoiceUoWFactory
	clock      clock.Clock
	metrics    *metrics.Metrics
}

func NewMarkOverdueInvoicesCommandHandler(
	uowFactory InvoiceUoWFactory,
	clk clock.Clock,
	m *metrics.Metrics,
) MarkOverdueInvoicesCommandHandler {
	return MarkOverdueInvoicesCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		metrics:    m,
	}
}

// Handle returns the number of invoices marked Overdue.
func (h *MarkOverdueInvoicesCommandHandler) Handle(ctx context.Context, cmd MarkOverdueInvoicesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	candidates, err := invoiceRepo.ListOverdueCandidates(ctx, now, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, inv := range candidates {
		if !inv.MarkOverdue(now) {
			continue
		}
		if err = invoiceRepo.Update(ctx, inv); err != nil {
			return 0, err
		}
		marked++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.metrics.InvoicesMarkedOverdue(marked)
	return marked, nil
}
