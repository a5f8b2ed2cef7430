package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/logging"
	"freight/internal/pkg/metrics"

	"go.uber.org/zap"
)

// issueNumber draws the next sequence value of (prefix, day of at) inside the
// caller's transaction and formats it.
func issueNumber(
	ctx context.Context,
	sequences ports.DocumentSequenceRepository,
	prefix document.Prefix,
	at time.Time,
	m *metrics.Metrics,
) (document.Number, error) {
	day := document.DayKey(at)
	seq, err := sequences.Next(ctx, prefix, day)
	if err != nil {
		return document.Number{}, err
	}

	number, err := document.NewNumber(prefix, at, seq)
	if err != nil {
		if errors.Is(err, document.ErrSequenceOverflow) {
			m.SequenceOverflow(prefix.String())
			logging.FromContext(ctx).Error("document sequence exhausted",
				zap.String("prefix", prefix.String()),
				zap.String("day", day),
				zap.Int("sequence", seq),
			)
		}
		return document.Number{}, err
	}

	m.DocumentIssued(prefix.String())
	return number, nil
}

// issueInvoice creates and stores the invoice of s. A shipment with a
// non-cancelled invoice already on file is not invoiceable again.
func issueInvoice(
	ctx context.Context,
	uow InvoicingUoW,
	factory services.InvoiceFactory,
	s *shipment.Shipment,
	invoiceID kernel.ID,
	now time.Time,
	m *metrics.Metrics,
) (*invoice.Invoice, error) {
	invoiceRepo := uow.InvoiceRepository()

	existing, err := invoiceRepo.FindActiveByShipment(ctx, s.ID())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: shipment %s already has invoice %s",
			services.ErrShipmentNotInvoiceable, s.Number(), existing.Number())
	}
	if s.Status() == shipment.Cancelled {
		return nil, fmt.Errorf("%w: shipment %s is %s", services.ErrShipmentNotInvoiceable, s.Number(), s.Status())
	}

	number, err := issueNumber(ctx, uow.DocumentSequenceRepository(), document.InvoicePrefix, now, m)
	if err != nil {
		return nil, err
	}

	inv, err := factory.CreateForShipment(s, invoiceID, number, now)
	if err != nil {
		return nil, err
	}

	if err = invoiceRepo.Add(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
