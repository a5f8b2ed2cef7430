package commands_test

import (
	"errors"
	"fmt"
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStatusHandler(w *wiredUoW, autoInvoice bool) commands.ChangeShipmentStatusCommandHandler {
	return commands.NewChangeShipmentStatusCommandHandler(
		invoicingFactory{w.factory},
		services.NewInvoiceFactory(),
		&sequentialIDs{},
		clock.NewFakeClock(testNow),
		nil,
		autoInvoice,
	)
}

func TestChangeShipmentStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	s := restoredShipment(t, shipment.Booked)

	w.shipments.On("Get", ctx, kernel.ID(101)).Return(s, nil).Once()
	w.shipments.On("Update", ctx, s).Return(nil).Once()
	w.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.InTransit, "  picked up  ", nil, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, false)
	require.NoError(t, h.Handle(ctx, cmd))
	w.assert(t)

	assert.Equal(t, shipment.InTransit, s.Status())
	history := s.PendingHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "picked up", history[0].Remarks())
	assert.Equal(t, kernel.ID(4), history[0].UpdatedBy())
	assert.Equal(t, testNow, history[0].UpdatedAt())
}

func TestChangeShipmentStatusCommandHandler_Handle_RecordsActualCost(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	s := restoredShipment(t, shipment.InTransit)

	w.shipments.On("Get", ctx, kernel.ID(101)).Return(s, nil).Once()
	w.shipments.On("Update", ctx, s).Return(nil).Once()
	w.uow.On("Commit", ctx).Return(nil).Once()

	cost := dec("10250.456")
	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.Delivered, "", &cost, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, false)
	require.NoError(t, h.Handle(ctx, cmd))
	w.assert(t)

	assert.True(t, s.ActualCost().Equal(dec("10250.46")))
	require.NotNil(t, s.ActualDeliveryDate())
	assert.Equal(t, testNow, *s.ActualDeliveryDate())
}

func TestChangeShipmentStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	s := restoredShipment(t, shipment.Delivered)
	w.shipments.On("Get", ctx, kernel.ID(101)).Return(s, nil).Once()

	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.InTransit, "", nil, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, false)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, shipment.ErrInvalidStatusTransition)
	w.assert(t)
	w.shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, s.PendingHistory())
}

func TestChangeShipmentStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	w.shipments.On("Get", ctx, kernel.ID(404)).
		Return(nil, errs.NewObjectNotFoundError("shipmentId", kernel.ID(404))).Once()

	cmd, err := commands.NewChangeShipmentStatusCommand(404, shipment.InTransit, "", nil, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, false)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	w.assert(t)
}

func TestChangeShipmentStatusCommandHandler_Handle_AutoInvoiceOnDelivery(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	s := restoredShipment(t, shipment.InTransit)

	var issued *invoice.Invoice
	w.shipments.On("Get", ctx, kernel.ID(101)).Return(s, nil).Once()
	w.shipments.On("Update", ctx, s).Return(nil).Once()
	w.invoices.On("FindActiveByShipment", ctx, kernel.ID(101)).Return(nil, nil).Once()
	w.sequences.On("Next", ctx, document.InvoicePrefix, "20240315").Return(3, nil).Once()
	w.invoices.On("Add", ctx, mock.AnythingOfType("*invoice.Invoice")).
		Run(func(args mock.Arguments) { issued = args.Get(1).(*invoice.Invoice) }).
		Return(nil).Once()
	w.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.Delivered, "signed", nil, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, true)
	require.NoError(t, h.Handle(ctx, cmd))
	w.assert(t)

	require.NotNil(t, issued)
	assert.Equal(t, "INV-20240315-003", issued.Number().String())
	assert.Equal(t, kernel.ID(1000), issued.ID())
	assert.True(t, issued.SubTotal().Equal(dec("9900.00")))
	assert.True(t, issued.TotalAmount().Equal(dec("11682.00")))
	assert.Equal(t, invoice.Pending, issued.PaymentStatus())
}

func TestChangeShipmentStatusCommandHandler_Handle_AutoInvoiceSkipsInvoicedShipment(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	s := restoredShipment(t, shipment.InTransit)

	w.shipments.On("Get", ctx, kernel.ID(101)).Return(s, nil).Once()
	w.shipments.On("Update", ctx, s).Return(nil).Once()
	w.invoices.On("FindActiveByShipment", ctx, kernel.ID(101)).
		Return(restoredInvoice(t, invoice.Pending, testNow.AddDate(0, 0, -1)), nil).Once()
	w.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.Delivered, "", nil, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, true)
	require.NoError(t, h.Handle(ctx, cmd))
	w.assert(t)
	w.invoices.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	w.sequences.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeShipmentStatusCommandHandler_Handle_AutoInvoiceLosesRaceToManualInvoice(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	s := restoredShipment(t, shipment.InTransit)

	w.shipments.On("Get", ctx, kernel.ID(101)).Return(s, nil).Once()
	w.shipments.On("Update", ctx, s).Return(nil).Once()
	w.invoices.On("FindActiveByShipment", ctx, kernel.ID(101)).Return(nil, nil).Once()
	w.sequences.On("Next", ctx, document.InvoicePrefix, "20240315").Return(4, nil).Once()
	w.invoices.On("Add", ctx, mock.AnythingOfType("*invoice.Invoice")).
		Return(fmt.Errorf("%w: shipment 101 already has an active invoice", services.ErrShipmentNotInvoiceable)).Once()
	w.uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.Delivered, "signed", nil, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, true)
	require.NoError(t, h.Handle(ctx, cmd))
	w.assert(t)

	w.uow.AssertCalled(t, "Savepoint", ctx, "auto_invoice")
	assert.Equal(t, shipment.Delivered, s.Status())
}

func TestChangeShipmentStatusCommandHandler_Handle_AutoInvoiceFailureAbortsTransition(t *testing.T) {
	ctx := t.Context()
	w := newWiredUoW(ctx)
	s := restoredShipment(t, shipment.InTransit)
	dbErr := errors.New("connection reset")

	w.shipments.On("Get", ctx, kernel.ID(101)).Return(s, nil).Once()
	w.shipments.On("Update", ctx, s).Return(nil).Once()
	w.invoices.On("FindActiveByShipment", ctx, kernel.ID(101)).Return(nil, dbErr).Once()

	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.Delivered, "", nil, 4)
	require.NoError(t, err)

	h := newStatusHandler(w, true)
	require.ErrorIs(t, h.Handle(ctx, cmd), dbErr)
	w.assert(t)
	w.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewChangeShipmentStatusCommand_Validation(t *testing.T) {
	negative := dec("-1")

	_, err := commands.NewChangeShipmentStatusCommand(0, shipment.Unknown, "", &negative, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewChangeShipmentStatusCommand(101, shipment.Cancelled, "", nil, 1)
	require.NoError(t, err)
	assert.Nil(t, cmd.ActualCost())
	assert.Equal(t, shipment.Cancelled, cmd.Status())
}
