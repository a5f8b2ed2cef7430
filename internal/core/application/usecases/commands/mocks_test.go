package commands_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type MockPricingRuleRepository struct{ mock.Mock }

func (m *MockPricingRuleRepository) FindActiveRule(ctx context.Context, mode kernel.TransportMode) (*pricing.Rule, error) {
	args := m.Called(ctx, mode)
	rule, _ := args.Get(0).(*pricing.Rule)
	return rule, args.Error(1)
}
func (m *MockPricingRuleRepository) ListActive(ctx context.Context) ([]*pricing.Rule, error) {
	args := m.Called(ctx)
	rules, _ := args.Get(0).([]*pricing.Rule)
	return rules, args.Error(1)
}
func (m *MockPricingRuleRepository) Add(ctx context.Context, rule *pricing.Rule) error {
	return m.Called(ctx, rule).Error(0)
}
func (m *MockPricingRuleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}
func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.ID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*invoice.Invoice)
	return inv, args.Error(1)
}
func (m *MockInvoiceRepository) FindActiveByShipment(ctx context.Context, shipmentID kernel.ID) (*invoice.Invoice, error) {
	args := m.Called(ctx, shipmentID)
	inv, _ := args.Get(0).(*invoice.Invoice)
	return inv, args.Error(1)
}
func (m *MockInvoiceRepository) ListOverdueCandidates(ctx context.Context, now time.Time, limit int) ([]*invoice.Invoice, error) {
	args := m.Called(ctx, now, limit)
	invoices, _ := args.Get(0).([]*invoice.Invoice)
	return invoices, args.Error(1)
}

type MockSequenceRepository struct{ mock.Mock }

func (m *MockSequenceRepository) Next(ctx context.Context, prefix document.Prefix, day string) (int, error) {
	args := m.Called(ctx, prefix, day)
	return args.Int(0), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

// Savepoint records the call and runs fn; the mock has no writes to undo.
func (m *MockUoW) Savepoint(ctx context.Context, name string, fn func() error) error {
	m.Called(ctx, name)
	return fn()
}

func (m *MockUoW) PricingRuleRepository() ports.PricingRuleRepository {
	return m.Called().Get(0).(ports.PricingRuleRepository)
}
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}
func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	return m.Called().Get(0).(ports.InvoiceRepository)
}
func (m *MockUoW) DocumentSequenceRepository() ports.DocumentSequenceRepository {
	return m.Called().Get(0).(ports.DocumentSequenceRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) uow() *MockUoW { return m.MethodCalled("Create").Get(0).(*MockUoW) }

type bookingFactory struct{ *MockUoWFactory }

func (f bookingFactory) Create() commands.BookingUoW { return f.uow() }

type invoicingFactory struct{ *MockUoWFactory }

func (f invoicingFactory) Create() commands.InvoicingUoW { return f.uow() }

type invoiceFactory struct{ *MockUoWFactory }

func (f invoiceFactory) Create() commands.InvoiceUoW { return f.uow() }

type pricingFactory struct{ *MockUoWFactory }

func (f pricingFactory) Create() commands.PricingUoW { return f.uow() }

// sequentialIDs hands out 1000, 1001, ...
type sequentialIDs struct{ next atomic.Int64 }

func (g *sequentialIDs) NextID() kernel.ID {
	return kernel.ID(1000 + g.next.Add(1) - 1)
}

// wiredUoW returns a unit of work whose repository accessors always return
// the given mocks. Begin and the deferred Rollback are expected exactly once.
type wiredUoW struct {
	uow       *MockUoW
	factory   *MockUoWFactory
	rules     *MockPricingRuleRepository
	shipments *MockShipmentRepository
	invoices  *MockInvoiceRepository
	sequences *MockSequenceRepository
}

func newWiredUoW(ctx context.Context) *wiredUoW {
	w := &wiredUoW{
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		rules:     new(MockPricingRuleRepository),
		shipments: new(MockShipmentRepository),
		invoices:  new(MockInvoiceRepository),
		sequences: new(MockSequenceRepository),
	}
	w.factory.On("Create").Return(w.uow).Once()
	w.uow.On("Begin", ctx).Return(nil).Once()
	w.uow.On("Rollback", ctx).Return(nil).Once()
	w.uow.On("PricingRuleRepository").Return(w.rules).Maybe()
	w.uow.On("ShipmentRepository").Return(w.shipments).Maybe()
	w.uow.On("InvoiceRepository").Return(w.invoices).Maybe()
	w.uow.On("DocumentSequenceRepository").Return(w.sequences).Maybe()
	w.uow.On("Savepoint", ctx, mock.Anything).Return().Maybe()
	return w
}

func (w *wiredUoW) assert(t *testing.T) {
	t.Helper()
	w.factory.AssertExpectations(t)
	w.uow.AssertExpectations(t)
	w.rules.AssertExpectations(t)
	w.shipments.AssertExpectations(t)
	w.invoices.AssertExpectations(t)
	w.sequences.AssertExpectations(t)
}

func restoredShipment(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()

	s, err := shipment.RestoreShipment(shipment.State{
		ID:         101,
		Number:     "SHP-20240310-004",
		CustomerID: 7,
		VendorID:   9,
		Route: shipment.Route{
			OriginCity:         "Dubai",
			OriginCountry:      "UAE",
			DestinationCity:    "Hamburg",
			DestinationCountry: "Germany",
		},
		Cargo: shipment.Cargo{
			TransportMode: kernel.Sea,
			Weight:        dec("1200"),
			Volume:        dec("14"),
			Description:   "Machinery",
		},
		EstimatedCost: dec("9900.00"),
		ActualCost:    decimal.Zero,
		Status:        status,
		BookingDate:   testNow.AddDate(0, 0, -5),
		CreatedBy:     1,
		CreatedAt:     testNow.AddDate(0, 0, -5),
		UpdatedAt:     testNow.AddDate(0, 0, -5),
		Version:       3,
	})
	require.NoError(t, err)
	return s
}

func restoredInvoice(t *testing.T, status invoice.PaymentStatus, invoiceDate time.Time) *invoice.Invoice {
	t.Helper()

	inv, err := invoice.RestoreInvoice(invoice.State{
		ID:            501,
		Number:        "INV-" + document.DayKey(invoiceDate) + "-001",
		ShipmentID:    101,
		CustomerID:    7,
		InvoiceDate:   invoiceDate,
		DueDate:       invoiceDate.AddDate(0, 0, services.PaymentTermDays),
		Amounts:       services.InvoiceAmounts(dec("9900.00")),
		PaymentStatus: status,
		PaidAmount:    decimal.Zero,
		CreatedAt:     invoiceDate,
		UpdatedAt:     invoiceDate,
		Version:       1,
	})
	require.NoError(t, err)
	return inv
}
