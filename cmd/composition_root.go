package cmd

import (
	"context"

	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/pdf"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/pricingrepo"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pricing"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/jobs"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const invoiceIssuer = "Freight Back Office"

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	ids        kernel.IDGenerator
	clock      clock.Clock
	metrics    *metrics.Metrics
	logger     *zap.Logger
	renderer   ports.InvoiceRenderer
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.ShipmentEventPublisher,
	ids kernel.IDGenerator,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		ids:        ids,
		clock:      clk,
		metrics:    m,
		logger:     logger,
		renderer:   pdf.NewInvoiceRenderer(invoiceIssuer),
	}
}

func (c *CompositionRoot) bookingUoWFactory() commands.BookingUoWFactory {
	return FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoicingUoWFactory() commands.InvoicingUoWFactory {
	return FuncInvoicingUoWFactory(func() commands.InvoicingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoiceUoWFactory() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pricingUoWFactory() commands.PricingUoWFactory {
	return FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() *commands.CreateShipmentCommandHandler {
	h := commands.NewCreateShipmentCommandHandler(
		c.bookingUoWFactory(), services.NewCostCalculator(), c.clock, c.metrics,
	)
	return &h
}

func (c *CompositionRoot) CreateChangeShipmentStatusCommandHandler() *commands.ChangeShipmentStatusCommandHandler {
	h := commands.NewChangeShipmentStatusCommandHandler(
		c.invoicingUoWFactory(), services.NewInvoiceFactory(), c.ids, c.clock, c.metrics, c.config.AutoInvoiceOnDelivery,
	)
	return &h
}

func (c *CompositionRoot) CreateCreateInvoiceCommandHandler() *commands.CreateInvoiceCommandHandler {
	h := commands.NewCreateInvoiceCommandHandler(
		c.invoicingUoWFactory(), services.NewInvoiceFactory(), c.clock, c.metrics,
	)
	return &h
}

func (c *CompositionRoot) CreateUpdateInvoicePaymentCommandHandler() *commands.UpdateInvoicePaymentCommandHandler {
	h := commands.NewUpdateInvoicePaymentCommandHandler(c.invoiceUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateMarkOverdueInvoicesCommandHandler() *commands.MarkOverdueInvoicesCommandHandler {
	h := commands.NewMarkOverdueInvoicesCommandHandler(c.invoiceUoWFactory(), c.clock, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateSeedPricingRulesCommandHandler() *commands.SeedPricingRulesCommandHandler {
	h := commands.NewSeedPricingRulesCommandHandler(c.pricingUoWFactory(), c.ids)
	return &h
}

func (c *CompositionRoot) CreateCalculateCostQueryHandler() queries.CalculateCostQueryHandler {
	return queries.NewCalculateCostQueryHandler(
		pricingrepo.NewGormPricingRuleRepository(c.gormDB), services.NewCostCalculator(), c.metrics,
	)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentHistoryQueryHandler() queries.GetShipmentHistoryQueryHandler {
	return queries.NewGetShipmentHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListInvoicesQueryHandler() queries.ListInvoicesQueryHandler {
	return queries.NewListInvoicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceDocumentQueryHandler() queries.GetInvoiceDocumentQueryHandler {
	return queries.NewGetInvoiceDocumentQueryHandler(c.gormDB, c.renderer)
}

func (c *CompositionRoot) CreateListPricingRulesQueryHandler() queries.ListPricingRulesQueryHandler {
	return queries.NewListPricingRulesQueryHandler(c.gormDB)
}

// SeedPricingRules inserts the reference rates into an empty catalog and
// reports how many rules were added.
func (c *CompositionRoot) SeedPricingRules(ctx context.Context) (int, error) {
	cmd, err := commands.NewSeedPricingRulesCommand(pricing.ReferenceRates())
	if err != nil {
		return 0, err
	}
	handler := c.CreateSeedPricingRulesCommandHandler()
	return handler.Handle(ctx, cmd)
}

// CreateHTTPHandlers wires every use case the API exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateShipment:       c.CreateCreateShipmentCommandHandler(),
		ChangeShipmentStatus: c.CreateChangeShipmentStatusCommandHandler(),
		CreateInvoice:        c.CreateCreateInvoiceCommandHandler(),
		UpdateInvoicePayment: c.CreateUpdateInvoicePaymentCommandHandler(),

		CalculateCost:      c.CreateCalculateCostQueryHandler(),
		GetShipment:        c.CreateGetShipmentQueryHandler(),
		GetShipmentHistory: c.CreateGetShipmentHistoryQueryHandler(),
		ListShipments:      c.CreateListShipmentsQueryHandler(),
		GetInvoice:         c.CreateGetInvoiceQueryHandler(),
		ListInvoices:       c.CreateListInvoicesQueryHandler(),
		GetInvoiceDocument: c.CreateGetInvoiceDocumentQueryHandler(),
		ListPricingRules:   c.CreateListPricingRulesQueryHandler(),
	}
}

// CreateJobManager schedules the background jobs enabled by the config.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var scheduled []jobs.Job
	if c.config.OverdueSweepSchedule != "" {
		scheduled = append(scheduled, jobs.NewOverdueInvoiceJob(
			c.CreateMarkOverdueInvoicesCommandHandler(),
			c.config.OverdueSweepSchedule,
			c.config.OverdueSweepBatchSize,
			c.logger,
			c.metrics,
		))
	}
	return jobs.NewJobManager(scheduled...)
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncInvoicingUoWFactory func() commands.InvoicingUoW

func (f FuncInvoicingUoWFactory) Create() commands.InvoicingUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}
