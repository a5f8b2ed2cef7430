package queries

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetInvoiceDocumentQueryHandler struct {
	db       *gorm.DB
	renderer ports.InvoiceRenderer
}

func NewGetInvoiceDocumentQueryHandler(db *gorm.DB, renderer ports.InvoiceRenderer) GetInvoiceDocumentQueryHandler {
	return GetInvoiceDocumentQueryHandler{db: db, renderer: renderer}
}

// Handle loads the invoice and its shipment and renders them. A missing
// shipment leaves its section blank; a missing invoice is not found.
func (h GetInvoiceDocumentQueryHandler) Handle(
	ctx context.Context,
	query GetInvoiceDocumentQuery,
) (InvoiceDocumentResponse, error) {
	if err := query.Validate(); err != nil {
		return InvoiceDocumentResponse{}, err
	}

	inv, err := getInvoice(ctx, h.db, query.InvoiceID())
	if err != nil {
		return InvoiceDocumentResponse{}, err
	}

	doc := ports.InvoiceDocument{
		InvoiceNumber:  inv.InvoiceNumber,
		ShipmentNumber: inv.ShipmentNumber,
		CustomerID:     inv.CustomerID,
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		PaymentStatus:  inv.PaymentStatus,
		SubTotal:       inv.SubTotal,
		TaxRate:        services.TaxRate,
		TaxAmount:      inv.TaxAmount,
		TotalAmount:    inv.TotalAmount,
		PaidAmount:     inv.PaidAmount,
	}

	s, err := getShipment(ctx, h.db, inv.ShipmentID)
	switch {
	case err == nil:
		doc.Route = shipment.Route{
			OriginCity:         s.OriginCity,
			OriginCountry:      s.OriginCountry,
			DestinationCity:    s.DestinationCity,
			DestinationCountry: s.DestinationCountry,
		}
		doc.TransportMode = s.TransportMode
		doc.Weight = s.Weight
		doc.CargoDescription = s.CargoDescription
	case errors.Is(err, errs.ErrObjectNotFound):
	default:
		return InvoiceDocumentResponse{}, err
	}

	content, err := h.renderer.RenderInvoice(ctx, doc)
	if err != nil {
		return InvoiceDocumentResponse{}, err
	}

	return InvoiceDocumentResponse{
		FileName: inv.InvoiceNumber + ".pdf",
		Content:  content,
	}, nil
}
