package http

import (
	"encoding/json"
	"strconv"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// Identities travel as decimal strings, amounts as JSON numbers.

type NewShipmentRequest struct {
	CustomerID           string           `json:"customerId"`
	VendorID             string           `json:"vendorId"`
	OriginCity           string           `json:"originCity"`
	OriginCountry        string           `json:"originCountry"`
	DestinationCity      string           `json:"destinationCity"`
	DestinationCountry   string           `json:"destinationCountry"`
	TransportMode        string           `json:"transportMode"`
	Weight               decimal.Decimal  `json:"weight"`
	Volume               *decimal.Decimal `json:"volume,omitempty"`
	CargoDescription     string           `json:"cargoDescription,omitempty"`
	DistanceKm           *decimal.Decimal `json:"distanceKm,omitempty"`
	BookingDate          *time.Time       `json:"bookingDate,omitempty"`
	ExpectedDeliveryDate *time.Time       `json:"expectedDeliveryDate,omitempty"`
}

type CostRequest struct {
	TransportMode string          `json:"transportMode"`
	Weight        decimal.Decimal `json:"weight"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
}

type StatusChangeRequest struct {
	Status     string           `json:"status"`
	Remarks    string           `json:"remarks,omitempty"`
	ActualCost *decimal.Decimal `json:"actualCost,omitempty"`
}

type NewInvoiceRequest struct {
	ShipmentID string `json:"shipmentId"`
}

type PaymentUpdateRequest struct {
	PaymentStatus string          `json:"paymentStatus"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusHistoryResponse struct {
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ShipmentResponse struct {
	ID                   string                  `json:"id"`
	ShipmentNumber       string                  `json:"shipmentNumber"`
	CustomerID           string                  `json:"customerId"`
	VendorID             string                  `json:"vendorId"`
	OriginCity           string                  `json:"originCity"`
	OriginCountry        string                  `json:"originCountry"`
	DestinationCity      string                  `json:"destinationCity"`
	DestinationCountry   string                  `json:"destinationCountry"`
	TransportMode        string                  `json:"transportMode"`
	Weight               json.Number             `json:"weight"`
	Volume               json.Number             `json:"volume"`
	CargoDescription     string                  `json:"cargoDescription"`
	EstimatedCost        json.Number             `json:"estimatedCost"`
	ActualCost           json.Number             `json:"actualCost"`
	Status               string                  `json:"status"`
	BookingDate          time.Time               `json:"bookingDate"`
	ExpectedDeliveryDate *time.Time              `json:"expectedDeliveryDate"`
	ActualDeliveryDate   *time.Time              `json:"actualDeliveryDate"`
	CreatedBy            string                  `json:"createdBy"`
	CreatedAt            time.Time               `json:"createdAt"`
	UpdatedAt            time.Time               `json:"updatedAt"`
	History              []StatusHistoryResponse `json:"history,omitempty"`
}

type CostBreakdownResponse struct {
	TransportMode  string      `json:"transportMode"`
	BaseRate       json.Number `json:"baseRate"`
	WeightCharge   json.Number `json:"weightCharge"`
	DistanceCharge json.Number `json:"distanceCharge"`
	MinimumCharge  json.Number `json:"minimumCharge"`
	EstimatedCost  json.Number `json:"estimatedCost"`
	MinimumApplied bool        `json:"minimumApplied"`
}

type InvoiceResponse struct {
	ID             string      `json:"id"`
	InvoiceNumber  string      `json:"invoiceNumber"`
	ShipmentID     string      `json:"shipmentId"`
	ShipmentNumber string      `json:"shipmentNumber,omitempty"`
	CustomerID     string      `json:"customerId"`
	InvoiceDate    time.Time   `json:"invoiceDate"`
	DueDate        time.Time   `json:"dueDate"`
	SubTotal       json.Number `json:"subTotal"`
	TaxAmount      json.Number `json:"taxAmount"`
	TotalAmount    json.Number `json:"totalAmount"`
	PaymentStatus  string      `json:"paymentStatus"`
	PaidAmount     json.Number `json:"paidAmount"`
	PaidDate       *time.Time  `json:"paidDate"`
}

type PricingRuleResponse struct {
	ID                 string      `json:"id"`
	TransportMode      string      `json:"transportMode"`
	BaseRatePerKg      json.Number `json:"baseRatePerKg"`
	DistanceMultiplier json.Number `json:"distanceMultiplier"`
	MinimumCharge      json.Number `json:"minimumCharge"`
	IsActive           bool        `json:"isActive"`
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(kernel.MoneyPlaces))
}

func quantity(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func idString(id kernel.ID) string {
	return strconv.FormatInt(id.Int64(), 10)
}

func toShipmentResponse(s queries.ShipmentResponse) ShipmentResponse {
	out := ShipmentResponse{
		ID:                   idString(s.ID),
		ShipmentNumber:       s.ShipmentNumber,
		CustomerID:           idString(s.CustomerID),
		VendorID:             idString(s.VendorID),
		OriginCity:           s.OriginCity,
		OriginCountry:        s.OriginCountry,
		DestinationCity:      s.DestinationCity,
		DestinationCountry:   s.DestinationCountry,
		TransportMode:        s.TransportMode.String(),
		Weight:               quantity(s.Weight),
		Volume:               quantity(s.Volume),
		CargoDescription:     s.CargoDescription,
		EstimatedCost:        money(s.EstimatedCost),
		ActualCost:           money(s.ActualCost),
		Status:               s.Status.String(),
		BookingDate:          s.BookingDate,
		ExpectedDeliveryDate: s.ExpectedDeliveryDate,
		ActualDeliveryDate:   s.ActualDeliveryDate,
		CreatedBy:            idString(s.CreatedBy),
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
	if s.History != nil {
		out.History = toHistoryResponse(s.History)
	}
	return out
}

func toHistoryResponse(history []queries.StatusHistoryResponse) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, len(history))
	for i, h := range history {
		out[i] = StatusHistoryResponse{
			Status:    h.Status.String(),
			Remarks:   h.Remarks,
			UpdatedBy: idString(h.UpdatedBy),
			UpdatedAt: h.UpdatedAt,
		}
	}
	return out
}

func toCostBreakdownResponse(b services.CostBreakdown) CostBreakdownResponse {
	return CostBreakdownResponse{
		TransportMode:  b.TransportMode.String(),
		BaseRate:       money(b.BaseRate),
		WeightCharge:   money(b.WeightCharge),
		DistanceCharge: money(b.DistanceCharge),
		MinimumCharge:  money(b.MinimumCharge),
		EstimatedCost:  money(b.EstimatedCost),
		MinimumApplied: b.MinimumApplied,
	}
}

func toInvoiceResponse(inv queries.InvoiceResponse) InvoiceResponse {
	return InvoiceResponse{
		ID:             idString(inv.ID),
		InvoiceNumber:  inv.InvoiceNumber,
		ShipmentID:     idString(inv.ShipmentID),
		ShipmentNumber: inv.ShipmentNumber,
		CustomerID:     idString(inv.CustomerID),
		InvoiceDate:    inv.InvoiceDate,
		DueDate:        inv.DueDate,
		SubTotal:       money(inv.SubTotal),
		TaxAmount:      money(inv.TaxAmount),
		TotalAmount:    money(inv.TotalAmount),
		PaymentStatus:  inv.PaymentStatus.String(),
		PaidAmount:     money(inv.PaidAmount),
		PaidDate:       inv.PaidDate,
	}
}

func toPricingRuleResponse(r queries.PricingRuleResponse) PricingRuleResponse {
	return PricingRuleResponse{
		ID:                 idString(r.ID),
		TransportMode:      r.TransportMode.String(),
		BaseRatePerKg:      money(r.BaseRatePerKg),
		DistanceMultiplier: quantity(r.DistanceMultiplier),
		MinimumCharge:      money(r.MinimumCharge),
		IsActive:           r.IsActive,
	}
}
