// Package services provides the domain services of the freight system: logic
// that works on more than one aggregate or on an aggregate plus configuration.
//
// The package includes:
//   - CostCalculator: prices a consignment from a pricing rule, weight and distance
//   - InvoiceFactory: raises the invoice of a shipment under the tax and payment-term policy
//
// Both services are pure. Clock readings, identities and document numbers are
// passed in by the caller.
package services
