// Package invoice implements the Invoice aggregate and its payment status.
//
// Amounts are fixed at issue time. Only the payment side changes afterwards:
//
//	Pending ──┬──> Paid
//	          ├──> Overdue ──┬──> Paid
//	          │              └──> Cancelled
//	          └──> Cancelled
//
// Paid and Cancelled are terminal. A shipment has at most one invoice that is
// not Cancelled.
package invoice
